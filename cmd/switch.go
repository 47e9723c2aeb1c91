package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/tamagokakedon/aws-profile-switch/internal/awsconfig"
	"github.com/tamagokakedon/aws-profile-switch/internal/history"
	"github.com/tamagokakedon/aws-profile-switch/internal/logger"
	"github.com/tamagokakedon/aws-profile-switch/internal/prompt"
	"github.com/tamagokakedon/aws-profile-switch/internal/resolver"
	"github.com/tamagokakedon/aws-profile-switch/internal/shell"
	"github.com/tamagokakedon/aws-profile-switch/internal/sso"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// switchProfile is the main command for the cli: resolve a profile
// interactively and print the command that activates it.
func switchProfile() {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Debug("starting the aws-profile-switch", zap.String("version", version))

	catalog := loadCatalog(config, logger)

	path, err := historyPath(config)
	if err != nil {
		logger.Fatal("resolving the history path", zap.Error(err))
	}
	store := history.Load(path, logger)

	recent := history.DefaultRecent
	if config != nil && config.Recent > 0 {
		recent = config.Recent
	}

	r := resolver.New(catalog, nil, prompt.New(logger), logger)

	profile, err := r.Resolve(store.Recent(recent))
	if err != nil {
		switch {
		case errors.Is(err, resolver.ErrCancelled):
			logger.Info("exiting", zap.String("reason", "selection cancelled"))
			os.Exit(1)
		case errors.Is(err, resolver.ErrNoMatch):
			logger.Fatal("no matching profile",
				zap.String("hint", "try a different query or run 'aws-profile-switch list'"),
			)
		case errors.Is(err, resolver.ErrNoProfile):
			logger.Fatal("no profile for the selection",
				zap.String("hint", "run 'aws-profile-switch list' to inspect the catalog"),
			)
		default:
			logger.Fatal("resolving a profile", zap.Error(err))
		}
	}

	store.Record(profile.Name)

	sh, err := selectedShell(config)
	if err != nil {
		logger.Fatal("selecting a shell", zap.Error(err))
	}

	command := sh.ExportCommand(profile.Name)

	if viper.GetBool("exec") {
		script, err := writeExecScript(command)
		if err != nil {
			logger.Fatal("writing the exec script", zap.Error(err))
		}
		logger.Debug("wrote exec script", zap.String("path", script))
		fmt.Println("source " + script)
		return
	}

	fmt.Println(command)
}

// loadCatalog reads the AWS shared config and builds the profile
// catalog, exiting with guidance when there is nothing to switch to.
func loadCatalog(config *Config, logger *zap.Logger) *sso.Catalog {
	path := awsconfig.ResolvePath(awsConfigPath(config))

	profiles, err := awsconfig.New(path, logger).Load()
	if err != nil {
		logger.Fatal("reading the aws config",
			zap.Error(err),
			zap.String("hint", "run 'aws configure sso' to create SSO profiles"),
		)
	}

	if len(profiles) == 0 {
		logger.Fatal("no SSO profiles found",
			zap.String("path", path),
			zap.String("hint", "run 'aws configure sso' or point --aws-config at the right file"),
		)
	}

	catalog, err := sso.NewCatalog(profiles)
	if err != nil {
		logger.Fatal("building the profile catalog", zap.Error(err))
	}

	logger.Debug("catalog ready", zap.Int("profiles", catalog.Len()), zap.String("path", path))

	return catalog
}

func awsConfigPath(config *Config) string {
	if config != nil && strings.TrimSpace(config.AWSConfigFile) != "" {
		return strings.TrimSpace(config.AWSConfigFile)
	}

	return strings.TrimSpace(viper.GetString("aws-config"))
}

func historyPath(config *Config) (string, error) {
	if config != nil && strings.TrimSpace(config.HistoryFile) != "" {
		return strings.TrimSpace(config.HistoryFile), nil
	}

	if path := strings.TrimSpace(viper.GetString("history-file")); path != "" {
		return path, nil
	}

	return history.DefaultPath()
}

func selectedShell(config *Config) (shell.Shell, error) {
	name := strings.TrimSpace(viper.GetString("shell"))
	if name == "" && config != nil {
		name = strings.TrimSpace(config.Shell)
	}

	if name != "" {
		return shell.Parse(name)
	}

	return shell.Detect(), nil
}

// writeExecScript dumps the command into a temporary file the caller
// can source, for setups where eval in an alias is not an option.
func writeExecScript(command string) (string, error) {
	f, err := os.CreateTemp("", app+"-*.sh")
	if err != nil {
		return "", fmt.Errorf("creating a temp script: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "#!/bin/sh\n%s\n", command); err != nil {
		return "", fmt.Errorf("writing a temp script: %w", err)
	}

	return f.Name(), nil
}
