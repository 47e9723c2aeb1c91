package cmd

import (
	"errors"
	"log"

	"github.com/tamagokakedon/aws-profile-switch/internal/history"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "aws-profile-switch"
)

type Config struct {
	AWSConfigFile string `mapstructure:"aws-config"`
	HistoryFile   string `mapstructure:"history-file"`
	Shell         string `mapstructure:"shell"`
	Recent        int    `mapstructure:"recent"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "aws-profile-switch picks an AWS SSO profile by fuzzy search and prints the command that activates it",
		Long: `aws-profile-switch finds an AWS SSO profile by fuzzy account and role
search and prints the shell command that sets AWS_PROFILE.

A process cannot change its parent shell's environment, so evaluate the
output instead of running the binary directly:

  eval "$(aws-profile-switch)"

or keep an alias around:

  alias aps='eval "$(aws-profile-switch)"'

Prompts render on stderr; stdout carries nothing but the final command.`,
		Args: cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			switchProfile()
		},
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("aws-config", "AWS_CONFIG_FILE"); err != nil {
		log.Fatalf("binding AWS_CONFIG_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is aws-profile-switch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("aws-config", "", "AWS shared config file (default is the SDK location)")
	rootCmd.PersistentFlags().String("history-file", "", "recent-profile history file (default is ~/.aws/profile_switch_history.json)")
	rootCmd.PersistentFlags().String("shell", "", "shell dialect for the emitted command: bash, zsh, fish, csh, tcsh, powershell or cmd (default is detected)")

	rootCmd.Flags().Bool("exec", false, "write the command to a temporary script and print a source statement for it")
	rootCmd.Flags().Int("recent", history.DefaultRecent, "how many recent profiles to offer before the account search")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("aws-config", rootCmd.PersistentFlags().Lookup("aws-config"))
	viper.BindPFlag("history-file", rootCmd.PersistentFlags().Lookup("history-file"))
	viper.BindPFlag("shell", rootCmd.PersistentFlags().Lookup("shell"))
	viper.BindPFlag("exec", rootCmd.Flags().Lookup("exec"))
	viper.BindPFlag("recent", rootCmd.Flags().Lookup("recent"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Running without a config file is the normal case; only a file the
	// user named explicitly has to exist.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
