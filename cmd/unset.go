package cmd

import (
	"fmt"
	"log"

	"github.com/tamagokakedon/aws-profile-switch/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var unsetCmd = &cobra.Command{
	Use:   "unset",
	Short: "Print the command that clears AWS_PROFILE",
	Run: func(_ *cobra.Command, _ []string) {
		unsetProfile()
	},
}

func init() {
	rootCmd.AddCommand(unsetCmd)
}

func unsetProfile() {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	sh, err := selectedShell(config)
	if err != nil {
		logger.Fatal("selecting a shell", zap.Error(err))
	}

	fmt.Println(sh.UnsetCommand())
}
