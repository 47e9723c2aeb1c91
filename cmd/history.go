package cmd

import (
	"fmt"
	"log"

	"github.com/tamagokakedon/aws-profile-switch/internal/history"
	"github.com/tamagokakedon/aws-profile-switch/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently selected profiles, most recent first",
	Run: func(_ *cobra.Command, _ []string) {
		showHistory()
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the recent-profile history",
	Run: func(_ *cobra.Command, _ []string) {
		clearHistory()
	},
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistory() (*history.Store, *zap.Logger) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	path, err := historyPath(config)
	if err != nil {
		logger.Fatal("resolving the history path", zap.Error(err))
	}

	return history.Load(path, logger), logger
}

func showHistory() {
	store, logger := openHistory()

	if store.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "history is empty"))
		return
	}

	for i, name := range store.Entries() {
		fmt.Printf("%d. %s\n", i+1, name)
	}
}

func clearHistory() {
	store, logger := openHistory()

	if err := store.Clear(); err != nil {
		logger.Fatal("clearing the history", zap.Error(err))
	}

	logger.Info("history cleared")
}
