package cmd

import (
	"fmt"
	"os"

	"restaurant-cms/config"
	"restaurant-cms/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	appConfig *config.Config
	appLogger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "restaurant-cms",
	Short: "Content manager for the Milford India Spice website",
	Long: `restaurant-cms serves the admin API that edits the restaurant document
(info, menu, announcements and ordering links) and keeps static site pages
rendered from it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initialize()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if appLogger != nil {
			_ = appLogger.Sync()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initialize() error {
	if err := config.LoadEnv(); err != nil {
		return fmt.Errorf("error loading .env file: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{Development: cfg.IsDevelopment(), Level: cfg.LogLevel})
	if err != nil {
		return err
	}

	appConfig, appLogger = cfg, log
	return nil
}
