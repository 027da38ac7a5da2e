package main

import (
	"fmt"
	"os"

	"mini_crm/internal/config"
	"mini_crm/internal/logger"

	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string

	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mini_crm",
	Short: "mini_crm - CRM backend for freelancers",
	Long: `mini_crm serves a JSON API for managing clients, projects,
interactions and reminders. Every record belongs to the account that created it.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	log = logger.Get(cfg.LogLevel)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default configs/config.yml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logger.InfoLevel, "debug, info, warn or error")

	rootCmd.AddCommand(serveCmd, migrateCmd, versionCmd)
}
