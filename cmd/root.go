package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kilianp07/berthplan/config"
	"github.com/kilianp07/berthplan/core/monitoring"
	"github.com/kilianp07/berthplan/infra/logger"
	inframon "github.com/kilianp07/berthplan/infra/monitoring"
)

var (
	cfgPath string
	envPath string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:               "berthplan",
	Short:             "Berth assignment planner for grain terminals",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		monitoring.Flush(2 * time.Second)
		_ = logger.Close()
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
	rootCmd.PersistentFlags().StringVar(&envPath, "env-file", ".env", "dotenv file loaded before the configuration")
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		monitoring.CaptureComponentError("cli", err)
		monitoring.Flush(2 * time.Second)
	}
	return err
}

// setup loads .env, the configuration, logging and error monitoring.
func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envPath, err)
	}
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = c
	logger.Configure(logger.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	mon, err := inframon.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return fmt.Errorf("sentry: %w", err)
	}
	monitoring.Init(mon)
	return nil
}
