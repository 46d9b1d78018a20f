package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ybnd/monizze-csv/internal/infrastructure/config"
	"github.com/ybnd/monizze-csv/internal/infrastructure/logger"
)

var (
	configPath string
	recordPath string
	logLevel   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "monizze-csv",
		Short: "Maintain a local CSV record of Monizze voucher history",
		Long: `Merges captured Monizze voucher history responses into a durable local
CSV record. The portal only reports a bounded window of history, so each
sync stitches the fresh window onto the older rows captured by earlier
runs; history outside the portal's retention window is never lost.`,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&recordPath, "record", "", "Path to the CSV record (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides MONIZZE_LOG_LEVEL)")

	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newShowCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and builds the process logger,
// applying flag overrides on top of env and file values.
func bootstrap() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("loading configuration: %w", err)
	}

	if recordPath != "" {
		cfg.RecordPath = recordPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	return cfg, log, nil
}
