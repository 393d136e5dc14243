package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	corecfg "github.com/aevon-lab/bestsellers/internal/core/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	cfg        *corecfg.Config

	rootCmd = &cobra.Command{
		Use:           "bestsellers",
		Short:         "Best-seller ranking and query service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to load .env: %w", err)
			}

			path := configPath
			if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !cmd.Flags().Changed("config") {
				// The default config file is optional; defaults and env still apply.
				path = ""
			}

			loaded, err := corecfg.Load(path)
			if err != nil {
				return err
			}
			cfg = loaded

			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: cfg.Log.SlogLevel(),
			})))
			slog.Info("Loaded config",
				"config_file", path,
				"database", cfg.Database.Type,
				"policy_fingerprint", cfg.Policy.Fingerprint,
			)
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "bestsellers.yaml", "Path to configuration file")
	rootCmd.AddCommand(serveCmd, recomputeCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
