package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/cellfill/internal/config"
	"github.com/aretw0/cellfill/internal/logging"
	"github.com/aretw0/cellfill/pkg/domain"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cellfill",
	Short: "Cellfill fills a list with living and dead cells",
	Long: `Cellfill appends a random Alive or Dead cell each time you press the button.
Three Alive cells in a row spawn Life; three Dead cells in a row wipe out the
Alive cells right before them.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Path to the YAML config file")
	rootCmd.PersistentFlags().String("dir", "", "Project directory; sessions are kept in <dir>/.cellfill/sessions")
	rootCmd.PersistentFlags().String("store", "", "Session store backend: memory, file or redis")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("locale", "", "Label language: ru or en")
}

// loadConfig reads the config file and environment, then applies the
// persistent flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		dir, _ := flags.GetString("dir")
		cfg.Store.Dir = filepath.Join(dir, ".cellfill", "sessions")
	}
	if flags.Changed("store") {
		cfg.Store.Backend, _ = flags.GetString("store")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("locale") {
		cfg.Locale, _ = flags.GetString("locale")
	}
	return cfg, cfg.Validate()
}

// newLogger builds the stderr logger described by cfg and makes it the default.
func newLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger := logging.NewWithOptions(os.Stderr, level, logging.Format(cfg.Log.Format))
	slog.SetDefault(logger)
	return logger, nil
}

func locale(cfg config.Config) domain.Locale {
	return domain.ParseLocale(cfg.Locale)
}
