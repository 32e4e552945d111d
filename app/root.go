// Package app implements the main application commands.
package app

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/fleamarket/fleamarket/internal/config"
	"github.com/fleamarket/fleamarket/internal/logger"
)

// envFiles are loaded in order; variables already set are never overridden.
var envFiles = []string{".env.local", ".env"}

var (
	configPath string // directory holding main.toml
	cfg        config.Config

	rootCmd = &cobra.Command{
		Use:   "fleamarket",
		Short: "fleamarket is a small flea market item catalog",
		Long: `fleamarket lists second-hand items with a name, a category and an
optional image, and serves them through a JSON API and a web page.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := loadEnvFiles(); err != nil {
				return err
			}

			var err error
			if cfg, err = config.ReadConfig(configPath); err != nil {
				return err
			}

			return nil
		},
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "directory containing main.toml")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadEnvFiles() error {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			if os.IsNotExist(err) {
				continue
			}

			return errors.Wrapf(err, "failed to load %s", f)
		}
	}

	return nil
}

// initLogger sets up the global logger from the loaded configuration.
func initLogger() error {
	if err := logger.Init(cfg.Log); err != nil {
		return errors.Wrap(err, "failed to init logger")
	}

	return nil
}
