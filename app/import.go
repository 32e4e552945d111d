package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fleamarket/fleamarket/internal/daemon"
	"github.com/fleamarket/fleamarket/internal/seed"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <items file>",
	Short: "Import items from a JSON or YAML items file",
	Args:  cobra.ExactArgs(1),
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return initLogger()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := daemon.OpenBackend(&cfg)
		if err != nil {
			return err
		}

		defer func() { _ = backend.Close() }()

		n, err := seed.NewImporter(backend.Catalog, backend.Images).ImportFile(cmd.Context(), args[0])
		if err != nil {
			log.Error().Err(err).Int("imported", n).Msg("import stopped")
			return err
		}

		cmd.Printf("imported %d items\n", n)

		return nil
	},
}
