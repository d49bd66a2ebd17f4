package cmd

import (
	"fmt"

	tomlsource "github.com/bnema/taixiu-predictor/internal/adapters/source/toml"
	"github.com/spf13/cobra"
)

func newSnapshotCmd(app *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save the synced history as a TOML rounds fixture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if out == "" {
				out = app.cfg.SourcePath
			}
			if _, err := app.service.Sync(cmd.Context()); err != nil {
				return err
			}

			rounds := app.service.History(app.cfg.Capacity)
			if err := tomlsource.WriteRounds(out, rounds); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rounds to %s\n", len(rounds), out)
			return err
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Fixture path (default: source.path)")

	return cmd
}
