package cmd

import (
	"encoding/json"

	"github.com/bnema/taixiu-predictor/internal/application"
	"github.com/spf13/cobra"
)

func newInspectCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Sync history and print engine state as JSON",
	}

	cmd.AddCommand(
		newInspectHistoryCmd(app),
		newInspectPatternsCmd(app),
		newInspectWeightsCmd(app),
	)

	return cmd
}

func newInspectHistoryCmd(app *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the most recent rounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := app.service.Sync(cmd.Context()); err != nil {
				return err
			}
			return writeJSON(cmd, app.service.History(limit))
		},
	}

	cmd.Flags().IntVar(&limit, "limit", application.DefaultHistoryLimit, "Number of rounds to print")

	return cmd
}

func newInspectPatternsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "Print the n-gram pattern table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := app.service.Sync(cmd.Context()); err != nil {
				return err
			}
			return writeJSON(cmd, app.service.Patterns())
		},
	}
}

func newInspectWeightsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "weights",
		Short: "Print each module's performance multiplier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := app.service.Predict(cmd.Context()); err != nil {
				return err
			}
			return writeJSON(cmd, app.service.Multipliers())
		},
	}
}

func writeJSON(cmd *cobra.Command, payload any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
