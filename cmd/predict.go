package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	predictionrender "github.com/bnema/taixiu-predictor/internal/adapters/render/prediction"
	"github.com/bnema/taixiu-predictor/internal/domain"
	"github.com/spf13/cobra"
)

const recentRoundsShown = 20

func newPredictCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Fetch the latest rounds and predict the next one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPredict(cmd, app, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func runPredict(cmd *cobra.Command, app *app, asJSON bool) error {
	var prediction domain.Prediction
	predict := func(ctx context.Context) error {
		var err error
		prediction, err = app.service.Predict(ctx)
		return err
	}

	if asJSON {
		if err := predict(cmd.Context()); err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(prediction)
	}

	if err := runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), "Fetching rounds...", predict); err != nil {
		return err
	}

	rendered, err := app.renderPrediction(prediction, predictionrender.RenderOptions{
		Now:    app.now(),
		Recent: app.service.History(recentRoundsShown),
	})
	if err != nil {
		return fmt.Errorf("render prediction: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
