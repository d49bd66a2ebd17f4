package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "taixiu",
		Short:         "Tài/Xỉu ensemble predictor",
		Long:          "taixiu fetches recent Tài/Xỉu rounds, folds them into a rolling history and predicts the next round with a performance-weighted ensemble of heuristics and an n-gram pattern memory.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newPredictCmd(app),
		newInspectCmd(app),
		newSnapshotCmd(app),
		newServeCmd(app),
	)

	return rootCmd
}
