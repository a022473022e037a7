package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/yed1dya/machine-learning-ex3/golang/knn"
)

func knnCmd(rootConfig *rootCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "knn",
		Short: "Estimate empirical and true k-NN errors over random half splits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, log, err := commandConfig(cmd, rootConfig)
			if err != nil {
				return err
			}
			defer log.Sync()

			pValues, err := config.Knn.PValues()
			if err != nil {
				return err
			}
			d, err := config.Data.Load(log)
			if err != nil {
				return err
			}
			result, err := knn.Sweep(knn.SweepParams{
				Points:  d.Points,
				PValues: pValues,
				KValues: config.Knn.K,
				Runs:    config.Knn.Runs,
				Seed:    config.Knn.Seed,
				Logger:  log.With("stage", "knn"),
			})
			if err != nil {
				return errors.Wrap(err, "knn sweep")
			}
			if err = result.WriteTable(cmd.OutOrStdout()); err != nil {
				return err
			}
			if config.Knn.Output != "" {
				if err = result.SaveTrueErrors(config.Knn.Output); err != nil {
					return err
				}
				log.Infof("true errors saved to %s", config.Knn.Output)
			}
			return nil
		},
	}
	cmd.Flags().Int("runs", 0, "number of random partitions per (p, k)")
	cmd.Flags().Int64("seed", 0, "random seed")
	cmd.Flags().String("npy", "", "write the grid of average true errors (one row per p, one column per k) to this .npy file")
	return cmd
}
