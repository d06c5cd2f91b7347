package main

import (
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var reprocessNow bool

var reprocessCmd = &cobra.Command{
	Use:   "reprocess <submission-id>",
	Short: "Re-enqueue an errored submission for classification",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		id := args[0]
		if err := env.Store.ResetSubmission(ctx, id); err != nil {
			return eris.Wrap(err, "reset submission")
		}
		zap.L().Info("submission re-enqueued", zap.String("submission_id", id))

		if reprocessNow {
			res, err := env.Classifier.Classify(ctx, id)
			if err != nil {
				return err
			}
			printResult(res)
		}
		return nil
	},
}

func init() {
	reprocessCmd.Flags().BoolVar(&reprocessNow, "now", false, "classify immediately after resetting")
	rootCmd.AddCommand(reprocessCmd)
}
