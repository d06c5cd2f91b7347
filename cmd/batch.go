package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var batchLimit int

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Classify pending submissions in batch, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		limit := batchLimit
		if limit <= 0 {
			limit = cfg.Batch.Limit
		}

		results, err := env.Classifier.ProcessPending(ctx, limit)
		if err != nil {
			return err
		}

		candidates := 0
		for _, r := range results {
			if r.Candidate != nil {
				candidates++
			}
		}
		zap.L().Info("batch complete",
			zap.Int("classified", len(results)),
			zap.Int("candidates", candidates),
		)
		fmt.Printf("classified %d submissions, %d new candidates\n", len(results), candidates)
		return nil
	},
}

func init() {
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max submissions to process (default from config)")
	rootCmd.AddCommand(batchCmd)
}
