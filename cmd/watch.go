package main

import (
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchSchedule string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Periodically classify pending submissions on a cron schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		schedule := watchSchedule
		if schedule == "" {
			schedule = cfg.Watch.Schedule
		}

		// Skip a tick if the previous batch is still running.
		var running atomic.Bool

		c := cron.New()
		_, err = c.AddFunc(schedule, func() {
			if !running.CompareAndSwap(false, true) {
				zap.L().Warn("previous batch still running, skipping tick")
				return
			}
			defer running.Store(false)

			results, err := env.Classifier.ProcessPending(ctx, cfg.Batch.Limit)
			if err != nil {
				zap.L().Error("scheduled batch failed", zap.Error(err))
				return
			}
			if len(results) > 0 {
				zap.L().Info("scheduled batch complete", zap.Int("classified", len(results)))
			}
		})
		if err != nil {
			return eris.Wrapf(err, "invalid watch schedule %q", schedule)
		}

		zap.L().Info("watching for pending submissions", zap.String("schedule", schedule))
		c.Start()

		<-ctx.Done()
		<-c.Stop().Done()
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchSchedule, "schedule", "", "cron schedule (default from config)")
	rootCmd.AddCommand(watchCmd)
}
