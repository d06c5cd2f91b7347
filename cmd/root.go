package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gamblecodez/drops-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "drops",
	Short: "Casino promo drop classification pipeline",
	Long:  "Ingests community-submitted promo drops, extracts bonus codes and URLs, matches casinos, scores confidence and validity, and queues candidates for review.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
