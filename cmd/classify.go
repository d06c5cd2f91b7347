package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gamblecodez/drops-cli/internal/model"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <submission-id>",
	Short: "Classify a single pending submission",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		res, err := env.Classifier.Classify(ctx, args[0])
		if err != nil {
			return err
		}
		printResult(res)
		return nil
	},
}

func printResult(res *model.ClassifyResult) {
	snap := res.Snapshot
	fmt.Printf("submission:   %s\n", res.Submission.ID)
	fmt.Printf("is_promo:     %t\n", snap.IsPromo)
	fmt.Printf("confidence:   %.2f\n", snap.Confidence)
	fmt.Printf("validity:     %.2f\n", snap.Validity)
	fmt.Printf("is_spam:      %t\n", snap.IsSpam)
	if snap.IsDuplicate {
		fmt.Printf("duplicate_of: %s\n", snap.DuplicateOf)
	}
	if snap.GuessedCasino != "" {
		fmt.Printf("casino:       %s\n", snap.GuessedCasino)
	}
	if snap.GuessedJurisdiction != "" {
		fmt.Printf("jurisdiction: %s\n", snap.GuessedJurisdiction)
	}
	if len(snap.ExtractedCodes) > 0 {
		fmt.Printf("codes:        %v\n", snap.ExtractedCodes)
	}
	if len(snap.ExtractedURLs) > 0 {
		fmt.Printf("urls:         %v\n", snap.ExtractedURLs)
	}
	if res.Candidate != nil {
		fmt.Printf("candidate:    %s (%s)\n", res.Candidate.ID, res.Candidate.PromoType)
		fmt.Printf("headline:     %s\n", res.Candidate.Headline)
	} else {
		fmt.Println("candidate:    none")
	}
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
