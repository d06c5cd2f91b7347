package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gamblecodez/drops-cli/internal/model"
	"github.com/gamblecodez/drops-cli/internal/store"
)

var (
	submissionsStatus string
	submissionsLimit  int

	candidatesStatus       string
	candidatesCasino       string
	candidatesJurisdiction string
	candidatesLimit        int
)

var submissionsCmd = &cobra.Command{
	Use:   "submissions",
	Short: "List submissions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		subs, err := env.Store.ListSubmissions(ctx, store.SubmissionFilter{
			Status: model.SubmissionStatus(submissionsStatus),
			Limit:  submissionsLimit,
		})
		if err != nil {
			return err
		}

		for _, s := range subs {
			fmt.Printf("%s  %-10s  %-14s  %s\n", s.ID, s.Status, s.Origin, truncateText(s.Text, 60))
		}
		fmt.Printf("%d submissions\n", len(subs))
		return nil
	},
}

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "List promo candidates, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		cands, err := env.Store.ListCandidates(ctx, store.CandidateFilter{
			ReviewStatus: model.ReviewStatus(candidatesStatus),
			CasinoID:     candidatesCasino,
			Jurisdiction: candidatesJurisdiction,
			Limit:        candidatesLimit,
		})
		if err != nil {
			return err
		}

		for _, c := range cands {
			fmt.Printf("%s  %-9s  %-10s  %.2f  %s\n", c.ID, c.PromoType, c.ReviewStatus, c.Validity, c.Headline)
		}
		fmt.Printf("%d candidates\n", len(cands))
		return nil
	},
}

// truncateText shortens s to at most n runes for single-line display.
func truncateText(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

func init() {
	submissionsCmd.Flags().StringVar(&submissionsStatus, "status", "", "filter by status (pending, processing, classified, error)")
	submissionsCmd.Flags().IntVar(&submissionsLimit, "limit", 50, "max submissions to list")
	rootCmd.AddCommand(submissionsCmd)

	candidatesCmd.Flags().StringVar(&candidatesStatus, "status", "", "filter by review status (pending, approved, denied, marked_non_promo)")
	candidatesCmd.Flags().StringVar(&candidatesCasino, "casino", "", "filter by matched casino id")
	candidatesCmd.Flags().StringVar(&candidatesJurisdiction, "jurisdiction", "", "filter by jurisdiction tag")
	candidatesCmd.Flags().IntVar(&candidatesLimit, "limit", 50, "max candidates to list")
	rootCmd.AddCommand(candidatesCmd)
}
