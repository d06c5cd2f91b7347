package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gamblecodez/drops-cli/internal/model"
	"github.com/gamblecodez/drops-cli/internal/store"
)

var (
	submitOrigin    string
	submitSubmitter string
	submitURLs      []string
	submitCodes     []string
	submitMeta      []string
	submitNow       bool
)

var submitCmd = &cobra.Command{
	Use:   "submit [text]",
	Short: "Submit a raw promo drop for classification",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		origin := model.Origin(submitOrigin)
		if !model.ValidOrigin(origin) {
			return eris.Errorf("invalid origin %q", submitOrigin)
		}

		metadata, err := parseMeta(submitMeta)
		if err != nil {
			return err
		}

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		sub, err := env.Store.CreateSubmission(ctx, store.SubmissionInput{
			Origin:      origin,
			SubmitterID: submitSubmitter,
			Text:        strings.Join(args, " "),
			URLs:        submitURLs,
			Codes:       submitCodes,
			Metadata:    metadata,
		})
		if err != nil {
			return eris.Wrap(err, "create submission")
		}

		zap.L().Info("submission accepted",
			zap.String("submission_id", sub.ID),
			zap.String("origin", string(sub.Origin)),
		)
		fmt.Println(sub.ID)

		if submitNow {
			res, err := env.Classifier.Classify(ctx, sub.ID)
			if err != nil {
				return err
			}
			printResult(res)
		}
		return nil
	},
}

func parseMeta(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	meta := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, eris.Errorf("invalid metadata pair %q, expected key=value", p)
		}
		meta[k] = v
	}
	return meta, nil
}

func init() {
	submitCmd.Flags().StringVar(&submitOrigin, "origin", string(model.OriginWebForm), "submission origin (group_chat, direct_message, telegram, web_form)")
	submitCmd.Flags().StringVar(&submitSubmitter, "submitter", "cli", "submitter identifier")
	submitCmd.Flags().StringSliceVar(&submitURLs, "url", nil, "promo URL supplied by the submitter (repeatable)")
	submitCmd.Flags().StringSliceVar(&submitCodes, "code", nil, "bonus code supplied by the submitter (repeatable)")
	submitCmd.Flags().StringSliceVar(&submitMeta, "meta", nil, "metadata key=value pair (repeatable)")
	submitCmd.Flags().BoolVar(&submitNow, "now", false, "classify immediately after submitting")
	rootCmd.AddCommand(submitCmd)
}
