package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gamblecodez/drops-cli/internal/model"
	"github.com/gamblecodez/drops-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the drops intake and review API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(env),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}
		return nil
	},
}

func newRouter(env *pipelineEnv) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/drops", handleIntake(env))
	r.Get("/api/review/queue", handleReviewQueue(env))
	r.Post("/api/candidates/{id}/review", handleReview(env))
	r.Get("/api/submissions/{id}", handleGetSubmission(env))
	r.Post("/api/submissions/{id}/reprocess", handleReprocess(env))

	return r
}

func handleIntake(env *pipelineEnv) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Origin      string         `json:"origin"`
			SubmitterID string         `json:"submitter_id"`
			Text        string         `json:"text"`
			URLs        []string       `json:"urls"`
			Codes       []string       `json:"codes"`
			Metadata    map[string]any `json:"metadata"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Text == "" {
			writeError(w, http.StatusBadRequest, "text is required")
			return
		}
		origin := model.Origin(req.Origin)
		if !model.ValidOrigin(origin) {
			writeError(w, http.StatusBadRequest, "invalid origin")
			return
		}

		sub, err := env.Store.CreateSubmission(r.Context(), store.SubmissionInput{
			Origin:      origin,
			SubmitterID: req.SubmitterID,
			Text:        req.Text,
			URLs:        req.URLs,
			Codes:       req.Codes,
			Metadata:    req.Metadata,
		})
		if err != nil {
			zap.L().Error("intake failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to store submission")
			return
		}

		// Classification runs in the background; intake never blocks on
		// the resolver. The context outlives the request and Close waits
		// for the goroutine.
		bg := context.WithoutCancel(r.Context())
		env.Go(func() {
			if _, err := env.Classifier.Classify(bg, sub.ID); err != nil {
				zap.L().Error("background classification failed",
					zap.String("submission_id", sub.ID), zap.Error(err))
			}
		})

		writeJSON(w, http.StatusAccepted, map[string]string{
			"submission_id": sub.ID,
			"status":        string(sub.Status),
		})
	}
}

func handleReviewQueue(env *pipelineEnv) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := store.CandidateFilter{
			ReviewStatus: model.ReviewPending,
			CasinoID:     r.URL.Query().Get("casino_id"),
			Jurisdiction: r.URL.Query().Get("jurisdiction"),
		}
		if s := r.URL.Query().Get("status"); s != "" {
			status := model.ReviewStatus(s)
			if status != model.ReviewPending && !model.ValidReviewStatus(status) {
				writeError(w, http.StatusBadRequest, "invalid status")
				return
			}
			filter.ReviewStatus = status
		}
		if s := r.URL.Query().Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				writeError(w, http.StatusBadRequest, "invalid limit")
				return
			}
			filter.Limit = n
		}
		if s := r.URL.Query().Get("offset"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				writeError(w, http.StatusBadRequest, "invalid offset")
				return
			}
			filter.Offset = n
		}

		cands, err := env.Store.ListCandidates(r.Context(), filter)
		if err != nil {
			zap.L().Error("review queue query failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to list candidates")
			return
		}
		if cands == nil {
			cands = []model.PromoCandidate{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"candidates": cands})
	}
}

func handleReview(env *pipelineEnv) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		status := model.ReviewStatus(req.Status)
		if !model.ValidReviewStatus(status) || status == model.ReviewPending {
			writeError(w, http.StatusBadRequest, "invalid review status")
			return
		}

		id := chi.URLParam(r, "id")
		if err := env.Store.UpdateCandidateReview(r.Context(), id, status); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, "candidate not found")
				return
			}
			zap.L().Error("review update failed", zap.String("candidate_id", id), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to update candidate")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"candidate_id": id, "status": string(status)})
	}
}

func handleGetSubmission(env *pipelineEnv) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		sub, err := env.Store.GetSubmission(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, "submission not found")
				return
			}
			zap.L().Error("submission lookup failed", zap.String("submission_id", id), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to load submission")
			return
		}
		writeJSON(w, http.StatusOK, sub)
	}
}

func handleReprocess(env *pipelineEnv) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := env.Store.ResetSubmission(r.Context(), id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusConflict, "submission not found or not in error status")
				return
			}
			zap.L().Error("reprocess failed", zap.String("submission_id", id), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to reset submission")
			return
		}

		bg := context.WithoutCancel(r.Context())
		env.Go(func() {
			if _, err := env.Classifier.Classify(bg, id); err != nil {
				zap.L().Error("background reclassification failed",
					zap.String("submission_id", id), zap.Error(err))
			}
		})

		writeJSON(w, http.StatusAccepted, map[string]string{"submission_id": id, "status": "pending"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
