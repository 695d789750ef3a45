package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/daeil-group/tender-cli/internal/consortium"
	"github.com/daeil-group/tender-cli/internal/model"
	"github.com/daeil-group/tender-cli/internal/store"
	"github.com/daeil-group/tender-cli/internal/tender"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		api := &apiServer{
			store:       st,
			maxTeamSize: cfg.Engine.MaxTeamSize,
			dutyRate:    cfg.Engine.DutyShareRate,
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: api.router(),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}
		return nil
	},
}

// apiServer exposes evaluation and consortium formation over HTTP.
type apiServer struct {
	store       store.Store
	maxTeamSize int
	dutyRate    float64
}

func (a *apiServer) router() http.Handler {
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
	r.Post("/api/evaluate", a.handleEvaluate)
	r.Post("/api/form", a.handleForm)
	r.Get("/api/runs", a.handleListRuns)
	r.Get("/api/runs/{id}", a.handleGetRun)

	return r
}

func (a *apiServer) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var bc model.BidContext
	if err := json.NewDecoder(r.Body).Decode(&bc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if bc.Owner == "" {
		writeError(w, http.StatusBadRequest, "owner is required")
		return
	}

	doc, err := loadRules(r.Context(), a.store, "")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resolver := tender.NewResolver(doc, tender.DefaultOverrides())
	result := resolver.EvaluateSingleBid(bc)

	if err := recordRun(r.Context(), a.store, model.RunKindEvaluate, bc.Owner, bc, result); err != nil {
		zap.L().Warn("failed to record run", zap.Error(err))
	}

	writeJSON(w, http.StatusOK, result)
}

// formRequest is the POST /api/form body.
type formRequest struct {
	Owner             string  `json:"owner"`
	Region            string  `json:"region"`
	Trade             string  `json:"trade"`
	EstimatedAmount   int64   `json:"estimatedAmount"`
	MaxTeamSize       int     `json:"maxTeamSize"`
	DutyShareRate     float64 `json:"dutyShareRate"`
	SingleBidEligible bool    `json:"singleBidEligible"`
}

func (a *apiServer) handleForm(w http.ResponseWriter, r *http.Request) {
	var req formRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Region == "" || req.Trade == "" {
		writeError(w, http.StatusBadRequest, "region and trade are required")
		return
	}

	roster, err := a.store.GetRoster(r.Context(), "default")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if roster == nil {
		writeError(w, http.StatusNotFound, "no roster imported")
		return
	}

	presets := roster.Entries(req.Region, req.Trade)
	entries := make([]consortium.Entry, len(presets))
	for i, p := range presets {
		entries[i] = consortium.Entry{Preset: p}
	}

	dutyRate := req.DutyShareRate
	if dutyRate <= 0 {
		dutyRate = a.dutyRate
	}
	allowed := consortium.Filter(entries, consortium.Context{
		Owner:             req.Owner,
		EstimatedAmount:   req.EstimatedAmount,
		DutyShareRate:     dutyRate,
		SingleBidEligible: req.SingleBidEligible,
	})

	allowedPresets := make([]model.CompanyPreset, len(allowed))
	for i, e := range allowed {
		allowedPresets[i] = e.Preset
	}

	teamSize := req.MaxTeamSize
	if teamSize <= 0 {
		teamSize = a.maxTeamSize
	}
	teams := consortium.BuildGroups(allowedPresets, teamSize, nil)

	if err := recordRun(r.Context(), a.store, model.RunKindForm, req.Owner, req, teams); err != nil {
		zap.L().Warn("failed to record run", zap.Error(err))
	}

	writeJSON(w, http.StatusOK, teams)
}

func (a *apiServer) handleListRuns(w http.ResponseWriter, r *http.Request) {
	filter := store.RunFilter{
		Kind:  model.RunKind(r.URL.Query().Get("kind")),
		Owner: r.URL.Query().Get("owner"),
	}
	runs, err := a.store.ListRuns(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if runs == nil {
		runs = []model.EvaluationRun{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (a *apiServer) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := a.store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, run)
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
