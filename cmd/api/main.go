package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pefman/duel-defense/internal/config"
	"github.com/pefman/duel-defense/internal/defense"
	"github.com/pefman/duel-defense/internal/game"
	"github.com/pefman/duel-defense/internal/logging"
)

// Build metadata injected via -ldflags at build time
var (
	buildVersion = "dev"
	buildTime    = ""
)

type server struct {
	log        *zap.Logger
	rules      defense.Config
	batchLimit int
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding})
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	s := &server{
		log:        logger,
		rules:      defense.Config{FullDefense: cfg.Rules.FullDefense},
		batchLimit: cfg.Rules.BatchLimit,
	}

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           withCORS(s.routes()),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("defense api listening",
		zap.String("addr", addr),
		zap.String("version", buildVersion),
		zap.String("build_time", buildTime),
		zap.Bool("full_defense", cfg.Rules.FullDefense),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func (s *server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/api/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"ok": true, "version": buildVersion})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/defense").Subrouter()
	api.HandleFunc("/active", s.handleActive).Methods(http.MethodPost)
	api.HandleFunc("/passive", s.handlePassive).Methods(http.MethodPost)
	api.HandleFunc("/prepare", s.handlePrepare).Methods(http.MethodPost)
	api.HandleFunc("/prepare/batch", s.handlePrepareBatch).Methods(http.MethodPost)
	api.HandleFunc("/resolve", s.handleResolve).Methods(http.MethodPost)

	r.HandleFunc("/api/stats/heaviest/today", GetHeaviestHitTodayHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/stats/{defender}", GetDefenderStatsHandler).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.Handler())

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "unsupported path")
	})
	return r
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":   http.StatusText(code),
		"message": msg,
		"status":  code,
	})
}

// errorStatus maps pipeline errors to HTTP codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, game.ErrUnknownDefense),
		errors.Is(err, game.ErrDefenseDisabled),
		errors.Is(err, game.ErrDefenseChosen):
		return http.StatusUnprocessableEntity
	case errors.Is(err, game.ErrAlreadyPrepared),
		errors.Is(err, game.ErrAlreadyResolved),
		errors.Is(err, game.ErrNotPrepared):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// simple CORS for GET/POST/OPTIONS
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
