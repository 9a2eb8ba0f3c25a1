package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pongelo/pongelo/internal/api/handler"
	apimiddleware "github.com/pongelo/pongelo/internal/api/middleware"
	"github.com/pongelo/pongelo/internal/metrics"
	"github.com/pongelo/pongelo/internal/middleware"
	"github.com/pongelo/pongelo/internal/services/match"
	"github.com/pongelo/pongelo/internal/services/player"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	PlayerService *player.Service
	MatchWorkflow *match.Workflow
	Metrics       *metrics.Metrics

	// BotHandler, when non-nil, is mounted at /bot/command
	BotHandler http.Handler
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.PlayerService)
	matchHandler := handler.NewMatchHandler(cfg.MatchWorkflow)

	// Create middleware
	authMiddleware := apimiddleware.Auth(cfg.PlayerService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Registration does not require auth; the rest of the ladder is read-open
	api.HandleFunc("/players", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/players/{name}", playerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/players/{name}/rating", playerHandler.Rating).Methods(http.MethodGet)
	api.HandleFunc("/players/{name}/record", playerHandler.Record).Methods(http.MethodGet)
	api.HandleFunc("/rankings", playerHandler.Rankings).Methods(http.MethodGet)

	api.HandleFunc("/matches", matchHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/matches/{id}", matchHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rivalries", matchHandler.Rivalry).Methods(http.MethodGet)
	api.HandleFunc("/ratings/preview", matchHandler.Preview).Methods(http.MethodPost)

	// Mutations require the caller to prove who they are
	protected := api.NewRoute().Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/players/{name}", playerHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/matches", matchHandler.Submit).Methods(http.MethodPost)
	protected.HandleFunc("/matches/{id}/confirm", matchHandler.Confirm).Methods(http.MethodPost)
	protected.HandleFunc("/matches/{id}/deny", matchHandler.Deny).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Bot endpoint authenticates with its own shared token
	if cfg.BotHandler != nil {
		botRouter := r.PathPrefix("/bot").Subrouter()
		botRouter.Use(middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler))
		botRouter.Use(loggingMiddleware)
		botRouter.Handle("/command", cfg.BotHandler).Methods(http.MethodPost)
	}

	// Prometheus scrape endpoint
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet)
	}

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
