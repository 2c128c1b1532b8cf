package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pduel/puzzleduel/internal/api/handler"
	"github.com/pduel/puzzleduel/internal/gateway"
	"github.com/pduel/puzzleduel/internal/middleware"
	"github.com/pduel/puzzleduel/internal/services/duel"
	"github.com/pduel/puzzleduel/internal/services/stats"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	DuelController *duel.Controller
	StatsTracker   *stats.Tracker
	Gateway        *gateway.Handler
}

// NewRouter creates the HTTP router: read-only query endpoints plus
// the websocket upgrade path
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	healthHandler := handler.NewHealthHandler(cfg.DuelController)
	statsHandler := handler.NewStatsHandler(cfg.StatsTracker)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)
	api.HandleFunc("/health", healthHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/stats/{playerId}", statsHandler.Get).Methods(http.MethodGet)

	// Websocket endpoint skips the logging middleware: the connection
	// is long-lived and would log as a single never-ending request
	r.Handle("/ws", cfg.Gateway)

	return r
}
