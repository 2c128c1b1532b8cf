package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pduel/puzzleduel/internal/api/apierr"
	"github.com/pduel/puzzleduel/internal/api/response"
	"github.com/pduel/puzzleduel/internal/model"
	"github.com/pduel/puzzleduel/internal/services/stats"
)

// StatsHandler serves per-player win/loss records
type StatsHandler struct {
	tracker *stats.Tracker
}

// NewStatsHandler creates a StatsHandler
func NewStatsHandler(tracker *stats.Tracker) *StatsHandler {
	return &StatsHandler{tracker: tracker}
}

// Get handles GET /api/stats/{playerId}. Unknown players get the zero
// record rather than an error.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	playerID := mux.Vars(r)["playerId"]
	if playerID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("playerId is required"))
		return
	}

	rec, err := h.tracker.Get(r.Context(), model.PlayerID(playerID))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerStatsFromModel(rec))
}
