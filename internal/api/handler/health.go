package handler

import (
	"net/http"

	"github.com/pduel/puzzleduel/internal/api/response"
	"github.com/pduel/puzzleduel/internal/services/duel"
)

// HealthHandler reports liveness plus the live session and queue counters
type HealthHandler struct {
	controller *duel.Controller
}

// NewHealthHandler creates a HealthHandler
func NewHealthHandler(controller *duel.Controller) *HealthHandler {
	return &HealthHandler{controller: controller}
}

// Get handles GET /api/health
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{
		Status:         "OK",
		ActiveGames:    h.controller.ActiveGames(),
		WaitingPlayers: h.controller.WaitingPlayers(),
	})
}
