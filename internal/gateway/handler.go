package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/pduel/puzzleduel/internal/model"
	"github.com/pduel/puzzleduel/internal/services/duel"
)

// Handler upgrades HTTP requests to websocket connections and routes
// inbound events into the duel controller. Every failure is handled
// locally: logged, event dropped, connection kept alive.
type Handler struct {
	controller *duel.Controller
	hub        *Hub
	upgrader   websocket.Upgrader
	logger     *slog.Logger
}

// NewHandler creates a websocket gateway handler
func NewHandler(controller *duel.Controller, hub *Hub, logger *slog.Logger) *Handler {
	return &Handler{
		controller: controller,
		hub:        hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect from any origin, same as the
			// permissive CORS policy on the HTTP endpoints
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger.With(slog.String("component", "gateway")),
	}
}

// ServeHTTP handles the websocket upgrade and runs the connection's
// read loop until the peer goes away
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	connID := model.ConnectionID(uuid.NewString())
	client := NewClient(connID, conn, h.logger)

	h.hub.Register(client)
	go client.writePump()

	client.readPump(h.dispatch)

	// Connection is gone: implicit disconnect cleanup
	h.controller.Disconnect(connID)
	h.hub.Unregister(connID)
}

// dispatch validates one inbound event and applies it to the core
func (h *Handler) dispatch(connID model.ConnectionID, env Envelope) {
	ctx := context.Background()

	switch env.Event {
	case MsgJoinGame:
		var payload JoinGamePayload
		if !h.decode(connID, env, &payload) {
			return
		}
		player := model.Player{
			ID:           model.PlayerID(payload.Player.ID),
			Name:         payload.Player.Name,
			ConnectionID: connID,
		}
		if _, err := h.controller.Join(ctx, player); err != nil {
			h.logger.Error("join failed",
				slog.String("player_id", payload.Player.ID),
				slog.String("error", err.Error()),
			)
		}

	case MsgSubmitAnswer:
		var payload SubmitAnswerPayload
		if !h.decode(connID, env, &payload) {
			return
		}
		err := h.controller.SubmitAnswer(ctx,
			model.GameID(payload.GameID),
			model.PlayerID(payload.PlayerID),
			payload.Answer,
		)
		switch {
		case err == nil:
		case errors.Is(err, model.ErrGameNotFound):
			// Unknown or already-reaped session: silently ignored
			h.logger.Debug("answer for unknown game dropped",
				slog.String("game_id", payload.GameID))
		case errors.Is(err, model.ErrGameFinished):
			h.logger.Debug("redundant answer dropped",
				slog.String("game_id", payload.GameID))
		default:
			h.logger.Warn("answer rejected",
				slog.String("game_id", payload.GameID),
				slog.String("player_id", payload.PlayerID),
				slog.String("error", err.Error()),
			)
		}

	case MsgLeaveGame:
		var payload LeaveGamePayload
		if !h.decode(connID, env, &payload) {
			return
		}
		h.controller.Leave(model.PlayerID(payload.PlayerID), connID)

	default:
		h.logger.Warn("unknown event dropped",
			slog.String("event", env.Event),
			slog.String("connection_id", string(connID)),
		)
	}
}

// decode unmarshals and validates an inbound payload, logging and
// dropping the event on failure
func (h *Handler) decode(connID model.ConnectionID, env Envelope, payload interface {
	Validate() error
}) bool {
	if err := json.Unmarshal(env.Data, payload); err != nil {
		h.logger.Warn("malformed payload dropped",
			slog.String("event", env.Event),
			slog.String("connection_id", string(connID)),
			slog.String("error", err.Error()),
		)
		return false
	}
	if err := payload.Validate(); err != nil {
		h.logger.Warn("invalid payload dropped",
			slog.String("event", env.Event),
			slog.String("connection_id", string(connID)),
			slog.String("error", err.Error()),
		)
		return false
	}
	return true
}
