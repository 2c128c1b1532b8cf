package gateway

import (
	"log/slog"
	"sync"

	"github.com/pduel/puzzleduel/internal/model"
	"github.com/pduel/puzzleduel/internal/pubsub"
)

// Hub owns the set of live websocket connections and the session
// channels they are subscribed to. It is the transport-side
// implementation of the pubsub.Publisher capability the duel core
// broadcasts through.
type Hub struct {
	mu       sync.RWMutex
	clients  map[model.ConnectionID]*Client
	channels map[string]map[model.ConnectionID]struct{}
	logger   *slog.Logger
}

// NewHub creates an empty Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:  make(map[model.ConnectionID]*Client),
		channels: make(map[string]map[model.ConnectionID]struct{}),
		logger:   logger.With(slog.String("component", "gateway")),
	}
}

// Ensure Hub implements the Publisher capability
var _ pubsub.Publisher = (*Hub)(nil)

// Register adds a connected client
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client.id] = client
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("client connected",
		slog.String("connection_id", string(client.id)),
		slog.Int("total_clients", total),
	)
}

// Unregister removes a client and its channel subscriptions, and
// closes its send channel
func (h *Hub) Unregister(connID model.ConnectionID) {
	h.mu.Lock()
	client, ok := h.clients[connID]
	if ok {
		delete(h.clients, connID)
		for _, subs := range h.channels {
			delete(subs, connID)
		}
	}
	total := len(h.clients)
	h.mu.Unlock()

	if ok {
		close(client.send)
		h.logger.Info("client disconnected",
			slog.String("connection_id", string(connID)),
			slog.Int("total_clients", total),
		)
	}
}

// Subscribe adds a connection to a channel
func (h *Hub) Subscribe(connID model.ConnectionID, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.channels[channel]
	if !ok {
		subs = make(map[model.ConnectionID]struct{})
		h.channels[channel] = subs
	}
	subs[connID] = struct{}{}
}

// UnsubscribeAll removes a connection from every channel
func (h *Hub) UnsubscribeAll(connID model.ConnectionID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for channel, subs := range h.channels {
		delete(subs, connID)
		if len(subs) == 0 {
			delete(h.channels, channel)
		}
	}
}

// Publish delivers an event to every subscriber of the channel
func (h *Hub) Publish(channel, event string, payload any) {
	frame, err := encodeFrame(event, payload)
	if err != nil {
		h.logger.Error("failed to encode event",
			slog.String("event", event),
			slog.String("error", err.Error()),
		)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for connID := range h.channels[channel] {
		if client, ok := h.clients[connID]; ok {
			h.trySend(client, frame, event)
		}
	}
}

// PublishTo delivers an event to a single connection
func (h *Hub) PublishTo(connID model.ConnectionID, event string, payload any) {
	frame, err := encodeFrame(event, payload)
	if err != nil {
		h.logger.Error("failed to encode event",
			slog.String("event", event),
			slog.String("error", err.Error()),
		)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if client, ok := h.clients[connID]; ok {
		h.trySend(client, frame, event)
	}
}

// trySend queues a frame without blocking; a client with a full send
// buffer misses the message rather than stalling the broadcast
func (h *Hub) trySend(client *Client, frame []byte, event string) {
	select {
	case client.send <- frame:
	default:
		h.logger.Warn("message dropped - client buffer full",
			slog.String("connection_id", string(client.id)),
			slog.String("event", event),
		)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects all clients
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, client := range h.clients {
		close(client.send)
		delete(h.clients, id)
	}
	h.channels = make(map[string]map[model.ConnectionID]struct{})
}
