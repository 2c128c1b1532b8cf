package pubsub

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/pduel/puzzleduel/internal/model"
)

// natsSubjectPrefix namespaces the mirrored event stream
const natsSubjectPrefix = "duel.events"

// NATSRelay wraps an inner Publisher and mirrors every channel
// broadcast onto NATS subjects, so external consumers (dashboards,
// other gateway instances) can observe session events without holding
// a websocket. Subscription management stays with the inner publisher;
// the relay only fans out.
type NATSRelay struct {
	inner  Publisher
	conn   *nats.Conn
	logger *slog.Logger
}

// NewNATSRelay connects to NATS and wraps the given publisher
func NewNATSRelay(url string, inner Publisher, logger *slog.Logger) (*NATSRelay, error) {
	conn, err := nats.Connect(url,
		nats.Name("puzzleduel-server"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats: %w", err)
	}

	return &NATSRelay{
		inner:  inner,
		conn:   conn,
		logger: logger.With(slog.String("component", "nats-relay")),
	}, nil
}

// Ensure NATSRelay implements the Publisher capability
var _ Publisher = (*NATSRelay)(nil)

// relayedEvent is the frame published onto NATS subjects
type relayedEvent struct {
	Channel string          `json:"channel"`
	Event   string          `json:"event"`
	Data    json.RawMessage `json:"data"`
}

// Publish broadcasts through the inner publisher and mirrors the event
// to NATS. Mirror failures are logged, never surfaced; the websocket
// broadcast is the delivery that matters.
func (r *NATSRelay) Publish(channel, event string, payload any) {
	r.inner.Publish(channel, event, payload)

	data, err := json.Marshal(payload)
	if err != nil {
		r.logger.Error("failed to encode relayed event",
			slog.String("event", event),
			slog.String("error", err.Error()),
		)
		return
	}

	frame, err := json.Marshal(relayedEvent{Channel: channel, Event: event, Data: data})
	if err != nil {
		return
	}

	subject := fmt.Sprintf("%s.%s", natsSubjectPrefix, channel)
	if err := r.conn.Publish(subject, frame); err != nil {
		r.logger.Warn("nats mirror failed",
			slog.String("subject", subject),
			slog.String("error", err.Error()),
		)
	}
}

// PublishTo delivers to a single connection via the inner publisher.
// Direct messages are not mirrored; they carry no session state.
func (r *NATSRelay) PublishTo(connID model.ConnectionID, event string, payload any) {
	r.inner.PublishTo(connID, event, payload)
}

// Subscribe delegates to the inner publisher
func (r *NATSRelay) Subscribe(connID model.ConnectionID, channel string) {
	r.inner.Subscribe(connID, channel)
}

// UnsubscribeAll delegates to the inner publisher
func (r *NATSRelay) UnsubscribeAll(connID model.ConnectionID) {
	r.inner.UnsubscribeAll(connID)
}

// Close drains the NATS connection
func (r *NATSRelay) Close() {
	if err := r.conn.Drain(); err != nil {
		r.logger.Warn("nats drain failed", slog.String("error", err.Error()))
	}
}
