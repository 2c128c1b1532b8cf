package pubsub

import "github.com/pduel/puzzleduel/internal/model"

// Publisher is the channel-publish capability the duel core broadcasts
// through. The websocket gateway provides the real implementation; an
// in-memory fake stands in for it in tests, so the core never touches a
// live transport.
type Publisher interface {
	// Publish delivers a named event to every connection subscribed
	// to the channel
	Publish(channel string, event string, payload any)

	// PublishTo delivers a named event to a single connection
	PublishTo(connID model.ConnectionID, event string, payload any)

	// Subscribe adds a connection to a channel
	Subscribe(connID model.ConnectionID, channel string)

	// UnsubscribeAll removes a connection from every channel
	UnsubscribeAll(connID model.ConnectionID)
}
