package model

// PlayerID uniquely identifies a player across the system.
// It is supplied by the client and is the only identity we track.
type PlayerID string

// ConnectionID identifies a live transport connection. It is a weak
// reference: a reconnecting player gets a new one, and it is never
// used as player identity.
type ConnectionID string

// Player represents a duel participant
type Player struct {
	ID           PlayerID
	Name         string
	ConnectionID ConnectionID
}
