package model

import "errors"

// Common errors used across the application
var (
	// Game errors
	ErrGameNotFound   = errors.New("game not found")
	ErrNotParticipant = errors.New("player is not a participant in this game")
	ErrGameFinished   = errors.New("game is already finished")

	// Catalog errors
	ErrEmptyCatalog = errors.New("puzzle catalog is empty")

	// Stats errors
	ErrStatsNotFound = errors.New("no stats recorded for player")
)
