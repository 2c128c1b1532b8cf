package storage

import (
	"context"

	"github.com/pduel/puzzleduel/internal/model"
)

// Storage defines the interface for stats persistence. Live game state
// never touches storage; only decisive duel outcomes are recorded.
//
// Increments are separate operations rather than a read-modify-write of
// the whole record so the redis backend can stay atomic under
// concurrent resolutions.
type Storage interface {
	// AddWin increments wins and total games for a player,
	// creating the record if absent
	AddWin(ctx context.Context, id model.PlayerID) error

	// AddLoss increments losses and total games for a player,
	// creating the record if absent
	AddLoss(ctx context.Context, id model.PlayerID) error

	// GetStats returns a player's stats, or ErrStatsNotFound if the
	// player has never finished a decisive game
	GetStats(ctx context.Context, id model.PlayerID) (model.PlayerStats, error)
}
