package stats

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pduel/puzzleduel/internal/model"
	"github.com/pduel/puzzleduel/internal/storage"
)

// Tracker accumulates per-player win/loss/game counters from resolved
// duels. Only decisive outcomes reach it; draws are never recorded.
type Tracker struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new Tracker
func New(store storage.Storage, logger *slog.Logger) *Tracker {
	return &Tracker{
		storage: store,
		logger:  logger.With(slog.String("component", "stats")),
	}
}

// RecordOutcome increments the winner's wins and the loser's losses,
// and total games for both
func (t *Tracker) RecordOutcome(ctx context.Context, winnerID, loserID model.PlayerID) error {
	if err := t.storage.AddWin(ctx, winnerID); err != nil {
		return err
	}
	if err := t.storage.AddLoss(ctx, loserID); err != nil {
		return err
	}

	t.logger.Info("outcome recorded",
		slog.String("winner_id", string(winnerID)),
		slog.String("loser_id", string(loserID)),
	)
	return nil
}

// Get returns a player's stats, defaulting to the zero record for a
// player who has never finished a decisive game
func (t *Tracker) Get(ctx context.Context, id model.PlayerID) (model.PlayerStats, error) {
	rec, err := t.storage.GetStats(ctx, id)
	if errors.Is(err, model.ErrStatsNotFound) {
		return model.PlayerStats{}, nil
	}
	return rec, err
}
