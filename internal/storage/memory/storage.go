package memory

import (
	"context"
	"sync"

	"github.com/pduel/puzzleduel/internal/model"
	"github.com/pduel/puzzleduel/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu    sync.RWMutex
	stats map[model.PlayerID]model.PlayerStats
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		stats: make(map[model.PlayerID]model.PlayerStats),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) AddWin(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.stats[id]
	rec.Wins++
	rec.TotalGames++
	s.stats[id] = rec
	return nil
}

func (s *Storage) AddLoss(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.stats[id]
	rec.Losses++
	rec.TotalGames++
	s.stats[id] = rec
	return nil
}

func (s *Storage) GetStats(ctx context.Context, id model.PlayerID) (model.PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.stats[id]
	if !ok {
		return model.PlayerStats{}, model.ErrStatsNotFound
	}
	return rec, nil
}
