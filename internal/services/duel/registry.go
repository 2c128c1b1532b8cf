package duel

import (
	"log/slog"
	"sync"
	"time"

	"github.com/pduel/puzzleduel/internal/dependencies/scheduler"
	"github.com/pduel/puzzleduel/internal/model"
)

// DefaultReapGrace is how long a finished session stays queryable so
// late duplicate deliveries of the result broadcast still find it.
const DefaultReapGrace = 5 * time.Second

// Registry owns the set of live sessions, keyed by game ID, including
// the deferred removal of finished sessions.
type Registry struct {
	mu        sync.RWMutex
	games     map[model.GameID]*model.Game
	reaps     map[model.GameID]scheduler.CancelFunc
	scheduler scheduler.Scheduler
	grace     time.Duration
	logger    *slog.Logger
}

// NewRegistry creates an empty Registry
func NewRegistry(sched scheduler.Scheduler, grace time.Duration, logger *slog.Logger) *Registry {
	if grace <= 0 {
		grace = DefaultReapGrace
	}
	return &Registry{
		games:     make(map[model.GameID]*model.Game),
		reaps:     make(map[model.GameID]scheduler.CancelFunc),
		scheduler: sched,
		grace:     grace,
		logger:    logger.With(slog.String("component", "registry")),
	}
}

// Insert adds a session to the registry
func (r *Registry) Insert(game *model.Game) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[game.ID] = game
}

// Get returns the session with the given ID, or ErrGameNotFound
func (r *Registry) Get(id model.GameID) (*model.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	game, ok := r.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game, nil
}

// Remove deletes a session and cancels any pending reap. No-op if absent.
func (r *Registry) Remove(id model.GameID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remove(id)
}

func (r *Registry) remove(id model.GameID) {
	if cancel, ok := r.reaps[id]; ok {
		cancel()
		delete(r.reaps, id)
	}
	delete(r.games, id)
}

// ScheduleReap arranges for the session to be removed after the grace
// period. The removal fires exactly once and is cancelled by Remove or
// by scheduler shutdown, never by further session activity.
func (r *Registry) ScheduleReap(id model.GameID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.games[id]; !ok {
		return
	}
	if _, ok := r.reaps[id]; ok {
		return // reap already pending
	}

	r.reaps[id] = r.scheduler.AfterFunc(r.grace, func() {
		r.mu.Lock()
		delete(r.reaps, id)
		delete(r.games, id)
		r.mu.Unlock()
		r.logger.Info("session reaped", slog.String("game_id", string(id)))
	})
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}
