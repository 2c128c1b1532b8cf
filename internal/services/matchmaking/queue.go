package matchmaking

import (
	"log/slog"
	"sync"

	"github.com/pduel/puzzleduel/internal/model"
)

// Queue is the FIFO pool of players awaiting an opponent. Pairing
// always consumes the longest-waiting player first.
type Queue struct {
	mu      sync.Mutex
	waiting []model.Player
	logger  *slog.Logger
}

// New creates an empty Queue
func New(logger *slog.Logger) *Queue {
	return &Queue{
		logger: logger.With(slog.String("component", "matchmaking")),
	}
}

// Enqueue appends a player to the tail. If the same player ID is
// already waiting, the prior entry is replaced in place: the player
// keeps their FIFO position and the connection reference is refreshed.
func (q *Queue) Enqueue(player model.Player) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, p := range q.waiting {
		if p.ID == player.ID {
			q.waiting[i] = player
			q.logger.Debug("waiting entry refreshed",
				slog.String("player_id", string(player.ID)))
			return
		}
	}

	q.waiting = append(q.waiting, player)
	q.logger.Info("player waiting",
		slog.String("player_id", string(player.ID)),
		slog.Int("queue_length", len(q.waiting)),
	)
}

// DequeueHead removes and returns the earliest-enqueued player.
// The second return is false if the queue is empty.
func (q *Queue) DequeueHead() (model.Player, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.waiting) == 0 {
		return model.Player{}, false
	}

	head := q.waiting[0]
	q.waiting = q.waiting[1:]
	return head, true
}

// RemoveByPlayerID excises a waiting entry by player ID. No-op if absent.
func (q *Queue) RemoveByPlayerID(id model.PlayerID) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, p := range q.waiting {
		if p.ID == id {
			q.waiting = append(q.waiting[:i], q.waiting[i+1:]...)
			q.logger.Info("player left queue",
				slog.String("player_id", string(id)),
				slog.Int("queue_length", len(q.waiting)),
			)
			return
		}
	}
}

// RemoveByConnectionID excises a waiting entry by connection ID,
// used on disconnect. No-op if absent.
func (q *Queue) RemoveByConnectionID(connID model.ConnectionID) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, p := range q.waiting {
		if p.ConnectionID == connID {
			q.waiting = append(q.waiting[:i], q.waiting[i+1:]...)
			q.logger.Info("disconnected player removed from queue",
				slog.String("player_id", string(p.ID)),
				slog.Int("queue_length", len(q.waiting)),
			)
			return
		}
	}
}

// Len returns the number of waiting players
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.waiting)
}
