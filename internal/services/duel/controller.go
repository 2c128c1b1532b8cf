package duel

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/pduel/puzzleduel/internal/catalog"
	"github.com/pduel/puzzleduel/internal/dependencies/clock"
	"github.com/pduel/puzzleduel/internal/model"
	"github.com/pduel/puzzleduel/internal/pubsub"
	"github.com/pduel/puzzleduel/internal/services/matchmaking"
	"github.com/pduel/puzzleduel/internal/services/stats"
)

// Controller drives the duel lifecycle: pairing waiting players,
// collecting answers, resolving the winner and scheduling cleanup.
//
// All state transitions run under a single mutex. That is the critical
// section the resolution race depends on: when both participants
// submit at nearly the same instant, exactly one submission observes
// the both-answered condition and performs the single resolution; the
// other finds the session already finished and is dropped as redundant.
type Controller struct {
	mu        sync.Mutex
	registry  *Registry
	queue     *matchmaking.Queue
	catalog   *catalog.Catalog
	stats     *stats.Tracker
	publisher pubsub.Publisher
	clock     clock.Clock
	logger    *slog.Logger
}

// NewController creates a new duel Controller
func NewController(
	registry *Registry,
	queue *matchmaking.Queue,
	cat *catalog.Catalog,
	tracker *stats.Tracker,
	publisher pubsub.Publisher,
	clk clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		registry:  registry,
		queue:     queue,
		catalog:   cat,
		stats:     tracker,
		publisher: publisher,
		clock:     clk,
		logger:    logger.With(slog.String("component", "duel")),
	}
}

// Join pairs the player with the longest-waiting opponent, or parks
// them in the queue when nobody is waiting. Returns the created
// session, or nil if the player is now waiting.
func (c *Controller) Join(ctx context.Context, player model.Player) (*model.Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	opponent, found := c.queue.DequeueHead()
	if found && opponent.ID == player.ID {
		// The only waiting entry is this player re-joining: refresh
		// the entry rather than matching them against themselves.
		found = false
	}

	if !found {
		c.queue.Enqueue(player)
		c.publisher.PublishTo(player.ConnectionID, pubsub.EventWaitingForOpponent,
			pubsub.WaitingEvent{Message: "Looking for an opponent..."})
		return nil, nil
	}

	game := &model.Game{
		ID:        model.GameID(uuid.NewString()),
		Player1:   opponent,
		Player2:   player,
		Puzzle:    c.catalog.PickRandom(),
		Answers:   make(map[model.PlayerID]model.Answer),
		StartedAt: c.clock.Now(),
		Status:    model.GameStatusPlaying,
	}

	c.registry.Insert(game)

	channel := string(game.ID)
	c.publisher.Subscribe(opponent.ConnectionID, channel)
	c.publisher.Subscribe(player.ConnectionID, channel)
	c.publisher.Publish(channel, pubsub.EventGameState, pubsub.GameStateFromModel(game))

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("player1", string(game.Player1.ID)),
		slog.String("player2", string(game.Player2.ID)),
		slog.String("puzzle_id", string(game.Puzzle.ID)),
	)

	return game, nil
}

// SubmitAnswer records a participant's answer, overwriting any prior
// submission from the same player, and resolves the duel once both
// sides have answered.
func (c *Controller) SubmitAnswer(ctx context.Context, gameID model.GameID, playerID model.PlayerID, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.registry.Get(gameID)
	if err != nil {
		return err
	}

	if !game.HasPlayer(playerID) {
		return model.ErrNotParticipant
	}

	if game.Status != model.GameStatusPlaying {
		// The opposing submission won the race and already resolved
		// the duel; this one is redundant.
		return model.ErrGameFinished
	}

	game.Answers[playerID] = model.Answer{
		Value:       value,
		SubmittedAt: c.clock.Now(),
	}

	if !game.BothAnswered() {
		c.publisher.Publish(string(game.ID), pubsub.EventGameState, pubsub.GameStateFromModel(game))
		return nil
	}

	c.resolve(ctx, game)
	return nil
}

// resolve runs the one-time winner determination for a session with
// both answers present. Caller holds c.mu.
func (c *Controller) resolve(ctx context.Context, game *model.Game) {
	winnerID := ResolveWinner(game)
	game.Status = model.GameStatusFinished
	game.WinnerID = winnerID

	if winnerID != "" {
		loserID := game.Opponent(winnerID).ID
		if err := c.stats.RecordOutcome(ctx, winnerID, loserID); err != nil {
			// Stats are best-effort; the result still goes out.
			c.logger.Error("failed to record outcome",
				slog.String("game_id", string(game.ID)),
				slog.String("error", err.Error()),
			)
		}
	}

	c.publisher.Publish(string(game.ID), pubsub.EventGameResult, pubsub.GameResultFromModel(game))
	c.registry.ScheduleReap(game.ID)

	c.logger.Info("game resolved",
		slog.String("game_id", string(game.ID)),
		slog.String("winner_id", string(winnerID)),
	)
}

// Leave removes the player from the waiting queue if present and drops
// the connection's channel subscriptions. Active sessions are not
// touched; an abandoned duel stays unresolved.
func (c *Controller) Leave(playerID model.PlayerID, connID model.ConnectionID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.queue.RemoveByPlayerID(playerID)
	c.publisher.UnsubscribeAll(connID)
}

// Disconnect handles an implicit connection drop: the corresponding
// waiting-queue entry, if any, is removed.
func (c *Controller) Disconnect(connID model.ConnectionID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.queue.RemoveByConnectionID(connID)
	c.publisher.UnsubscribeAll(connID)
}

// GetGame returns a live session by ID
func (c *Controller) GetGame(id model.GameID) (*model.Game, error) {
	return c.registry.Get(id)
}

// ActiveGames returns the number of live sessions
func (c *Controller) ActiveGames() int {
	return c.registry.Len()
}

// WaitingPlayers returns the number of players awaiting an opponent
func (c *Controller) WaitingPlayers() int {
	return c.queue.Len()
}
