package duel

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/pduel/puzzleduel/internal/catalog"
	"github.com/pduel/puzzleduel/internal/dependencies/mocks"
	"github.com/pduel/puzzleduel/internal/model"
	"github.com/pduel/puzzleduel/internal/pubsub"
	"github.com/pduel/puzzleduel/internal/services/matchmaking"
	"github.com/pduel/puzzleduel/internal/services/stats"
	"github.com/pduel/puzzleduel/internal/storage/memory"
	"github.com/pduel/puzzleduel/internal/testutil"
)

// publishedEvent is one captured broadcast
type publishedEvent struct {
	channel string
	event   string
	payload any
}

// fakePublisher captures broadcasts and subscriptions for assertions
type fakePublisher struct {
	mu            sync.Mutex
	published     []publishedEvent
	direct        []publishedEvent
	subscriptions map[string][]model.ConnectionID
	unsubscribed  []model.ConnectionID
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{subscriptions: make(map[string][]model.ConnectionID)}
}

func (f *fakePublisher) Publish(channel, event string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, publishedEvent{channel, event, payload})
}

func (f *fakePublisher) PublishTo(connID model.ConnectionID, event string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.direct = append(f.direct, publishedEvent{string(connID), event, payload})
}

func (f *fakePublisher) Subscribe(connID model.ConnectionID, channel string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscriptions[channel] = append(f.subscriptions[channel], connID)
}

func (f *fakePublisher) UnsubscribeAll(connID model.ConnectionID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unsubscribed = append(f.unsubscribed, connID)
}

func (f *fakePublisher) eventsNamed(name string) []publishedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []publishedEvent
	for _, e := range f.published {
		if e.event == name {
			out = append(out, e)
		}
	}
	return out
}

type ControllerSuite struct {
	suite.Suite
	controller *Controller
	registry   *Registry
	queue      *matchmaking.Queue
	storage    *memory.Storage
	publisher  *fakePublisher
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	scheduler  *mocks.MockScheduler
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	logger := testutil.NopLogger()
	s.clock = mocks.NewMockClock(time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.scheduler = mocks.NewMockScheduler()
	s.publisher = newFakePublisher()
	s.storage = memory.New()
	s.queue = matchmaking.New(logger)
	s.registry = NewRegistry(s.scheduler, 5*time.Second, logger)

	cat, err := catalog.New(catalog.DefaultPuzzles(), s.random, logger)
	s.Require().NoError(err)

	tracker := stats.New(s.storage, logger)
	s.controller = NewController(s.registry, s.queue, cat, tracker, s.publisher, s.clock, logger)
	s.ctx = context.Background()
}

func (s *ControllerSuite) join(id, conn string) *model.Game {
	game, err := s.controller.Join(s.ctx, model.Player{
		ID:           model.PlayerID(id),
		Name:         id,
		ConnectionID: model.ConnectionID(conn),
	})
	s.Require().NoError(err)
	return game
}

// startGame pairs two players and returns the created session
func (s *ControllerSuite) startGame(a, b string) *model.Game {
	s.Require().Nil(s.join(a, a+"-conn"))
	game := s.join(b, b+"-conn")
	s.Require().NotNil(game)
	return game
}

// Join tests

func (s *ControllerSuite) TestFirstJoinerWaits() {
	game := s.join("alice", "c1")

	s.Nil(game)
	s.Equal(1, s.controller.WaitingPlayers())
	s.Equal(0, s.controller.ActiveGames())

	s.Require().Len(s.publisher.direct, 1)
	s.Equal("c1", s.publisher.direct[0].channel)
	s.Equal(pubsub.EventWaitingForOpponent, s.publisher.direct[0].event)
}

func (s *ControllerSuite) TestSecondJoinerIsPaired() {
	game := s.startGame("alice", "bob")

	s.Equal(model.PlayerID("alice"), game.Player1.ID)
	s.Equal(model.PlayerID("bob"), game.Player2.ID)
	s.NotEqual(game.Player1.ID, game.Player2.ID)
	s.Equal(model.GameStatusPlaying, game.Status)
	s.Equal(0, s.controller.WaitingPlayers())
	s.Equal(1, s.controller.ActiveGames())

	// Both connections joined the session channel
	s.ElementsMatch(
		[]model.ConnectionID{"alice-conn", "bob-conn"},
		s.publisher.subscriptions[string(game.ID)],
	)

	states := s.publisher.eventsNamed(pubsub.EventGameState)
	s.Require().Len(states, 1)
	snapshot := states[0].payload.(pubsub.GameStateEvent)
	s.Equal("playing", snapshot.Status)
	s.Empty(snapshot.Answers)
}

func (s *ControllerSuite) TestJoinPairsWithWaitingHead() {
	// A joiner never waits while an opponent is available, so the
	// queue holds at most one player between joins; successive pairs
	// form in arrival order.
	s.Require().Nil(s.join("alice", "c1"))
	game1 := s.join("bob", "c2")
	s.Require().NotNil(game1)
	s.Equal(model.PlayerID("alice"), game1.Player1.ID)
	s.Equal(model.PlayerID("bob"), game1.Player2.ID)

	s.Require().Nil(s.join("carol", "c3"))
	game2 := s.join("dave", "c4")
	s.Require().NotNil(game2)
	s.Equal(model.PlayerID("carol"), game2.Player1.ID)
	s.Equal(model.PlayerID("dave"), game2.Player2.ID)

	s.Equal(0, s.controller.WaitingPlayers())
	s.Equal(2, s.controller.ActiveGames())
}

func (s *ControllerSuite) TestRejoinWhileWaitingDoesNotSelfMatch() {
	s.Require().Nil(s.join("alice", "c1"))
	s.Require().Nil(s.join("alice", "c2"))

	s.Equal(1, s.controller.WaitingPlayers())
	s.Equal(0, s.controller.ActiveGames())
}

func (s *ControllerSuite) TestPuzzleDrawnFromCatalog() {
	s.random.QueueIntn(3)
	game := s.startGame("alice", "bob")

	s.Equal(model.PuzzleID("4"), game.Puzzle.ID)
}

// SubmitAnswer tests

func (s *ControllerSuite) TestSubmitAnswerUnknownGame() {
	err := s.controller.SubmitAnswer(s.ctx, "missing", "alice", "42")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestSubmitAnswerNonParticipant() {
	game := s.startGame("alice", "bob")

	err := s.controller.SubmitAnswer(s.ctx, game.ID, "mallory", "42")
	s.ErrorIs(err, model.ErrNotParticipant)
	s.Empty(game.Answers)
}

func (s *ControllerSuite) TestFirstAnswerBroadcastsPartialState() {
	game := s.startGame("alice", "bob")

	s.Require().NoError(s.controller.SubmitAnswer(s.ctx, game.ID, "alice", "42"))

	s.Equal(model.GameStatusPlaying, game.Status)
	states := s.publisher.eventsNamed(pubsub.EventGameState)
	s.Require().Len(states, 2) // creation snapshot + partial update
	snapshot := states[1].payload.(pubsub.GameStateEvent)
	s.Len(snapshot.Answers, 1)
	s.Equal("42", snapshot.Answers["alice"].Answer)
}

func (s *ControllerSuite) TestResubmissionOverwrites() {
	game := s.startGame("alice", "bob")

	s.Require().NoError(s.controller.SubmitAnswer(s.ctx, game.ID, "alice", "40"))
	s.clock.Advance(time.Second)
	s.Require().NoError(s.controller.SubmitAnswer(s.ctx, game.ID, "alice", "41"))

	s.Len(game.Answers, 1)
	s.Equal("41", game.Answers["alice"].Value)
	s.Equal(model.GameStatusPlaying, game.Status)
}

func (s *ControllerSuite) TestBothAnswersResolveGame() {
	s.random.QueueIntn(0) // puzzle 1, correct answer "42"
	game := s.startGame("alice", "bob")

	s.clock.Advance(2 * time.Second)
	s.Require().NoError(s.controller.SubmitAnswer(s.ctx, game.ID, "alice", "42"))
	s.Require().NoError(s.controller.SubmitAnswer(s.ctx, game.ID, "bob", "41"))

	s.Equal(model.GameStatusFinished, game.Status)
	s.Equal(model.PlayerID("alice"), game.WinnerID)

	results := s.publisher.eventsNamed(pubsub.EventGameResult)
	s.Require().Len(results, 1)
	result := results[0].payload.(pubsub.GameResultEvent)
	s.Require().NotNil(result.WinnerID)
	s.Equal("alice", *result.WinnerID)

	// Reap scheduled for the finished session
	s.Equal(1, s.scheduler.PendingCount())

	aliceStats, err := s.controller.stats.Get(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerStats{Wins: 1, Losses: 0, TotalGames: 1}, aliceStats)

	bobStats, err := s.controller.stats.Get(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(model.PlayerStats{Wins: 0, Losses: 1, TotalGames: 1}, bobStats)
}

func (s *ControllerSuite) TestFasterCorrectAnswerWins() {
	s.random.QueueIntn(0)
	game := s.startGame("alice", "bob")

	s.clock.Advance(300 * time.Millisecond)
	s.Require().NoError(s.controller.SubmitAnswer(s.ctx, game.ID, "bob", "42"))
	s.clock.Advance(200 * time.Millisecond)
	s.Require().NoError(s.controller.SubmitAnswer(s.ctx, game.ID, "alice", "42"))

	s.Equal(model.PlayerID("bob"), game.WinnerID)
}

func (s *ControllerSuite) TestDrawUpdatesNoStats() {
	s.random.QueueIntn(0)
	game := s.startGame("alice", "bob")

	s.Require().NoError(s.controller.SubmitAnswer(s.ctx, game.ID, "alice", "41"))
	s.Require().NoError(s.controller.SubmitAnswer(s.ctx, game.ID, "bob", "40"))

	s.Equal(model.GameStatusFinished, game.Status)
	s.Equal(model.PlayerID(""), game.WinnerID)

	results := s.publisher.eventsNamed(pubsub.EventGameResult)
	s.Require().Len(results, 1)
	s.Nil(results[0].payload.(pubsub.GameResultEvent).WinnerID)

	aliceStats, err := s.controller.stats.Get(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerStats{}, aliceStats)
}

func (s *ControllerSuite) TestRedundantSubmissionAfterFinish() {
	s.random.QueueIntn(0)
	game := s.startGame("alice", "bob")

	s.Require().NoError(s.controller.SubmitAnswer(s.ctx, game.ID, "alice", "42"))
	s.Require().NoError(s.controller.SubmitAnswer(s.ctx, game.ID, "bob", "41"))

	err := s.controller.SubmitAnswer(s.ctx, game.ID, "bob", "42")
	s.ErrorIs(err, model.ErrGameFinished)

	// Exactly one result and one stats update
	s.Len(s.publisher.eventsNamed(pubsub.EventGameResult), 1)
	aliceStats, _ := s.controller.stats.Get(s.ctx, "alice")
	s.Equal(1, aliceStats.TotalGames)
}

func (s *ControllerSuite) TestConcurrentSubmissionsResolveOnce() {
	s.random.QueueIntn(0)
	game := s.startGame("alice", "bob")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = s.controller.SubmitAnswer(s.ctx, game.ID, "alice", "42")
	}()
	go func() {
		defer wg.Done()
		_ = s.controller.SubmitAnswer(s.ctx, game.ID, "bob", "42")
	}()
	wg.Wait()

	s.Equal(model.GameStatusFinished, game.Status)
	s.Len(s.publisher.eventsNamed(pubsub.EventGameResult), 1)
	s.Equal(1, s.scheduler.PendingCount())

	aliceStats, _ := s.controller.stats.Get(s.ctx, "alice")
	bobStats, _ := s.controller.stats.Get(s.ctx, "bob")
	s.Equal(1, aliceStats.TotalGames)
	s.Equal(1, bobStats.TotalGames)
	s.Equal(1, aliceStats.Wins+bobStats.Wins)
	s.Equal(1, aliceStats.Losses+bobStats.Losses)
}

func (s *ControllerSuite) TestStatsInvariantAfterManyGames() {
	s.random.QueueIntn(0, 0, 0)
	players := []string{"alice", "bob", "carol", "dave"}

	for i := 0; i < 3; i++ {
		game := s.startGame(players[i%2], players[2+i%2])
		s.Require().NoError(s.controller.SubmitAnswer(s.ctx, game.ID, game.Player1.ID, "42"))
		s.clock.Advance(time.Second)
		s.Require().NoError(s.controller.SubmitAnswer(s.ctx, game.ID, game.Player2.ID, "41"))
	}

	for _, p := range players {
		rec, err := s.controller.stats.Get(s.ctx, model.PlayerID(p))
		s.Require().NoError(err)
		s.Equal(rec.TotalGames, rec.Wins+rec.Losses)
	}
}

// Lifecycle tests

func (s *ControllerSuite) TestFinishedSessionReapedAfterGrace() {
	s.random.QueueIntn(0)
	game := s.startGame("alice", "bob")

	s.Require().NoError(s.controller.SubmitAnswer(s.ctx, game.ID, "alice", "42"))
	s.Require().NoError(s.controller.SubmitAnswer(s.ctx, game.ID, "bob", "41"))

	// Queryable during the grace window
	_, err := s.controller.GetGame(game.ID)
	s.Require().NoError(err)

	s.scheduler.Fire()

	_, err = s.controller.GetGame(game.ID)
	s.ErrorIs(err, model.ErrGameNotFound)
	s.Equal(0, s.controller.ActiveGames())
}

func (s *ControllerSuite) TestLeaveRemovesWaitingEntry() {
	s.Require().Nil(s.join("alice", "c1"))

	s.controller.Leave("alice", "c1")

	s.Equal(0, s.controller.WaitingPlayers())
	s.Contains(s.publisher.unsubscribed, model.ConnectionID("c1"))
}

func (s *ControllerSuite) TestDisconnectRemovesWaitingEntry() {
	s.Require().Nil(s.join("alice", "c1"))

	s.controller.Disconnect("c1")

	s.Equal(0, s.controller.WaitingPlayers())
}

func (s *ControllerSuite) TestHealthCountersTrackState() {
	s.Equal(0, s.controller.ActiveGames())
	s.Equal(0, s.controller.WaitingPlayers())

	s.Require().Nil(s.join("alice", "c1"))
	s.Equal(1, s.controller.WaitingPlayers())

	game := s.join("bob", "c2")
	s.Require().NotNil(game)
	s.Equal(0, s.controller.WaitingPlayers())
	s.Equal(1, s.controller.ActiveGames())

	s.Require().NoError(s.controller.SubmitAnswer(s.ctx, game.ID, "alice", "42"))
	s.Require().NoError(s.controller.SubmitAnswer(s.ctx, game.ID, "bob", "42"))
	s.scheduler.Fire()
	s.Equal(0, s.controller.ActiveGames())
}
