package duel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pduel/puzzleduel/internal/dependencies/mocks"
	"github.com/pduel/puzzleduel/internal/model"
	"github.com/pduel/puzzleduel/internal/testutil"
)

func newTestRegistry() (*Registry, *mocks.MockScheduler) {
	sched := mocks.NewMockScheduler()
	return NewRegistry(sched, 5*time.Second, testutil.NopLogger()), sched
}

func testGame(id string) *model.Game {
	return &model.Game{
		ID:      model.GameID(id),
		Player1: model.Player{ID: "alice"},
		Player2: model.Player{ID: "bob"},
		Answers: make(map[model.PlayerID]model.Answer),
		Status:  model.GameStatusPlaying,
	}
}

func TestInsertAndGet(t *testing.T) {
	r, _ := newTestRegistry()
	r.Insert(testGame("g1"))

	got, err := r.Get("g1")
	require.NoError(t, err)
	assert.Equal(t, model.GameID("g1"), got.ID)
	assert.Equal(t, 1, r.Len())
}

func TestGetUnknownID(t *testing.T) {
	r, _ := newTestRegistry()

	_, err := r.Get("missing")
	assert.ErrorIs(t, err, model.ErrGameNotFound)
}

func TestScheduleReapRemovesAfterGrace(t *testing.T) {
	r, sched := newTestRegistry()
	r.Insert(testGame("g1"))

	r.ScheduleReap("g1")
	assert.Equal(t, 5*time.Second, sched.LastDelay())

	// Still queryable before the grace period elapses
	_, err := r.Get("g1")
	require.NoError(t, err)

	sched.Fire()

	_, err = r.Get("g1")
	assert.ErrorIs(t, err, model.ErrGameNotFound)
	assert.Equal(t, 0, r.Len())
}

func TestScheduleReapIsIdempotent(t *testing.T) {
	r, sched := newTestRegistry()
	r.Insert(testGame("g1"))

	r.ScheduleReap("g1")
	r.ScheduleReap("g1")
	assert.Equal(t, 1, sched.PendingCount())
}

func TestScheduleReapUnknownGameIsNoop(t *testing.T) {
	r, sched := newTestRegistry()

	r.ScheduleReap("missing")
	assert.Equal(t, 0, sched.PendingCount())
}

func TestRemoveCancelsPendingReap(t *testing.T) {
	r, sched := newTestRegistry()
	r.Insert(testGame("g1"))
	r.ScheduleReap("g1")

	r.Remove("g1")
	assert.Equal(t, 0, sched.PendingCount())
	assert.Equal(t, 0, r.Len())

	// Firing after removal must be harmless
	sched.Fire()
}
