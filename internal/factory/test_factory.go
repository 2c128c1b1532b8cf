package factory

import (
	"io"
	"log/slog"

	"github.com/pduel/puzzleduel/internal/catalog"
	"github.com/pduel/puzzleduel/internal/dependencies/mocks"
	"github.com/pduel/puzzleduel/internal/services/duel"
	"github.com/pduel/puzzleduel/internal/storage/memory"
)

// TestApp is an App wired with mock dependencies for testing
type TestApp struct {
	*App

	MockClock     *mocks.MockClock
	MockRandom    *mocks.MockRandom
	MockScheduler *mocks.MockScheduler
}

// NewTestApp creates an App with in-memory storage and mock clock,
// random and scheduler, so tests control time, puzzle selection and
// reap firing
func NewTestApp() (*TestApp, error) {
	clk := mocks.NewMockClock(mocks.DefaultTestTime)
	rnd := mocks.NewMockRandom()
	sched := mocks.NewMockScheduler()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app, err := newWithDependencies(memory.New(), clk, rnd, sched, catalog.DefaultPuzzles(), duel.DefaultReapGrace, logger)
	if err != nil {
		return nil, err
	}

	return &TestApp{
		App:           app,
		MockClock:     clk,
		MockRandom:    rnd,
		MockScheduler: sched,
	}, nil
}
