package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/pduel/puzzleduel/internal/catalog"
	"github.com/pduel/puzzleduel/internal/dependencies/clock"
	"github.com/pduel/puzzleduel/internal/dependencies/random"
	"github.com/pduel/puzzleduel/internal/dependencies/scheduler"
	"github.com/pduel/puzzleduel/internal/gateway"
	"github.com/pduel/puzzleduel/internal/model"
	"github.com/pduel/puzzleduel/internal/pubsub"
	"github.com/pduel/puzzleduel/internal/services/duel"
	"github.com/pduel/puzzleduel/internal/services/matchmaking"
	"github.com/pduel/puzzleduel/internal/services/stats"
	"github.com/pduel/puzzleduel/internal/storage"
	"github.com/pduel/puzzleduel/internal/storage/memory"
	redisstorage "github.com/pduel/puzzleduel/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock     clock.Clock
	Random    random.Random
	Scheduler scheduler.Scheduler

	// Components
	Catalog        *catalog.Catalog
	Queue          *matchmaking.Queue
	Registry       *duel.Registry
	StatsTracker   *stats.Tracker
	Hub            *gateway.Hub
	Publisher      pubsub.Publisher
	DuelController *duel.Controller
	Gateway        *gateway.Handler

	natsRelay *pubsub.NATSRelay
}

// Config holds configuration for the application factory
type Config struct {
	// PuzzlesPath is the path to a JSON puzzle file (optional)
	// If empty, the built-in puzzle set is used
	PuzzlesPath string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the stats backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// NATSURL enables the NATS event relay when non-empty
	NATSURL string
	// ReapGrace is how long finished sessions stay queryable
	// If zero, defaults to duel.DefaultReapGrace
	ReapGrace time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	var puzzles []model.Puzzle
	if cfg.PuzzlesPath != "" {
		loaded, err := catalog.LoadFromFile(cfg.PuzzlesPath)
		if err != nil {
			return nil, err
		}
		puzzles = loaded
	} else {
		puzzles = catalog.DefaultPuzzles()
	}

	app, err := newWithDependencies(store, clock.New(), random.New(), scheduler.New(), puzzles, cfg.ReapGrace, logger)
	if err != nil {
		return nil, err
	}

	if cfg.NATSURL != "" {
		relay, err := pubsub.NewNATSRelay(cfg.NATSURL, app.Hub, logger)
		if err != nil {
			return nil, err
		}
		// Rewire the controller through the relay so session events
		// reach NATS as well as the websocket hub
		app.Publisher = relay
		app.natsRelay = relay
		app.DuelController = duel.NewController(app.Registry, app.Queue, app.Catalog, app.StatsTracker, relay, app.Clock, logger)
		app.Gateway = gateway.NewHandler(app.DuelController, app.Hub, logger)
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	sched scheduler.Scheduler,
	puzzles []model.Puzzle,
	reapGrace time.Duration,
	logger *slog.Logger,
) (*App, error) {
	cat, err := catalog.New(puzzles, rnd, logger)
	if err != nil {
		return nil, err
	}

	hub := gateway.NewHub(logger)
	queue := matchmaking.New(logger)
	registry := duel.NewRegistry(sched, reapGrace, logger)
	tracker := stats.New(store, logger)
	controller := duel.NewController(registry, queue, cat, tracker, hub, clk, logger)
	gatewayHandler := gateway.NewHandler(controller, hub, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		Scheduler:      sched,
		Catalog:        cat,
		Queue:          queue,
		Registry:       registry,
		StatsTracker:   tracker,
		Hub:            hub,
		Publisher:      hub,
		DuelController: controller,
		Gateway:        gatewayHandler,
	}, nil
}

// Close releases everything the factory wired: pending reap timers,
// live websocket connections, the NATS relay and the storage backend
func (a *App) Close() {
	a.Scheduler.StopAll()
	a.Hub.Close()
	if a.natsRelay != nil {
		a.natsRelay.Close()
	}
	if closer, ok := a.Storage.(io.Closer); ok {
		_ = closer.Close()
	}
}
