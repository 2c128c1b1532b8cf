package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pduel/puzzleduel/internal/model"
	"github.com/pduel/puzzleduel/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Stats are hashes incremented with HINCRBY, so concurrent resolutions
// on different sessions never lose updates.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) AddWin(ctx context.Context, id model.PlayerID) error {
	return s.increment(ctx, id, fieldWins)
}

func (s *Storage) AddLoss(ctx context.Context, id model.PlayerID) error {
	return s.increment(ctx, id, fieldLosses)
}

func (s *Storage) increment(ctx context.Context, id model.PlayerID, field string) error {
	pipe := s.client.Pipeline()
	pipe.HIncrBy(ctx, statsKey(id), field, 1)
	pipe.HIncrBy(ctx, statsKey(id), fieldTotalGames, 1)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) GetStats(ctx context.Context, id model.PlayerID) (model.PlayerStats, error) {
	fields, err := s.client.HGetAll(ctx, statsKey(id)).Result()
	if err != nil {
		return model.PlayerStats{}, err
	}
	if len(fields) == 0 {
		return model.PlayerStats{}, model.ErrStatsNotFound
	}

	return model.PlayerStats{
		Wins:       parseField(fields, fieldWins),
		Losses:     parseField(fields, fieldLosses),
		TotalGames: parseField(fields, fieldTotalGames),
	}, nil
}

func parseField(fields map[string]string, name string) int {
	n, _ := strconv.Atoi(fields[name])
	return n
}
