package redis

import (
	"fmt"

	"github.com/pduel/puzzleduel/internal/model"
)

// Key prefix for all duel-related data
const keyPrefix = "pduel"

// Hash field names within a stats key
const (
	fieldWins       = "wins"
	fieldLosses     = "losses"
	fieldTotalGames = "total_games"
)

// statsKey returns the Redis key for a player's stats hash
func statsKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:stats:%s", keyPrefix, id)
}
