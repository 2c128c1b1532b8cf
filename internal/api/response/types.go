package response

import "github.com/pduel/puzzleduel/internal/model"

// Health is the response for the health endpoint
type Health struct {
	Status         string `json:"status"`
	ActiveGames    int    `json:"activeGames"`
	WaitingPlayers int    `json:"waitingPlayers"`
}

// PlayerStats is the response for the per-player stats endpoint
type PlayerStats struct {
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`
	TotalGames int `json:"totalGames"`
}

// PlayerStatsFromModel converts model.PlayerStats
func PlayerStatsFromModel(s model.PlayerStats) PlayerStats {
	return PlayerStats{
		Wins:       s.Wins,
		Losses:     s.Losses,
		TotalGames: s.TotalGames,
	}
}
