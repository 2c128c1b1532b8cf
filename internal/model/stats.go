package model

// PlayerStats accumulates decisive duel outcomes for one player.
// TotalGames == Wins + Losses always holds; draws are not recorded.
type PlayerStats struct {
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`
	TotalGames int `json:"totalGames"`
}
