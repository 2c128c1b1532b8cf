package model

import "time"

// GameID uniquely identifies a duel session
type GameID string

// GameStatus represents the lifecycle phase of a duel
type GameStatus string

const (
	GameStatusPlaying  GameStatus = "playing"  // Collecting answers
	GameStatusFinished GameStatus = "finished" // Resolved, awaiting reap
)

// Answer is one participant's submission
type Answer struct {
	Value       string
	SubmittedAt time.Time
}

// Game is the full state of one head-to-head duel. Answers holds at
// most one entry per participant; resubmission overwrites.
type Game struct {
	ID        GameID
	Player1   Player
	Player2   Player
	Puzzle    Puzzle
	Answers   map[PlayerID]Answer
	StartedAt time.Time
	Status    GameStatus
	WinnerID  PlayerID // empty until resolved, or on a draw
}

// HasPlayer reports whether the given player is a participant
func (g *Game) HasPlayer(id PlayerID) bool {
	return g.Player1.ID == id || g.Player2.ID == id
}

// BothAnswered reports whether both participants have submitted
func (g *Game) BothAnswered() bool {
	_, ok1 := g.Answers[g.Player1.ID]
	_, ok2 := g.Answers[g.Player2.ID]
	return ok1 && ok2
}

// Opponent returns the other participant, or the zero Player if id is
// not a participant
func (g *Game) Opponent(id PlayerID) Player {
	switch id {
	case g.Player1.ID:
		return g.Player2
	case g.Player2.ID:
		return g.Player1
	}
	return Player{}
}
