package pubsub

import (
	"github.com/pduel/puzzleduel/internal/model"
)

// Outbound event names
const (
	EventWaitingForOpponent = "waitingForOpponent"
	EventGameState          = "gameState"
	EventGameResult         = "gameResult"
)

// PlayerInfo is a player as seen by clients
type PlayerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlayerInfoFromModel converts a model.Player
func PlayerInfoFromModel(p model.Player) PlayerInfo {
	return PlayerInfo{
		ID:   string(p.ID),
		Name: p.Name,
	}
}

// AnswerInfo is one recorded answer as seen by clients. Time is Unix
// milliseconds of the submission.
type AnswerInfo struct {
	Answer string `json:"answer"`
	Time   int64  `json:"time"`
}

// WaitingEvent tells a lone joiner that no opponent is available yet
type WaitingEvent struct {
	Message string `json:"message"`
}

// GameStateEvent is the session snapshot broadcast while a duel is in
// progress
type GameStateEvent struct {
	GameID        string                `json:"gameId"`
	Player1       PlayerInfo            `json:"player1"`
	Player2       PlayerInfo            `json:"player2"`
	CurrentPuzzle model.Puzzle          `json:"currentPuzzle"`
	Status        string                `json:"status"`
	TimeRemaining int                   `json:"timeRemaining"`
	Answers       map[string]AnswerInfo `json:"answers"`
}

// GameStateFromModel builds the snapshot for a session
func GameStateFromModel(g *model.Game) GameStateEvent {
	return GameStateEvent{
		GameID:        string(g.ID),
		Player1:       PlayerInfoFromModel(g.Player1),
		Player2:       PlayerInfoFromModel(g.Player2),
		CurrentPuzzle: g.Puzzle,
		Status:        string(g.Status),
		TimeRemaining: g.Puzzle.TimeLimit,
		Answers:       answersFromModel(g),
	}
}

// GameResultEvent is the terminal broadcast for a resolved duel.
// WinnerID is null for a draw.
type GameResultEvent struct {
	GameID   string                `json:"gameId"`
	WinnerID *string               `json:"winnerId"`
	Answers  map[string]AnswerInfo `json:"answers"`
	Puzzle   model.Puzzle          `json:"puzzle"`
}

// GameResultFromModel builds the terminal event for a finished session
func GameResultFromModel(g *model.Game) GameResultEvent {
	var winner *string
	if g.WinnerID != "" {
		w := string(g.WinnerID)
		winner = &w
	}
	return GameResultEvent{
		GameID:   string(g.ID),
		WinnerID: winner,
		Answers:  answersFromModel(g),
		Puzzle:   g.Puzzle,
	}
}

func answersFromModel(g *model.Game) map[string]AnswerInfo {
	answers := make(map[string]AnswerInfo, len(g.Answers))
	for pid, a := range g.Answers {
		answers[string(pid)] = AnswerInfo{
			Answer: a.Value,
			Time:   a.SubmittedAt.UnixMilli(),
		}
	}
	return answers
}
