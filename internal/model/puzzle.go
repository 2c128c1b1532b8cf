package model

// PuzzleID uniquely identifies a puzzle in the catalog
type PuzzleID string

// Puzzle is a single multiple-choice question. Puzzles are immutable
// once loaded into the catalog.
type Puzzle struct {
	ID            PuzzleID `json:"id"`
	Question      string   `json:"question"`
	CorrectAnswer string   `json:"correctAnswer"`
	Options       []string `json:"options"`
	TimeLimit     int      `json:"timeLimit"` // seconds, advisory for clients
}
