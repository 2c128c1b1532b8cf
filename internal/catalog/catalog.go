package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/pduel/puzzleduel/internal/dependencies/random"
	"github.com/pduel/puzzleduel/internal/model"
)

// Catalog holds the fixed, immutable puzzle set and selects puzzles
// uniformly at random
type Catalog struct {
	puzzles []model.Puzzle
	random  random.Random
	logger  *slog.Logger
}

// New creates a Catalog from the given puzzle set
func New(puzzles []model.Puzzle, rnd random.Random, logger *slog.Logger) (*Catalog, error) {
	if len(puzzles) == 0 {
		return nil, model.ErrEmptyCatalog
	}
	return &Catalog{
		puzzles: puzzles,
		random:  rnd,
		logger:  logger.With(slog.String("component", "catalog")),
	}, nil
}

// NewFromFile creates a Catalog from a JSON puzzle file
func NewFromFile(path string, rnd random.Random, logger *slog.Logger) (*Catalog, error) {
	puzzles, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	return New(puzzles, rnd, logger)
}

// LoadFromFile reads a JSON array of puzzles from path
func LoadFromFile(path string) ([]model.Puzzle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading puzzle file: %w", err)
	}

	var puzzles []model.Puzzle
	if err := json.Unmarshal(data, &puzzles); err != nil {
		return nil, fmt.Errorf("parsing puzzle file: %w", err)
	}
	return puzzles, nil
}

// PickRandom returns one puzzle chosen uniformly at random
func (c *Catalog) PickRandom() model.Puzzle {
	return c.puzzles[c.random.Intn(len(c.puzzles))]
}

// Size returns the number of puzzles in the catalog
func (c *Catalog) Size() int {
	return len(c.puzzles)
}

// DefaultPuzzles returns the built-in puzzle set used when no puzzle
// file is configured
func DefaultPuzzles() []model.Puzzle {
	return []model.Puzzle{
		{
			ID:            "1",
			Question:      "What is 15 + 27?",
			CorrectAnswer: "42",
			Options:       []string{"40", "41", "42", "43"},
			TimeLimit:     30,
		},
		{
			ID:            "2",
			Question:      "If you have 8 apples and eat 3, how many do you have left?",
			CorrectAnswer: "5",
			Options:       []string{"3", "4", "5", "6"},
			TimeLimit:     30,
		},
		{
			ID:            "3",
			Question:      "What is 7 × 6?",
			CorrectAnswer: "42",
			Options:       []string{"36", "42", "48", "54"},
			TimeLimit:     30,
		},
		{
			ID:            "4",
			Question:      "Which number comes next: 2, 4, 6, 8, __?",
			CorrectAnswer: "10",
			Options:       []string{"9", "10", "11", "12"},
			TimeLimit:     30,
		},
		{
			ID:            "5",
			Question:      "What is half of 26?",
			CorrectAnswer: "13",
			Options:       []string{"12", "13", "14", "15"},
			TimeLimit:     30,
		},
	}
}
