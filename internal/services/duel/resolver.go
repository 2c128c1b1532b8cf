package duel

import "github.com/pduel/puzzleduel/internal/model"

// ResolveWinner determines the winner of a completed duel. It is a
// pure function of the session's puzzle, start time and answers, and
// is only meaningful once both participants have submitted.
//
// Rules:
//  1. If exactly one side answered correctly, that side wins.
//  2. If both answered correctly, the smaller elapsed time since the
//     session started wins. Equal elapsed times go to player 2; the
//     comparison is strict, so the tie-break is deterministic.
//  3. If neither answered correctly, there is no winner (a draw) and
//     the empty PlayerID is returned.
func ResolveWinner(game *model.Game) model.PlayerID {
	answer1, ok1 := game.Answers[game.Player1.ID]
	answer2, ok2 := game.Answers[game.Player2.ID]

	correct1 := ok1 && answer1.Value == game.Puzzle.CorrectAnswer
	correct2 := ok2 && answer2.Value == game.Puzzle.CorrectAnswer

	switch {
	case correct1 && !correct2:
		return game.Player1.ID
	case correct2 && !correct1:
		return game.Player2.ID
	case correct1 && correct2:
		elapsed1 := answer1.SubmittedAt.Sub(game.StartedAt)
		elapsed2 := answer2.SubmittedAt.Sub(game.StartedAt)
		if elapsed1 < elapsed2 {
			return game.Player1.ID
		}
		return game.Player2.ID
	}

	return ""
}
