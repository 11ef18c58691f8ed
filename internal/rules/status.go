package rules

import (
	"minichess/internal/board"
	"minichess/internal/core"
)

// Evaluate classifies the position for the side to move. No legal moves
// while in check is checkmate, no legal moves otherwise is stalemate;
// positions with moves are check or in-progress.
func Evaluate(b *board.Board) core.Status {
	inCheck := InCheck(b, b.Turn())
	hasMove := len(LegalMoves(b)) > 0

	switch {
	case !hasMove && inCheck:
		return core.StatusCheckmate
	case !hasMove:
		return core.StatusStalemate
	case inCheck:
		return core.StatusCheck
	default:
		return core.StatusInProgress
	}
}

// Winner returns the winning color for a checkmate position (the side
// that delivered mate). The second return is false for every other
// status, stalemate included.
func Winner(b *board.Board) (core.Color, bool) {
	if Evaluate(b) != core.StatusCheckmate {
		return 0, false
	}
	return b.Turn().Opposite(), true
}
