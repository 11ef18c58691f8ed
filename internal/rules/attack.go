package rules

import (
	"minichess/internal/board"
	"minichess/internal/core"
)

// IsAttacked reports whether target is attacked by any piece of the
// given color, per capture-reachability. Pawns attack only their two
// forward diagonals; a pawn's push square is never an attack, so pawns
// do not go through the full move generator here.
func IsAttacked(b *board.Board, target core.Square, by core.Color) bool {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			from := core.Square{File: file, Rank: rank}
			p := b.PieceAt(from)
			if p.IsEmpty() || p.Color != by {
				continue
			}

			if p.Kind == core.Pawn {
				dir := pawnDir(by)
				if target.Rank == from.Rank+dir && (target.File == from.File-1 || target.File == from.File+1) {
					return true
				}
				continue
			}

			for _, to := range Destinations(b, from) {
				if to == target {
					return true
				}
			}
		}
	}
	return false
}

// InCheck reports whether the given color's king is currently attacked.
// A constructed position without that king is never in check.
func InCheck(b *board.Board, c core.Color) bool {
	kingSq, ok := b.KingSquare(c)
	if !ok {
		return false
	}
	return IsAttacked(b, kingSq, c.Opposite())
}
