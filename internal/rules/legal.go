package rules

import (
	"minichess/internal/board"
	"minichess/internal/core"
)

// LegalMoves computes the true legal move set for the side to move:
// every pseudo-legal candidate is simulated on a copy of the board and
// discarded if the mover's own king would then be attacked. Origins
// with no surviving destinations are absent from the map.
func LegalMoves(b *board.Board) map[core.Square][]core.Square {
	mover := b.Turn()
	legal := make(map[core.Square][]core.Square)

	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			from := core.Square{File: file, Rank: rank}
			p := b.PieceAt(from)
			if p.IsEmpty() || p.Color != mover {
				continue
			}

			var dests []core.Square
			for _, to := range Destinations(b, from) {
				after := b.Apply(core.Move{From: from, To: to})
				if !InCheck(after, mover) {
					dests = append(dests, to)
				}
			}
			if len(dests) > 0 {
				legal[from] = dests
			}
		}
	}

	return legal
}

// LegalDestinations filters LegalMoves to a single origin square.
// Returns nil when the square is empty or holds the opponent's piece.
func LegalDestinations(b *board.Board, from core.Square) []core.Square {
	p := b.PieceAt(from)
	if p.IsEmpty() || p.Color != b.Turn() {
		return nil
	}

	var dests []core.Square
	for _, to := range Destinations(b, from) {
		after := b.Apply(core.Move{From: from, To: to})
		if !InCheck(after, p.Color) {
			dests = append(dests, to)
		}
	}
	return dests
}

// IsLegal reports whether m is in the current legal move set.
func IsLegal(b *board.Board, m core.Move) bool {
	for _, to := range LegalDestinations(b, m.From) {
		if to == m.To {
			return true
		}
	}
	return false
}
