// Package rules implements move legality for a simplified chess rule
// set: no castling, no en passant, promotion always to a queen. Pseudo-
// legal generation follows each piece's movement pattern; the legality
// filter removes every move that would leave the mover's own king
// attacked.
package rules

import (
	"minichess/internal/board"
	"minichess/internal/core"
)

type offset struct {
	file int
	rank int
}

var (
	knightOffsets = []offset{
		{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
		{1, -2}, {1, 2}, {2, -1}, {2, 1},
	}
	kingOffsets = []offset{
		{-1, -1}, {-1, 0}, {-1, 1}, {0, -1},
		{0, 1}, {1, -1}, {1, 0}, {1, 1},
	}
	diagonalDirs   = []offset{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	orthogonalDirs = []offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	allDirs        = append(append([]offset{}, diagonalDirs...), orthogonalDirs...)
)

// pawnDir is the rank delta a pawn of the given color advances by.
func pawnDir(c core.Color) int {
	if c == core.ColorWhite {
		return 1
	}
	return -1
}

func pawnHomeRank(c core.Color) int {
	if c == core.ColorWhite {
		return 1
	}
	return 6
}

// Destinations returns the pseudo-legal destinations of the occupant of
// from, ignoring king safety. The moving color is taken from the
// occupant, so the generator serves either side. An empty square yields
// no destinations.
func Destinations(b *board.Board, from core.Square) []core.Square {
	p := b.PieceAt(from)
	if p.IsEmpty() {
		return nil
	}

	switch p.Kind {
	case core.Pawn:
		return pawnDestinations(b, from, p.Color)
	case core.Knight:
		return stepDestinations(b, from, p.Color, knightOffsets)
	case core.Bishop:
		return slideDestinations(b, from, p.Color, diagonalDirs)
	case core.Rook:
		return slideDestinations(b, from, p.Color, orthogonalDirs)
	case core.Queen:
		return slideDestinations(b, from, p.Color, allDirs)
	case core.King:
		return stepDestinations(b, from, p.Color, kingOffsets)
	default:
		return nil
	}
}

func pawnDestinations(b *board.Board, from core.Square, c core.Color) []core.Square {
	var dests []core.Square
	dir := pawnDir(c)

	// Single push, then double push from the home rank, both onto empty
	// squares only.
	step := core.Square{File: from.File, Rank: from.Rank + dir}
	if step.Valid() && b.PieceAt(step).IsEmpty() {
		dests = append(dests, step)
		if from.Rank == pawnHomeRank(c) {
			jump := core.Square{File: from.File, Rank: from.Rank + 2*dir}
			if jump.Valid() && b.PieceAt(jump).IsEmpty() {
				dests = append(dests, jump)
			}
		}
	}

	// Diagonal captures onto enemy occupants only.
	for _, df := range []int{-1, 1} {
		diag := core.Square{File: from.File + df, Rank: from.Rank + dir}
		if !diag.Valid() {
			continue
		}
		target := b.PieceAt(diag)
		if !target.IsEmpty() && target.Color != c {
			dests = append(dests, diag)
		}
	}

	return dests
}

func stepDestinations(b *board.Board, from core.Square, c core.Color, offsets []offset) []core.Square {
	var dests []core.Square
	for _, o := range offsets {
		to := core.Square{File: from.File + o.file, Rank: from.Rank + o.rank}
		if !to.Valid() {
			continue
		}
		target := b.PieceAt(to)
		if target.IsEmpty() || target.Color != c {
			dests = append(dests, to)
		}
	}
	return dests
}

func slideDestinations(b *board.Board, from core.Square, c core.Color, dirs []offset) []core.Square {
	var dests []core.Square
	for _, d := range dirs {
		to := core.Square{File: from.File + d.file, Rank: from.Rank + d.rank}
		for to.Valid() {
			target := b.PieceAt(to)
			if target.IsEmpty() {
				dests = append(dests, to)
				to = core.Square{File: to.File + d.file, Rank: to.Rank + d.rank}
				continue
			}
			if target.Color != c {
				dests = append(dests, to)
			}
			break
		}
	}
	return dests
}
