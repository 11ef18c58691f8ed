package board

import (
	"fmt"
	"strings"

	"minichess/internal/core"
)

// Board holds the 8x8 occupancy grid and the side to move. It is
// value-like: Apply returns an independent copy, so simulated moves can
// never corrupt a live position.
type Board struct {
	squares [8][8]core.Piece // [rank][file], rank 0 = White's home rank
	turn    core.Color
}

// Start returns the standard starting position with White to move.
func Start() *Board {
	b := &Board{turn: core.ColorWhite}

	back := []core.Kind{core.Rook, core.Knight, core.Bishop, core.Queen, core.King, core.Bishop, core.Knight, core.Rook}
	for file, kind := range back {
		b.squares[0][file] = core.Piece{Color: core.ColorWhite, Kind: kind}
		b.squares[7][file] = core.Piece{Color: core.ColorBlack, Kind: kind}
	}
	for file := 0; file < 8; file++ {
		b.squares[1][file] = core.Piece{Color: core.ColorWhite, Kind: core.Pawn}
		b.squares[6][file] = core.Piece{Color: core.ColorBlack, Kind: core.Pawn}
	}
	return b
}

func (b *Board) Turn() core.Color {
	return b.turn
}

// PieceAt returns the occupant of sq, or the zero Piece when sq is empty
// or off the board.
func (b *Board) PieceAt(sq core.Square) core.Piece {
	if !sq.Valid() {
		return core.Piece{}
	}
	return b.squares[sq.Rank][sq.File]
}

// KingSquare locates the king of the given color. The second return is
// false only for constructed positions missing a king; during play
// exactly one king of each color always exists.
func (b *Board) KingSquare(c core.Color) (core.Square, bool) {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			p := b.squares[rank][file]
			if p.Color == c && p.Kind == core.King {
				return core.Square{File: file, Rank: rank}, true
			}
		}
	}
	return core.Square{}, false
}

// promotionRank is the farthest rank for a pawn of the given color.
func promotionRank(c core.Color) int {
	if c == core.ColorWhite {
		return 7
	}
	return 0
}

// Apply plays m and returns the resulting position with the side to move
// toggled. The receiver is never mutated. The move is not validated:
// legality is the rules package's responsibility. A pawn landing on its
// farthest rank is replaced by a queen of the same color.
func (b *Board) Apply(m core.Move) *Board {
	next := *b

	p := next.squares[m.From.Rank][m.From.File]
	next.squares[m.From.Rank][m.From.File] = core.Piece{}
	if p.Kind == core.Pawn && m.To.Rank == promotionRank(p.Color) {
		p = core.Piece{Color: p.Color, Kind: core.Queen}
	}
	next.squares[m.To.Rank][m.To.File] = p
	next.turn = next.turn.Opposite()

	return &next
}

// Clone returns an independent copy of the position.
func (b *Board) Clone() *Board {
	next := *b
	return &next
}

// ToASCII creates an ASCII representation of the board
func (b *Board) ToASCII() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")

	for rank := 7; rank >= 0; rank-- {
		sb.WriteString(fmt.Sprintf("%d ", rank+1))
		for file := 0; file < 8; file++ {
			p := b.squares[rank][file]
			if p.IsEmpty() {
				sb.WriteString(". ")
			} else {
				sb.WriteString(fmt.Sprintf("%c ", p.Letter()))
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", rank+1))
	}
	sb.WriteString("  a b c d e f g h")

	return sb.String()
}
