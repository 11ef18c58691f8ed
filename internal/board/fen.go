package board

import (
	"fmt"
	"strings"

	"minichess/internal/core"
)

const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

// ParseFEN builds a board from a FEN string. Only the piece placement
// and side-to-move fields are modeled; castling, en passant and move
// counters are accepted and ignored since those rules are not played.
func ParseFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid FEN: expected at least placement and turn, got %d fields", len(parts))
	}

	b := &Board{}

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("invalid FEN: expected 8 ranks")
	}

	// FEN lists rank 8 first
	for i, row := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(row); j++ {
			ch := row[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			p := core.PieceFromLetter(ch)
			if p.IsEmpty() {
				return nil, fmt.Errorf("invalid FEN: unknown piece %q", ch)
			}
			if file >= 8 {
				return nil, fmt.Errorf("invalid FEN: too many pieces in rank %d", rank+1)
			}
			b.squares[rank][file] = p
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("invalid FEN: rank %d has %d files", rank+1, file)
		}
	}

	switch parts[1] {
	case "w":
		b.turn = core.ColorWhite
	case "b":
		b.turn = core.ColorBlack
	default:
		return nil, fmt.Errorf("invalid FEN: turn must be 'w' or 'b'")
	}

	return b, nil
}

// FEN renders the position. Unmodeled fields are emitted as "- - 0 1".
func (b *Board) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.squares[rank][file]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteString(" " + b.turn.String() + " - - 0 1")
	return sb.String()
}
