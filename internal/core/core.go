package core

import "fmt"

type Color byte

const (
	ColorWhite Color = iota + 1
	ColorBlack
)

func (c Color) String() string {
	switch c {
	case ColorWhite:
		return "w"
	case ColorBlack:
		return "b"
	default:
		return "-"
	}
}

func (c Color) Opposite() Color {
	if c == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}

type Kind byte

const (
	Pawn Kind = iota + 1
	Knight
	Bishop
	Rook
	Queen
	King
)

// Piece is an immutable (color, kind) value. The zero Piece marks an
// empty square.
type Piece struct {
	Color Color
	Kind  Kind
}

func (p Piece) IsEmpty() bool {
	return p.Kind == 0
}

// Letter returns the FEN letter: uppercase for White, lowercase for Black.
func (p Piece) Letter() byte {
	var l byte
	switch p.Kind {
	case Pawn:
		l = 'p'
	case Knight:
		l = 'n'
	case Bishop:
		l = 'b'
	case Rook:
		l = 'r'
	case Queen:
		l = 'q'
	case King:
		l = 'k'
	default:
		return 0
	}
	if p.Color == ColorWhite {
		l -= 'a' - 'A'
	}
	return l
}

// PieceFromLetter is the inverse of Piece.Letter. Returns the zero Piece
// for anything that is not a FEN piece letter.
func PieceFromLetter(l byte) Piece {
	color := ColorBlack
	if l >= 'A' && l <= 'Z' {
		color = ColorWhite
		l += 'a' - 'A'
	}
	var kind Kind
	switch l {
	case 'p':
		kind = Pawn
	case 'n':
		kind = Knight
	case 'b':
		kind = Bishop
	case 'r':
		kind = Rook
	case 'q':
		kind = Queen
	case 'k':
		kind = King
	default:
		return Piece{}
	}
	return Piece{Color: color, Kind: kind}
}

// Square is a board coordinate. File 0 is the a-file, Rank 0 is White's
// home rank. Both components are in [0,7] for any square produced by
// this package; off-board coordinates are rejected at parse time and
// checked before use during move generation.
type Square struct {
	File int
	Rank int
}

func (s Square) Valid() bool {
	return s.File >= 0 && s.File < 8 && s.Rank >= 0 && s.Rank < 8
}

func (s Square) String() string {
	return fmt.Sprintf("%c%c", 'a'+s.File, '1'+s.Rank)
}

func ParseSquare(name string) (Square, error) {
	if len(name) != 2 || name[0] < 'a' || name[0] > 'h' || name[1] < '1' || name[1] > '8' {
		return Square{}, fmt.Errorf("invalid square %q", name)
	}
	return Square{File: int(name[0] - 'a'), Rank: int(name[1] - '1')}, nil
}

// Move is a pure from/to description in coordinate notation. Promotion is
// implicit: a pawn landing on its last rank always becomes a Queen.
type Move struct {
	From Square
	To   Square
}

func (m Move) String() string {
	return m.From.String() + m.To.String()
}

// ParseMove parses coordinate notation such as "e2e4". A trailing
// promotion letter (q, r, b or n) is accepted and ignored since
// promotion always resolves to a queen.
func ParseMove(notation string) (Move, error) {
	if len(notation) != 4 && len(notation) != 5 {
		return Move{}, fmt.Errorf("invalid move %q", notation)
	}
	if len(notation) == 5 {
		switch notation[4] {
		case 'q', 'r', 'b', 'n':
		default:
			return Move{}, fmt.Errorf("invalid move %q", notation)
		}
	}
	from, err := ParseSquare(notation[:2])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %w", notation, err)
	}
	to, err := ParseSquare(notation[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %w", notation, err)
	}
	return Move{From: from, To: to}, nil
}
