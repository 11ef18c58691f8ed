package board

import (
	"testing"

	"minichess/internal/core"
)

func mustSquare(t *testing.T, name string) core.Square {
	t.Helper()
	sq, err := core.ParseSquare(name)
	if err != nil {
		t.Fatal(err)
	}
	return sq
}

func mustMove(t *testing.T, notation string) core.Move {
	t.Helper()
	m, err := core.ParseMove(notation)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestStartPosition(t *testing.T) {
	b := Start()

	if b.Turn() != core.ColorWhite {
		t.Fatalf("expected White to move, got %s", b.Turn())
	}
	if got := b.FEN(); got != StartingFEN {
		t.Fatalf("starting FEN mismatch:\n got %s\nwant %s", got, StartingFEN)
	}

	wk, ok := b.KingSquare(core.ColorWhite)
	if !ok || wk.String() != "e1" {
		t.Fatalf("expected white king on e1, got %s (found=%v)", wk, ok)
	}
	bk, ok := b.KingSquare(core.ColorBlack)
	if !ok || bk.String() != "e8" {
		t.Fatalf("expected black king on e8, got %s (found=%v)", bk, ok)
	}
}

func TestApplyDoesNotMutateSource(t *testing.T) {
	b := Start()
	before := b.FEN()

	next := b.Apply(mustMove(t, "e2e4"))

	if b.FEN() != before {
		t.Fatal("Apply mutated the source board")
	}
	if next.Turn() != core.ColorBlack {
		t.Fatalf("expected turn to toggle to Black, got %s", next.Turn())
	}
	if p := next.PieceAt(mustSquare(t, "e4")); p.Kind != core.Pawn || p.Color != core.ColorWhite {
		t.Fatalf("expected white pawn on e4, got %+v", p)
	}
	if p := next.PieceAt(mustSquare(t, "e2")); !p.IsEmpty() {
		t.Fatalf("expected e2 cleared, got %+v", p)
	}
}

func TestApplyCaptureOverwrites(t *testing.T) {
	b, err := ParseFEN("8/8/8/3p4/4B3/8/8/8 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	next := b.Apply(mustMove(t, "e4d5"))

	if p := next.PieceAt(mustSquare(t, "d5")); p.Kind != core.Bishop || p.Color != core.ColorWhite {
		t.Fatalf("expected white bishop on d5 after capture, got %+v", p)
	}
	if p := next.PieceAt(mustSquare(t, "e4")); !p.IsEmpty() {
		t.Fatalf("expected e4 cleared, got %+v", p)
	}
}

func TestApplyPromotesToQueen(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		move string
		want string // destination square
	}{
		{"white push", "8/P6k/8/8/8/8/8/K7 w - - 0 1", "a7a8", "a8"},
		{"white capture", "1r5k/P7/8/8/8/8/8/K7 w - - 0 1", "a7b8", "b8"},
		{"black push", "k7/8/8/8/8/8/6p1/K7 b - - 0 1", "g2g1", "g1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatal(err)
			}
			mover := b.Turn()

			next := b.Apply(mustMove(t, tc.move))

			p := next.PieceAt(mustSquare(t, tc.want))
			if p.Kind != core.Queen || p.Color != mover {
				t.Fatalf("expected %s queen on %s, got %+v", mover, tc.want, p)
			}
		})
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartingFEN,
		"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
		"rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b - - 0 1",
	}
	for _, fen := range fens {
		b, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := b.FEN(); got != fen {
			t.Fatalf("round trip mismatch:\n got %s\nwant %s", got, fen)
		}
	}
}

func TestParseFENRejectsMalformed(t *testing.T) {
	invalid := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR", // missing turn
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w - - 0 1", // 7 ranks
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x - - 0 1", // bad turn
		"rnbqkbnx/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1", // bad piece
	}
	for _, fen := range invalid {
		if _, err := ParseFEN(fen); err == nil {
			t.Errorf("ParseFEN(%q) accepted malformed input", fen)
		}
	}
}

func TestPieceAtOffBoard(t *testing.T) {
	b := Start()
	if p := b.PieceAt(core.Square{File: -1, Rank: 3}); !p.IsEmpty() {
		t.Fatalf("off-board square returned a piece: %+v", p)
	}
	if p := b.PieceAt(core.Square{File: 8, Rank: 8}); !p.IsEmpty() {
		t.Fatalf("off-board square returned a piece: %+v", p)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := Start()
	c := b.Clone()

	c2 := c.Apply(mustMove(t, "e2e4"))
	if b.PieceAt(mustSquare(t, "e2")).IsEmpty() {
		t.Error("applying to a clone's copy must not touch the original")
	}
	if c2.PieceAt(mustSquare(t, "e4")).IsEmpty() {
		t.Error("clone did not accept the move")
	}
	if c.FEN() != b.FEN() {
		t.Errorf("clone FEN diverged: %q vs %q", c.FEN(), b.FEN())
	}
}
