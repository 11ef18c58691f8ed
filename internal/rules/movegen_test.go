package rules

import (
	"sort"
	"testing"

	"minichess/internal/board"
	"minichess/internal/core"

	"github.com/google/go-cmp/cmp"
)

func mustBoard(t *testing.T, fen string) *board.Board {
	t.Helper()
	b, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func sq(t *testing.T, name string) core.Square {
	t.Helper()
	s, err := core.ParseSquare(name)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func names(squares []core.Square) []string {
	out := make([]string, 0, len(squares))
	for _, s := range squares {
		out = append(out, s.String())
	}
	sort.Strings(out)
	return out
}

func squareSet(t *testing.T, list ...string) []string {
	t.Helper()
	sort.Strings(list)
	return list
}

func TestInitialPositionHasTwentyLegalMoves(t *testing.T) {
	b := board.Start()

	legal := LegalMoves(b)
	total := 0
	for _, dests := range legal {
		total += len(dests)
	}

	if total != 20 {
		t.Fatalf("expected 20 legal moves in the starting position, got %d", total)
	}
}

func TestPawnPushes(t *testing.T) {
	b := board.Start()

	if diff := cmp.Diff(squareSet(t, "e3", "e4"), names(Destinations(b, sq(t, "e2")))); diff != "" {
		t.Errorf("e2 pawn destinations mismatch (-want +got):\n%s", diff)
	}

	// Double push is blocked by an occupant on the intermediate square,
	// single push by one on the destination.
	blocked := mustBoard(t, "8/8/8/8/8/4n3/4P3/8 w - - 0 1")
	if got := Destinations(blocked, sq(t, "e2")); len(got) != 0 {
		t.Errorf("expected no pushes for blocked pawn, got %v", names(got))
	}

	jumpBlocked := mustBoard(t, "8/8/8/8/4n3/8/4P3/8 w - - 0 1")
	if diff := cmp.Diff(squareSet(t, "e3"), names(Destinations(jumpBlocked, sq(t, "e2")))); diff != "" {
		t.Errorf("jump-blocked pawn mismatch (-want +got):\n%s", diff)
	}

	// Away from the home rank only the single push remains
	advanced := mustBoard(t, "8/8/8/8/8/4P3/8/8 w - - 0 1")
	if diff := cmp.Diff(squareSet(t, "e4"), names(Destinations(advanced, sq(t, "e3")))); diff != "" {
		t.Errorf("advanced pawn mismatch (-want +got):\n%s", diff)
	}
}

func TestPawnCapturesDiagonallyOnly(t *testing.T) {
	// Enemy pieces on both diagonals and one straight ahead
	b := mustBoard(t, "8/8/8/3rnr2/4P3/8/8/8 w - - 0 1")

	if diff := cmp.Diff(squareSet(t, "d5", "f5"), names(Destinations(b, sq(t, "e4")))); diff != "" {
		t.Errorf("pawn capture mismatch (-want +got):\n%s", diff)
	}

	// Own pieces on the diagonals are not capturable
	own := mustBoard(t, "8/8/8/3N1N2/4P3/8/8/8 w - - 0 1")
	if diff := cmp.Diff(squareSet(t, "e5"), names(Destinations(own, sq(t, "e4")))); diff != "" {
		t.Errorf("own-piece diagonal mismatch (-want +got):\n%s", diff)
	}
}

func TestBlackPawnMovesDownBoard(t *testing.T) {
	b := mustBoard(t, "8/4p3/8/8/8/8/8/8 b - - 0 1")
	if diff := cmp.Diff(squareSet(t, "e6", "e5"), names(Destinations(b, sq(t, "e7")))); diff != "" {
		t.Errorf("black pawn mismatch (-want +got):\n%s", diff)
	}
}

func TestKnightOffsets(t *testing.T) {
	center := mustBoard(t, "8/8/8/8/3N4/8/8/8 w - - 0 1")
	want := squareSet(t, "b3", "b5", "c2", "c6", "e2", "e6", "f3", "f5")
	if diff := cmp.Diff(want, names(Destinations(center, sq(t, "d4")))); diff != "" {
		t.Errorf("centered knight mismatch (-want +got):\n%s", diff)
	}

	// Board edges clip, never wrap
	corner := mustBoard(t, "8/8/8/8/8/8/8/N7 w - - 0 1")
	if diff := cmp.Diff(squareSet(t, "b3", "c2"), names(Destinations(corner, sq(t, "a1")))); diff != "" {
		t.Errorf("cornered knight mismatch (-want +got):\n%s", diff)
	}

	// Knights jump over occupants but never land on their own color
	crowded := mustBoard(t, "8/8/8/8/8/8/1PP5/N7 w - - 0 1")
	if diff := cmp.Diff(squareSet(t, "b3"), names(Destinations(crowded, sq(t, "a1")))); diff != "" {
		t.Errorf("crowded knight mismatch (-want +got):\n%s", diff)
	}
}

func TestSlidingStopsAtFirstOccupant(t *testing.T) {
	// Rook on a1: own pawn on a4, enemy rook on d1
	b := mustBoard(t, "8/8/8/8/P7/8/8/R2r4 w - - 0 1")

	want := squareSet(t, "a2", "a3", "b1", "c1", "d1") // d1 is a capture, a4 is not passable
	if diff := cmp.Diff(want, names(Destinations(b, sq(t, "a1")))); diff != "" {
		t.Errorf("rook slide mismatch (-want +got):\n%s", diff)
	}
}

func TestBishopAndQueenRays(t *testing.T) {
	b := mustBoard(t, "8/8/8/8/3B4/8/1p6/8 w - - 0 1")
	want := squareSet(t, "a7", "b6", "c5", "e3", "f2", "g1", "c3", "b2", "e5", "f6", "g7", "h8")
	if diff := cmp.Diff(want, names(Destinations(b, sq(t, "d4")))); diff != "" {
		t.Errorf("bishop mismatch (-want +got):\n%s", diff)
	}

	q := mustBoard(t, "8/8/8/8/7Q/8/8/8 w - - 0 1")
	if got := len(Destinations(q, sq(t, "h4"))); got != 21 {
		t.Errorf("expected 21 queen moves from h4 on an empty board, got %d", got)
	}
}

func TestKingSteps(t *testing.T) {
	b := mustBoard(t, "8/8/8/8/8/8/8/4K3 w - - 0 1")
	want := squareSet(t, "d1", "d2", "e2", "f1", "f2")
	if diff := cmp.Diff(want, names(Destinations(b, sq(t, "e1")))); diff != "" {
		t.Errorf("king step mismatch (-want +got):\n%s", diff)
	}
}

func TestDestinationsEmptySquare(t *testing.T) {
	b := board.Start()
	if got := Destinations(b, sq(t, "e4")); len(got) != 0 {
		t.Fatalf("expected no destinations for an empty square, got %v", names(got))
	}
}
