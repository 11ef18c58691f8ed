package rules

import (
	"testing"

	"minichess/internal/core"
)

func TestPawnAttacksDiagonalsOnly(t *testing.T) {
	// White pawn e4 facing a black pawn on e5: the push square is
	// blocked, not attacked.
	b := mustBoard(t, "8/8/8/4p3/4P3/8/8/8 w - - 0 1")

	if IsAttacked(b, sq(t, "e5"), core.ColorWhite) {
		t.Error("pawn must not attack the square directly ahead")
	}
	for _, name := range []string{"d5", "f5"} {
		if !IsAttacked(b, sq(t, name), core.ColorWhite) {
			t.Errorf("pawn on e4 should attack %s", name)
		}
	}
	for _, name := range []string{"d4", "f4", "e4"} {
		if IsAttacked(b, sq(t, name), core.ColorBlack) {
			t.Errorf("black pawn on e5 should not attack %s", name)
		}
	}
}

func TestSlidingAttackBlocked(t *testing.T) {
	// Rook a1 sees a8 on an open file, but not past a blocker
	open := mustBoard(t, "8/8/8/8/8/8/8/R7 w - - 0 1")
	if !IsAttacked(open, sq(t, "a8"), core.ColorWhite) {
		t.Error("rook should attack along an open file")
	}

	blocked := mustBoard(t, "8/8/8/p7/8/8/8/R7 w - - 0 1")
	if !IsAttacked(blocked, sq(t, "a5"), core.ColorWhite) {
		t.Error("rook should attack the blocker itself")
	}
	if IsAttacked(blocked, sq(t, "a6"), core.ColorWhite) {
		t.Error("rook must not attack past a blocker")
	}
}

func TestInCheck(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		color core.Color
		want  bool
	}{
		{"rook gives check", "4k3/8/8/8/8/8/8/4R3 b - - 0 1", core.ColorBlack, true},
		{"knight gives check", "4k3/8/3N4/8/8/8/8/8 b - - 0 1", core.ColorBlack, true},
		{"blocked rook is no check", "4k3/4p3/8/8/8/8/8/4R3 b - - 0 1", core.ColorBlack, false},
		{"attacker's own king is safe", "4k3/8/8/8/8/8/8/4R3 b - - 0 1", core.ColorWhite, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBoard(t, tc.fen)
			if got := InCheck(b, tc.color); got != tc.want {
				t.Errorf("InCheck(%v) = %v, want %v", tc.color, got, tc.want)
			}
		})
	}
}

func TestLegalMovesExcludeSelfCheck(t *testing.T) {
	// The e4 knight is pinned against the white king by the black rook
	b := mustBoard(t, "4r3/8/8/8/4N3/8/8/4K3 w - - 0 1")

	if dests := LegalDestinations(b, sq(t, "e4")); len(dests) != 0 {
		t.Errorf("pinned knight should have no legal moves, got %v", names(dests))
	}

	// King moves into the rook's file stay illegal too
	if IsLegal(b, core.Move{From: sq(t, "e1"), To: sq(t, "d1")}) != true {
		t.Error("stepping off the attacked file should be legal")
	}
}

func TestKingMustEscapeCheck(t *testing.T) {
	// Checked king: only moves resolving the check survive the filter
	b := mustBoard(t, "8/8/8/8/8/8/4r3/4K3 w - - 0 1")

	legal := LegalMoves(b)
	dests, ok := legal[sq(t, "e1")]
	if !ok {
		t.Fatal("expected the king to have legal moves")
	}
	for _, d := range dests {
		next := b.Apply(core.Move{From: sq(t, "e1"), To: d})
		if InCheck(next, core.ColorWhite) {
			t.Errorf("move to %s leaves the king in check", d)
		}
	}
}
