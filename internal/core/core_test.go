package core

import "testing"

func TestParseSquare(t *testing.T) {
	tests := []struct {
		input string
		file  int
		rank  int
		ok    bool
	}{
		{"a1", 0, 0, true},
		{"h8", 7, 7, true},
		{"e4", 4, 3, true},
		{"i1", 0, 0, false},
		{"a9", 0, 0, false},
		{"a", 0, 0, false},
		{"", 0, 0, false},
		{"4e", 0, 0, false},
	}

	for _, tc := range tests {
		s, err := ParseSquare(tc.input)
		if tc.ok != (err == nil) {
			t.Errorf("ParseSquare(%q): err = %v, want ok=%v", tc.input, err, tc.ok)
			continue
		}
		if tc.ok && (s.File != tc.file || s.Rank != tc.rank) {
			t.Errorf("ParseSquare(%q) = %+v, want file=%d rank=%d", tc.input, s, tc.file, tc.rank)
		}
		if tc.ok && s.String() != tc.input {
			t.Errorf("round trip %q -> %q", tc.input, s.String())
		}
	}
}

func TestParseMove(t *testing.T) {
	m, err := ParseMove("e2e4")
	if err != nil {
		t.Fatal(err)
	}
	if m.String() != "e2e4" {
		t.Errorf("String() = %q", m.String())
	}

	// A trailing promotion letter is tolerated; promotion is always to
	// a queen regardless of the letter.
	for _, suffixed := range []string{"a7a8q", "a7a8r", "a7a8b", "a7a8n"} {
		if _, err := ParseMove(suffixed); err != nil {
			t.Errorf("promotion suffix %q rejected: %v", suffixed, err)
		}
	}

	for _, bad := range []string{"", "e2", "e2e9", "e2x4", "e2e4e5", "e2e4x", "e2e4Q", "e2e4k"} {
		if _, err := ParseMove(bad); err == nil {
			t.Errorf("ParseMove(%q) should fail", bad)
		}
	}
}

func TestPieceLetters(t *testing.T) {
	tests := []struct {
		piece  Piece
		letter byte
	}{
		{Piece{Color: ColorWhite, Kind: King}, 'K'},
		{Piece{Color: ColorBlack, Kind: King}, 'k'},
		{Piece{Color: ColorWhite, Kind: Pawn}, 'P'},
		{Piece{Color: ColorBlack, Kind: Queen}, 'q'},
		{Piece{Color: ColorWhite, Kind: Knight}, 'N'},
	}

	for _, tc := range tests {
		if got := tc.piece.Letter(); got != tc.letter {
			t.Errorf("Letter(%+v) = %q, want %q", tc.piece, got, tc.letter)
		}
		if back := PieceFromLetter(tc.letter); back != tc.piece {
			t.Errorf("PieceFromLetter(%q) = %+v, want %+v", tc.letter, back, tc.piece)
		}
	}

	if p := PieceFromLetter('x'); !p.IsEmpty() {
		t.Error("unknown letter should map to the empty piece")
	}
	if (Piece{}).Letter() != 0 {
		t.Error("empty piece has no letter")
	}
}

func TestColorOpposite(t *testing.T) {
	if ColorWhite.Opposite() != ColorBlack || ColorBlack.Opposite() != ColorWhite {
		t.Error("Opposite should swap colors")
	}
}
