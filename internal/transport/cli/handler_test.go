package cli

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"minichess/internal/cli"
	"minichess/internal/policy"
	"minichess/internal/service"
)

// runSession feeds a scripted session through the handler and returns
// everything it printed.
func runSession(t *testing.T, script ...string) string {
	t.Helper()

	svc, err := service.NewWithPicker(nil, policy.New(rand.New(rand.NewSource(21))))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { svc.Close() })

	out := &bytes.Buffer{}
	input := strings.Join(script, "\n") + "\n"
	view := cli.New(cli.NewScannerReader(strings.NewReader(input)), out)

	New(svc, view).Run()
	return out.String()
}

func TestSessionHumanVsHuman(t *testing.T) {
	out := runSession(t,
		"new", "h", "h",
		"e2e4",
		"e7e5",
		"history",
		"quit",
	)

	if !strings.Contains(out, "Game started.") {
		t.Errorf("missing game start message:\n%s", out)
	}
	if !strings.Contains(out, "1. e2e4 | e7e5") {
		t.Errorf("missing history line:\n%s", out)
	}
	if !strings.Contains(out, "[b]> ") {
		t.Errorf("missing black turn prompt:\n%s", out)
	}
}

func TestSessionIllegalMoveReprompts(t *testing.T) {
	out := runSession(t,
		"new", "h", "h",
		"e2e5",
		"e2e4",
		"quit",
	)

	if !strings.Contains(out, "invalid move") {
		t.Errorf("illegal move not reported:\n%s", out)
	}
	// The session continued and accepted the corrected move
	if !strings.Contains(out, "[b]> ") {
		t.Errorf("session did not continue after illegal move:\n%s", out)
	}
}

func TestSessionComputerMovesOnEnter(t *testing.T) {
	out := runSession(t,
		"new", "h", "c",
		"e2e4",
		"", // ENTER executes the computer reply
		"quit",
	)

	if !strings.Contains(out, "ENTER to execute computer move") {
		t.Errorf("missing computer turn hint:\n%s", out)
	}
	if !strings.Contains(out, "Computer (b): ") {
		t.Errorf("computer move not announced:\n%s", out)
	}
}

func TestSessionCheckmateEndsGame(t *testing.T) {
	out := runSession(t,
		"new", "h", "h",
		"f2f3", "e7e5", "g2g4", "d8h4",
		"quit",
	)

	if !strings.Contains(out, "Checkmate! Black wins.") {
		t.Errorf("checkmate not announced:\n%s", out)
	}
	// The finished game is cleared; the prompt falls back to idle
	if !strings.Contains(out, "Start a new game with 'new' or 'resume'.") {
		t.Errorf("missing post-game hint:\n%s", out)
	}
}

func TestSessionResumeTerminalPosition(t *testing.T) {
	out := runSession(t,
		"resume 7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", "h", "h",
		"quit",
	)

	if !strings.Contains(out, "Stalemate! Draw.") {
		t.Errorf("resumed stalemate not classified:\n%s", out)
	}
}

func TestSessionShowMoves(t *testing.T) {
	out := runSession(t,
		"new", "h", "h",
		"moves e2",
		"moves e5",
		"quit",
	)

	if !strings.Contains(out, "e2: e3 e4") {
		t.Errorf("legal destinations not listed:\n%s", out)
	}
	if !strings.Contains(out, "No legal moves from e5.") {
		t.Errorf("empty square not reported:\n%s", out)
	}
}

func TestSessionUndo(t *testing.T) {
	out := runSession(t,
		"new", "h", "h",
		"e2e4",
		"undo",
		"undo", // nothing left
		"quit",
	)

	if !strings.Contains(out, "Move undone") {
		t.Errorf("undo not confirmed:\n%s", out)
	}
	if !strings.Contains(out, "cannot undo") {
		t.Errorf("over-undo not rejected:\n%s", out)
	}
}

func TestSessionCommandsWithoutGame(t *testing.T) {
	out := runSession(t,
		"e2e4",
		"undo",
		"quit",
	)

	if !strings.Contains(out, "No active game.") {
		t.Errorf("missing idle guard:\n%s", out)
	}
}
