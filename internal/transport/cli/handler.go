package cli

import (
	"fmt"
	"strconv"
	"strings"

	"minichess/internal/cli"
	"minichess/internal/core"
	"minichess/internal/service"
)

type CLIHandler struct {
	svc    *service.Service
	view   *cli.CLI
	gameID string
}

func New(svc *service.Service, view *cli.CLI) *CLIHandler {
	return &CLIHandler{
		svc:  svc,
		view: view,
	}
}

// Main game loop - simple command processing
func (h *CLIHandler) Run() {
	for {
		h.view.ShowPrompt(h.getPrompt())

		cmd, err := h.view.GetCommand()
		if err != nil {
			break
		}

		if !h.ProcessCommand(cmd) {
			break
		}
	}
}

// Generates the appropriate command prompt
func (h *CLIHandler) getPrompt() string {
	prompt := "> "
	if h.gameID != "" {
		g, err := h.svc.GetGame(h.gameID)
		if err == nil && !g.Status().Terminal() {
			prompt = fmt.Sprintf("[%s]> ", g.Turn())
			if g.NextPlayer().Type == core.PlayerComputer {
				prompt = "ENTER to execute computer move\n" + prompt
			}
		}
	}
	return prompt
}

// Handles user commands - returns false to exit
func (h *CLIHandler) ProcessCommand(cmd *cli.Command) bool {
	switch cmd.Type {
	case cli.CmdQuit:
		return false

	case cli.CmdNone:
		// Empty command triggers computer move if it's computer's turn
		if h.gameID != "" {
			g, err := h.svc.GetGame(h.gameID)
			if err == nil && !g.Status().Terminal() &&
				g.NextPlayer().Type == core.PlayerComputer {
				h.executeComputerMove()
			}
		}
		return true

	case cli.CmdNew:
		return h.handleNewGame("")

	case cli.CmdResume:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: resume <FEN string>")
			return true
		}
		return h.handleNewGame(strings.Join(cmd.Args, " "))

	case cli.CmdMove:
		h.handleMove(cmd.Args[0])

	case cli.CmdShowMoves:
		h.handleShowMoves(cmd.Args)

	case cli.CmdUndo:
		h.handleUndo(cmd.Args)

	case cli.CmdColor:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: color <off|brown|green|gray>")
			return true
		}

		theme := cli.ColorTheme(cmd.Args[0])
		if err := h.view.SetTheme(theme); err != nil {
			h.view.ShowError(err)
		} else {
			h.view.ShowMessage(fmt.Sprintf("Color theme set to: %s", theme))
			h.redrawBoard()
		}

	case cli.CmdGlyphs:
		on := h.view.ToggleGlyphs()
		h.view.ShowMessage(fmt.Sprintf("Unicode glyphs: %t", on))
		h.redrawBoard()

	case cli.CmdVerbose:
		verbose := h.view.ToggleVerbose()
		h.view.ShowMessage(fmt.Sprintf("Verbose mode: %t", verbose))

	case cli.CmdHistory:
		if h.gameID == "" {
			h.view.ShowMessage("No active game.")
			return true
		}
		g, _ := h.svc.GetGame(h.gameID)
		h.view.ShowGameHistory(g)

	case cli.CmdHelp:
		h.view.ShowHelp()
	}

	return true
}

func (h *CLIHandler) handleMove(notation string) {
	if h.gameID == "" {
		h.view.ShowMessage("No active game. Use 'new' or 'resume <FEN>'.")
		return
	}

	g, _ := h.svc.GetGame(h.gameID)
	if g.NextPlayer().Type != core.PlayerHuman {
		h.view.ShowMessage("It's not a human player's turn. Press ENTER to execute computer move.")
		return
	}

	result, err := h.svc.MakeHumanMove(h.gameID, notation)
	if err != nil {
		// An illegal move never ends the session; re-prompt
		h.view.ShowError(fmt.Errorf("invalid move: %v", err))
		return
	}

	h.view.ShowHumanMove(result.Move)
	h.redrawBoard()
	h.afterMove(result.Status)
}

// handleShowMoves prints and highlights the legal destinations of one
// square.
func (h *CLIHandler) handleShowMoves(args []string) {
	if h.gameID == "" {
		h.view.ShowMessage("No active game.")
		return
	}
	if len(args) < 1 {
		h.view.ShowMessage("Usage: moves <square>  (e.g., moves e2)")
		return
	}

	dests, err := h.svc.LegalDestinations(h.gameID, args[0])
	if err != nil {
		h.view.ShowError(err)
		return
	}
	if len(dests) == 0 {
		h.view.ShowMessage(fmt.Sprintf("No legal moves from %s.", args[0]))
		return
	}

	from, _ := core.ParseSquare(args[0])
	b, _ := h.svc.GetCurrentBoard(h.gameID)
	h.view.DisplayBoardHighlight(b, from, dests)

	names := make([]string, 0, len(dests))
	for _, d := range dests {
		names = append(names, d.String())
	}
	h.view.ShowMessage(fmt.Sprintf("%s: %s", args[0], strings.Join(names, " ")))
}

func (h *CLIHandler) handleUndo(args []string) {
	if h.gameID == "" {
		h.view.ShowMessage("No active game.")
		return
	}

	count := 1
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			count = n
		} else {
			h.view.ShowMessage("Invalid undo count. Usage: undo [count]")
			return
		}
	}

	if err := h.svc.Undo(h.gameID, count); err != nil {
		h.view.ShowError(err)
		return
	}

	if count == 1 {
		h.view.ShowMessage("Move undone")
	} else {
		h.view.ShowMessage(fmt.Sprintf("%d moves undone", count))
	}
	h.redrawBoard()
}

func (h *CLIHandler) executeComputerMove() {
	result, err := h.svc.MakeComputerMove(h.gameID)
	if err != nil {
		h.view.ShowError(fmt.Errorf("opponent error: %v", err))
		return
	}

	h.view.ShowComputerMove(result)
	h.redrawBoard()
	h.afterMove(result.Status)
}

// afterMove surfaces check and terminal classifications.
func (h *CLIHandler) afterMove(status core.Status) {
	g, err := h.svc.GetGame(h.gameID)
	if err != nil {
		return
	}

	if status.Terminal() {
		h.view.ShowGameOver(status, g.Turn().Opposite())
		h.gameID = ""
		return
	}
	h.view.ShowStatus(status, g.Turn())
}

func (h *CLIHandler) redrawBoard() {
	if h.gameID == "" {
		return
	}
	if b, err := h.svc.GetCurrentBoard(h.gameID); err == nil {
		h.view.DisplayBoard(b)
	}
}

// Starts a new game with player type selection
func (h *CLIHandler) handleNewGame(fen string) bool {
	h.view.ShowPrompt("Select White player (h/c): ")
	whiteType := parsePlayerType(h.view.ReadLine())

	h.view.ShowPrompt("Select Black player (h/c): ")
	blackType := parsePlayerType(h.view.ReadLine())

	h.gameID = h.svc.GenerateGameID()
	var fenArg []string
	if fen != "" {
		fenArg = []string{fen}
	}

	if err := h.svc.NewGame(h.gameID, whiteType, blackType, fenArg...); err != nil {
		h.view.ShowError(fmt.Errorf("could not start the game: %v", err))
		h.gameID = ""
		return true
	}

	h.view.ShowMessage("Game started.")
	h.redrawBoard()

	// A resumed position may already be decided
	if g, err := h.svc.GetGame(h.gameID); err == nil && g.Status().Terminal() {
		h.view.ShowGameOver(g.Status(), g.Turn().Opposite())
		h.gameID = ""
	}

	return true
}

func parsePlayerType(input string) core.PlayerType {
	if input == "c" || input == "computer" {
		return core.PlayerComputer
	}
	return core.PlayerHuman
}
