package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"minichess/internal/board"
	"minichess/internal/core"
	"minichess/internal/game"

	"github.com/fatih/color"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdNew
	CmdResume
	CmdMove
	CmdShowMoves
	CmdUndo
	CmdColor
	CmdGlyphs
	CmdVerbose
	CmdHistory
	CmdHelp
	CmdQuit
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

// LineReader supplies user input lines. Satisfied by chzyer/readline's
// Instance and by the bufio-backed reader used in tests.
type LineReader interface {
	Readline() (string, error)
}

type scannerReader struct {
	scanner *bufio.Scanner
}

func (r *scannerReader) Readline() (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

// NewScannerReader wraps a plain reader as a LineReader.
func NewScannerReader(r io.Reader) LineReader {
	return &scannerReader{scanner: bufio.NewScanner(r)}
}

type ColorTheme string

const (
	ThemeOff   ColorTheme = "off"
	ThemeBrown ColorTheme = "brown"
	ThemeGreen ColorTheme = "green"
	ThemeGray  ColorTheme = "gray"
)

type themeColors struct {
	lightBg     string
	darkBg      string
	highlightBg string
	selectedBg  string
	white       string
	black       string
	reset       string
}

var themes = map[ColorTheme]themeColors{
	ThemeOff: {},
	ThemeBrown: {
		lightBg:     "\033[48;5;230m", // Beige
		darkBg:      "\033[48;5;94m",  // Brown
		highlightBg: "\033[48;5;107m", // Olive for legal destinations
		selectedBg:  "\033[48;5;227m", // Yellow for the selected square
		white:       "\033[97m",
		black:       "\033[30m",
		reset:       "\033[0m",
	},
	ThemeGreen: {
		lightBg:     "\033[48;5;157m", // Light green
		darkBg:      "\033[48;5;22m",  // Dark green
		highlightBg: "\033[48;5;143m",
		selectedBg:  "\033[48;5;227m",
		white:       "\033[97m",
		black:       "\033[30m",
		reset:       "\033[0m",
	},
	ThemeGray: {
		lightBg:     "\033[48;5;251m", // Light gray
		darkBg:      "\033[48;5;240m", // Dark gray
		highlightBg: "\033[48;5;108m",
		selectedBg:  "\033[48;5;227m",
		white:       "\033[97m",
		black:       "\033[30m",
		reset:       "\033[0m",
	},
}

// glyphs maps pieces to unicode chess symbols; the letter fallback uses
// FEN letters when the terminal cannot render the symbols.
var glyphs = map[core.Piece]rune{
	{Color: core.ColorWhite, Kind: core.King}:   '♔',
	{Color: core.ColorWhite, Kind: core.Queen}:  '♕',
	{Color: core.ColorWhite, Kind: core.Rook}:   '♖',
	{Color: core.ColorWhite, Kind: core.Bishop}: '♗',
	{Color: core.ColorWhite, Kind: core.Knight}: '♘',
	{Color: core.ColorWhite, Kind: core.Pawn}:   '♙',
	{Color: core.ColorBlack, Kind: core.King}:   '♚',
	{Color: core.ColorBlack, Kind: core.Queen}:  '♛',
	{Color: core.ColorBlack, Kind: core.Rook}:   '♜',
	{Color: core.ColorBlack, Kind: core.Bishop}: '♝',
	{Color: core.ColorBlack, Kind: core.Knight}: '♞',
	{Color: core.ColorBlack, Kind: core.Pawn}:   '♟',
}

var (
	errorText    = color.New(color.FgRed)
	noticeText   = color.New(color.FgYellow)
	gameOverText = color.New(color.FgRed, color.Bold)
)

type CLI struct {
	input     LineReader
	output    io.Writer
	theme     ColorTheme
	useGlyphs bool
	verbose   bool
}

func New(input LineReader, output io.Writer) *CLI {
	return &CLI{
		input:  input,
		output: output,
		theme:  ThemeOff,
	}
}

// Reads a command synchronously
func (c *CLI) GetCommand() (*Command, error) {
	line, err := c.input.Readline()
	if err == io.EOF {
		return &Command{Type: CmdQuit}, nil
	}
	if err != nil {
		return nil, err
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return &Command{Type: CmdNone}, nil
	}

	return c.parseCommand(line), nil
}

func (c *CLI) parseCommand(input string) *Command {
	parts := strings.Fields(input)
	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "new":
		return &Command{Type: CmdNew, Args: args}
	case "resume":
		return &Command{Type: CmdResume, Args: args, Raw: input}
	case "moves":
		return &Command{Type: CmdShowMoves, Args: args}
	case "undo":
		return &Command{Type: CmdUndo, Args: args}
	case "color":
		return &Command{Type: CmdColor, Args: args}
	case "glyphs":
		return &Command{Type: CmdGlyphs}
	case "verbose":
		return &Command{Type: CmdVerbose}
	case "history":
		return &Command{Type: CmdHistory}
	case "help", "?":
		return &Command{Type: CmdHelp}
	case "quit", "exit":
		return &Command{Type: CmdQuit}
	default:
		// Assume it's a move
		return &Command{Type: CmdMove, Args: []string{cmd}}
	}
}

func (c *CLI) SetTheme(theme ColorTheme) error {
	if _, ok := themes[theme]; !ok {
		return fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", theme)
	}
	c.theme = theme
	return nil
}

func (c *CLI) ToggleGlyphs() bool {
	c.useGlyphs = !c.useGlyphs
	return c.useGlyphs
}

func (c *CLI) ToggleVerbose() bool {
	c.verbose = !c.verbose
	return c.verbose
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	errorText.Fprintf(c.output, "Error: %v\n", err)
}

func (c *CLI) ShowPrompt(prompt string) {
	fmt.Fprint(c.output, prompt)
}

func (c *CLI) ReadLine() string {
	line, err := c.input.Readline()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func (c *CLI) pieceChar(p core.Piece) rune {
	if c.useGlyphs {
		if g, ok := glyphs[p]; ok {
			return g
		}
	}
	return rune(p.Letter())
}

// DisplayBoard renders the position without highlights.
func (c *CLI) DisplayBoard(b *board.Board) {
	c.displayBoard(b, core.Square{File: -1, Rank: -1}, nil)
}

// DisplayBoardHighlight renders the position with the selected square
// and its legal destinations marked.
func (c *CLI) DisplayBoardHighlight(b *board.Board, selected core.Square, dests []core.Square) {
	c.displayBoard(b, selected, dests)
}

func (c *CLI) displayBoard(b *board.Board, selected core.Square, dests []core.Square) {
	theme := themes[c.theme]
	highlighted := make(map[core.Square]bool, len(dests))
	for _, d := range dests {
		highlighted[d] = true
	}

	var sb strings.Builder
	sb.WriteString("\n  a b c d e f g h\n")

	for rank := 7; rank >= 0; rank-- {
		sb.WriteString(fmt.Sprintf("%d ", rank+1))
		for file := 0; file < 8; file++ {
			sq := core.Square{File: file, Rank: rank}
			p := b.PieceAt(sq)

			if c.theme == ThemeOff {
				switch {
				case sq == selected:
					sb.WriteString("()")
				case highlighted[sq] && p.IsEmpty():
					sb.WriteString("* ")
				case highlighted[sq]:
					sb.WriteString(fmt.Sprintf("%c!", c.pieceChar(p)))
				case p.IsEmpty():
					sb.WriteString(". ")
				default:
					sb.WriteString(fmt.Sprintf("%c ", c.pieceChar(p)))
				}
				continue
			}

			bg := theme.darkBg
			if (rank+file)%2 == 1 {
				bg = theme.lightBg
			}
			if highlighted[sq] {
				bg = theme.highlightBg
			}
			if sq == selected {
				bg = theme.selectedBg
			}

			if p.IsEmpty() {
				sb.WriteString(fmt.Sprintf("%s  %s", bg, theme.reset))
			} else {
				fg := theme.black
				if p.Color == core.ColorWhite {
					fg = theme.white
				}
				sb.WriteString(fmt.Sprintf("%s%s%c %s", bg, fg, c.pieceChar(p), theme.reset))
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", rank+1))
	}
	sb.WriteString("  a b c d e f g h\n")

	c.ShowMessage(sb.String())
}

func (c *CLI) ShowHelp() {
	help := `Commands:
  new              - Start a new game with player type selection
  resume <FEN>     - Resume from a specific board position
  <move>           - Make a move (e.g., e2e4, g1f3)
  moves <square>   - Show legal destinations of a piece (e.g., moves e2)
  undo [count]     - Undo last move(s), default 1
  color <theme>    - Set board color theme (off|brown|green|gray)
  glyphs           - Toggle unicode chess symbols / letters
  verbose          - Toggle detailed move information
  history          - Show game move history and positions
  quit/exit        - Exit the program
  help/?           - Show this help message

During any game:
  Press ENTER      - Execute computer move (when it's computer's turn)`

	c.ShowMessage(help)
}

func (c *CLI) ShowWelcome() {
	c.ShowMessage("Welcome to minichess! Simplified rules: no castling, no en passant, promotion is always to a queen.")
	c.ShowMessage("Commands: new, resume <FEN>, <move>, moves <square>, undo, quit/exit, history, help/?")
	c.ShowMessage("Press ENTER to execute computer moves when it's computer's turn.")
	c.ShowMessage("")
}

func (c *CLI) ShowGameHistory(g *game.Game) {
	c.ShowMessage(fmt.Sprintf("Starting FEN: %s\n", g.InitialFEN()))

	moves := g.Moves()
	for i := 0; i < len(moves); i += 2 {
		moveNum := i/2 + 1
		white := moves[i]
		if i+1 < len(moves) {
			c.ShowMessage(fmt.Sprintf("%d. %s | %s\n", moveNum, white, moves[i+1]))
		} else {
			c.ShowMessage(fmt.Sprintf("%d. %s | ...\n", moveNum, white))
		}
	}
	c.ShowMessage(fmt.Sprintf("Current FEN: %s\n", g.CurrentFEN()))
	c.ShowMessage(fmt.Sprintf("Game status: %s\n", g.Status()))
}

func (c *CLI) ShowComputerMove(result *game.MoveResult) {
	suffix := ""
	if result.Capture {
		suffix = " (capture)"
	}
	c.ShowMessage(fmt.Sprintf("Computer (%s): %s%s\n", result.Player, result.Move, suffix))
}

func (c *CLI) ShowHumanMove(move string) {
	if c.verbose {
		c.ShowMessage(fmt.Sprintf("Your move: %s\n", move))
	}
}

// ShowStatus prints the standing classification after a move.
func (c *CLI) ShowStatus(status core.Status, toMove core.Color) {
	if status == core.StatusCheck {
		noticeText.Fprintf(c.output, "%s to move: check!\n", colorName(toMove))
	}
}

func (c *CLI) ShowGameOver(status core.Status, winner core.Color) {
	switch status {
	case core.StatusCheckmate:
		gameOverText.Fprintf(c.output, "\nCheckmate! %s wins.\n", colorName(winner))
	case core.StatusStalemate:
		gameOverText.Fprintf(c.output, "\nStalemate! Draw.\n")
	default:
		gameOverText.Fprintf(c.output, "\nGame over: %s\n", status)
	}
	c.ShowMessage("Start a new game with 'new' or 'resume'.")
}

func colorName(c core.Color) string {
	if c == core.ColorWhite {
		return "White"
	}
	return "Black"
}
