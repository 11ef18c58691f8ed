// Package game owns a single session: the live board, the move history,
// the player seats and the derived status. The board is the single
// source of truth; transports receive it read-only and never retain a
// mutable reference, since every board mutation goes through Apply which
// copies.
package game

import (
	"fmt"

	"minichess/internal/board"
	"minichess/internal/core"
	"minichess/internal/policy"
	"minichess/internal/rules"
)

type Snapshot struct {
	FEN          string     // Board state at this point
	PreviousMove string     // Move that created this position (empty for initial)
	NextTurn     core.Color // Whose turn it is at this position
}

// MoveResult tracks the outcome of a move
type MoveResult struct {
	Move    string
	Player  core.Color
	Status  core.Status
	Capture bool
}

type Game struct {
	board      *board.Board
	snapshots  []Snapshot
	players    map[core.Color]*core.Player
	status     core.Status
	lastResult *MoveResult
}

// New starts a game on the given position. The initial status is
// evaluated immediately, so resuming into a mate or stalemate position
// is classified before any move is made.
func New(b *board.Board, whitePlayer, blackPlayer *core.Player) *Game {
	return &Game{
		board: b,
		snapshots: []Snapshot{
			{
				FEN:          b.FEN(),
				PreviousMove: "", // No move led to initial position
				NextTurn:     b.Turn(),
			},
		},
		players: map[core.Color]*core.Player{
			core.ColorWhite: whitePlayer,
			core.ColorBlack: blackPlayer,
		},
		status: rules.Evaluate(b),
	}
}

// NewFromFEN starts a game from a FEN position.
func NewFromFEN(fen string, whitePlayer, blackPlayer *core.Player) (*Game, error) {
	b, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return New(b, whitePlayer, blackPlayer), nil
}

func (g *Game) Board() *board.Board {
	return g.board
}

func (g *Game) Status() core.Status {
	return g.status
}

func (g *Game) Turn() core.Color {
	return g.board.Turn()
}

func (g *Game) Player(c core.Color) *core.Player {
	return g.players[c]
}

// NextPlayer returns the seat whose turn it is.
func (g *Game) NextPlayer() *core.Player {
	return g.players[g.board.Turn()]
}

func (g *Game) UpdatePlayers(whitePlayer, blackPlayer *core.Player) {
	g.players[core.ColorWhite] = whitePlayer
	g.players[core.ColorBlack] = blackPlayer
}

func (g *Game) LastResult() *MoveResult {
	return g.lastResult
}

func (g *Game) CurrentFEN() string {
	return g.snapshots[len(g.snapshots)-1].FEN
}

func (g *Game) InitialFEN() string {
	return g.snapshots[0].FEN
}

func (g *Game) Moves() []string {
	moves := []string{}
	for i := 1; i < len(g.snapshots); i++ {
		if g.snapshots[i].PreviousMove != "" {
			moves = append(moves, g.snapshots[i].PreviousMove)
		}
	}
	return moves
}

// LegalDestinations returns the legal destinations of one origin square
// for the side to move.
func (g *Game) LegalDestinations(from core.Square) []core.Square {
	return rules.LegalDestinations(g.board, from)
}

// ApplyMove validates m against the current legal move set, applies it,
// and reclassifies the position. Terminal games accept no further moves.
func (g *Game) ApplyMove(m core.Move) (*MoveResult, error) {
	if g.status.Terminal() {
		return nil, fmt.Errorf("%w: %s", core.ErrGameOver, g.status)
	}
	if !rules.IsLegal(g.board, m) {
		return nil, fmt.Errorf("%w: %s", core.ErrIllegalMove, m)
	}

	mover := g.board.Turn()
	capture := !g.board.PieceAt(m.To).IsEmpty()

	g.board = g.board.Apply(m)
	g.status = rules.Evaluate(g.board)
	g.snapshots = append(g.snapshots, Snapshot{
		FEN:          g.board.FEN(),
		PreviousMove: m.String(),
		NextTurn:     g.board.Turn(),
	})

	g.lastResult = &MoveResult{
		Move:    m.String(),
		Player:  mover,
		Status:  g.status,
		Capture: capture,
	}
	return g.lastResult, nil
}

// OpponentMove asks the picker for the automated side's move and applies
// it. Calling it on a terminal game or when a human is to move is a
// caller error.
func (g *Game) OpponentMove(p *policy.Picker) (*MoveResult, error) {
	if g.status.Terminal() {
		return nil, fmt.Errorf("%w: %s", core.ErrGameOver, g.status)
	}
	if g.NextPlayer().Type != core.PlayerComputer {
		return nil, core.ErrNotComputerTurn
	}

	m, err := p.Choose(g.board, rules.LegalMoves(g.board))
	if err != nil {
		return nil, err
	}
	return g.ApplyMove(m)
}

// UndoMoves rewinds count plies by truncating the snapshot history and
// restoring the board from the surviving tail.
func (g *Game) UndoMoves(count int) error {
	if count < 1 {
		return fmt.Errorf("invalid undo count: %d", count)
	}

	availableMoves := len(g.snapshots) - 1
	if availableMoves < count {
		return fmt.Errorf("cannot undo %d moves: only %d moves available", count, availableMoves)
	}

	g.snapshots = g.snapshots[:len(g.snapshots)-count]

	b, err := board.ParseFEN(g.CurrentFEN())
	if err != nil {
		return fmt.Errorf("corrupt snapshot: %w", err)
	}
	g.board = b
	g.status = rules.Evaluate(b)
	g.lastResult = nil
	return nil
}
