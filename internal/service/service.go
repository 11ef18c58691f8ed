// Package service is the concurrency boundary around the rules core: a
// registry of games behind one lock, with optional SQLite persistence
// and change notification for long-polling clients. The core itself is
// synchronous and unsynchronized; every call into it goes through this
// lock.
package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"minichess/internal/board"
	"minichess/internal/core"
	"minichess/internal/game"
	"minichess/internal/policy"
	"minichess/internal/storage"

	"github.com/google/uuid"
)

type Service struct {
	games  map[string]*game.Game
	mu     sync.RWMutex
	store  *storage.Store // nil if persistence disabled
	waiter *WaitRegistry
	picker *policy.Picker
}

// New creates a new service instance with optional storage. The
// opponent picker is seeded from the clock; tests that need
// deterministic picks use NewWithPicker.
func New(store *storage.Store) (*Service, error) {
	return NewWithPicker(store, policy.New(rand.New(rand.NewSource(time.Now().UnixNano()))))
}

func NewWithPicker(store *storage.Store, picker *policy.Picker) (*Service, error) {
	return &Service{
		games:  make(map[string]*game.Game),
		store:  store,
		waiter: NewWaitRegistry(),
		picker: picker,
	}, nil
}

// NewGame creates a game with the given per-color player types. An
// optional FEN resumes from that position instead of the standard
// starting position.
func (s *Service) NewGame(id string, whiteType, blackType core.PlayerType, fen ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[id]; exists {
		return fmt.Errorf("game %s already exists", id)
	}

	whitePlayer := core.NewPlayer(core.PlayerConfig{Type: whiteType}, core.ColorWhite)
	blackPlayer := core.NewPlayer(core.PlayerConfig{Type: blackType}, core.ColorBlack)

	var g *game.Game
	if len(fen) > 0 && fen[0] != "" {
		var err error
		g, err = game.NewFromFEN(fen[0], whitePlayer, blackPlayer)
		if err != nil {
			return fmt.Errorf("invalid position: %w", err)
		}
	} else {
		g = game.New(board.Start(), whitePlayer, blackPlayer)
	}
	s.games[id] = g

	if s.store != nil {
		s.store.RecordNewGame(storage.GameRecord{
			GameID:        id,
			InitialFEN:    g.InitialFEN(),
			WhitePlayerID: whitePlayer.ID,
			WhiteType:     int(whitePlayer.Type),
			BlackPlayerID: blackPlayer.ID,
			BlackType:     int(blackPlayer.Type),
			StartTimeUTC:  time.Now().UTC(),
		})
	}

	return nil
}

// GetGame retrieves a game by ID
func (s *Service) GetGame(gameID string) (*game.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
	}
	return g, nil
}

// GetCurrentBoard returns the game's live position.
func (s *Service) GetCurrentBoard(gameID string) (*board.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
	}
	return g.Board(), nil
}

// GenerateGameID creates a new unique game ID
func (s *Service) GenerateGameID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Ensure UUID uniqueness (handle potential conflicts)
	for {
		id := uuid.New().String()
		if _, exists := s.games[id]; !exists {
			return id
		}
	}
}

// MakeHumanMove applies a human move in coordinate notation.
func (s *Service) MakeHumanMove(gameID, notation string) (*game.MoveResult, error) {
	m, err := core.ParseMove(notation)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrIllegalMove, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
	}
	if g.NextPlayer().Type != core.PlayerHuman {
		return nil, core.ErrNotHumanTurn
	}

	result, err := g.ApplyMove(m)
	if err != nil {
		return nil, err
	}

	s.recordMove(gameID, g, result)
	s.waiter.NotifyGame(gameID, len(g.Moves()))
	return result, nil
}

// MakeComputerMove asks the opponent policy for a move and applies it.
func (s *Service) MakeComputerMove(gameID string) (*game.MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
	}

	result, err := g.OpponentMove(s.picker)
	if err != nil {
		return nil, err
	}

	s.recordMove(gameID, g, result)
	s.waiter.NotifyGame(gameID, len(g.Moves()))
	return result, nil
}

// LegalDestinations returns the legal destinations of one origin square.
func (s *Service) LegalDestinations(gameID, squareName string) ([]core.Square, error) {
	from, err := core.ParseSquare(squareName)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
	}
	return g.LegalDestinations(from), nil
}

// Undo removes the specified number of moves from game history
func (s *Service) Undo(gameID string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
	}

	originalMoveCount := len(g.Moves())

	if err := g.UndoMoves(count); err != nil {
		return err
	}

	s.waiter.NotifyGame(gameID, len(g.Moves()))

	if s.store != nil {
		s.store.DeleteUndoneMoves(gameID, originalMoveCount-count)
		s.store.RecordResult(gameID, "")
	}

	return nil
}

// DeleteGame removes a game from memory
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[gameID]; !ok {
		return fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
	}

	// Notify and remove all waiters before deletion
	s.waiter.RemoveGame(gameID)

	delete(s.games, gameID)
	return nil
}

// WaitForChange registers a long-polling client for the next state
// change of a game. The returned channel receives one value on change,
// timeout or game deletion.
func (s *Service) WaitForChange(ctx context.Context, gameID string, moveCount int) <-chan struct{} {
	return s.waiter.RegisterWait(gameID, moveCount, ctx)
}

// ListGames returns the persisted game records, optionally filtered by
// game or player ID. Empty filters (or "*") match everything.
func (s *Service) ListGames(gameID, playerID string) ([]storage.GameRecord, error) {
	if s.store == nil {
		return nil, core.ErrStorageDisabled
	}
	return s.store.QueryGames(gameID, playerID)
}

// MoveHistory returns the persisted move log of one game in play order.
// Unlike Game.Moves this survives server restarts and records captures
// and timestamps.
func (s *Service) MoveHistory(gameID string) ([]storage.MoveRecord, error) {
	if s.store == nil {
		return nil, core.ErrStorageDisabled
	}

	s.mu.RLock()
	_, live := s.games[gameID]
	s.mu.RUnlock()

	moves, err := s.store.QueryMoves(gameID)
	if err != nil {
		return nil, err
	}
	if !live && len(moves) == 0 {
		if games, err := s.store.QueryGames(gameID, ""); err != nil || len(games) == 0 {
			return nil, fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
		}
	}
	return moves, nil
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// Close cleans up resources
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.waiter.Shutdown(2 * time.Second)
	s.games = make(map[string]*game.Game)

	if s.store != nil {
		return s.store.Close()
	}

	return nil
}

// recordMove persists an applied move and, on a terminal status, the
// game result. Callers hold the write lock.
func (s *Service) recordMove(gameID string, g *game.Game, result *game.MoveResult) {
	if s.store == nil {
		return
	}

	s.store.RecordMove(storage.MoveRecord{
		GameID:       gameID,
		MoveNumber:   len(g.Moves()),
		MoveUCI:      result.Move,
		FENAfterMove: g.CurrentFEN(),
		PlayerColor:  result.Player.String(),
		Capture:      result.Capture,
		MoveTimeUTC:  time.Now().UTC(),
	})

	if result.Status.Terminal() {
		s.store.RecordResult(gameID, result.Status.String())
	}
}
