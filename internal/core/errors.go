package core

import "errors"

var (
	ErrIllegalMove     = errors.New("illegal move")
	ErrGameOver        = errors.New("game over")
	ErrNotComputerTurn = errors.New("not computer's turn")
	ErrNotHumanTurn    = errors.New("not human player's turn")
	ErrGameNotFound    = errors.New("game not found")
	ErrNoLegalMoves    = errors.New("no legal moves")
	ErrStorageDisabled = errors.New("persistent storage disabled")
)
