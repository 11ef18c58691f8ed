package http

import (
	"minichess/internal/core"
)

// Request types

type CreateGameRequest struct {
	White core.PlayerType `json:"white" validate:"required,oneof=1 2"` // 1=human, 2=computer
	Black core.PlayerType `json:"black" validate:"required,oneof=1 2"`
	FEN   string          `json:"fen,omitempty" validate:"omitempty,max=100"`
}

type MoveRequest struct {
	Move string `json:"move" validate:"required,min=4,max=5"` // coordinate form: "e2e4"
}

type UndoRequest struct {
	Count int `json:"count,omitempty" validate:"omitempty,min=1,max=300"` // default: 1
}

// Response types

type GameResponse struct {
	GameID   string      `json:"gameId"`
	FEN      string      `json:"fen"`
	Turn     string      `json:"turn"`   // "w" or "b"
	Status   string      `json:"status"` // "in_progress", "check", "checkmate", "stalemate"
	Winner   string      `json:"winner,omitempty"`
	Moves    []string    `json:"moves"`
	Players  PlayersInfo `json:"players"`
	LastMove *MoveInfo   `json:"lastMove,omitempty"`
}

type PlayersInfo struct {
	White string `json:"white"` // "human" or "computer"
	Black string `json:"black"`
}

type MoveInfo struct {
	Move    string `json:"move"`
	Player  string `json:"player"` // "w" or "b"
	Status  string `json:"status"`
	Capture bool   `json:"capture"`
}

type LegalDestinationsResponse struct {
	From         string   `json:"from"`
	Destinations []string `json:"destinations"`
}

type BoardResponse struct {
	FEN   string `json:"fen"`
	Board string `json:"board"` // ASCII representation
}

type WaitResponse struct {
	Changed bool `json:"changed"`
}

// GameSummary is one row of the persisted games listing.
type GameSummary struct {
	GameID     string `json:"gameId"`
	InitialFEN string `json:"initialFen"`
	White      string `json:"white"` // "human" or "computer"
	Black      string `json:"black"`
	Result     string `json:"result,omitempty"` // "checkmate", "stalemate" or empty while live
	StartedAt  string `json:"startedAt"`        // RFC 3339
}

type GameListResponse struct {
	Games []GameSummary `json:"games"`
}

// HistoryMove is one persisted move of a game's stored log.
type HistoryMove struct {
	Number  int    `json:"number"`
	Move    string `json:"move"`
	Player  string `json:"player"` // "w" or "b"
	FEN     string `json:"fen"`
	Capture bool   `json:"capture"`
	At      string `json:"at"` // RFC 3339
}

type MoveHistoryResponse struct {
	GameID string        `json:"gameId"`
	Moves  []HistoryMove `json:"moves"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// Error codes
const (
	ErrGameNotFound      = "GAME_NOT_FOUND"
	ErrInvalidMove       = "INVALID_MOVE"
	ErrNotHumanTurn      = "NOT_HUMAN_TURN"
	ErrNotComputerTurn   = "NOT_COMPUTER_TURN"
	ErrGameOver          = "GAME_OVER"
	ErrRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrStorageDisabled   = "STORAGE_DISABLED"
	ErrInvalidContent    = "INVALID_CONTENT_TYPE"
	ErrInvalidRequest    = "INVALID_REQUEST"
	ErrInternalError     = "INTERNAL_ERROR"
)
