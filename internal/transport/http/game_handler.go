package http

import (
	"errors"
	"log"
	"strconv"
	"time"

	"minichess/internal/core"
	"minichess/internal/game"

	"github.com/gofiber/fiber/v2"
)

// CreateGame creates a new game with specified player types
func (h *HTTPHandler) CreateGame(c *fiber.Ctx) error {
	var req CreateGameRequest
	if !parseAndValidate(c, &req) {
		return nil
	}

	gameID := h.svc.GenerateGameID()

	var fenArg []string
	if req.FEN != "" {
		fenArg = []string{req.FEN}
	}

	if err := h.svc.NewGame(gameID, req.White, req.Black, fenArg...); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "failed to create game",
			Code:    ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	g, _ := h.svc.GetGame(gameID)
	response := h.buildGameResponse(gameID, g)

	// Execute computer move if computer starts
	if g.NextPlayer().Type == core.PlayerComputer && !g.Status().Terminal() {
		if err := h.executeComputerMove(gameID, &response); err != nil {
			// Game was created; surface the move failure in logs only
			log.Printf("Warning: failed to execute initial computer move: %v", err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// GetGame retrieves current game state, executing computer move if needed
func (h *HTTPHandler) GetGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	g, err := h.svc.GetGame(gameID)
	if err != nil {
		return h.errorResponse(c, err)
	}

	response := h.buildGameResponse(gameID, g)

	// Auto-execute computer move if it's computer's turn
	if g.NextPlayer().Type == core.PlayerComputer && !g.Status().Terminal() {
		if err := h.executeComputerMove(gameID, &response); err != nil {
			return h.errorResponse(c, err)
		}
	}

	return c.JSON(response)
}

// ListGames returns the persisted games, newest first. Optional gameId
// and playerId query filters narrow the listing.
func (h *HTTPHandler) ListGames(c *fiber.Ctx) error {
	records, err := h.svc.ListGames(c.Query("gameId"), c.Query("playerId"))
	if err != nil {
		return h.errorResponse(c, err)
	}

	games := make([]GameSummary, 0, len(records))
	for _, rec := range records {
		games = append(games, GameSummary{
			GameID:     rec.GameID,
			InitialFEN: rec.InitialFEN,
			White:      core.PlayerType(rec.WhiteType).String(),
			Black:      core.PlayerType(rec.BlackType).String(),
			Result:     rec.Result,
			StartedAt:  rec.StartTimeUTC.Format(time.RFC3339),
		})
	}
	return c.JSON(GameListResponse{Games: games})
}

// MoveHistory returns the stored move log of one game.
func (h *HTTPHandler) MoveHistory(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	records, err := h.svc.MoveHistory(gameID)
	if err != nil {
		return h.errorResponse(c, err)
	}

	moves := make([]HistoryMove, 0, len(records))
	for _, rec := range records {
		moves = append(moves, HistoryMove{
			Number:  rec.MoveNumber,
			Move:    rec.MoveUCI,
			Player:  rec.PlayerColor,
			FEN:     rec.FENAfterMove,
			Capture: rec.Capture,
			At:      rec.MoveTimeUTC.Format(time.RFC3339),
		})
	}
	return c.JSON(MoveHistoryResponse{GameID: gameID, Moves: moves})
}

// MakeMove submits a human player move
func (h *HTTPHandler) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	var req MoveRequest
	if !parseAndValidate(c, &req) {
		return nil
	}

	result, err := h.svc.MakeHumanMove(gameID, req.Move)
	if err != nil {
		return h.errorResponse(c, err)
	}

	g, _ := h.svc.GetGame(gameID)
	response := h.buildGameResponse(gameID, g)
	response.LastMove = moveInfo(result)

	// Execute computer response if needed
	if g.NextPlayer().Type == core.PlayerComputer && !g.Status().Terminal() {
		if err := h.executeComputerMove(gameID, &response); err != nil {
			// Computer move failed, but human move succeeded
			log.Printf("Warning: computer move failed: %v", err)
		}
	}

	return c.JSON(response)
}

// LegalDestinations lists the legal destinations of one origin square.
func (h *HTTPHandler) LegalDestinations(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	square := c.Params("square")

	dests, err := h.svc.LegalDestinations(gameID, square)
	if err != nil {
		if errors.Is(err, core.ErrGameNotFound) {
			return h.errorResponse(c, err)
		}
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid square",
			Code:    ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	names := make([]string, 0, len(dests))
	for _, d := range dests {
		names = append(names, d.String())
	}
	return c.JSON(LegalDestinationsResponse{From: square, Destinations: names})
}

// UndoMove undoes one or more moves
func (h *HTTPHandler) UndoMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	var req UndoRequest
	if err := c.BodyParser(&req); err != nil {
		// Body parsing failed, use default
		req.Count = 1
	}
	if req.Count < 1 {
		req.Count = 1
	}

	if err := h.svc.Undo(gameID, req.Count); err != nil {
		if errors.Is(err, core.ErrGameNotFound) {
			return h.errorResponse(c, err)
		}
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "cannot undo moves",
			Code:    ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	g, _ := h.svc.GetGame(gameID)
	return c.JSON(h.buildGameResponse(gameID, g))
}

// DeleteGame ends and cleans up a game
func (h *HTTPHandler) DeleteGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	if err := h.svc.DeleteGame(gameID); err != nil {
		return h.errorResponse(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetBoard returns ASCII representation of the board
func (h *HTTPHandler) GetBoard(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	b, err := h.svc.GetCurrentBoard(gameID)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(BoardResponse{
		FEN:   b.FEN(),
		Board: b.ToASCII(),
	})
}

// WaitForChange long-polls until the game's move count changes, the
// wait times out, or the game is deleted.
func (h *HTTPHandler) WaitForChange(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	g, err := h.svc.GetGame(gameID)
	if err != nil {
		return h.errorResponse(c, err)
	}

	known, _ := strconv.Atoi(c.Query("moves", "-1"))
	current := len(g.Moves())
	if known >= 0 && known != current {
		return c.JSON(WaitResponse{Changed: true})
	}

	<-h.svc.WaitForChange(c.Context(), gameID, current)

	g, err = h.svc.GetGame(gameID)
	if err != nil {
		// Game deleted while waiting
		return c.JSON(WaitResponse{Changed: true})
	}
	return c.JSON(WaitResponse{Changed: len(g.Moves()) != current})
}

// errorResponse maps core sentinel errors to HTTP status and codes.
func (h *HTTPHandler) errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, core.ErrGameNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "game not found",
			Code:  ErrGameNotFound,
		})
	case errors.Is(err, core.ErrIllegalMove):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid move",
			Code:    ErrInvalidMove,
			Details: err.Error(),
		})
	case errors.Is(err, core.ErrGameOver):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "game is over",
			Code:    ErrGameOver,
			Details: err.Error(),
		})
	case errors.Is(err, core.ErrNotHumanTurn):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "not human player's turn",
			Code:  ErrNotHumanTurn,
		})
	case errors.Is(err, core.ErrNotComputerTurn):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "not computer's turn",
			Code:  ErrNotComputerTurn,
		})
	case errors.Is(err, core.ErrStorageDisabled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "persistent storage disabled",
			Code:    ErrStorageDisabled,
			Details: "start the server with -storage-path to record games",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal server error",
			Code:    ErrInternalError,
			Details: err.Error(),
		})
	}
}

// buildGameResponse assembles the standard game state payload.
func (h *HTTPHandler) buildGameResponse(gameID string, g *game.Game) GameResponse {
	resp := GameResponse{
		GameID: gameID,
		FEN:    g.CurrentFEN(),
		Turn:   g.Turn().String(),
		Status: g.Status().String(),
		Moves:  g.Moves(),
		Players: PlayersInfo{
			White: g.Player(core.ColorWhite).Type.String(),
			Black: g.Player(core.ColorBlack).Type.String(),
		},
	}
	if g.Status() == core.StatusCheckmate {
		resp.Winner = g.Turn().Opposite().String()
	}
	return resp
}

// executeComputerMove runs the opponent policy and refreshes the payload.
func (h *HTTPHandler) executeComputerMove(gameID string, response *GameResponse) error {
	result, err := h.svc.MakeComputerMove(gameID)
	if err != nil {
		return err
	}

	g, err := h.svc.GetGame(gameID)
	if err != nil {
		return err
	}

	response.FEN = g.CurrentFEN()
	response.Turn = g.Turn().String()
	response.Status = g.Status().String()
	response.Moves = g.Moves()
	if g.Status() == core.StatusCheckmate {
		response.Winner = g.Turn().Opposite().String()
	}
	response.LastMove = moveInfo(result)

	return nil
}

func moveInfo(result *game.MoveResult) *MoveInfo {
	if result == nil {
		return nil
	}
	return &MoveInfo{
		Move:    result.Move,
		Player:  result.Player.String(),
		Status:  result.Status.String(),
		Capture: result.Capture,
	}
}
