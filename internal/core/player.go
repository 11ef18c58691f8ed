package core

import (
	"github.com/google/uuid"
)

type PlayerType int

const (
	PlayerHuman PlayerType = iota + 1
	PlayerComputer
)

func (t PlayerType) String() string {
	if t == PlayerComputer {
		return "computer"
	}
	return "human"
}

// Player binds a color to a human or computer seat for one game.
type Player struct {
	ID    string     `json:"id"`
	Color Color      `json:"color"`
	Type  PlayerType `json:"type"`
}

// PlayerConfig for API requests and configuration
type PlayerConfig struct {
	Type PlayerType `json:"type" validate:"required,oneof=1 2"`
}

// NewPlayer creates a Player from PlayerConfig
func NewPlayer(config PlayerConfig, color Color) *Player {
	return &Player{
		ID:    uuid.New().String(),
		Color: color,
		Type:  config.Type,
	}
}
