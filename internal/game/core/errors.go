package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimensions  = errors.New("board dimensions must be positive")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrCellOccupied       = errors.New("cell is occupied")
	ErrInvalidUnitStats   = errors.New("invalid unit stats")
	ErrGameOver           = errors.New("game is over")
	ErrInvalidFaction     = errors.New("invalid faction ID")
)

// GameStateError wraps an error with the game and ply it happened in
type GameStateError struct {
	GameID    int
	Ply       int
	Operation string
	Err       error
}

func (e *GameStateError) Error() string {
	return fmt.Sprintf("game %d ply %d: %s: %v", e.GameID, e.Ply, e.Operation, e.Err)
}

func (e *GameStateError) Unwrap() error {
	return e.Err
}

// WrapGameStateError wraps err with game context, returning nil for a nil err
func WrapGameStateError(gameID, ply int, operation string, err error) error {
	if err == nil {
		return nil
	}
	return &GameStateError{
		GameID:    gameID,
		Ply:       ply,
		Operation: operation,
		Err:       err,
	}
}
