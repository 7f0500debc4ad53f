package states

import (
	"time"

	"github.com/rs/zerolog"
)

// NoWinner marks a game without a winner: still running, or drawn
const NoWinner = -1

// GameContext provides game-specific information to states for making decisions
type GameContext struct {
	RunID  string
	GameID int

	Logger zerolog.Logger

	// FactionCount is the number of factions placed on the board
	FactionCount int

	// StartTime is when the game started (PhaseRunning entered)
	StartTime time.Time

	// Decided is set once the win condition has fired
	Decided bool

	// Winner is the faction ID of the winner, NoWinner for a draw
	Winner int

	// Plies played so far
	Plies int

	// Error holds any error that caused transition to PhaseError
	Error error
}

// NewGameContext creates a new game context
func NewGameContext(runID string, gameID int, logger zerolog.Logger) *GameContext {
	return &GameContext{
		RunID:  runID,
		GameID: gameID,
		Logger: logger.With().Int("game_id", gameID).Logger(),
		Winner: NoWinner,
	}
}

// IsReady returns true if both factions are on the board
func (gc *GameContext) IsReady() bool {
	return gc.FactionCount == 2
}

// GetElapsedTime returns the time elapsed since the game started running
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	return time.Since(gc.StartTime)
}
