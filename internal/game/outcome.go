package game

import (
	"time"

	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/states"
)

// Outcome is the result record of one game
type Outcome struct {
	GameID int
	// Winner is the winning faction or states.NoWinner for a draw
	Winner int
	// Rounds is the move index the game ended on
	Rounds      int
	Plies       int
	Points      [FactionCount]int
	Living      [FactionCount]int
	WinnerScore float64
	Capped      bool
	Duration    time.Duration
}

// IsDraw reports whether the game ended without a winner
func (o Outcome) IsDraw() bool {
	return o.Winner == states.NoWinner
}

// Aced reports whether the winner eliminated every enemy unit
func (o Outcome) Aced() bool {
	return !o.IsDraw() && o.Living[1-o.Winner] == 0
}
