package rules

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/states"
)

// Standing is what the win check needs to know about one faction
type Standing struct {
	Faction int
	Points  int
	Living  int
}

// Verdict is the result of a win check
type Verdict struct {
	Over bool
	// Winner is the winning faction, states.NoWinner on a draw
	Winner int
	// Capped is true when the move cap decided the game
	Capped bool
}

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger   zerolog.Logger
	maxMoves int
}

// NewWinConditionChecker creates a checker for a game capped at maxMoves
// rounds. A non-positive maxMoves disables the cap.
func NewWinConditionChecker(logger zerolog.Logger, maxMoves int) *WinConditionChecker {
	return &WinConditionChecker{
		logger:   logger.With().Str("component", "WinConditionChecker").Logger(),
		maxMoves: maxMoves,
	}
}

// CheckGameOver runs after every ply. roundComplete is true once both
// factions have played the current round. The cap is checked before
// elimination: a capped game goes to strictly more points, else a draw.
func (wc *WinConditionChecker) CheckGameOver(round int, roundComplete bool, standings [2]Standing) Verdict {
	if wc.maxMoves > 0 && roundComplete && round >= wc.maxMoves {
		v := Verdict{Over: true, Winner: states.NoWinner, Capped: true}
		switch {
		case standings[0].Points > standings[1].Points:
			v.Winner = standings[0].Faction
		case standings[1].Points > standings[0].Points:
			v.Winner = standings[1].Faction
		}
		wc.logger.Debug().
			Int("round", round).
			Int("points_0", standings[0].Points).
			Int("points_1", standings[1].Points).
			Int("winner", v.Winner).
			Msg("Move cap reached")
		return v
	}

	for i, s := range standings {
		if s.Living <= 0 {
			winner := standings[1-i].Faction
			wc.logger.Debug().
				Int("eliminated", s.Faction).
				Int("winner", winner).
				Int("round", round).
				Msg("Faction eliminated")
			return Verdict{Over: true, Winner: winner}
		}
	}

	return Verdict{Winner: states.NoWinner}
}
