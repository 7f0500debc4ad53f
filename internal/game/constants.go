package game

import "github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/core"

// Factions in a game
const FactionCount = 2

// Starting rows. Faction 0 stands in the first column, faction 1 in the last.
var startRows = [FactionCount][core.RosterSize]int{
	{0, 2, 4, 6},
	{1, 3, 5, 7},
}

// MinBoardHeight is the smallest board the starting rows fit on
const MinBoardHeight = 8

// MaxMutationProbability caps the loss streak scaled mutation chance
const MaxMutationProbability = 0.5

// ModelMinScore is the lowest score a generation needs to be imitated
const ModelMinScore = 0.5

// History is pruned by HistoryPruneFactor×lookback entries once it grows
// past HistoryLimitFactor×lookback.
const (
	HistoryLimitFactor = 10
	HistoryPruneFactor = 9
)

// DefaultMaxResampleAttempts bounds how many random moves are tried after an
// invalid one before falling back to a legal move
const DefaultMaxResampleAttempts = 64

// startPosition returns the starting cell of a roster slot
func startPosition(faction, slot, width int) core.Coordinate {
	x := 0
	if faction == 1 {
		x = width - 1
	}
	return core.NewCoordinate(x, startRows[faction][slot])
}
