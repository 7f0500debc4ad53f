package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/core"
)

// Generation is a winning move list kept in a faction's history
type Generation struct {
	GameID int         `yaml:"game_id"`
	Moves  []core.Move `yaml:"moves"`
	Points int         `yaml:"points"`
	Score  float64     `yaml:"score"`
}

// Score is the fitness of a win: points, scaled up by survivors and down by
// enemy survivors and the length of the move list.
func Score(points, winnerLiving, loserLiving, moveCount int) float64 {
	return float64(points) * (1 + float64(winnerLiving)/4) /
		(float64(loserLiving+1) + float64(moveCount)/100)
}

func (g Generation) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "GameId = %d\nPoints = %d\nMoves: %d\nscore = %g\n", g.GameID, g.Points, len(g.Moves), g.Score)
	for _, m := range g.Moves {
		sb.WriteString("\n")
		sb.WriteString(m.String())
	}
	sb.WriteString("\n")
	return sb.String()
}
