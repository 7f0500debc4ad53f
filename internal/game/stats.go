package game

import "github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/rules"

// standings returns the per-faction tallies the win check reads
func (e *Engine) standings() [FactionCount]rules.Standing {
	var out [FactionCount]rules.Standing
	for i, s := range e.gs.Sessions {
		out[i] = rules.Standing{
			Faction: s.Faction.ID,
			Points:  s.Points,
			Living:  s.Living,
		}
	}
	return out
}

// livingOnBoard counts the units of a faction still on the board. It must
// always match the session's living counter.
func (e *Engine) livingOnBoard(faction int) int {
	n := 0
	for _, u := range e.gs.Board.Units() {
		if u.Faction == faction {
			n++
		}
	}
	return n
}
