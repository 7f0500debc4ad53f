package game

import "github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/core"

// Session is a faction's state for a single game. It is created by
// Faction.BeginGame and dropped when the game is over.
type Session struct {
	Faction *Faction
	Points  int
	Moves   []core.Move
	// Model is the generation being imitated, nil for random play
	Model  *Generation
	Living int
}

// ModelMove returns the model move for a 1-based round
func (s *Session) ModelMove(round int) (core.Move, bool) {
	if s.Model == nil || round < 1 || round > len(s.Model.Moves) {
		return core.Move{}, false
	}
	return s.Model.Moves[round-1], true
}

// GameState is the mutable state of one game
type GameState struct {
	Board    *core.Board
	Sessions [FactionCount]*Session
	// Turn is the faction to move
	Turn int
	// Round is the shared 1-based move index; it advances after faction 1 moves
	Round int
	Plies int
}

// Opponent returns the session of the other faction
func (gs *GameState) Opponent(faction int) *Session {
	return gs.Sessions[1-faction]
}
