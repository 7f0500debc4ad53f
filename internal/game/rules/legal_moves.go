package rules

import "github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/core"

// LegalMoveCalculator enumerates the moves a faction can apply right now
type LegalMoveCalculator struct{}

// NewLegalMoveCalculator creates a new legal move calculator
func NewLegalMoveCalculator() *LegalMoveCalculator {
	return &LegalMoveCalculator{}
}

// IsLegal reports whether the move would be applied on the board. The unit
// must be on the board; attacks always apply, walks need an empty in-bounds
// destination.
func (lmc *LegalMoveCalculator) IsLegal(board *core.Board, roster []*core.Unit, move core.Move) bool {
	if move.UnitID < 0 || move.UnitID >= len(roster) {
		return false
	}
	pos, ok := roster[move.UnitID].Position()
	if !ok {
		return false
	}

	switch move.Type {
	case core.MoveAttack:
		return true
	case core.MoveWalk:
		to := pos.Move(move.Direction)
		cell, inBounds := board.CellAt(to.X, to.Y)
		return inBounds && cell.IsEmpty()
	default:
		return false
	}
}

// LegalMoves lists every legal move of the roster in unit, type, direction
// order. It is empty only when no unit of the roster is on the board.
func (lmc *LegalMoveCalculator) LegalMoves(board *core.Board, roster []*core.Unit) []core.Move {
	moves := make([]core.Move, 0, len(roster)*core.DirectionCount*2)
	for id := range roster {
		for _, moveType := range []core.MoveType{core.MoveWalk, core.MoveAttack} {
			for d := 0; d < core.DirectionCount; d++ {
				m := core.NewMove(id, moveType, d)
				if lmc.IsLegal(board, roster, m) {
					moves = append(moves, m)
				}
			}
		}
	}
	return moves
}
