package processor

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/core"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/events"
)

// MoveResult describes what applying a move did to the board
type MoveResult struct {
	// Applied is false when the move could not be performed and must be
	// resampled: the unit is off the board or the walk target is blocked.
	Applied bool
	Attack  core.AttackResult
}

// MoveProcessor resolves moves of one game against the board
type MoveProcessor struct {
	logger    zerolog.Logger
	publisher events.Publisher
	runID     string
	gameID    int
}

// NewMoveProcessor creates a move processor. publisher may be nil.
func NewMoveProcessor(logger zerolog.Logger, publisher events.Publisher, runID string, gameID int) *MoveProcessor {
	return &MoveProcessor{
		logger:    logger.With().Str("component", "MoveProcessor").Logger(),
		publisher: publisher,
		runID:     runID,
		gameID:    gameID,
	}
}

// ApplyMove performs move with a unit from roster. Invalid walks leave the
// board untouched; attacks always apply, hit or miss.
func (mp *MoveProcessor) ApplyMove(board *core.Board, roster []*core.Unit, move core.Move) MoveResult {
	if move.UnitID < 0 || move.UnitID >= len(roster) {
		mp.logger.Warn().Int("unit_id", move.UnitID).Msg("Ignoring move for unit outside the roster")
		return MoveResult{}
	}
	unit := roster[move.UnitID]
	pos, ok := unit.Position()
	if !ok {
		return MoveResult{}
	}

	delta := move.Direction.Vector()

	switch move.Type {
	case core.MoveWalk:
		to := pos.Add(delta)
		return MoveResult{Applied: board.Walk(unit, to.X, to.Y)}

	case core.MoveAttack:
		res := board.Attack(unit, delta)
		if res.Target != nil {
			mp.logger.Debug().
				Int("faction", unit.Faction).
				Int("unit_id", move.UnitID).
				Int("dealt", res.Dealt).
				Bool("killed", res.Killed).
				Msg("Attack hit")
			if mp.publisher != nil {
				mp.publisher.Publish(events.NewAttackResolvedEvent(
					mp.runID, mp.gameID, unit.Faction, move.UnitID,
					res.At, res.Target.Kind.String(), res.Dealt, res.Killed,
				))
			}
		}
		return MoveResult{Applied: true, Attack: res}

	default:
		mp.logger.Warn().Str("move_type", move.Type.String()).Msg("Unhandled move type")
		return MoveResult{}
	}
}
