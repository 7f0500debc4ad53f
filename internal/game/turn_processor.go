package game

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/core"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/events"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/processor"
)

// TurnProcessor handles the orchestration of a single ply
type TurnProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(engine *Engine) *TurnProcessor {
	return &TurnProcessor{
		engine: engine,
		logger: engine.logger,
	}
}

// plyChoice is the move a faction ended up playing and how it got there
type plyChoice struct {
	move      core.Move
	result    processor.MoveResult
	fromModel bool
	resamples int
	fallback  bool
}

// ProcessPly plays one ply for the faction to move: pick a candidate, apply
// it (resampling invalid walks), credit the result, record the move, check
// the win condition and pass the turn.
func (tp *TurnProcessor) ProcessPly(ctx context.Context) error {
	if err := tp.checkContext(ctx); err != nil {
		return err
	}
	if err := tp.validateGameState(); err != nil {
		return err
	}

	gs := tp.engine.gs
	session := gs.Sessions[gs.Turn]

	choice, err := tp.resolveMove(session)
	if err != nil {
		return core.WrapGameStateError(tp.engine.gameID, gs.Plies, "resolve move", err)
	}

	tp.creditAttack(session, choice.result.Attack)
	session.Moves = append(session.Moves, choice.move)
	gs.Plies++

	tp.publishPlyApplied(session, choice)

	verdict := tp.engine.winCondition.CheckGameOver(gs.Round, gs.Turn == 1, tp.engine.standings())
	if verdict.Over {
		tp.engine.endGame(verdict)
		return nil
	}

	tp.advanceTurn()
	return nil
}

// checkContext checks if the context is cancelled
func (tp *TurnProcessor) checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		tp.logger.Warn().
			Err(ctx.Err()).
			Int("ply", tp.engine.gs.Plies).
			Msg("Game step cancelled or timed out")
		return ctx.Err()
	default:
		return nil
	}
}

// validateGameState ensures the game can receive moves
func (tp *TurnProcessor) validateGameState() error {
	if tp.engine.gameOver {
		return core.WrapGameStateError(tp.engine.gameID, tp.engine.gs.Plies, "step", core.ErrGameOver)
	}

	currentPhase := tp.engine.stateMachine.CurrentPhase()
	if !currentPhase.CanReceiveMoves() {
		tp.logger.Warn().
			Str("current_phase", currentPhase.String()).
			Msg("Attempted to step game in phase that cannot receive moves")
		return fmt.Errorf("game is in %s phase and cannot receive moves", currentPhase)
	}
	return nil
}

// candidate returns the model move for this round, replicated with the
// faction's mutation probability, or a random move without a model
func (tp *TurnProcessor) candidate(session *Session) (core.Move, bool) {
	rng := tp.engine.rng
	if modelMove, ok := session.ModelMove(tp.engine.gs.Round); ok {
		mutate := rng.Float64() <= session.Faction.MutationProbability()
		return modelMove.Replicate(rng, mutate), true
	}
	return core.RandomMove(rng), false
}

// resolveMove applies a candidate and resamples random moves while they
// fail. After maxResampleAttempts failures a legal move is drawn uniformly.
func (tp *TurnProcessor) resolveMove(session *Session) (plyChoice, error) {
	e := tp.engine
	roster := session.Faction.Units

	move, fromModel := tp.candidate(session)
	choice := plyChoice{move: move, fromModel: fromModel}
	choice.result = e.moveProcessor.ApplyMove(e.gs.Board, roster, move)

	for !choice.result.Applied && choice.resamples < e.maxResampleAttempts {
		choice.resamples++
		choice.move = core.RandomMove(e.rng)
		choice.result = e.moveProcessor.ApplyMove(e.gs.Board, roster, choice.move)
	}
	if choice.result.Applied {
		return choice, nil
	}

	legal := e.legalMoves.LegalMoves(e.gs.Board, roster)
	if len(legal) == 0 {
		return choice, fmt.Errorf("faction %d has no unit on the board", session.Faction.ID)
	}
	choice.fallback = true
	choice.move = legal[e.rng.Intn(len(legal))]
	choice.result = e.moveProcessor.ApplyMove(e.gs.Board, roster, choice.move)

	tp.logger.Debug().
		Int("faction", session.Faction.ID).
		Int("resamples", choice.resamples).
		Str("move", choice.move.String()).
		Msg("Resampling exhausted, played a legal fallback move")

	return choice, nil
}

// creditAttack adds the damage dealt to the attacker's points and takes
// killed units off the defender's living count
func (tp *TurnProcessor) creditAttack(session *Session, res core.AttackResult) {
	if res.Target == nil {
		return
	}
	session.Points += res.Dealt
	if !res.Killed {
		return
	}

	gs := tp.engine.gs
	defender := gs.Opponent(session.Faction.ID)
	defender.Living--
	if defender.Living == 0 {
		tp.engine.eventBus.Publish(events.NewFactionEliminatedEvent(
			tp.engine.runID, tp.engine.gameID, defender.Faction.ID, session.Faction.ID, gs.Plies+1,
		))
	}
}

// publishPlyApplied publishes the ply; the board is only rendered when
// somebody listens for plies
func (tp *TurnProcessor) publishPlyApplied(session *Session, choice plyChoice) {
	e := tp.engine
	if !e.eventBus.HasInterest(events.TypePlyApplied) {
		return
	}

	evt := events.NewPlyAppliedEvent(e.runID, e.gameID, session.Faction.ID, e.gs.Round, e.gs.Plies, choice.move)
	evt.FromModel = choice.fromModel
	evt.Resamples = choice.resamples
	evt.Fallback = choice.fallback

	var actor *core.Unit
	if choice.move.UnitID >= 0 && choice.move.UnitID < len(session.Faction.Units) {
		actor = session.Faction.Units[choice.move.UnitID]
	}
	evt.Snapshot = e.gs.Board.Render(actor, &choice.move)

	e.eventBus.Publish(evt)
}

// advanceTurn passes the turn; the round advances after faction 1 moves
func (tp *TurnProcessor) advanceTurn() {
	gs := tp.engine.gs
	if gs.Turn == 1 {
		gs.Turn = 0
		gs.Round++
	} else {
		gs.Turn = 1
	}
}
