package game

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/core"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/events"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/processor"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/rules"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/states"
)

// GameConfig holds everything needed to play one game
type GameConfig struct {
	RunID  string
	GameID int
	Width  int
	Height int
	// Factions are reused across games; the engine only borrows them
	Factions            [FactionCount]*Faction
	MaxMoves            int
	MaxResampleAttempts int
	Rng                 core.Rand
	EventBus            *events.EventBus
	Logger              zerolog.Logger
}

// Engine plays a single game between two factions
type Engine struct {
	gs       *GameState
	rng      core.Rand
	gameOver bool
	finished bool
	verdict  rules.Verdict
	outcome  Outcome

	logger              zerolog.Logger
	moveProcessor       *processor.MoveProcessor
	winCondition        *rules.WinConditionChecker
	legalMoves          *rules.LegalMoveCalculator
	eventBus            *events.EventBus
	runID               string
	gameID              int
	maxResampleAttempts int
	stateMachine        *states.StateMachine
	turnProcessor       *TurnProcessor
}

// NewEngine creates an engine with both factions placed and ready to play
func NewEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}

// Step plays a single ply
func (e *Engine) Step(ctx context.Context) error {
	return e.turnProcessor.ProcessPly(ctx)
}

// Play runs the game to the end and applies the post-game update
func (e *Engine) Play(ctx context.Context) (Outcome, error) {
	for !e.gameOver {
		if err := e.Step(ctx); err != nil {
			return Outcome{}, err
		}
	}
	return e.Finish()
}

// endGame records the verdict and moves the state machine to Ended
func (e *Engine) endGame(v rules.Verdict) {
	e.gameOver = true
	e.verdict = v

	gameContext := e.stateMachine.GetContext()
	gameContext.Decided = true
	gameContext.Winner = v.Winner
	gameContext.Plies = e.gs.Plies

	if err := e.stateMachine.TransitionTo(states.PhaseEnded, e.endReason(v)); err != nil {
		e.logger.Error().Err(err).Msg("Failed to transition to Ended state")
	}
}

func (e *Engine) endReason(v rules.Verdict) string {
	switch {
	case v.Capped && v.Winner == states.NoWinner:
		return "Move cap reached with equal points"
	case v.Capped:
		return "Move cap reached"
	default:
		return "Faction eliminated"
	}
}

// Finish applies the post-game update: loss streaks, the winner's new
// generation and aces. The board is cleared afterwards. Calling it again
// returns the same outcome.
func (e *Engine) Finish() (Outcome, error) {
	if e.finished {
		return e.outcome, nil
	}
	if !e.gameOver {
		return Outcome{}, core.WrapGameStateError(e.gameID, e.gs.Plies, "finish", fmt.Errorf("game is still running"))
	}

	gameContext := e.stateMachine.GetContext()
	o := Outcome{
		GameID:   e.gameID,
		Winner:   e.verdict.Winner,
		Rounds:   e.gs.Round,
		Plies:    e.gs.Plies,
		Capped:   e.verdict.Capped,
		Duration: gameContext.GetElapsedTime(),
	}
	for i, s := range e.gs.Sessions {
		o.Points[i] = s.Points
		o.Living[i] = s.Living
	}

	if !o.IsDraw() {
		winner := e.gs.Sessions[o.Winner]
		loser := e.gs.Opponent(o.Winner)

		winner.Faction.LossStreak = 0
		loser.Faction.LossStreak++

		o.WinnerScore = Score(winner.Points, winner.Living, loser.Living, len(winner.Moves))

		moves := make([]core.Move, len(winner.Moves))
		copy(moves, winner.Moves)
		pruned := winner.Faction.RecordGeneration(Generation{
			GameID: e.gameID,
			Moves:  moves,
			Points: winner.Points,
			Score:  o.WinnerScore,
		})

		if loser.Living == 0 {
			winner.Faction.Aces++
		}

		e.eventBus.Publish(events.NewGenerationRecordedEvent(
			e.runID, e.gameID, o.Winner, o.WinnerScore, len(moves),
			len(winner.Faction.generations), pruned,
		))
	}

	e.eventBus.Publish(events.NewGameEndedEvent(
		e.runID, e.gameID, o.Winner, o.Rounds, o.Plies,
		o.Points, o.Living, o.WinnerScore, o.Duration,
	))

	e.logger.Debug().
		Int("winner", o.Winner).
		Int("rounds", o.Rounds).
		Float64("score", o.WinnerScore).
		Msg("Game finished")

	e.gs.Board.Clear()
	if err := e.stateMachine.TransitionTo(states.PhaseIdle, "Board cleared"); err != nil {
		e.logger.Error().Err(err).Msg("Failed to transition to Idle state")
	}

	e.finished = true
	e.outcome = o
	return o, nil
}

// Public accessors
func (e *Engine) GameState() GameState { return *e.gs }
func (e *Engine) IsGameOver() bool     { return e.gameOver }
func (e *Engine) GameID() int          { return e.gameID }

// CurrentPhase returns the phase of the game's state machine
func (e *Engine) CurrentPhase() states.GamePhase {
	return e.stateMachine.CurrentPhase()
}

// TransitionHistory returns the phase transitions of this game
func (e *Engine) TransitionHistory() []states.Transition {
	return e.stateMachine.GetHistory()
}

// Winner returns the winning faction, states.NoWinner while running or on a draw
func (e *Engine) Winner() int {
	if !e.gameOver {
		return states.NoWinner
	}
	return e.verdict.Winner
}
