package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/core"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/events"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/processor"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/rules"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/states"
)

// EngineInitializer handles the setup of a game engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	logger := cfg.Logger.With().
		Str("component", "GameEngine").
		Int("game_id", cfg.GameID).
		Logger()
	return &EngineInitializer{
		config: cfg,
		logger: logger,
	}
}

// Initialize creates the engine, places both factions and starts the game
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled before setup")
		return nil, ctx.Err()
	default:
	}

	if err := ei.validate(); err != nil {
		return nil, err
	}
	ei.setupDefaults()

	board, err := core.NewBoard(ei.config.Width, ei.config.Height)
	if err != nil {
		return nil, fmt.Errorf("board creation failed: %w", err)
	}

	engine := ei.createEngine(board)

	if err := engine.stateMachine.TransitionTo(states.PhaseSetup, "Engine initialized"); err != nil {
		return nil, fmt.Errorf("state machine initialization failed: %w", err)
	}

	if err := ei.populateBoard(engine); err != nil {
		gameContext := engine.stateMachine.GetContext()
		gameContext.Error = err
		if tErr := engine.stateMachine.TransitionTo(states.PhaseError, "Placement failed"); tErr != nil {
			ei.logger.Error().Err(tErr).Msg("Failed to transition to Error state")
		}
		board.Clear()
		return nil, core.WrapGameStateError(ei.config.GameID, 0, "populate board", err)
	}

	if err := engine.stateMachine.TransitionTo(states.PhaseRunning, "Board populated"); err != nil {
		return nil, fmt.Errorf("state machine initialization failed: %w", err)
	}

	engine.eventBus.Publish(events.NewGameStartedEvent(
		ei.config.RunID,
		ei.config.GameID,
		ei.config.Width,
		ei.config.Height,
		ei.config.MaxMoves,
	))

	ei.logger.Debug().
		Int("width", ei.config.Width).
		Int("height", ei.config.Height).
		Int("max_moves", ei.config.MaxMoves).
		Msg("Engine created successfully")

	return engine, nil
}

func (ei *EngineInitializer) validate() error {
	for i, f := range ei.config.Factions {
		if f == nil {
			return fmt.Errorf("faction %d is missing: %w", i, core.ErrInvalidFaction)
		}
		if f.ID != i {
			return fmt.Errorf("faction in slot %d has id %d: %w", i, f.ID, core.ErrInvalidFaction)
		}
	}
	return nil
}

// setupDefaults sets up default values for missing configuration
func (ei *EngineInitializer) setupDefaults() {
	if ei.config.Rng == nil {
		ei.logger.Debug().Msg("No RNG provided, creating new seeded RNG")
		ei.config.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if ei.config.EventBus == nil {
		ei.config.EventBus = events.NewEventBus()
	}
	if ei.config.MaxResampleAttempts <= 0 {
		ei.config.MaxResampleAttempts = DefaultMaxResampleAttempts
	}
}

// createEngine creates the engine with all its components
func (ei *EngineInitializer) createEngine(board *core.Board) *Engine {
	gameContext := states.NewGameContext(ei.config.RunID, ei.config.GameID, ei.logger)

	engine := &Engine{
		gs: &GameState{
			Board: board,
			Round: 1,
		},
		rng:                 ei.config.Rng,
		logger:              ei.logger,
		moveProcessor:       processor.NewMoveProcessor(ei.logger, ei.config.EventBus, ei.config.RunID, ei.config.GameID),
		winCondition:        rules.NewWinConditionChecker(ei.logger, ei.config.MaxMoves),
		legalMoves:          rules.NewLegalMoveCalculator(),
		eventBus:            ei.config.EventBus,
		runID:               ei.config.RunID,
		gameID:              ei.config.GameID,
		maxResampleAttempts: ei.config.MaxResampleAttempts,
		stateMachine:        states.NewStateMachine(gameContext, ei.config.EventBus),
	}
	engine.turnProcessor = NewTurnProcessor(engine)

	return engine
}

// populateBoard starts a session for each faction and puts its units on
// their starting cells
func (ei *EngineInitializer) populateBoard(engine *Engine) error {
	gameContext := engine.stateMachine.GetContext()

	for i, f := range ei.config.Factions {
		session := f.BeginGame()
		engine.gs.Sessions[i] = session

		for slot, u := range f.Units {
			pos := startPosition(i, slot, engine.gs.Board.W)
			if err := engine.gs.Board.Put(u, pos.X, pos.Y); err != nil {
				return fmt.Errorf("faction %d unit %d: %w", i, slot, err)
			}
		}
		gameContext.FactionCount++

		sourceGame, score, moves := -1, 0.0, 0
		if session.Model != nil {
			sourceGame, score, moves = session.Model.GameID, session.Model.Score, len(session.Model.Moves)
		}
		engine.eventBus.Publish(events.NewModelSelectedEvent(
			ei.config.RunID, ei.config.GameID, i, sourceGame, score, moves,
		))
	}

	return nil
}
