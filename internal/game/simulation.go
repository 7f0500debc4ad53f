package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/core"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/events"
)

// SimulationConfig holds the settings of a batch of games
type SimulationConfig struct {
	// RunID tags every event of the batch; a random UUID when empty
	RunID               string
	Games               int
	Width               int
	Height              int
	MaxMoves            int
	MaxResampleAttempts int
	Rng                 core.Rand
	EventBus            *events.EventBus
	Logger              zerolog.Logger
}

// Simulation plays a batch of games between the same two factions. Games
// run strictly in order: every result feeds the next game's model choice.
type Simulation struct {
	cfg      SimulationConfig
	factions [FactionCount]*Faction
	logger   zerolog.Logger
}

// NewSimulation creates a batch runner for the factions
func NewSimulation(cfg SimulationConfig, factions [FactionCount]*Faction) (*Simulation, error) {
	if cfg.Games < 1 {
		return nil, fmt.Errorf("simulation needs at least one game, got %d", cfg.Games)
	}
	for i, f := range factions {
		if f == nil || f.ID != i {
			return nil, fmt.Errorf("faction slot %d: %w", i, core.ErrInvalidFaction)
		}
	}
	if cfg.RunID == "" {
		cfg.RunID = uuid.NewString()
	}
	if cfg.Rng == nil {
		cfg.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.EventBus == nil {
		cfg.EventBus = events.NewEventBus()
	}

	return &Simulation{
		cfg:      cfg,
		factions: factions,
		logger:   cfg.Logger.With().Str("component", "Simulation").Str("run_id", cfg.RunID).Logger(),
	}, nil
}

// RunID returns the id stamped on every event of the batch
func (s *Simulation) RunID() string { return s.cfg.RunID }

// Games returns the number of games in the batch
func (s *Simulation) Games() int { return s.cfg.Games }

// Factions returns the two factions
func (s *Simulation) Factions() [FactionCount]*Faction { return s.factions }

// PlayGame plays a single game to the end, including the post-game update
func (s *Simulation) PlayGame(ctx context.Context, gameID int) (Outcome, error) {
	engine, err := NewEngine(ctx, GameConfig{
		RunID:               s.cfg.RunID,
		GameID:              gameID,
		Width:               s.cfg.Width,
		Height:              s.cfg.Height,
		Factions:            s.factions,
		MaxMoves:            s.cfg.MaxMoves,
		MaxResampleAttempts: s.cfg.MaxResampleAttempts,
		Rng:                 s.cfg.Rng,
		EventBus:            s.cfg.EventBus,
		Logger:              s.cfg.Logger,
	})
	if err != nil {
		return Outcome{}, err
	}
	return engine.Play(ctx)
}

// Run plays games 1..Games in order and hands each outcome to handle, which
// may be nil. The context is checked between games.
func (s *Simulation) Run(ctx context.Context, handle func(Outcome) error) error {
	start := time.Now()
	s.logger.Info().Int("games", s.cfg.Games).Msg("Starting simulation")

	for gameID := 1; gameID <= s.cfg.Games; gameID++ {
		if err := ctx.Err(); err != nil {
			s.logger.Warn().Err(err).Int("game_id", gameID).Msg("Simulation cancelled")
			return err
		}

		outcome, err := s.PlayGame(ctx, gameID)
		if err != nil {
			return fmt.Errorf("game %d: %w", gameID, err)
		}

		if handle != nil {
			if err := handle(outcome); err != nil {
				return fmt.Errorf("handling outcome of game %d: %w", gameID, err)
			}
		}
	}

	s.logger.Info().
		Dur("elapsed", time.Since(start)).
		Int("aces_0", s.factions[0].Aces).
		Int("aces_1", s.factions[1].Aces).
		Msg("Simulation finished")
	return nil
}
