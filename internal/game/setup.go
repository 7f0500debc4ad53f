package game

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/config"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/core"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/events"
)

func unitStats(u config.UnitConfig) core.UnitStats {
	return core.UnitStats{
		AttackRange:  u.AttackRange,
		AttackDamage: u.AttackDamage,
		MaxHP:        u.MaxHP,
	}
}

// NewFactionsFromConfig builds both factions with the configured roster
func NewFactionsFromConfig(cfg *config.Config) ([FactionCount]*Faction, error) {
	var factions [FactionCount]*Faction
	roster := DefaultRoster(unitStats(cfg.Roster.Footman), unitStats(cfg.Roster.Archer))

	for id := 0; id < FactionCount; id++ {
		fc := cfg.Factions.ByID(id)
		f, err := NewFaction(id, fc.MutationChance, fc.LookbackDistance, roster)
		if err != nil {
			return factions, err
		}
		factions[id] = f
	}
	return factions, nil
}

// NewSimulationConfig maps the loaded config onto a SimulationConfig
func NewSimulationConfig(cfg *config.Config, rng core.Rand, bus *events.EventBus, logger zerolog.Logger) SimulationConfig {
	return SimulationConfig{
		Games:               cfg.Simulation.Games,
		Width:               cfg.Board.Width,
		Height:              cfg.Board.Height,
		MaxMoves:            cfg.Simulation.MaxMoves,
		MaxResampleAttempts: cfg.Simulation.MaxResampleAttempts,
		Rng:                 rng,
		EventBus:            bus,
		Logger:              logger,
	}
}
