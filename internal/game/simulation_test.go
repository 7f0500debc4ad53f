package game

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/config"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/events"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/testutil"
)

func newTestSimulation(t *testing.T, games int, seed int64, bus *events.EventBus) *Simulation {
	t.Helper()
	factions := [FactionCount]*Faction{
		newTestFaction(t, 0, 0.0, 100),
		newTestFaction(t, 1, 0.001, 100),
	}
	sim, err := NewSimulation(SimulationConfig{
		RunID:    "sim-test",
		Games:    games,
		Width:    8,
		Height:   8,
		MaxMoves: 200,
		Rng:      testutil.NewTestRNG(seed),
		EventBus: bus,
		Logger:   testutil.NopLogger(),
	}, factions)
	require.NoError(t, err)
	return sim
}

func collect(t *testing.T, sim *Simulation) []Outcome {
	t.Helper()
	var outcomes []Outcome
	err := sim.Run(context.Background(), func(o Outcome) error {
		o.Duration = 0
		outcomes = append(outcomes, o)
		return nil
	})
	require.NoError(t, err)
	return outcomes
}

func TestSimulation_Deterministic(t *testing.T) {
	first := collect(t, newTestSimulation(t, 25, 42, nil))
	second := collect(t, newTestSimulation(t, 25, 42, nil))

	require.Len(t, first, 25)
	assert.Equal(t, first, second)

	for i, o := range first {
		assert.Equal(t, i+1, o.GameID)
	}
}

func TestSimulation_HistoryFollowsWins(t *testing.T) {
	sim := newTestSimulation(t, 30, 3, nil)
	outcomes := collect(t, sim)

	var wins [FactionCount]int
	var aces [FactionCount]int
	for _, o := range outcomes {
		if o.IsDraw() {
			continue
		}
		wins[o.Winner]++
		if o.Aced() {
			aces[o.Winner]++
		}
	}

	for i, f := range sim.Factions() {
		history := f.Generations()
		assert.Len(t, history, wins[i], "faction %d keeps one generation per win", i)
		assert.Equal(t, aces[i], f.Aces)
		for _, g := range history {
			assert.Equal(t, i, outcomes[g.GameID-1].Winner)
			assert.Equal(t, outcomes[g.GameID-1].WinnerScore, g.Score)
		}
	}
}

func TestSimulation_PublishesPerGameEvents(t *testing.T) {
	bus := events.NewEventBus()
	rec := events.NewRecorder("rec", events.TypeGameStarted, events.TypeGameEnded, events.TypeStateTransition)
	bus.Subscribe(rec)

	sim := newTestSimulation(t, 3, 1, bus)
	collect(t, sim)

	assert.Len(t, rec.OfType(events.TypeGameStarted), 3)
	ended := rec.OfType(events.TypeGameEnded)
	require.Len(t, ended, 3)
	for i, e := range ended {
		assert.Equal(t, "sim-test", e.RunID())
		assert.Equal(t, i+1, e.GameID())
	}
	// Idle→Setup→Running→Ended→Idle for each game
	assert.Len(t, rec.OfType(events.TypeStateTransition), 12)
}

func TestSimulation_StopsOnHandlerErrorAndCancel(t *testing.T) {
	sim := newTestSimulation(t, 10, 5, nil)
	boom := errors.New("disk full")
	played := 0
	err := sim.Run(context.Background(), func(o Outcome) error {
		played++
		if played == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, played)

	ctx, cancel := context.WithCancel(context.Background())
	played = 0
	err = newTestSimulation(t, 10, 5, nil).Run(ctx, func(o Outcome) error {
		played++
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, played)
}

func TestNewSimulation(t *testing.T) {
	factions := [FactionCount]*Faction{newTestFaction(t, 0, 0, 10), newTestFaction(t, 1, 0, 10)}

	sim, err := NewSimulation(SimulationConfig{Games: 1, Width: 8, Height: 8}, factions)
	require.NoError(t, err)
	_, err = uuid.Parse(sim.RunID())
	assert.NoError(t, err, "run id defaults to a UUID")
	assert.Equal(t, 1, sim.Games())

	_, err = NewSimulation(SimulationConfig{Games: 0}, factions)
	assert.Error(t, err)

	_, err = NewSimulation(SimulationConfig{Games: 1}, [FactionCount]*Faction{factions[1], factions[0]})
	assert.Error(t, err)
}

func TestNewFactionsFromConfig(t *testing.T) {
	require.NoError(t, config.Init("/non/existent/config.yaml"))
	cfg := config.Get()

	factions, err := NewFactionsFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, 0.0, factions[0].MutationChance)
	assert.Equal(t, 0.001, factions[1].MutationChance)
	assert.Equal(t, 100, factions[1].LookbackDistance)
	assert.Equal(t, footmanStats, factions[0].Units[0].UnitStats)
	assert.Equal(t, archerStats, factions[1].Units[3].UnitStats)

	simCfg := NewSimulationConfig(cfg, nil, nil, testutil.NopLogger())
	assert.Equal(t, 1000, simCfg.Games)
	assert.Equal(t, 200, simCfg.MaxMoves)
	assert.Equal(t, 64, simCfg.MaxResampleAttempts)
}
