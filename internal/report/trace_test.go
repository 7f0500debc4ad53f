package report

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/core"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/events"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/testutil"
)

var (
	footmanStats = core.UnitStats{AttackRange: 2, AttackDamage: 5, MaxHP: 9}
	archerStats  = core.UnitStats{AttackRange: 5, AttackDamage: 3, MaxHP: 5}
)

func newFactions(t *testing.T) [game.FactionCount]*game.Faction {
	t.Helper()
	var factions [game.FactionCount]*game.Faction
	for i, mc := range []float64{0.0, 0.001} {
		f, err := game.NewFaction(i, mc, 100, game.DefaultRoster(footmanStats, archerStats))
		require.NoError(t, err)
		factions[i] = f
	}
	return factions
}

func TestDefaultTraceGames(t *testing.T) {
	tests := []struct {
		games int
		want  []int
	}{
		{1, []int{1}},
		{2, []int{1, 2}},
		{3, []int{1, 3}},
		{10, []int{1, 5, 10}},
		{1000, []int{1, 500, 1000}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultTraceGames(tt.games), "games=%d", tt.games)
	}
}

func TestTraceSubscriber_Interest(t *testing.T) {
	ts := NewTraceSubscriber(t.TempDir(), []int{1}, testutil.NopLogger())
	assert.Equal(t, "trace_writer", ts.ID())
	assert.True(t, ts.InterestedIn(events.TypePlyApplied))
	assert.True(t, ts.InterestedIn(events.TypeGameStarted))
	assert.True(t, ts.InterestedIn(events.TypeGameEnded))
	assert.False(t, ts.InterestedIn(events.TypeAttackResolved))
}

func TestTraceSubscriber_WritesSelectedGames(t *testing.T) {
	dir := t.TempDir()
	ts := NewTraceSubscriber(dir, []int{2}, testutil.NopLogger())

	for _, id := range []int{1, 2} {
		ts.HandleEvent(events.NewGameStartedEvent("run-t", id, 8, 8, 200))
		ply := events.NewPlyAppliedEvent("run-t", id, 0, 1, 1, core.NewMove(0, core.MoveWalk, 2))
		ply.Snapshot = "F9......"
		ts.HandleEvent(ply)
		ts.HandleEvent(events.NewGameEndedEvent("run-t", id, 0, 1, 1, [2]int{0, 0}, [2]int{4, 4}, 0, 0))
	}
	require.NoError(t, ts.Close())

	_, err := os.Stat(TracePath(dir, 1))
	assert.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(TracePath(dir, 2))
	require.NoError(t, err)
	assert.Equal(t, "Run: run-t Game: 2\nMove: 1 Faction: 0\nF9......\nWinner: 0 after 1 moves\n", string(data))
}

func TestTraceSubscriber_CloseFlushesUnfinishedGames(t *testing.T) {
	dir := t.TempDir()
	ts := NewTraceSubscriber(dir, []int{1}, testutil.NopLogger())
	ts.HandleEvent(events.NewGameStartedEvent("run-t", 1, 8, 8, 200))
	require.NoError(t, ts.Close())

	data, err := os.ReadFile(TracePath(dir, 1))
	require.NoError(t, err)
	assert.Equal(t, "Run: run-t Game: 1\n", string(data))
}

func TestTraceSubscriber_OnSimulation(t *testing.T) {
	dir := t.TempDir()
	bus := events.NewEventBus()
	ts := NewTraceSubscriber(dir, []int{1, 3}, testutil.NopLogger())
	bus.Subscribe(ts)

	sim, err := game.NewSimulation(game.SimulationConfig{
		RunID:    "run-sim",
		Games:    3,
		Width:    8,
		Height:   8,
		MaxMoves: 50,
		Rng:      testutil.NewTestRNG(11),
		EventBus: bus,
		Logger:   testutil.NopLogger(),
	}, newFactions(t))
	require.NoError(t, err)

	var outcomes []game.Outcome
	require.NoError(t, sim.Run(context.Background(), func(o game.Outcome) error {
		outcomes = append(outcomes, o)
		return nil
	}))
	require.NoError(t, ts.Close())

	for _, id := range []int{1, 3} {
		data, err := os.ReadFile(TracePath(dir, id))
		require.NoError(t, err)
		text := string(data)
		assert.True(t, strings.HasPrefix(text, "Run: run-sim Game: "))
		assert.Contains(t, text, "Move: 1 Faction: 0\n")
		assert.Equal(t, outcomes[id-1].Plies, strings.Count(text, "Move: "))
		assert.Contains(t, text, "Winner: ")
	}
	_, err = os.Stat(TracePath(dir, 2))
	assert.True(t, os.IsNotExist(err))
}
