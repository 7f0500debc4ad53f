package states

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/events"
)

var allPhases = []GamePhase{PhaseIdle, PhaseSetup, PhaseRunning, PhaseEnded, PhaseError}

func TestGamePhase_String(t *testing.T) {
	tests := []struct {
		phase    GamePhase
		expected string
	}{
		{PhaseIdle, "Idle"},
		{PhaseSetup, "Setup"},
		{PhaseRunning, "Running"},
		{PhaseEnded, "Ended"},
		{PhaseError, "Error"},
		{GamePhase(999), "Unknown(999)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.phase.String())
			if tt.phase != GamePhase(999) {
				assert.Equal(t, tt.phase, ParsePhase(tt.expected))
			}
		})
	}
}

func TestGamePhase_Properties(t *testing.T) {
	assert.True(t, PhaseEnded.IsTerminal())
	assert.True(t, PhaseError.IsTerminal())
	assert.False(t, PhaseRunning.IsTerminal())

	assert.True(t, PhaseRunning.CanReceiveMoves())
	assert.False(t, PhaseSetup.CanReceiveMoves())
	assert.False(t, PhaseEnded.CanReceiveMoves())
}

func TestGamePhase_Transitions(t *testing.T) {
	tests := []struct {
		from    GamePhase
		allowed []GamePhase
	}{
		{PhaseIdle, []GamePhase{PhaseSetup, PhaseError}},
		{PhaseSetup, []GamePhase{PhaseRunning, PhaseError}},
		{PhaseRunning, []GamePhase{PhaseEnded, PhaseError}},
		{PhaseEnded, []GamePhase{PhaseIdle}},
		{PhaseError, []GamePhase{PhaseIdle}},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.AllowedTransitions())

			for _, target := range allPhases {
				shouldAllow := false
				for _, allowed := range tt.allowed {
					if target == allowed {
						shouldAllow = true
						break
					}
				}
				assert.Equal(t, shouldAllow, tt.from.CanTransitionTo(target))
			}
		})
	}
}

func TestStateMachine(t *testing.T) {
	logger := zerolog.Nop()

	setup := func() (*StateMachine, *GameContext, *events.EventBus) {
		ctx := NewGameContext("run-1", 1, logger)
		bus := events.NewEventBus()
		return NewStateMachine(ctx, bus), ctx, bus
	}

	t.Run("starts idle", func(t *testing.T) {
		sm, _, _ := setup()
		assert.Equal(t, PhaseIdle, sm.CurrentPhase())
		assert.Len(t, sm.states, 5)
		assert.Equal(t, NoWinner, sm.GetContext().Winner)
	})

	t.Run("full game lifecycle", func(t *testing.T) {
		sm, ctx, bus := setup()
		var published []string
		bus.SubscribeFunc(events.TypeStateTransition, func(e events.Event) {
			published = append(published, e.(*events.StateTransitionEvent).ToPhase)
		})

		require.NoError(t, sm.TransitionTo(PhaseSetup, "placing units"))

		err := sm.TransitionTo(PhaseRunning, "too early")
		assert.Error(t, err, "running requires both factions placed")
		assert.Equal(t, PhaseSetup, sm.CurrentPhase())

		ctx.FactionCount = 2
		require.NoError(t, sm.TransitionTo(PhaseRunning, "board populated"))
		assert.False(t, ctx.StartTime.IsZero())

		assert.Error(t, sm.TransitionTo(PhaseEnded, "not decided"))
		ctx.Decided = true
		ctx.Winner = 1
		require.NoError(t, sm.TransitionTo(PhaseEnded, "faction eliminated"))
		require.NoError(t, sm.TransitionTo(PhaseIdle, "board cleared"))

		history := sm.GetHistory()
		require.Len(t, history, 4)
		assert.Equal(t, PhaseIdle, history[0].From)
		assert.Equal(t, PhaseIdle, history[3].To)
		assert.Equal(t, []string{"Setup", "Running", "Ended", "Idle"}, published)
	})

	t.Run("invalid transition", func(t *testing.T) {
		sm, _, _ := setup()
		err := sm.TransitionTo(PhaseEnded, "skip")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid transition from Idle to Ended")
		assert.False(t, sm.CanTransitionTo(PhaseRunning))
		assert.True(t, sm.CanTransitionTo(PhaseSetup))
	})

	t.Run("error state requires an error", func(t *testing.T) {
		sm, ctx, _ := setup()
		assert.Error(t, sm.TransitionTo(PhaseError, "no error"))

		ctx.Error = errors.New("placement failed")
		require.NoError(t, sm.TransitionTo(PhaseError, "placement failed"))
		require.NoError(t, sm.TransitionTo(PhaseIdle, "recovered"))
		assert.Nil(t, ctx.Error)
	})

	t.Run("nil publisher", func(t *testing.T) {
		ctx := NewGameContext("run-1", 2, logger)
		sm := NewStateMachine(ctx, nil)
		assert.NoError(t, sm.TransitionTo(PhaseSetup, "no bus"))
	})
}

type failingState struct{ phase GamePhase }

func (s failingState) Phase() GamePhase                { return s.phase }
func (s failingState) Enter(ctx *GameContext) error    { return errors.New("enter failed") }
func (s failingState) Exit(ctx *GameContext) error     { return nil }
func (s failingState) Validate(ctx *GameContext) error { return nil }

func TestStateMachine_EnterFailureRollsBack(t *testing.T) {
	ctx := NewGameContext("run-1", 1, zerolog.Nop())
	sm := NewStateMachine(ctx, nil)
	sm.RegisterState(failingState{phase: PhaseSetup})

	err := sm.TransitionTo(PhaseSetup, "will fail")
	assert.Error(t, err)
	assert.Equal(t, PhaseIdle, sm.CurrentPhase())
}
