package subscribers_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/core"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/events"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/events/subscribers"
)

func TestLoggerSubscriber(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Timestamp().Logger()

	logSub := subscribers.NewLoggerSubscriber("test-logger", logger, zerolog.InfoLevel)

	assert.Equal(t, "test-logger", logSub.ID())
	assert.True(t, logSub.InterestedIn(events.TypeGameStarted))
	assert.True(t, logSub.InterestedIn(events.TypePlyApplied))
	assert.True(t, logSub.InterestedIn("any.event.type"))
}

func TestLoggerSubscriberEventLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logSub := subscribers.NewLoggerSubscriber("event-logger", logger, zerolog.InfoLevel)

	testCases := []struct {
		name  string
		event events.Event
		check func(t *testing.T, logLine map[string]interface{})
	}{
		{
			name:  "GameStartedEvent",
			event: events.NewGameStartedEvent("run-1", 7, 8, 8, 200),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(8), logLine["board_width"])
				assert.Equal(t, float64(8), logLine["board_height"])
				assert.Equal(t, float64(200), logLine["max_moves"])
			},
		},
		{
			name: "PlyAppliedEvent",
			event: &events.PlyAppliedEvent{
				BaseEvent: events.BaseEvent{
					EventType: events.TypePlyApplied,
					Time:      time.Now(),
					Run:       "run-1",
					Game:      7,
				},
				Faction:   1,
				Round:     4,
				Ply:       9,
				Move:      core.NewMove(2, core.MoveAttack, 6),
				Resamples: 3,
			},
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(1), logLine["faction"])
				assert.Equal(t, float64(9), logLine["ply"])
				assert.Equal(t, "attack", logLine["move_type"])
				assert.Equal(t, float64(6), logLine["direction"])
				assert.Equal(t, float64(3), logLine["resamples"])
			},
		},
		{
			name:  "AttackResolvedEvent",
			event: events.NewAttackResolvedEvent("run-1", 7, 0, 1, core.NewCoordinate(5, 2), "footman", 3, true),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(0), logLine["faction"])
				assert.Equal(t, float64(5), logLine["target_x"])
				assert.Equal(t, "footman", logLine["target_kind"])
				assert.Equal(t, float64(3), logLine["dealt"])
				assert.Equal(t, true, logLine["killed"])
			},
		},
		{
			name:  "GameEndedEvent",
			event: events.NewGameEndedEvent("run-1", 7, 0, 30, 59, [2]int{28, 9}, [2]int{3, 0}, 41.2, 5*time.Millisecond),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(0), logLine["winner"])
				assert.Equal(t, float64(59), logLine["plies"])
				assert.Equal(t, []interface{}{float64(28), float64(9)}, logLine["points"])
				assert.Equal(t, []interface{}{float64(3), float64(0)}, logLine["living"])
				assert.Equal(t, 41.2, logLine["winner_score"])
				assert.Equal(t, float64(5), logLine["duration"])
			},
		},
		{
			name:  "GenerationRecordedEvent",
			event: events.NewGenerationRecordedEvent("run-1", 7, 0, 41.2, 30, 12, 0),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(12), logLine["history_size"])
				assert.Equal(t, float64(30), logLine["moves"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf.Reset()
			logSub.HandleEvent(tc.event)

			logOutput := buf.String()
			require.NotEmpty(t, logOutput, "Log output should not be empty")

			var logLine map[string]interface{}
			err := json.Unmarshal([]byte(logOutput), &logLine)
			require.NoError(t, err, "Should be able to parse log output as JSON")

			assert.Equal(t, "info", logLine["level"])
			assert.Equal(t, "Game event", logLine["message"])
			assert.Equal(t, tc.event.Type(), logLine["event_type"])
			assert.Equal(t, "run-1", logLine["run_id"])
			assert.Equal(t, float64(7), logLine["game_id"])

			tc.check(t, logLine)
		})
	}
}

func TestLoggerSubscriberWithFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logSub := subscribers.NewLoggerSubscriber("filtered-logger", logger, zerolog.InfoLevel)
	logSub.SetEventFilter([]string{events.TypeGameStarted, events.TypeGameEnded})

	assert.True(t, logSub.InterestedIn(events.TypeGameStarted))
	assert.True(t, logSub.InterestedIn(events.TypeGameEnded))
	assert.False(t, logSub.InterestedIn(events.TypePlyApplied))

	logSub.SetEventFilter(nil)
	assert.True(t, logSub.InterestedIn(events.TypePlyApplied))
}

func TestLoggerSubscriberDevMode(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logSub := subscribers.NewLoggerSubscriber("dev-logger", logger, zerolog.DebugLevel)
	logSub.SetDevMode(true)

	logSub.HandleEvent(events.NewStateTransitionEvent("run-2", 1, "Setup", "Running", "Board populated"))

	var logLine map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logLine))
	assert.Equal(t, "debug", logLine["level"])
	assert.Equal(t, "Running", logLine["to_phase"])

	eventData, ok := logLine["event_data"].(map[string]interface{})
	require.True(t, ok, "dev mode should attach the raw event")
	assert.Equal(t, "Setup", eventData["FromPhase"])
}

func TestLoggerSubscriberOnBus(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	bus := events.NewEventBus()
	logSub := subscribers.NewLoggerSubscriber("bus-logger", logger, zerolog.InfoLevel)
	logSub.SetEventFilter([]string{events.TypeFactionEliminated})
	bus.Subscribe(logSub)

	bus.Publish(events.NewGameStartedEvent("run-3", 1, 8, 8, 200))
	assert.Zero(t, buf.Len())

	bus.Publish(events.NewFactionEliminatedEvent("run-3", 1, 1, 0, 40))
	assert.Contains(t, buf.String(), `"eliminated_by":0`)
}
