package monitoring

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/events"
)

func ended(gameID, winner, plies int) *events.GameEndedEvent {
	return events.NewGameEndedEvent("run-m", gameID, winner, plies/2, plies, [2]int{}, [2]int{}, 0, time.Millisecond)
}

func TestProgressMonitor_CountsGames(t *testing.T) {
	pm := NewProgressMonitor(4, time.Hour, zerolog.Nop())
	bus := events.NewEventBus()
	bus.Subscribe(pm)

	assert.True(t, pm.InterestedIn(events.TypeGameEnded))
	assert.False(t, pm.InterestedIn(events.TypePlyApplied))

	bus.Publish(ended(1, 0, 30))
	bus.Publish(ended(2, 1, 41))
	bus.Publish(ended(3, 0, 12))
	bus.Publish(ended(4, -1, 400))
	bus.Publish(events.NewGameStartedEvent("run-m", 5, 8, 8, 200))

	m := pm.GetMetrics()
	assert.Equal(t, 4, m.Total)
	assert.Equal(t, 4, m.Finished)
	assert.Equal(t, [2]int{2, 1}, m.Wins)
	assert.Equal(t, 1, m.Draws)
	assert.Equal(t, 483, m.Plies)
	assert.GreaterOrEqual(t, m.GamesPerSec, 0.0)
	assert.Positive(t, m.Goroutines)
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) count(s string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Count(b.buf.String(), s)
}

func TestProgressMonitor_StartStop(t *testing.T) {
	var buf lockedBuffer
	pm := NewProgressMonitor(10, 5*time.Millisecond, zerolog.New(&buf))
	pm.Start()
	pm.HandleEvent(ended(1, 1, 20))

	require.Eventually(t, func() bool {
		return buf.count("Run progress") >= 1
	}, time.Second, 5*time.Millisecond)

	pm.Stop()
	before := buf.count("Run progress")
	pm.Stop()
	assert.Equal(t, before, buf.count("Run progress"))
}

func TestNewProgressMonitor_DefaultInterval(t *testing.T) {
	pm := NewProgressMonitor(1, 0, zerolog.Nop())
	assert.Equal(t, 10*time.Second, pm.checkInterval)
}
