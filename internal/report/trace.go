package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/events"
)

// DefaultTraceGames returns the games traced when none are configured: the
// first, the middle and the last one
func DefaultTraceGames(games int) []int {
	set := map[int]struct{}{1: {}, games: {}}
	if games/2 >= 1 {
		set[games/2] = struct{}{}
	}
	out := make([]int, 0, len(set))
	for g := range set {
		out = append(out, g)
	}
	sort.Ints(out)
	return out
}

// TraceSubscriber writes a ply by ply board trace of selected games to
// <dir>/game<N>.txt
type TraceSubscriber struct {
	id     string
	dir    string
	games  map[int]bool
	logger zerolog.Logger

	mu   sync.Mutex
	open map[int]*os.File
}

// NewTraceSubscriber creates a trace writer for the listed game ids
func NewTraceSubscriber(dir string, games []int, logger zerolog.Logger) *TraceSubscriber {
	ts := &TraceSubscriber{
		id:     "trace_writer",
		dir:    dir,
		games:  make(map[int]bool, len(games)),
		logger: logger.With().Str("subscriber", "trace_writer").Logger(),
		open:   make(map[int]*os.File),
	}
	for _, g := range games {
		ts.games[g] = true
	}
	return ts
}

// TracePath returns the trace file of a game
func TracePath(dir string, gameID int) string {
	return filepath.Join(dir, fmt.Sprintf("game%d.txt", gameID))
}

func (ts *TraceSubscriber) ID() string { return ts.id }

func (ts *TraceSubscriber) InterestedIn(eventType string) bool {
	switch eventType {
	case events.TypeGameStarted, events.TypePlyApplied, events.TypeGameEnded:
		return true
	default:
		return false
	}
}

func (ts *TraceSubscriber) HandleEvent(event events.Event) {
	if !ts.games[event.GameID()] {
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	switch e := event.(type) {
	case *events.GameStartedEvent:
		f, err := os.Create(TracePath(ts.dir, e.GameID()))
		if err != nil {
			ts.logger.Error().Err(err).Int("game_id", e.GameID()).Msg("Failed to create trace file")
			return
		}
		ts.open[e.GameID()] = f
		ts.write(e.GameID(), "Run: %s Game: %d\n", e.RunID(), e.GameID())

	case *events.PlyAppliedEvent:
		ts.write(e.GameID(), "Move: %d Faction: %d\n%s\n", e.Round, e.Faction, e.Snapshot)

	case *events.GameEndedEvent:
		ts.write(e.GameID(), "Winner: %d after %d moves\n", e.Winner, e.Rounds)
		ts.closeGame(e.GameID())
	}
}

func (ts *TraceSubscriber) write(gameID int, format string, args ...interface{}) {
	f, ok := ts.open[gameID]
	if !ok {
		return
	}
	if _, err := fmt.Fprintf(f, format, args...); err != nil {
		ts.logger.Error().Err(err).Int("game_id", gameID).Msg("Failed to write trace")
	}
}

func (ts *TraceSubscriber) closeGame(gameID int) {
	f, ok := ts.open[gameID]
	if !ok {
		return
	}
	delete(ts.open, gameID)
	if err := f.Close(); err != nil {
		ts.logger.Error().Err(err).Int("game_id", gameID).Msg("Failed to close trace file")
		return
	}
	ts.logger.Debug().Str("path", f.Name()).Msg("Trace written")
}

// Close closes traces of games that never ended
func (ts *TraceSubscriber) Close() error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	var firstErr error
	for id, f := range ts.open {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(ts.open, id)
	}
	return firstErr
}
