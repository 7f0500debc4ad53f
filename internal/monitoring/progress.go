package monitoring

import (
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/events"
)

// ProgressMonitor counts finished games from the event bus and periodically
// logs throughput and win counts of a long run
type ProgressMonitor struct {
	mu            sync.RWMutex
	total         int
	finished      int
	wins          [2]int
	draws         int
	plies         int
	started       time.Time
	checkInterval time.Duration
	logger        zerolog.Logger
	stopChan      chan struct{}
	stopOnce      sync.Once
}

// ProgressMetrics is a snapshot of a run's progress
type ProgressMetrics struct {
	Total       int     `json:"total"`
	Finished    int     `json:"finished"`
	Wins        [2]int  `json:"wins"`
	Draws       int     `json:"draws"`
	Plies       int     `json:"plies"`
	GamesPerSec float64 `json:"games_per_sec"`
	Goroutines  int     `json:"goroutines"`
}

// NewProgressMonitor creates a monitor for a run of total games
func NewProgressMonitor(total int, interval time.Duration, logger zerolog.Logger) *ProgressMonitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &ProgressMonitor{
		total:         total,
		started:       time.Now(),
		checkInterval: interval,
		logger:        logger.With().Str("component", "progress_monitor").Logger(),
		stopChan:      make(chan struct{}),
	}
}

func (pm *ProgressMonitor) ID() string { return "progress_monitor" }

func (pm *ProgressMonitor) InterestedIn(eventType string) bool {
	return eventType == events.TypeGameEnded
}

func (pm *ProgressMonitor) HandleEvent(event events.Event) {
	e, ok := event.(*events.GameEndedEvent)
	if !ok {
		return
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.finished++
	pm.plies += e.Plies
	if e.Winner < 0 || e.Winner >= len(pm.wins) {
		pm.draws++
		return
	}
	pm.wins[e.Winner]++
}

// Start begins periodic progress logging
func (pm *ProgressMonitor) Start() {
	pm.mu.Lock()
	pm.started = time.Now()
	pm.mu.Unlock()

	go pm.monitor()
	pm.logger.Info().Int("games", pm.total).Msg("Started progress monitoring")
}

// Stop ends periodic logging and logs a final report. Safe to call twice.
func (pm *ProgressMonitor) Stop() {
	pm.stopOnce.Do(func() {
		close(pm.stopChan)
		pm.report()
	})
}

func (pm *ProgressMonitor) monitor() {
	ticker := time.NewTicker(pm.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pm.report()
		case <-pm.stopChan:
			return
		}
	}
}

func (pm *ProgressMonitor) report() {
	m := pm.GetMetrics()
	pm.logger.Info().
		Int("finished", m.Finished).
		Int("total", m.Total).
		Ints("wins", m.Wins[:]).
		Int("draws", m.Draws).
		Float64("games_per_sec", m.GamesPerSec).
		Int("goroutines", m.Goroutines).
		Msg("Run progress")
}

// GetMetrics returns the current progress
func (pm *ProgressMonitor) GetMetrics() ProgressMetrics {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	m := ProgressMetrics{
		Total:      pm.total,
		Finished:   pm.finished,
		Wins:       pm.wins,
		Draws:      pm.draws,
		Plies:      pm.plies,
		Goroutines: runtime.NumGoroutine(),
	}
	if elapsed := time.Since(pm.started).Seconds(); elapsed > 0 {
		m.GamesPerSec = float64(pm.finished) / elapsed
	}
	return m
}
