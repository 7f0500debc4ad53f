package subscribers

import (
	"encoding/json"

	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("run_id", event.RunID()).
		Int("game_id", event.GameID()).
		Logger()

	logEvent := eventLogger.WithLevel(ls.logLevel)
	if ls.logLevel == zerolog.NoLevel {
		logEvent = eventLogger.Info()
	}

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Int("board_width", e.BoardWidth).
			Int("board_height", e.BoardHeight).
			Int("max_moves", e.MaxMoves)

	case *events.ModelSelectedEvent:
		logEvent.
			Int("faction", e.Faction).
			Int("source_game", e.SourceGame).
			Float64("model_score", e.ModelScore).
			Int("model_moves", e.ModelMoves)

	case *events.PlyAppliedEvent:
		logEvent.
			Int("faction", e.Faction).
			Int("round", e.Round).
			Int("ply", e.Ply).
			Int("unit_id", e.Move.UnitID).
			Str("move_type", e.Move.Type.String()).
			Int("direction", int(e.Move.Direction)).
			Bool("from_model", e.FromModel).
			Int("resamples", e.Resamples).
			Bool("fallback", e.Fallback)

	case *events.AttackResolvedEvent:
		logEvent.
			Int("faction", e.Faction).
			Int("unit_id", e.UnitID).
			Int("target_x", e.Target.X).
			Int("target_y", e.Target.Y).
			Str("target_kind", e.TargetKind).
			Int("dealt", e.Dealt).
			Bool("killed", e.Killed)

	case *events.FactionEliminatedEvent:
		logEvent.
			Int("faction", e.Faction).
			Int("eliminated_by", e.EliminatedBy).
			Int("ply", e.Ply)

	case *events.GameEndedEvent:
		logEvent.
			Int("winner", e.Winner).
			Int("rounds", e.Rounds).
			Int("plies", e.Plies).
			Ints("points", e.Points[:]).
			Ints("living", e.Living[:]).
			Float64("winner_score", e.WinnerScore).
			Dur("duration", e.Duration)

	case *events.GenerationRecordedEvent:
		logEvent.
			Int("faction", e.Faction).
			Float64("score", e.Score).
			Int("moves", e.Moves).
			Int("history_size", e.HistorySize).
			Int("pruned", e.Pruned)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from_phase", e.FromPhase).
			Str("to_phase", e.ToPhase).
			Str("reason", e.Reason)
	}

	// In dev mode, also log the full event as JSON
	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}
