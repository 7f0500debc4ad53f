package events

import (
	"time"

	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted        = "game.started"
	TypeGameEnded          = "game.ended"
	TypeModelSelected      = "model.selected"
	TypePlyApplied         = "ply.applied"
	TypeAttackResolved     = "attack.resolved"
	TypeFactionEliminated  = "faction.eliminated"
	TypeGenerationRecorded = "generation.recorded"
	TypeStateTransition    = "state.transition"
)

// GameStartedEvent is published once the board is populated
type GameStartedEvent struct {
	BaseEvent
	BoardWidth  int
	BoardHeight int
	MaxMoves    int
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(runID string, gameID, width, height, maxMoves int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:   newBase(TypeGameStarted, runID, gameID),
		BoardWidth:  width,
		BoardHeight: height,
		MaxMoves:    maxMoves,
	}
}

// ModelSelectedEvent reports which generation a faction imitates this game.
// SourceGame is -1 when the faction plays randomly.
type ModelSelectedEvent struct {
	BaseEvent
	Faction    int
	SourceGame int
	ModelScore float64
	ModelMoves int
}

// NewModelSelectedEvent creates a new ModelSelectedEvent
func NewModelSelectedEvent(runID string, gameID, faction, sourceGame int, score float64, moves int) *ModelSelectedEvent {
	return &ModelSelectedEvent{
		BaseEvent:  newBase(TypeModelSelected, runID, gameID),
		Faction:    faction,
		SourceGame: sourceGame,
		ModelScore: score,
		ModelMoves: moves,
	}
}

// PlyAppliedEvent is published after every ply. Snapshot holds the rendered
// board after the move and is only filled when someone listens for it.
type PlyAppliedEvent struct {
	BaseEvent
	Faction   int
	Round     int
	Ply       int
	Move      core.Move
	FromModel bool
	Resamples int
	Fallback  bool
	Snapshot  string
}

// NewPlyAppliedEvent creates a new PlyAppliedEvent
func NewPlyAppliedEvent(runID string, gameID, faction, round, ply int, move core.Move) *PlyAppliedEvent {
	return &PlyAppliedEvent{
		BaseEvent: newBase(TypePlyApplied, runID, gameID),
		Faction:   faction,
		Round:     round,
		Ply:       ply,
		Move:      move,
	}
}

// AttackResolvedEvent is published when an attack damages an enemy
type AttackResolvedEvent struct {
	BaseEvent
	Faction    int
	UnitID     int
	Target     core.Coordinate
	TargetKind string
	Dealt      int
	Killed     bool
}

// NewAttackResolvedEvent creates a new AttackResolvedEvent
func NewAttackResolvedEvent(runID string, gameID, faction, unitID int, target core.Coordinate, kind string, dealt int, killed bool) *AttackResolvedEvent {
	return &AttackResolvedEvent{
		BaseEvent:  newBase(TypeAttackResolved, runID, gameID),
		Faction:    faction,
		UnitID:     unitID,
		Target:     target,
		TargetKind: kind,
		Dealt:      dealt,
		Killed:     killed,
	}
}

// FactionEliminatedEvent is published when a faction loses its last unit
type FactionEliminatedEvent struct {
	BaseEvent
	Faction      int
	EliminatedBy int
	Ply          int
}

// NewFactionEliminatedEvent creates a new FactionEliminatedEvent
func NewFactionEliminatedEvent(runID string, gameID, faction, by, ply int) *FactionEliminatedEvent {
	return &FactionEliminatedEvent{
		BaseEvent:    newBase(TypeFactionEliminated, runID, gameID),
		Faction:      faction,
		EliminatedBy: by,
		Ply:          ply,
	}
}

// GameEndedEvent is published when a game ends. Winner is -1 for a draw.
type GameEndedEvent struct {
	BaseEvent
	Winner      int
	Rounds      int
	Plies       int
	Points      [2]int
	Living      [2]int
	WinnerScore float64
	Duration    time.Duration
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(runID string, gameID, winner, rounds, plies int, points, living [2]int, score float64, duration time.Duration) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent:   newBase(TypeGameEnded, runID, gameID),
		Winner:      winner,
		Rounds:      rounds,
		Plies:       plies,
		Points:      points,
		Living:      living,
		WinnerScore: score,
		Duration:    duration,
	}
}

// GenerationRecordedEvent is published when a winner stores a generation
type GenerationRecordedEvent struct {
	BaseEvent
	Faction     int
	Score       float64
	Moves       int
	HistorySize int
	Pruned      int
}

// NewGenerationRecordedEvent creates a new GenerationRecordedEvent
func NewGenerationRecordedEvent(runID string, gameID, faction int, score float64, moves, historySize, pruned int) *GenerationRecordedEvent {
	return &GenerationRecordedEvent{
		BaseEvent:   newBase(TypeGenerationRecorded, runID, gameID),
		Faction:     faction,
		Score:       score,
		Moves:       moves,
		HistorySize: historySize,
		Pruned:      pruned,
	}
}

// StateTransitionEvent is published when the game phase changes
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(runID string, gameID int, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, runID, gameID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
