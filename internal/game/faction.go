package game

import (
	"fmt"

	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/core"
)

// UnitSpec describes one roster slot
type UnitSpec struct {
	Kind  core.UnitKind
	Stats core.UnitStats
}

// DefaultRoster returns the footman, archer, footman, archer lineup
func DefaultRoster(footman, archer core.UnitStats) []UnitSpec {
	return []UnitSpec{
		{Kind: core.KindFootman, Stats: footman},
		{Kind: core.KindArcher, Stats: archer},
		{Kind: core.KindFootman, Stats: footman},
		{Kind: core.KindArcher, Stats: archer},
	}
}

// Faction is one side of every game in a run. Units and history persist
// across games; per-game state lives in a Session.
type Faction struct {
	ID               int
	MutationChance   float64
	LookbackDistance int
	Units            []*core.Unit

	LossStreak int
	Aces       int

	generations []Generation
}

// NewFaction creates a faction with one unit per roster slot
func NewFaction(id int, mutationChance float64, lookbackDistance int, roster []UnitSpec) (*Faction, error) {
	if id < 0 || id >= FactionCount {
		return nil, fmt.Errorf("faction %d: %w", id, core.ErrInvalidFaction)
	}
	if len(roster) != core.RosterSize {
		return nil, fmt.Errorf("faction %d: roster needs %d units, got %d", id, core.RosterSize, len(roster))
	}
	if lookbackDistance < 1 {
		return nil, fmt.Errorf("faction %d: lookback distance must be at least 1", id)
	}

	f := &Faction{
		ID:               id,
		MutationChance:   mutationChance,
		LookbackDistance: lookbackDistance,
		Units:            make([]*core.Unit, 0, len(roster)),
	}
	for _, spec := range roster {
		if err := spec.Stats.Validate(); err != nil {
			return nil, fmt.Errorf("faction %d %s: %w", id, spec.Kind, err)
		}
		f.Units = append(f.Units, core.NewUnit(spec.Kind, spec.Stats, id))
	}
	return f, nil
}

// Generations returns the history, oldest first
func (f *Faction) Generations() []Generation {
	out := make([]Generation, len(f.generations))
	copy(out, f.generations)
	return out
}

// PickModel selects the best generation among the last LookbackDistance.
// Scanning goes newest to oldest and only a strictly higher score replaces
// the pick, so the newest of equal scores wins. No model is returned when
// there is no history or the best score is below ModelMinScore.
func (f *Faction) PickModel() (Generation, bool) {
	last := len(f.generations) - 1
	if last < 0 {
		return Generation{}, false
	}

	best := last
	end := last - f.LookbackDistance
	for i := last; i >= 0 && i > end; i-- {
		if f.generations[i].Score > f.generations[best].Score {
			best = i
		}
	}

	if f.generations[best].Score < ModelMinScore {
		return Generation{}, false
	}
	return f.generations[best], true
}

// MutationProbability is the chance a replayed model move gets mutated.
// It grows with the loss streak up to MaxMutationProbability.
func (f *Faction) MutationProbability() float64 {
	p := f.MutationChance * float64(f.LossStreak+1)
	if p > MaxMutationProbability {
		return MaxMutationProbability
	}
	return p
}

// BeginGame resets the units and starts a fresh session with a model
// picked from the history
func (f *Faction) BeginGame() *Session {
	for _, u := range f.Units {
		u.Reset()
	}
	s := &Session{
		Faction: f,
		Moves:   make([]core.Move, 0, 64),
		Living:  len(f.Units),
	}
	if model, ok := f.PickModel(); ok {
		s.Model = &model
	}
	return s
}

// RecordGeneration appends g to the history and prunes the oldest entries
// once the history outgrows its limit. Returns the number pruned.
func (f *Faction) RecordGeneration(g Generation) int {
	f.generations = append(f.generations, g)

	if len(f.generations) <= HistoryLimitFactor*f.LookbackDistance {
		return 0
	}
	pruned := HistoryPruneFactor * f.LookbackDistance
	kept := make([]Generation, len(f.generations)-pruned)
	copy(kept, f.generations[pruned:])
	f.generations = kept
	return pruned
}

// Restore replaces the history and streak counters with ones saved from an
// earlier run. Only the newest HistoryLimitFactor*LookbackDistance
// generations are kept.
func (f *Faction) Restore(generations []Generation, lossStreak, aces int) {
	if limit := HistoryLimitFactor * f.LookbackDistance; len(generations) > limit {
		generations = generations[len(generations)-limit:]
	}
	f.generations = make([]Generation, len(generations))
	copy(f.generations, generations)
	f.LossStreak = lossStreak
	f.Aces = aces
}
