package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game"
)

// FactionHistory is the persisted state of one faction after a batch
type FactionHistory struct {
	ID               int               `yaml:"id"`
	MutationChance   float64           `yaml:"mutation_chance"`
	LookbackDistance int               `yaml:"lookback_distance"`
	LossStreak       int               `yaml:"loss_streak"`
	Aces             int               `yaml:"aces"`
	Generations      []game.Generation `yaml:"generations"`
}

// History is the YAML document written at the end of a run
type History struct {
	RunID    string           `yaml:"run_id"`
	Games    int              `yaml:"games"`
	Factions []FactionHistory `yaml:"factions"`
}

// NewHistory captures the factions' surviving generations
func NewHistory(runID string, games int, factions [game.FactionCount]*game.Faction) History {
	h := History{RunID: runID, Games: games}
	for _, f := range factions {
		h.Factions = append(h.Factions, FactionHistory{
			ID:               f.ID,
			MutationChance:   f.MutationChance,
			LookbackDistance: f.LookbackDistance,
			LossStreak:       f.LossStreak,
			Aces:             f.Aces,
			Generations:      f.Generations(),
		})
	}
	return h
}

// WriteHistory encodes the history as YAML
func WriteHistory(w io.Writer, h History) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(h); err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	return enc.Close()
}

// ReadHistory decodes a history written by WriteHistory
func ReadHistory(r io.Reader) (History, error) {
	var h History
	if err := yaml.NewDecoder(r).Decode(&h); err != nil {
		return History{}, fmt.Errorf("decoding history: %w", err)
	}
	return h, nil
}

// Apply seeds the factions with the saved generations and counters so a new
// run continues learning where this one stopped. Learning parameters come
// from the current settings, not from the file.
func (h History) Apply(factions [game.FactionCount]*game.Faction) error {
	if len(h.Factions) != game.FactionCount {
		return fmt.Errorf("history has %d factions, want %d", len(h.Factions), game.FactionCount)
	}
	for i, fh := range h.Factions {
		if fh.ID != factions[i].ID {
			return fmt.Errorf("history entry %d is faction %d, want %d", i, fh.ID, factions[i].ID)
		}
	}
	for i, fh := range h.Factions {
		factions[i].Restore(fh.Generations, fh.LossStreak, fh.Aces)
	}
	return nil
}
