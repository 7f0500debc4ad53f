package report

import (
	"fmt"
	"io"

	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game"
)

// Tally counts wins, aces and draws over a batch
type Tally struct {
	Wins  [game.FactionCount]int
	Aces  [game.FactionCount]int
	Draws int
}

// Add counts one outcome
func (t *Tally) Add(o game.Outcome) {
	if o.IsDraw() {
		t.Draws++
		return
	}
	t.Wins[o.Winner]++
	if o.Aced() {
		t.Aces[o.Winner]++
	}
}

// Games returns the number of outcomes counted
func (t Tally) Games() int {
	return t.Wins[0] + t.Wins[1] + t.Draws
}

// SummaryWriter writes one line per game and a closing tally
type SummaryWriter struct {
	w     io.Writer
	tally Tally
}

// NewSummaryWriter creates a summary writer on w
func NewSummaryWriter(w io.Writer) *SummaryWriter {
	return &SummaryWriter{w: w}
}

// WriteHeader writes the run id line that opens a summary
func (s *SummaryWriter) WriteHeader(runID string, games int) error {
	_, err := fmt.Fprintf(s.w, "Run %s, %d games\n", runID, games)
	return err
}

// FormatOutcome renders the summary line of a game
func FormatOutcome(o game.Outcome) string {
	winner := "draw"
	if !o.IsDraw() {
		winner = fmt.Sprintf("%d", o.Winner)
	}
	return fmt.Sprintf("Game %d, Winner %s, %d moves score %d:%d (%d:%d living), worth %.2f",
		o.GameID, winner, o.Rounds, o.Points[0], o.Points[1], o.Living[0], o.Living[1], o.WinnerScore)
}

// WriteOutcome writes the game's line and counts it. It fits the outcome
// handler of game.Simulation.Run.
func (s *SummaryWriter) WriteOutcome(o game.Outcome) error {
	s.tally.Add(o)
	_, err := fmt.Fprintln(s.w, FormatOutcome(o))
	return err
}

// Tally returns the counts so far
func (s *SummaryWriter) Tally() Tally {
	return s.tally
}

// WriteTally writes the closing win, ace and draw counts
func (s *SummaryWriter) WriteTally() error {
	t := s.tally
	_, err := fmt.Fprintf(s.w, "\nFaction 0: %d (%d aces)\nFaction 1: %d (%d aces)\nDraw: %d\n",
		t.Wins[0], t.Aces[0], t.Wins[1], t.Aces[1], t.Draws)
	return err
}
