// Package viewer is a terminal replay browser for a recorded game
package viewer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/events"
)

// Frame is the board after one ply
type Frame struct {
	Round     int
	Faction   int
	Move      string
	FromModel bool
	Fallback  bool
	Board     string
}

// FramesFromEvents keeps the PlyApplied events of a recording, in order
func FramesFromEvents(recorded []events.Event) []Frame {
	var frames []Frame
	for _, e := range recorded {
		ply, ok := e.(*events.PlyAppliedEvent)
		if !ok {
			continue
		}
		frames = append(frames, Frame{
			Round:     ply.Round,
			Faction:   ply.Faction,
			Move:      ply.Move.String(),
			FromModel: ply.FromModel,
			Fallback:  ply.Fallback,
			Board:     ply.Snapshot,
		})
	}
	return frames
}

type keyMap struct {
	Prev  key.Binding
	Next  key.Binding
	First key.Binding
	Last  key.Binding
	Play  key.Binding
	Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Play, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next, k.First, k.Last}, {k.Play, k.Quit}}
}

var keys = keyMap{
	Prev:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous ply")),
	Next:  key.NewBinding(key.WithKeys("right", "l", " "), key.WithHelp("→/l", "next ply")),
	First: key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first ply")),
	Last:  key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last ply")),
	Play:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "autoplay")),
	Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			Padding(0, 1)
)

type tickMsg struct{}

// Model is the bubbletea model of the replay browser
type Model struct {
	title    string
	frames   []Frame
	index    int
	playing  bool
	interval time.Duration
	palette  game.Palette
	help     help.Model
}

// New creates a browser over frames. interval is the autoplay step.
func New(title string, frames []Frame, palette game.Palette, interval time.Duration) Model {
	if interval <= 0 {
		interval = 300 * time.Millisecond
	}
	return Model{
		title:    title,
		frames:   frames,
		interval: interval,
		palette:  palette,
		help:     help.New(),
	}
}

// Index returns the shown frame
func (m Model) Index() int { return m.index }

// Playing reports whether autoplay is on
func (m Model) Playing() bool { return m.playing }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	last := len(m.frames) - 1

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Prev):
			m.playing = false
			if m.index > 0 {
				m.index--
			}
		case key.Matches(msg, keys.Next):
			m.playing = false
			if m.index < last {
				m.index++
			}
		case key.Matches(msg, keys.First):
			m.playing = false
			m.index = 0
		case key.Matches(msg, keys.Last):
			m.playing = false
			if last >= 0 {
				m.index = last
			}
		case key.Matches(msg, keys.Play):
			m.playing = !m.playing
			if m.playing {
				return m, m.tick()
			}
		}

	case tickMsg:
		if !m.playing {
			return m, nil
		}
		if m.index >= last {
			m.playing = false
			return m, nil
		}
		m.index++
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}

	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.title))
	sb.WriteString("\n\n")

	if len(m.frames) == 0 {
		sb.WriteString("No plies recorded.\n\n")
		sb.WriteString(m.help.View(keys))
		return sb.String()
	}

	f := m.frames[m.index]
	source := "random"
	switch {
	case f.Fallback:
		source = "fallback"
	case f.FromModel:
		source = "model"
	}
	sb.WriteString(statusStyle.Render(fmt.Sprintf("Ply %d/%d  Move %d  Faction %d  %s (%s)",
		m.index+1, len(m.frames), f.Round, f.Faction, f.Move, source)))
	sb.WriteString("\n")
	sb.WriteString(boardStyle.Render(strings.TrimRight(m.palette.Colorize(f.Board), "\n")))
	sb.WriteString("\n")
	sb.WriteString(m.help.View(keys))
	return sb.String()
}
