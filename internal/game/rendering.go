package game

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette colors the unit glyphs of a rendered board, one style per faction
type Palette struct {
	styles [FactionCount]lipgloss.Style
}

// NewPalette builds the faction styles on r. Output degrades to plain text
// when r's color profile has no colors.
func NewPalette(r *lipgloss.Renderer) Palette {
	return Palette{styles: [FactionCount]lipgloss.Style{
		r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		r.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
	}}
}

var defaultPalette = NewPalette(lipgloss.DefaultRenderer())

// Board returns the current board as text
func (e *Engine) Board() string {
	return e.gs.Board.Render(nil, nil)
}

// ColorBoard returns the board with each faction's units in its color
func (e *Engine) ColorBoard() string {
	return Colorize(e.Board())
}

// Colorize colors a rendered board for the terminal on stdout
func Colorize(board string) string {
	return defaultPalette.Colorize(board)
}

// Colorize colors the unit glyphs of a rendered board together with their HP
// digit. Faction 0 glyphs are upper case, faction 1 glyphs lower case.
func (p Palette) Colorize(board string) string {
	var sb strings.Builder
	sb.Grow(len(board) * 2)
	for i := 0; i < len(board); i++ {
		faction := glyphFaction(board[i])
		if faction < 0 {
			sb.WriteByte(board[i])
			continue
		}
		start := i
		for i+1 < len(board) && board[i+1] >= '0' && board[i+1] <= '9' {
			i++
		}
		sb.WriteString(p.styles[faction].Render(board[start : i+1]))
	}
	return sb.String()
}

func glyphFaction(c byte) int {
	switch c {
	case 'F', 'A':
		return 0
	case 'f', 'a':
		return 1
	default:
		return -1
	}
}
