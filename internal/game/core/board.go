package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Cell is a single board square. The zero value is empty.
type Cell struct {
	occupant *Unit
}

// Occupant returns the unit in the cell, ok is false when the cell is empty
func (c Cell) Occupant() (*Unit, bool) {
	return c.occupant, c.occupant != nil
}

// IsEmpty reports whether no unit stands in the cell
func (c Cell) IsEmpty() bool { return c.occupant == nil }

// Board is a fixed W×H grid holding at most one unit per cell.
// A cell references unit U iff U's position is that cell.
type Board struct {
	W, H  int
	cells []Cell // length = W*H (row-major)
}

// NewBoard creates an empty board. Non-positive dimensions are rejected.
func NewBoard(w, h int) (*Board, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%dx%d: %w", w, h, ErrInvalidDimensions)
	}
	return &Board{W: w, H: h, cells: make([]Cell, w*h)}, nil
}

func (b *Board) Idx(x, y int) int { return NewCoordinate(x, y).ToIndex(b.W) }

// HasCoords checks if coordinates are within board boundaries
func (b *Board) HasCoords(x, y int) bool {
	return NewCoordinate(x, y).IsValid(b.W, b.H)
}

// CellAt returns the cell at (x,y), ok is false out of bounds
func (b *Board) CellAt(x, y int) (Cell, bool) {
	if !b.HasCoords(x, y) {
		return Cell{}, false
	}
	return b.cells[b.Idx(x, y)], true
}

// UnitAt returns the unit at (x,y) or nil
func (b *Board) UnitAt(x, y int) *Unit {
	cell, ok := b.CellAt(x, y)
	if !ok {
		return nil
	}
	u, _ := cell.Occupant()
	return u
}

// Put places the unit at (x,y), vacating its previous cell if any
func (b *Board) Put(u *Unit, x, y int) error {
	if !b.HasCoords(x, y) {
		return fmt.Errorf("put at (%d,%d): %w", x, y, ErrInvalidCoordinates)
	}
	idx := b.Idx(x, y)
	if occ := b.cells[idx].occupant; occ != nil && occ != u {
		return fmt.Errorf("put at (%d,%d): %w", x, y, ErrCellOccupied)
	}
	if pos, ok := u.Position(); ok {
		b.cells[b.Idx(pos.X, pos.Y)].occupant = nil
	}
	b.cells[idx].occupant = u
	u.setPosition(NewCoordinate(x, y))
	return nil
}

// Remove takes the unit off the board. HP is left untouched.
// It is a no-op for a unit that is not on the board.
func (b *Board) Remove(u *Unit) {
	pos, ok := u.Position()
	if !ok {
		return
	}
	if b.HasCoords(pos.X, pos.Y) {
		idx := b.Idx(pos.X, pos.Y)
		if b.cells[idx].occupant == u {
			b.cells[idx].occupant = nil
		}
	}
	u.clearPosition()
}

// Clear removes every unit from the board
func (b *Board) Clear() {
	for i := range b.cells {
		if u := b.cells[i].occupant; u != nil {
			u.clearPosition()
		}
		b.cells[i].occupant = nil
	}
}

// Units returns the occupants in row-major order
func (b *Board) Units() []*Unit {
	var units []*Unit
	for _, c := range b.cells {
		if c.occupant != nil {
			units = append(units, c.occupant)
		}
	}
	return units
}

// Render draws the board as text, one column per line (x down the page, y
// across). Each occupied cell shows the unit glyph and HP; the unit acting
// with an attack is prefixed by the attack direction.
func (b *Board) Render(actor *Unit, move *Move) string {
	rule := strings.Repeat("-", b.H*3) + "\n"

	var sb strings.Builder
	sb.Grow((b.H*3+2)*(b.W*2) + 2*len(rule))
	sb.WriteString(rule)
	for x := 0; x < b.W; x++ {
		for y := 0; y < b.H; y++ {
			u := b.cells[b.Idx(x, y)].occupant
			if u == nil {
				sb.WriteString("   ")
				continue
			}
			if move != nil && u == actor && move.Type == MoveAttack {
				sb.WriteString(strconv.Itoa(int(move.Direction)))
			} else {
				sb.WriteString(" ")
			}
			sb.WriteString(u.Kind.Symbol(u.Faction))
			sb.WriteString(strconv.Itoa(u.HP))
		}
		sb.WriteString("\n\n")
	}
	sb.WriteString(rule)
	return sb.String()
}
