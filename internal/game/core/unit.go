package core

import "fmt"

// UnitKind identifies the stat block a unit was created from
type UnitKind int

const (
	KindFootman UnitKind = iota
	KindArcher
)

// String returns the string representation of a UnitKind
func (k UnitKind) String() string {
	switch k {
	case KindFootman:
		return "footman"
	case KindArcher:
		return "archer"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Symbol returns the board glyph; faction 0 uses upper case
func (k UnitKind) Symbol(faction int) string {
	var s string
	switch k {
	case KindFootman:
		s = "F"
	case KindArcher:
		s = "A"
	default:
		s = "?"
	}
	if faction != 0 {
		return string(s[0] + ('a' - 'A'))
	}
	return s
}

// UnitStats are the combat stats of a unit kind
type UnitStats struct {
	AttackRange  int
	AttackDamage int
	MaxHP        int
}

// Validate checks the stat invariants
func (s UnitStats) Validate() error {
	if s.AttackRange < 1 {
		return fmt.Errorf("attack range must be at least 1, got %d: %w", s.AttackRange, ErrInvalidUnitStats)
	}
	if s.AttackDamage < 0 {
		return fmt.Errorf("attack damage must be non-negative, got %d: %w", s.AttackDamage, ErrInvalidUnitStats)
	}
	if s.MaxHP < 1 {
		return fmt.Errorf("max hp must be at least 1, got %d: %w", s.MaxHP, ErrInvalidUnitStats)
	}
	return nil
}

// Unit is a combatant. Its stats and faction are fixed for its lifetime;
// HP and position are reset at the start of every game.
type Unit struct {
	Kind UnitKind
	UnitStats
	HP int
	// Faction is the id of the owning faction, used only for friend/foe checks.
	Faction int

	pos    Coordinate
	placed bool
}

// NewUnit creates a unit with full health and no position
func NewUnit(kind UnitKind, stats UnitStats, faction int) *Unit {
	return &Unit{
		Kind:      kind,
		UnitStats: stats,
		HP:        stats.MaxHP,
		Faction:   faction,
	}
}

// Reset restores full health and clears the position
func (u *Unit) Reset() {
	u.HP = u.MaxHP
	u.placed = false
	u.pos = Coordinate{}
}

// Damage lowers HP by amount, never below zero. Returns true if the unit died.
func (u *Unit) Damage(amount int) bool {
	if amount >= u.HP {
		u.HP = 0
		return true
	}
	u.HP -= amount
	return false
}

// IsAlive reports whether the unit has HP left
func (u *Unit) IsAlive() bool { return u.HP > 0 }

// InGame reports whether the unit currently occupies a board cell
func (u *Unit) InGame() bool { return u.placed }

// Position returns the unit's cell, ok is false when it is not on the board
func (u *Unit) Position() (Coordinate, bool) {
	return u.pos, u.placed
}

// IsEnemyOf reports whether the two units belong to different factions
func (u *Unit) IsEnemyOf(other *Unit) bool {
	return u.Faction != other.Faction
}

func (u *Unit) setPosition(c Coordinate) {
	u.pos = c
	u.placed = true
}

func (u *Unit) clearPosition() {
	u.pos = Coordinate{}
	u.placed = false
}
