package core

import "fmt"

// MoveType represents what a move does with the selected unit
type MoveType int

const (
	MoveWalk MoveType = iota
	MoveAttack
)

// String returns the string representation of a MoveType
func (t MoveType) String() string {
	switch t {
	case MoveWalk:
		return "walk"
	case MoveAttack:
		return "attack"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// Toggle returns the other move type
func (t MoveType) Toggle() MoveType {
	if t == MoveWalk {
		return MoveAttack
	}
	return MoveWalk
}

// RosterSize is the number of units every faction fields
const RosterSize = 4

// Mutation and sampling probabilities. A draw r hits a chance c when r <= c.
const (
	MutateDirectionChance = 0.8
	MutateMoveTypeChance  = 0.2
	MutateUnitIDChance    = 0.15
	RandomWalkChance      = 0.6
)

// mutateDirectionDistribution is cumulative over drift magnitudes 1..4
var mutateDirectionDistribution = [4]float64{0.50, 0.70, 0.95, 1.00}

// Move is a single atomic action of one unit. Moves are values: mutation
// returns a new Move and leaves the receiver untouched.
type Move struct {
	UnitID    int       `yaml:"unit_id"`
	Type      MoveType  `yaml:"type"`
	Direction Direction `yaml:"direction"`
}

// NewMove creates a move, normalizing the direction
func NewMove(unitID int, moveType MoveType, direction int) Move {
	return Move{UnitID: unitID, Type: moveType, Direction: NormalizeDirection(direction)}
}

// Mutate applies direction drift, move type flip and unit reselection, each
// drawn independently and in that order.
func (m Move) Mutate(rng Rand) Move {
	out := m

	if rng.Float64() <= MutateDirectionChance {
		roll := rng.Float64()
		magnitude := len(mutateDirectionDistribution)
		for i, threshold := range mutateDirectionDistribution {
			if roll <= threshold {
				magnitude = i + 1
				break
			}
		}
		if rng.Intn(2) == 1 {
			out.Direction = NormalizeDirection(int(out.Direction) + magnitude)
		} else {
			out.Direction = NormalizeDirection(int(out.Direction) - magnitude)
		}
	}

	if rng.Float64() <= MutateMoveTypeChance {
		out.Type = out.Type.Toggle()
	}

	if rng.Float64() <= MutateUnitIDChance {
		out.UnitID = rng.Intn(RosterSize)
	}

	return out
}

// Replicate returns an independent copy of the move, mutated if requested
func (m Move) Replicate(rng Rand, mutate bool) Move {
	if mutate {
		return m.Mutate(rng)
	}
	return m
}

// RandomMove samples a move: uniform unit, 60% walk, uniform direction
func RandomMove(rng Rand) Move {
	unitID := rng.Intn(RosterSize)

	moveType := MoveAttack
	if rng.Float64() <= RandomWalkChance {
		moveType = MoveWalk
	}

	return Move{
		UnitID:    unitID,
		Type:      moveType,
		Direction: Direction(rng.Intn(DirectionCount)),
	}
}

// String returns a string representation of the move
func (m Move) String() string {
	return fmt.Sprintf("UnitId: %d, MoveType: %s, Direction: %d", m.UnitID, m.Type, m.Direction)
}
