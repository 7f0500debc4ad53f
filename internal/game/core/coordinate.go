package core

import "fmt"

// Coordinate represents a position (or an offset) on the game board
type Coordinate struct {
	X, Y int
}

// NewCoordinate creates a new coordinate with the given x and y values
func NewCoordinate(x, y int) Coordinate {
	return Coordinate{X: x, Y: y}
}

// IsValid checks if the coordinate is within the given bounds
func (c Coordinate) IsValid(width, height int) bool {
	return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
}

// ToIndex converts the coordinate to a board array index using row-major ordering
func (c Coordinate) ToIndex(width int) int {
	return c.Y*width + c.X
}

// Add returns a new coordinate that is the sum of this coordinate and another
func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{
		X: c.X + other.X,
		Y: c.Y + other.Y,
	}
}

// Negate returns the opposite offset
func (c Coordinate) Negate() Coordinate {
	return Coordinate{X: -c.X, Y: -c.Y}
}

// Equal checks if two coordinates are equal
func (c Coordinate) Equal(other Coordinate) bool {
	return c.X == other.X && c.Y == other.Y
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction is one of the 8 compass and diagonal directions, 0..7.
// Direction d and d+4 always point in exactly opposite directions.
type Direction int

// DirectionCount is the number of distinct directions
const DirectionCount = 8

// baseVectors holds the offsets for directions 0..3; 4..7 are their negations.
var baseVectors = [4]Coordinate{
	{X: 0, Y: 1},
	{X: 1, Y: 1},
	{X: 1, Y: 0},
	{X: 1, Y: -1},
}

// NormalizeDirection wraps any integer into the [0,7] direction range
func NormalizeDirection(d int) Direction {
	d %= DirectionCount
	if d < 0 {
		d += DirectionCount
	}
	return Direction(d)
}

// Vector returns the unit offset for the direction
func (d Direction) Vector() Coordinate {
	n := NormalizeDirection(int(d))
	if n >= 4 {
		return baseVectors[n-4].Negate()
	}
	return baseVectors[n]
}

// Opposite returns the direction pointing the other way
func (d Direction) Opposite() Direction {
	return NormalizeDirection(int(d) + 4)
}

// Move returns a new coordinate moved one step in the given direction
func (c Coordinate) Move(d Direction) Coordinate {
	return c.Add(d.Vector())
}
