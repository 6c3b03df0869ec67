// Package core provides fundamental types and utilities for the tank battle
// engine. It contains no external dependencies (especially no Bubble Tea) to
// keep simulation logic pure and testable.
package core

import "fmt"

// Coord is a grid cell position. Board arithmetic is toroidal: positions
// wrap around both edges, so a normalized coordinate is never negative.
type Coord struct {
	X, Y int
}

// Add returns the component-wise sum of two coordinates without wrapping.
func (c Coord) Add(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y}
}

// Wrap normalizes the coordinate onto a w×h torus. The result is always
// within [0, w) × [0, h), even for negative inputs.
func (c Coord) Wrap(w, h int) Coord {
	return Coord{
		X: ((c.X % w) + w) % w,
		Y: ((c.Y % h) + h) % h,
	}
}

// String returns the coordinate as "(x,y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction is one of the 8 compass directions. Each increment is a 45°
// clockwise step, so rotation is arithmetic modulo 8.
type Direction int

const (
	Up Direction = iota
	UpRight
	Right
	DownRight
	Down
	DownLeft
	Left
	UpLeft
)

// NumDirections is the size of the compass.
const NumDirections = 8

// Directions lists all compass directions in canonical order. Algorithms
// that enumerate neighbors must use this order so ties break identically
// on every run.
var Directions = [NumDirections]Direction{
	Up, UpRight, Right, DownRight, Down, DownLeft, Left, UpLeft,
}

var directionNames = [NumDirections]string{
	"up", "up_right", "right", "down_right", "down", "down_left", "left", "up_left",
}

var directionOffsets = [NumDirections]Coord{
	{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// Offset returns the cell delta for moving one step in this direction,
// scaled by multiplier (use -1 for reverse movement).
func (d Direction) Offset(multiplier int) Coord {
	o := directionOffsets[d.normalize()]
	return Coord{X: o.X * multiplier, Y: o.Y * multiplier}
}

// Rotate turns the direction by the given number of 45° steps. Positive
// steps are clockwise, negative counter-clockwise.
func (d Direction) Rotate(steps int) Direction {
	n := (int(d) + steps) % NumDirections
	return Direction((n + NumDirections) % NumDirections)
}

// Opposite returns the direction 180° away.
func (d Direction) Opposite() Direction {
	return d.Rotate(4)
}

// String returns a lowercase name for the direction.
func (d Direction) String() string {
	return directionNames[d.normalize()]
}

func (d Direction) normalize() Direction {
	return Direction(((int(d) % NumDirections) + NumDirections) % NumDirections)
}

// WrappedDelta returns the per-axis absolute distance between two cells on
// a w×h torus, taking the shorter way around each axis.
func WrappedDelta(a, b Coord, w, h int) (dx, dy int) {
	dx = Abs(a.X - b.X)
	dy = Abs(a.Y - b.Y)
	dx = Min(dx, w-dx)
	dy = Min(dy, h-dy)
	return dx, dy
}

// WrappedDistSq returns the squared Euclidean distance between two cells on
// a w×h torus. Squared form avoids floating point on the comparison path.
func WrappedDistSq(a, b Coord, w, h int) int {
	dx, dy := WrappedDelta(a, b, w, h)
	return dx*dx + dy*dy
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
