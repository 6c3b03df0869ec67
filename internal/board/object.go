// Package board holds the mutable battlefield state: the closed set of
// world objects (tank, shell, wall, mine), spatial queries over them, and
// the read-only snapshot handed to decision strategies.
package board

import "github.com/vovakirdan/tank-arena/internal/core"

// Kind tags the closed set of object variants. The collision resolver
// switches exhaustively over kinds instead of using open-ended type
// hierarchies.
type Kind int

const (
	KindTank Kind = iota
	KindShell
	KindWall
	KindMine
)

// String returns a lowercase name for the kind.
func (k Kind) String() string {
	switch k {
	case KindTank:
		return "tank"
	case KindShell:
		return "shell"
	case KindWall:
		return "wall"
	case KindMine:
		return "mine"
	default:
		return "unknown"
	}
}

// Object is the shared surface of every world object: a position, a
// destroyed flag, and a render symbol. Destroyed objects stay in the
// collection until end-of-tick cleanup, so stale handles are expected
// and callers must check Destroyed before acting on one.
type Object interface {
	Kind() Kind
	Pos() core.Coord
	Destroyed() bool
	Destroy()
	Symbol() rune
}

// objectState carries the fields common to all object variants.
type objectState struct {
	pos       core.Coord
	destroyed bool
}

func (o *objectState) Pos() core.Coord {
	return o.pos
}

// SetPos moves the object to the given cell. Only the engine calls this,
// after collision resolution has produced the final position.
func (o *objectState) SetPos(p core.Coord) {
	o.pos = p
}

func (o *objectState) Destroyed() bool {
	return o.destroyed
}

// Destroy marks the object destroyed. The flag is permanent: objects are
// purged at end of tick and never resurrected.
func (o *objectState) Destroy() {
	o.destroyed = true
}

// Shell is a projectile in flight. Shells travel ShellSpeed cells per full
// tick and are destroyed by any terminal collision.
type Shell struct {
	objectState
	dir      core.Direction
	progress int
}

// NewShell creates a shell at the given cell heading in dir.
func NewShell(pos core.Coord, dir core.Direction) *Shell {
	s := &Shell{dir: dir}
	s.pos = pos
	return s
}

func (s *Shell) Kind() Kind { return KindShell }

func (s *Shell) Symbol() rune { return '*' }

// Dir returns the travel direction, fixed at spawn time.
func (s *Shell) Dir() core.Direction { return s.dir }

// AdvanceProgress accumulates one sub-step of movement and returns the
// shell's intended position: one cell ahead (with wraparound) when enough
// progress has built up, the current cell otherwise.
func (s *Shell) AdvanceProgress(maxSpeed, w, h int) core.Coord {
	s.progress += ShellSpeed
	if s.progress >= maxSpeed {
		s.progress -= maxSpeed
		return s.pos.Add(s.dir.Offset(1)).Wrap(w, h)
	}
	return s.pos
}

// Wall is a destructible obstacle. Each shell hit removes one health
// point; the wall is destroyed when health reaches zero.
type Wall struct {
	objectState
	health int
}

// NewWall creates a wall with the given starting health.
func NewWall(pos core.Coord, health int) *Wall {
	w := &Wall{health: health}
	w.pos = pos
	return w
}

func (w *Wall) Kind() Kind { return KindWall }

func (w *Wall) Symbol() rune { return '#' }

// Health returns the remaining hit points.
func (w *Wall) Health() int { return w.health }

// Damage removes one health point and reports whether the wall was
// destroyed by this hit. Health never goes below zero.
func (w *Wall) Damage() bool {
	if w.health > 0 {
		w.health--
	}
	if w.health == 0 && !w.destroyed {
		w.destroyed = true
		return true
	}
	return false
}

// Mine is a static trap. It triggers, and is consumed, the first time a
// tank's effective position coincides with it.
type Mine struct {
	objectState
}

// NewMine creates a mine at the given cell.
func NewMine(pos core.Coord) *Mine {
	m := &Mine{}
	m.pos = pos
	return m
}

func (m *Mine) Kind() Kind { return KindMine }

func (m *Mine) Symbol() rune { return '@' }
