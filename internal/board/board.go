package board

import "github.com/vovakirdan/tank-arena/internal/core"

// Board owns the collection of all world objects. It is mutated only by
// the engine; strategies see it exclusively through snapshots.
//
// At tick boundaries at most one live blocking object (tank, wall, mine)
// occupies a cell; transient intra-tick overlap is allowed and resolved
// by the collision pipeline.
type Board struct {
	width   int
	height  int
	objects []Object
}

// New creates an empty board with immutable dimensions.
func New(width, height int) *Board {
	return &Board{width: width, height: height}
}

// Width returns the board width in cells.
func (b *Board) Width() int { return b.width }

// Height returns the board height in cells.
func (b *Board) Height() int { return b.height }

// Add appends an object to the board. Population order is preserved, so
// iteration is deterministic.
func (b *Board) Add(obj Object) {
	b.objects = append(b.objects, obj)
}

// Objects returns the live view of the object collection, including
// objects destroyed earlier this tick. Callers must skip nil entries and
// check Destroyed.
func (b *Board) Objects() []Object {
	return b.objects
}

// Tanks returns all non-destroyed tanks, in population (ID) order.
// player 0 selects both factions.
func (b *Board) Tanks(player int) []*Tank {
	var tanks []*Tank
	for _, obj := range b.objects {
		t, ok := obj.(*Tank)
		if !ok || t.Destroyed() {
			continue
		}
		if player == 0 || t.Player() == player {
			tanks = append(tanks, t)
		}
	}
	return tanks
}

// Shells returns all non-destroyed shells in population order.
func (b *Board) Shells() []*Shell {
	var shells []*Shell
	for _, obj := range b.objects {
		if s, ok := obj.(*Shell); ok && !s.Destroyed() {
			shells = append(shells, s)
		}
	}
	return shells
}

// ObjectAt returns the first non-destroyed object at the given cell, or
// nil if the cell is empty.
func (b *Board) ObjectAt(pos core.Coord) Object {
	for _, obj := range b.objects {
		if obj != nil && !obj.Destroyed() && obj.Pos() == pos {
			return obj
		}
	}
	return nil
}

// WallAt returns the live wall at the given cell, or nil.
func (b *Board) WallAt(pos core.Coord) *Wall {
	for _, obj := range b.objects {
		if w, ok := obj.(*Wall); ok && !w.Destroyed() && w.Pos() == pos {
			return w
		}
	}
	return nil
}

// MineAt returns the live mine at the given cell, or nil.
func (b *Board) MineAt(pos core.Coord) *Mine {
	for _, obj := range b.objects {
		if m, ok := obj.(*Mine); ok && !m.Destroyed() && m.Pos() == pos {
			return m
		}
	}
	return nil
}

// InBounds reports whether the coordinate lies on the board.
func (b *Board) InBounds(pos core.Coord) bool {
	return pos.X >= 0 && pos.X < b.width && pos.Y >= 0 && pos.Y < b.height
}

// Purge removes destroyed objects from the collection. Called once at end
// of tick; destroyed objects are never mutated afterward.
func (b *Board) Purge() int {
	kept := b.objects[:0]
	removed := 0
	for _, obj := range b.objects {
		if obj == nil || obj.Destroyed() {
			removed++
			continue
		}
		kept = append(kept, obj)
	}
	b.objects = kept
	return removed
}
