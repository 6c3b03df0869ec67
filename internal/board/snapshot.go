package board

import "github.com/vovakirdan/tank-arena/internal/core"

// Cell symbols as they appear in snapshots and transcripts.
const (
	SymbolEmpty       = ' '
	SymbolWall        = '#'
	SymbolMine        = '@'
	SymbolShell       = '*'
	SymbolSelf        = '%'
	SymbolOutOfBounds = '&'
)

// Snapshot is an immutable symbol grid captured at the moment a tank
// requests battle info. It is the only view of the board a strategy ever
// receives; the live board is never exposed.
//
// A shell over a mine renders as the shell. The requesting tank's own
// cell renders as '%' instead of its player digit.
type Snapshot struct {
	width  int
	height int
	grid   [][]rune
}

// Capture renders the board state as seen by the given tank. A nil self
// omits the '%' marker, which the renderers use for spectator views.
func Capture(b *Board, self *Tank) *Snapshot {
	s := &Snapshot{width: b.Width(), height: b.Height()}
	s.grid = make([][]rune, s.height)
	for y := range s.grid {
		s.grid[y] = make([]rune, s.width)
		for x := range s.grid[y] {
			s.grid[y][x] = SymbolEmpty
		}
	}
	// Mines first so anything else at the cell obscures them.
	for _, obj := range b.Objects() {
		if obj == nil || obj.Destroyed() || obj.Kind() != KindMine {
			continue
		}
		p := obj.Pos()
		s.grid[p.Y][p.X] = obj.Symbol()
	}
	for _, obj := range b.Objects() {
		if obj == nil || obj.Destroyed() || obj.Kind() == KindMine {
			continue
		}
		p := obj.Pos()
		s.grid[p.Y][p.X] = obj.Symbol()
	}
	// Shells obscure tanks and mines alike.
	for _, sh := range b.Shells() {
		p := sh.Pos()
		s.grid[p.Y][p.X] = SymbolShell
	}
	if self != nil && !self.Destroyed() {
		p := self.Pos()
		s.grid[p.Y][p.X] = SymbolSelf
	}
	return s
}

// WithSelf returns a copy of the snapshot with the '%' marker stamped on
// the given tank's cell. The engine captures one spectator grid per tick
// and derives each requesting tank's view from it, so every tank sees the
// same board state no matter where in the poll order it asked.
func (s *Snapshot) WithSelf(self *Tank) *Snapshot {
	out := &Snapshot{width: s.width, height: s.height}
	out.grid = make([][]rune, s.height)
	for y := range s.grid {
		out.grid[y] = append([]rune(nil), s.grid[y]...)
	}
	if self != nil && !self.Destroyed() {
		p := self.Pos()
		out.grid[p.Y][p.X] = SymbolSelf
	}
	return out
}

// Width returns the board width in cells.
func (s *Snapshot) Width() int { return s.width }

// Height returns the board height in cells.
func (s *Snapshot) Height() int { return s.height }

// At returns the symbol at (x, y), or '&' when the coordinate lies off
// the board. Callers probing wrapped coordinates should wrap first.
func (s *Snapshot) At(x, y int) rune {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return SymbolOutOfBounds
	}
	return s.grid[y][x]
}

// AtCoord is At for a Coord.
func (s *Snapshot) AtCoord(p core.Coord) rune {
	return s.At(p.X, p.Y)
}

// Find returns the coordinates of every cell holding the given symbol,
// scanned row-major for determinism.
func (s *Snapshot) Find(symbol rune) []core.Coord {
	var out []core.Coord
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			if s.grid[y][x] == symbol {
				out = append(out, core.Coord{X: x, Y: y})
			}
		}
	}
	return out
}
