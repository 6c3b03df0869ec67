package strategy

import (
	"math"

	"github.com/vovakirdan/tank-arena/internal/board"
	"github.com/vovakirdan/tank-arena/internal/core"
)

func init() {
	Register("chaser", "pursues the nearest enemy, evades incoming shells", func(p Params) Strategy {
		return NewChaser(p)
	})
}

// Chaser hunts the closest opponent tank. It refreshes its board snapshot
// every other tick and mirrors its own ammo and cooldown locally, since a
// snapshot carries neither.
//
// Priority order each acting tick: evade an incoming shell, shoot a
// target in clear line of sight, follow a BFS path toward the target,
// rotate in place to search.
type Chaser struct {
	player   int
	facing   core.Direction
	ammo     int
	cooldown int
	reload   int

	askInfo bool
	snap    *board.Snapshot

	prevShells []core.Coord
	shellDirs  map[core.Coord]core.Direction
}

// shellTrack is a shell position with its inferred travel direction.
type shellTrack struct {
	pos core.Coord
	dir core.Direction
}

// NewChaser creates a chaser for the given tank. Player 1 tanks spawn
// facing left, player 2 facing right; the cached cannon direction starts
// there and is updated on every rotation the strategy requests.
func NewChaser(p Params) *Chaser {
	facing := core.Right
	if p.Player == 1 {
		facing = core.Left
	}
	return &Chaser{
		player:    p.Player,
		facing:    facing,
		ammo:      p.Ammo,
		reload:    p.Cooldown,
		askInfo:   true,
		shellDirs: make(map[core.Coord]core.Direction),
	}
}

func (c *Chaser) Interactive() bool { return false }

// AcceptInfo stores the snapshot the engine delivered for this tick.
func (c *Chaser) AcceptInfo(snap *board.Snapshot) {
	c.snap = snap
}

// NextAction decides the tick's action. Every other tick is spent
// requesting fresh battle info, so decisions always work on a snapshot
// at most one tick old.
func (c *Chaser) NextAction() core.Action {
	if c.cooldown > 0 {
		c.cooldown--
	}

	if c.askInfo {
		c.askInfo = false
		return core.GetInfo
	}
	c.askInfo = true

	if c.snap == nil {
		return core.DoNothing
	}

	myPos, ok := c.findSelf()
	if !ok {
		return core.DoNothing
	}

	threats := c.inferShellDirections()

	if c.inDanger(myPos, threats) {
		if safeDir, ok := c.findSafeDirection(myPos, threats); ok {
			if c.facing != safeDir {
				if rot := c.rotateToward(safeDir); rot != core.DoNothing {
					return rot
				}
			}
			if c.facing == safeDir {
				return core.MoveForward
			}
		}
	}

	target, ok := c.findOpponentInLine(myPos)
	if !ok {
		target, ok = c.findClosestOpponent(myPos)
	}
	if !ok {
		c.facing = c.facing.Rotate(1)
		return core.RotateRight45
	}

	if dir, ok := calculateDirection(myPos, target); ok {
		if c.lineOfSightClear(myPos, target) &&
			c.facing == dir &&
			c.inFiringLine(myPos, target, c.facing) &&
			c.cooldown == 0 &&
			c.ammo > 0 {
			c.cooldown = c.reload
			c.ammo--
			return core.Shoot
		}
	}

	if path := c.shortestPath(myPos, target); len(path) > 0 {
		next := path[0]
		if !c.inDanger(next, threats) {
			required, ok := calculateDirection(myPos, next)
			if !ok {
				c.facing = c.facing.Rotate(1)
				return core.RotateRight45
			}
			if c.facing == required {
				cell := c.snap.AtCoord(next)
				if cell != board.SymbolWall && cell != board.SymbolMine && cell != '1' && cell != '2' {
					return core.MoveForward
				}
			}
			if rot := c.rotateToward(required); rot != core.DoNothing {
				return rot
			}
		}
	}

	c.facing = c.facing.Rotate(1)
	return core.RotateRight45
}

// rotateToward returns the shortest rotation from the cached facing to
// target and updates the cache accordingly.
func (c *Chaser) rotateToward(target core.Direction) core.Action {
	action := shortestRotation(c.facing, target)
	if steps, ok := action.RotationSteps(); ok {
		c.facing = c.facing.Rotate(steps)
	}
	return action
}

// findSelf locates the '%' marker on the snapshot.
func (c *Chaser) findSelf() (core.Coord, bool) {
	for x := 0; x < c.snap.Width(); x++ {
		for y := 0; y < c.snap.Height(); y++ {
			if c.snap.At(x, y) == board.SymbolSelf {
				return core.Coord{X: x, Y: y}, true
			}
		}
	}
	return core.Coord{}, false
}

func (c *Chaser) isOpponent(cell rune) bool {
	if cell != '1' && cell != '2' {
		return false
	}
	return int(cell-'0') != c.player
}

// findOpponentInLine walks from myPos in the facing direction, with
// wraparound, until a wall or a full loop, and returns the first enemy
// tank on the way.
func (c *Chaser) findOpponentInLine(myPos core.Coord) (core.Coord, bool) {
	w, h := c.snap.Width(), c.snap.Height()
	check := myPos
	for {
		check = check.Add(c.facing.Offset(1)).Wrap(w, h)
		if check == myPos {
			break
		}
		cell := c.snap.AtCoord(check)
		if cell == board.SymbolWall {
			break
		}
		if c.isOpponent(cell) {
			return check, true
		}
	}
	return core.Coord{}, false
}

// findClosestOpponent scans the whole board for the enemy tank at minimal
// wrapped squared distance.
func (c *Chaser) findClosestOpponent(myPos core.Coord) (core.Coord, bool) {
	w, h := c.snap.Width(), c.snap.Height()
	best := core.Coord{}
	bestDist := math.MaxInt
	found := false
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if !c.isOpponent(c.snap.At(x, y)) {
				continue
			}
			pos := core.Coord{X: x, Y: y}
			if d := core.WrappedDistSq(myPos, pos, w, h); d < bestDist {
				bestDist = d
				best = pos
				found = true
			}
		}
	}
	return best, found
}

// inferShellDirections matches current shell positions against the
// previous snapshot's shells to work out travel directions. A shell with
// no usable match keeps its cached direction if one exists.
func (c *Chaser) inferShellDirections() []shellTrack {
	w, h := c.snap.Width(), c.snap.Height()
	var current []core.Coord
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if c.snap.At(x, y) == board.SymbolShell {
				current = append(current, core.Coord{X: x, Y: y})
			}
		}
	}

	var tracks []shellTrack
	next := make(map[core.Coord]core.Direction, len(current))
	for _, cur := range current {
		if prev, ok := c.matchPrevShell(cur); ok {
			dx, dy := signedWrappedDelta(prev, cur, w, h)
			if dir, ok := directionFromDelta(dx, dy); ok {
				tracks = append(tracks, shellTrack{pos: cur, dir: dir})
				next[cur] = dir
				continue
			}
		}
		if dir, ok := c.shellDirs[cur]; ok {
			tracks = append(tracks, shellTrack{pos: cur, dir: dir})
			next[cur] = dir
		}
	}

	c.prevShells = current
	c.shellDirs = next
	return tracks
}

// matchPrevShell finds the previous shell position nearest to cur within
// plausible travel range, skipping exact matches which carry no direction
// information.
func (c *Chaser) matchPrevShell(cur core.Coord) (core.Coord, bool) {
	w, h := c.snap.Width(), c.snap.Height()
	best := core.Coord{}
	bestDist := math.MaxInt
	found := false
	// Snapshots are at most two ticks apart, so a shell travels at most
	// four cells between observations.
	const maxTravelSq = 4 * 4 * 2
	for _, prev := range c.prevShells {
		if prev == cur {
			continue
		}
		d := core.WrappedDistSq(prev, cur, w, h)
		if d <= maxTravelSq && d < bestDist {
			bestDist = d
			best = prev
			found = true
		}
	}
	return best, found
}

// inDanger reports whether pos lies within four cells ahead of any
// tracked shell, stopping the projection at walls.
func (c *Chaser) inDanger(pos core.Coord, threats []shellTrack) bool {
	w, h := c.snap.Width(), c.snap.Height()
	for _, t := range threats {
		check := t.pos
		for i := 0; i < 4; i++ {
			check = check.Add(t.dir.Offset(1)).Wrap(w, h)
			if check == pos {
				return true
			}
			if c.snap.AtCoord(check) == board.SymbolWall {
				break
			}
		}
	}
	return false
}

// findSafeDirection picks, among neighbor cells that are neither blocked
// nor threatened, the one maximizing the minimum wrapped distance to the
// tracked shells.
func (c *Chaser) findSafeDirection(pos core.Coord, threats []shellTrack) (core.Direction, bool) {
	w, h := c.snap.Width(), c.snap.Height()
	var safe []core.Direction
	for _, dir := range core.Directions {
		next := pos.Add(dir.Offset(1)).Wrap(w, h)
		cell := c.snap.AtCoord(next)
		if cell == board.SymbolWall || cell == board.SymbolMine {
			continue
		}
		if !c.inDanger(next, threats) {
			safe = append(safe, dir)
		}
	}
	if len(safe) == 0 {
		return 0, false
	}

	best := safe[0]
	maxMin := -1.0
	for _, dir := range safe {
		next := pos.Add(dir.Offset(1)).Wrap(w, h)
		minDist := math.MaxFloat64
		for _, t := range threats {
			dx, dy := core.WrappedDelta(next, t.pos, w, h)
			d := math.Sqrt(float64(dx*dx + dy*dy))
			if d < minDist {
				minDist = d
			}
		}
		if minDist > maxMin {
			maxMin = minDist
			best = dir
		}
	}
	return best, true
}

// lineOfSightClear interpolates a straight, non-wrapping line between the
// two cells and reports whether no wall interrupts it.
func (c *Chaser) lineOfSightClear(from, to core.Coord) bool {
	dx := to.X - from.X
	dy := to.Y - from.Y
	if dx == 0 && dy == 0 {
		return true
	}
	steps := core.Max(core.Abs(dx), core.Abs(dy))
	xStep := float64(dx) / float64(steps)
	yStep := float64(dy) / float64(steps)
	for i := 1; i < steps; i++ {
		x := int(math.Round(float64(from.X) + xStep*float64(i)))
		y := int(math.Round(float64(from.Y) + yStep*float64(i)))
		if x < 0 || x >= c.snap.Width() || y < 0 || y >= c.snap.Height() {
			continue
		}
		check := core.Coord{X: x, Y: y}
		if check == from || check == to {
			continue
		}
		if c.snap.AtCoord(check) == board.SymbolWall {
			return false
		}
	}
	return true
}

// inFiringLine reports whether a shot fired while facing dir would travel
// exactly through the target cell: same row or column for cardinal
// directions, matching slope for diagonals.
func (c *Chaser) inFiringLine(from, to core.Coord, dir core.Direction) bool {
	off := dir.Offset(1)
	switch dir {
	case core.UpRight, core.UpLeft, core.DownRight, core.DownLeft:
		dx := to.X - from.X
		dy := to.Y - from.Y
		return dx*off.Y == dy*off.X
	case core.Right, core.Left:
		return from.Y == to.Y
	case core.Up, core.Down:
		return from.X == to.X
	}
	return false
}

// bfsOrder fixes neighbor expansion order so paths are deterministic.
var bfsOrder = []core.Direction{
	core.Up, core.Down, core.Left, core.Right,
	core.UpLeft, core.UpRight, core.DownLeft, core.DownRight,
}

// shortestPath runs BFS over the 8-connected wraparound grid, treating
// walls and mines as blocked, and returns the cell sequence from the
// first step to the goal. Empty when the goal is unreachable.
func (c *Chaser) shortestPath(start, goal core.Coord) []core.Coord {
	w, h := c.snap.Width(), c.snap.Height()
	frontier := []core.Coord{start}
	cameFrom := map[core.Coord]core.Coord{}
	visited := map[core.Coord]bool{start: true}

	found := false
	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]
		if cur == goal {
			found = true
			break
		}
		for _, dir := range bfsOrder {
			next := cur.Add(dir.Offset(1)).Wrap(w, h)
			if visited[next] {
				continue
			}
			cell := c.snap.AtCoord(next)
			if cell == board.SymbolWall || cell == board.SymbolMine {
				continue
			}
			visited[next] = true
			cameFrom[next] = cur
			frontier = append(frontier, next)
		}
	}
	if !found {
		return nil
	}

	var path []core.Coord
	for cur := goal; cur != start; {
		path = append(path, cur)
		prev, ok := cameFrom[cur]
		if !ok {
			return nil
		}
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// signedWrappedDelta returns the shortest signed per-axis offset from a
// to b on a w×h torus.
func signedWrappedDelta(a, b core.Coord, w, h int) (dx, dy int) {
	dx = b.X - a.X
	if dx > w/2 {
		dx -= w
	} else if dx < -w/2 {
		dx += w
	}
	dy = b.Y - a.Y
	if dy > h/2 {
		dy -= h
	} else if dy < -h/2 {
		dy += h
	}
	return dx, dy
}

// calculateDirection maps the straight (non-wrapping) offset between two
// cells onto the nearest of the eight directions. Diagonals win when the
// minor axis exceeds half the major axis.
func calculateDirection(from, to core.Coord) (core.Direction, bool) {
	return directionFromDelta(to.X-from.X, to.Y-from.Y)
}

func directionFromDelta(dx, dy int) (core.Direction, bool) {
	if dx == 0 && dy == 0 {
		return 0, false
	}
	if core.Abs(dx) > core.Abs(dy) {
		if dx > 0 {
			if 2*dy > dx {
				return core.DownRight, true
			}
			if 2*dy < -dx {
				return core.UpRight, true
			}
			return core.Right, true
		}
		if 2*dy > -dx {
			return core.DownLeft, true
		}
		if 2*dy < dx {
			return core.UpLeft, true
		}
		return core.Left, true
	}
	if dy > 0 {
		if 2*dx > dy {
			return core.DownRight, true
		}
		if 2*dx < -dy {
			return core.DownLeft, true
		}
		return core.Down, true
	}
	if 2*dx > -dy {
		return core.UpRight, true
	}
	if 2*dx < dy {
		return core.UpLeft, true
	}
	return core.Up, true
}

// shortestRotation returns the rotation action that closes the gap from
// current to target fastest. Gaps of 135 degrees and the full 180 settle
// for a 90-degree turn and finish on a later tick.
func shortestRotation(current, target core.Direction) core.Action {
	diff := int(target) - int(current)
	if diff > 4 {
		diff -= 8
	}
	if diff <= -4 {
		diff += 8
	}
	switch diff {
	case 0:
		return core.DoNothing
	case 1:
		return core.RotateRight45
	case -1:
		return core.RotateLeft45
	case 2, 3, 4:
		return core.RotateRight90
	case -2, -3:
		return core.RotateLeft90
	}
	return core.DoNothing
}
