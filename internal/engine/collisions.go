package engine

import (
	"github.com/vovakirdan/tank-arena/internal/board"
	"github.com/vovakirdan/tank-arena/internal/core"
)

// shellMove pairs a shell with its intended position for one sub-step.
type shellMove struct {
	shell    *board.Shell
	intended core.Coord
}

// runSubSteps integrates movement for the tick. The tick is divided into
// max-speed sub-steps so that a shell moving two cells cannot jump over a
// tank moving one: every cell of travel gets its own collision pass.
func (e *Engine) runSubSteps(data []*stepData) {
	maxSpeed := 0
	for _, d := range data {
		if !d.tank.Destroyed() {
			maxSpeed = core.Max(maxSpeed, board.TankSpeed)
		}
	}
	if len(e.board.Shells()) > 0 {
		maxSpeed = core.Max(maxSpeed, board.ShellSpeed)
	}
	if maxSpeed == 0 {
		return
	}

	w, h := e.board.Width(), e.board.Height()
	for s := 0; s < maxSpeed; s++ {
		for _, d := range data {
			d.blocked = false
		}

		// Intended positions for this sub-step.
		for _, d := range data {
			d.intended = d.tank.Pos()
			if !d.tank.Destroyed() && d.tank.MoveIntent() {
				d.intended = d.tank.AdvanceProgress(maxSpeed, w, h)
			}
		}
		shells := make([]shellMove, 0)
		for _, sh := range e.board.Shells() {
			shells = append(shells, shellMove{shell: sh, intended: sh.AdvanceProgress(maxSpeed, w, h)})
		}

		e.resolveCollisions(data, shells)
		e.applyMoves(data, shells)

		anyAlive := false
		for _, d := range data {
			if !d.tank.Destroyed() {
				anyAlive = true
				break
			}
		}
		if !anyAlive {
			break
		}
	}
}

// resolveCollisions applies the six collision rules in fixed precedence
// order. Wall and mine positions are collected before any rule runs, so
// a wall collapsing under shell fire still blocks a tank in the same
// sub-step.
func (e *Engine) resolveCollisions(data []*stepData, shells []shellMove) {
	walls := make(map[core.Coord]bool)
	mines := make(map[core.Coord]bool)
	for _, obj := range e.board.Objects() {
		if obj == nil || obj.Destroyed() {
			continue
		}
		switch obj.Kind() {
		case board.KindWall:
			walls[obj.Pos()] = true
		case board.KindMine:
			mines[obj.Pos()] = true
		}
	}

	e.resolveShellWall(shells, walls)
	e.resolveTankWall(data, walls)
	e.resolveShellShell(shells)
	e.resolveShellTank(data, shells)
	e.resolveTankMine(data, mines)
	e.resolveTankTank(data)
}

// resolveShellWall destroys shells entering a wall cell and damages the
// wall. A wall already collapsed earlier in this sub-step lets later
// shells fly on.
func (e *Engine) resolveShellWall(shells []shellMove, walls map[core.Coord]bool) {
	for _, sm := range shells {
		if sm.shell.Destroyed() || !walls[sm.intended] {
			continue
		}
		wall := e.board.WallAt(sm.intended)
		if wall == nil {
			continue
		}
		destroyed := wall.Damage()
		sm.shell.Destroy()
		e.logger.Debug("shell hit wall",
			"pos", sm.intended, "health", wall.Health(), "collapsed", destroyed)
	}
}

// resolveTankWall cancels a tank's movement for the rest of the tick when
// its intended cell holds a wall.
func (e *Engine) resolveTankWall(data []*stepData, walls map[core.Coord]bool) {
	for _, d := range data {
		if d.tank.Destroyed() || !d.tank.MoveIntent() {
			continue
		}
		if d.intended == d.tank.Pos() || !walls[d.intended] {
			continue
		}
		d.blocked = true
		d.intended = d.tank.Pos()
		d.tank.Block()
		d.rec.Rejected = true
		e.logger.Debug("tank blocked by wall", "tank", d.tank.ID(), "pos", d.tank.Pos())
	}
}

// resolveShellShell destroys shells that meet in a cell, including the
// head-on case where two shells swap cells between sub-steps and never
// share one.
func (e *Engine) resolveShellShell(shells []shellMove) {
	byCell := make(map[core.Coord][]*board.Shell)
	for _, sm := range shells {
		if !sm.shell.Destroyed() {
			byCell[sm.intended] = append(byCell[sm.intended], sm.shell)
		}
	}
	for pos, group := range byCell {
		if len(group) > 1 {
			for _, sh := range group {
				sh.Destroy()
			}
			e.logger.Debug("shell collision", "pos", pos, "count", len(group))
		}
	}

	for _, sm := range shells {
		if sm.shell.Destroyed() {
			continue
		}
		for _, other := range shells {
			if other.shell == sm.shell || other.shell.Destroyed() {
				continue
			}
			if other.intended == sm.shell.Pos() && other.shell.Dir() == sm.shell.Dir().Opposite() {
				sm.shell.Destroy()
				other.shell.Destroy()
				e.logger.Debug("head-on shell collision", "pos", sm.shell.Pos())
			}
		}
	}
}

// effectivePos is where a tank ends the sub-step: its intended cell
// unless the wall rule blocked it.
func effectivePos(d *stepData) core.Coord {
	if d.blocked {
		return d.tank.Pos()
	}
	return d.intended
}

// resolveShellTank kills tanks that share a cell with a shell, either by
// direct hit on the tank's effective position or by swapping cells with
// the shell. One shell kills at most one tank. Targets are the tanks
// alive at entry, frozen for the whole pass: a tank killed by one shell
// still stops every other shell reaching its cell this sub-step, so the
// wreck shields whatever sits behind it.
func (e *Engine) resolveShellTank(data []*stepData, shells []shellMove) {
	type target struct {
		d       *stepData
		current core.Coord
		eff     core.Coord
	}
	targets := make([]target, 0, len(data))
	for _, d := range data {
		if d.tank.Destroyed() {
			continue
		}
		targets = append(targets, target{d: d, current: d.tank.Pos(), eff: effectivePos(d)})
	}

	for _, sm := range shells {
		if sm.shell.Destroyed() {
			continue
		}
		for _, tg := range targets {
			directHit := sm.intended == tg.eff
			passThrough := sm.intended == tg.current && sm.shell.Pos() == tg.eff
			if !directHit && !passThrough {
				continue
			}
			if !tg.d.tank.Destroyed() {
				tg.d.tank.Destroy()
				tg.d.rec.KilledThisTick = true
				e.logger.Info("tank destroyed by shell",
					"tank", tg.d.tank.ID(), "player", tg.d.tank.Player(), "pos", tg.eff)
			}
			sm.shell.Destroy()
			break
		}
	}
}

// resolveTankMine triggers a mine under a tank's effective position. The
// mine is consumed with the tank.
func (e *Engine) resolveTankMine(data []*stepData, mines map[core.Coord]bool) {
	for _, d := range data {
		if d.tank.Destroyed() {
			continue
		}
		eff := effectivePos(d)
		if !mines[eff] {
			continue
		}
		mine := e.board.MineAt(eff)
		if mine == nil {
			continue
		}
		d.tank.Destroy()
		d.rec.KilledThisTick = true
		mine.Destroy()
		e.logger.Info("tank hit mine",
			"tank", d.tank.ID(), "player", d.tank.Player(), "pos", eff)
	}
}

// resolveTankTank destroys both tanks of any pair sharing an effective
// position, provided at least one of them moved there or they already
// shared a cell at the start of the sub-step.
func (e *Engine) resolveTankTank(data []*stepData) {
	var alive []*stepData
	for _, d := range data {
		if !d.tank.Destroyed() {
			alive = append(alive, d)
		}
	}

	type pair struct{ a, b *stepData }
	var colliding []pair
	for i := 0; i < len(alive); i++ {
		for j := i + 1; j < len(alive); j++ {
			d1, d2 := alive[i], alive[j]
			if effectivePos(d1) != effectivePos(d2) {
				continue
			}
			moved1 := !d1.blocked && d1.intended != d1.tank.Pos()
			moved2 := !d2.blocked && d2.intended != d2.tank.Pos()
			if moved1 || moved2 || d1.tank.Pos() == d2.tank.Pos() {
				colliding = append(colliding, pair{d1, d2})
				e.logger.Info("tank collision",
					"tank_a", d1.tank.ID(), "tank_b", d2.tank.ID(), "pos", effectivePos(d1))
			}
		}
	}
	for _, p := range colliding {
		if !p.a.tank.Destroyed() {
			p.a.tank.Destroy()
			p.a.rec.KilledThisTick = true
		}
		if !p.b.tank.Destroyed() {
			p.b.tank.Destroy()
			p.b.rec.KilledThisTick = true
		}
	}
}

// applyMoves commits the resolved positions. Destroyed objects keep their
// last position until end-of-tick cleanup.
func (e *Engine) applyMoves(data []*stepData, shells []shellMove) {
	for _, d := range data {
		if d.tank.Destroyed() || d.blocked {
			continue
		}
		if d.intended != d.tank.Pos() {
			e.logger.Debug("tank moved", "tank", d.tank.ID(), "to", d.intended)
		}
		d.tank.SetPos(d.intended)
	}
	for _, sm := range shells {
		if !sm.shell.Destroyed() {
			sm.shell.SetPos(sm.intended)
		}
	}
}
