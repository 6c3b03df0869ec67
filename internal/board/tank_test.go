package board

import (
	"testing"

	"github.com/vovakirdan/tank-arena/internal/core"
)

func TestTankBackwardCommitDelay(t *testing.T) {
	tank := NewTank(1, 1, core.Coord{X: 2, Y: 2}, core.Left, 10, 4)

	if out := tank.Transition(core.MoveBackward); out != core.OutcomeStateChanged {
		t.Fatalf("tick 1: got %v, want StateChanged", out)
	}
	if tank.State() != BackwardPending1 {
		t.Fatalf("tick 1: state = %v, want BackwardPending1", tank.State())
	}
	if out := tank.Transition(core.MoveBackward); out != core.OutcomeStateChanged {
		t.Fatalf("tick 2: got %v, want StateChanged", out)
	}
	if out := tank.Transition(core.MoveBackward); out != core.OutcomeMovePending {
		t.Fatalf("tick 3: got %v, want MovePending", out)
	}
	if tank.State() != MovingBackward || tank.Multiplier() != -1 {
		t.Fatalf("tick 3: state = %v, multiplier = %d", tank.State(), tank.Multiplier())
	}
}

func TestTankForwardCancelsPendingBackward(t *testing.T) {
	tank := NewTank(1, 1, core.Coord{X: 2, Y: 2}, core.Left, 10, 4)

	tank.Transition(core.MoveBackward)
	if out := tank.Transition(core.MoveForward); out != core.OutcomeStateChanged {
		t.Fatalf("cancel: got %v, want StateChanged", out)
	}
	if tank.State() != Ready {
		t.Fatalf("cancel: state = %v, want Ready", tank.State())
	}
	if tank.MoveIntent() {
		t.Fatal("cancel must not produce a move this tick")
	}
}

func TestTankPendingWindowSwallowsActions(t *testing.T) {
	cases := []struct {
		name   string
		action core.Action
	}{
		{"rotate", core.RotateLeft90},
		{"shoot", core.Shoot},
		{"backward", core.MoveBackward},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tank := NewTank(1, 1, core.Coord{}, core.Left, 10, 4)
			tank.Transition(core.MoveBackward)
			facing := tank.Facing()
			out := tank.Transition(tc.action)
			if out != core.OutcomeStateChanged {
				t.Fatalf("got %v, want StateChanged", out)
			}
			if tank.Facing() != facing {
				t.Fatal("rotation must be swallowed during the pending window")
			}
			if tank.Ammo() != 10 {
				t.Fatal("shot must be swallowed during the pending window")
			}
			if tank.State() != BackwardPending2 {
				t.Fatalf("state = %v, want BackwardPending2", tank.State())
			}
		})
	}
}

func TestTankGetInfoPreservesState(t *testing.T) {
	tank := NewTank(1, 1, core.Coord{}, core.Left, 10, 4)
	tank.Transition(core.MoveBackward)
	if out := tank.Transition(core.GetInfo); out != core.OutcomeInfoRequested {
		t.Fatalf("got %v, want InfoRequested", out)
	}
	if tank.State() != BackwardPending1 {
		t.Fatalf("state = %v, want BackwardPending1 unchanged", tank.State())
	}
}

func TestTankMovingBackwardContinues(t *testing.T) {
	tank := NewTank(1, 1, core.Coord{}, core.Left, 10, 4)
	tank.Transition(core.MoveBackward)
	tank.Transition(core.MoveBackward)
	tank.Transition(core.MoveBackward)

	if out := tank.Transition(core.MoveBackward); out != core.OutcomeMovePending {
		t.Fatalf("continue: got %v, want MovePending", out)
	}
	if tank.Multiplier() != -1 {
		t.Fatalf("continue: multiplier = %d, want -1", tank.Multiplier())
	}

	// A forward move snaps straight back to normal movement.
	if out := tank.Transition(core.MoveForward); out != core.OutcomeMovePending {
		t.Fatalf("forward: got %v, want MovePending", out)
	}
	if tank.State() != Ready || tank.Multiplier() != 1 {
		t.Fatalf("forward: state = %v, multiplier = %d", tank.State(), tank.Multiplier())
	}
}

func TestTankShoot(t *testing.T) {
	tank := NewTank(1, 2, core.Coord{X: 3, Y: 3}, core.Right, 2, 4)

	if out := tank.Transition(core.Shoot); out != core.OutcomeShotInitiated {
		t.Fatalf("got %v, want ShotInitiated", out)
	}
	shell := tank.Shoot()
	if shell == nil {
		t.Fatal("expected a shell")
	}
	if shell.Pos() != tank.Pos() || shell.Dir() != core.Right {
		t.Fatalf("shell at %v heading %v", shell.Pos(), shell.Dir())
	}
	if tank.Ammo() != 1 || tank.Cooldown() != 4 {
		t.Fatalf("ammo = %d, cooldown = %d", tank.Ammo(), tank.Cooldown())
	}

	// Cooldown rejects the next shot.
	if out := tank.Transition(core.Shoot); out != core.OutcomeInvalidAction {
		t.Fatalf("on cooldown: got %v, want InvalidAction", out)
	}
	for i := 0; i < 4; i++ {
		tank.TickCooldown()
	}
	if out := tank.Transition(core.Shoot); out != core.OutcomeShotInitiated {
		t.Fatalf("after cooldown: got %v, want ShotInitiated", out)
	}
}

func TestTankShootOutOfAmmo(t *testing.T) {
	tank := NewTank(1, 1, core.Coord{}, core.Up, 0, 4)
	if out := tank.Transition(core.Shoot); out != core.OutcomeInvalidAction {
		t.Fatalf("got %v, want InvalidAction", out)
	}
	if tank.Shoot() != nil {
		t.Fatal("Shoot must return nil with no ammo")
	}
}

func TestTankAdvanceProgress(t *testing.T) {
	tank := NewTank(1, 1, core.Coord{X: 0, Y: 0}, core.Left, 10, 4)
	tank.Transition(core.MoveForward)

	// With a shell active, max speed is 2: the tank needs two sub-steps.
	if got := tank.AdvanceProgress(2, 5, 5); got != (core.Coord{X: 0, Y: 0}) {
		t.Fatalf("sub-step 1: intended %v, want no move yet", got)
	}
	got := tank.AdvanceProgress(2, 5, 5)
	want := core.Coord{X: 4, Y: 0} // wraps left edge
	if got != want {
		t.Fatalf("sub-step 2: intended %v, want %v", got, want)
	}
}

func TestTankBlockResetsProgress(t *testing.T) {
	tank := NewTank(1, 1, core.Coord{X: 1, Y: 1}, core.Right, 10, 4)
	tank.Transition(core.MoveForward)
	tank.AdvanceProgress(2, 5, 5)
	tank.Block()
	if tank.MoveIntent() {
		t.Fatal("blocked tank must drop its move intent")
	}
	if got := tank.AdvanceProgress(2, 5, 5); got != tank.Pos() {
		t.Fatalf("blocked tank intended %v, want to stay at %v", got, tank.Pos())
	}
}

func TestWallDamage(t *testing.T) {
	w := NewWall(core.Coord{X: 1, Y: 1}, 2)
	if w.Damage() {
		t.Fatal("first hit must not destroy a fresh wall")
	}
	if w.Destroyed() {
		t.Fatal("wall destroyed too early")
	}
	if !w.Damage() {
		t.Fatal("second hit must destroy the wall")
	}
	if w.Damage() {
		t.Fatal("further hits must not report destruction again")
	}
	if w.Health() != 0 {
		t.Fatalf("health = %d, want 0", w.Health())
	}
}

func TestShellAdvanceWraps(t *testing.T) {
	s := NewShell(core.Coord{X: 4, Y: 0}, core.Right)
	got := s.AdvanceProgress(2, 5, 5)
	want := core.Coord{X: 0, Y: 0}
	if got != want {
		t.Fatalf("intended %v, want %v", got, want)
	}
}
