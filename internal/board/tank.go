package board

import "github.com/vovakirdan/tank-arena/internal/core"

// Movement speeds in cells per full tick. Shells outpace tanks, which is
// why the engine integrates movement in sub-steps.
const (
	TankSpeed  = 1
	ShellSpeed = 2
)

// MoveState is a tank's movement-intent state. Reversing carries a
// two-tick commit delay: the tank announces the reversal, waits, and only
// then starts moving backward.
type MoveState int

const (
	Ready MoveState = iota
	BackwardPending1
	BackwardPending2
	MovingBackward
)

// String returns a name for the movement state.
func (s MoveState) String() string {
	switch s {
	case Ready:
		return "ready"
	case BackwardPending1:
		return "backward_pending_1"
	case BackwardPending2:
		return "backward_pending_2"
	case MovingBackward:
		return "moving_backward"
	default:
		return "unknown"
	}
}

// Tank is a mobile armed unit. Its Transition method is a pure state
// machine: it decides what the engine must do but never mutates shared
// board state itself.
type Tank struct {
	objectState
	id            int
	player        int
	facing        core.Direction
	state         MoveState
	ammo          int
	cooldown      int
	cooldownTicks int
	progress      int
	multiplier    int
	moveIntent    bool
}

// NewTank creates a tank for the given player. cooldownTicks is the
// number of ticks the cannon needs between shots.
func NewTank(id, player int, pos core.Coord, facing core.Direction, ammo, cooldownTicks int) *Tank {
	t := &Tank{
		id:            id,
		player:        player,
		facing:        facing,
		ammo:          ammo,
		cooldownTicks: cooldownTicks,
	}
	t.pos = pos
	return t
}

func (t *Tank) Kind() Kind { return KindTank }

func (t *Tank) Symbol() rune {
	if t.player == 1 {
		return '1'
	}
	return '2'
}

// ID returns the tank's unique identifier, assigned at population time.
func (t *Tank) ID() int { return t.id }

// Player returns the owning faction (1 or 2).
func (t *Tank) Player() int { return t.player }

// Facing returns the current cannon direction.
func (t *Tank) Facing() core.Direction { return t.facing }

// Ammo returns the number of shells remaining.
func (t *Tank) Ammo() int { return t.ammo }

// Cooldown returns the ticks remaining before the cannon can fire again.
func (t *Tank) Cooldown() int { return t.cooldown }

// State returns the current movement-intent state.
func (t *Tank) State() MoveState { return t.state }

// MoveIntent reports whether a move is pending for the current tick.
// Set by Transition, consumed by the sub-step integrator.
func (t *Tank) MoveIntent() bool { return t.moveIntent }

// Multiplier returns the movement direction multiplier (+1 forward,
// -1 backward). Only meaningful while MoveIntent is true.
func (t *Tank) Multiplier() int { return t.multiplier }

// TickCooldown decrements the shot cooldown by one tick, stopping at zero.
func (t *Tank) TickCooldown() {
	if t.cooldown > 0 {
		t.cooldown--
	}
}

// Transition feeds one action request through the movement-intent state
// machine and returns the outcome tag the engine acts on.
//
// An info request is honored in any state without touching movement
// state. During the backward-pending window only a forward move is
// honored (it cancels the reversal); every other action advances the
// pending counter, so rotations and shots requested there are swallowed
// by the commit delay.
func (t *Tank) Transition(action core.Action) core.Outcome {
	t.moveIntent = false

	if action == core.GetInfo {
		return core.OutcomeInfoRequested
	}

	switch t.state {
	case Ready:
		switch action {
		case core.MoveForward:
			t.multiplier = 1
			t.moveIntent = true
			return core.OutcomeMovePending
		case core.MoveBackward:
			t.state = BackwardPending1
			return core.OutcomeStateChanged
		case core.Shoot:
			if t.ammo > 0 && t.cooldown == 0 {
				return core.OutcomeShotInitiated
			}
			return core.OutcomeInvalidAction
		default:
			if steps, ok := action.RotationSteps(); ok {
				t.facing = t.facing.Rotate(steps)
				return core.OutcomeRotated
			}
			return core.OutcomeNone
		}

	case BackwardPending1:
		if action == core.MoveForward {
			t.state = Ready
			return core.OutcomeStateChanged
		}
		if action == core.DoNothing {
			return core.OutcomeNone
		}
		t.state = BackwardPending2
		return core.OutcomeStateChanged

	case BackwardPending2:
		if action == core.MoveForward {
			t.state = Ready
			return core.OutcomeStateChanged
		}
		if action == core.DoNothing {
			return core.OutcomeNone
		}
		t.state = MovingBackward
		t.multiplier = -1
		t.moveIntent = true
		return core.OutcomeMovePending

	case MovingBackward:
		switch action {
		case core.MoveForward:
			t.state = Ready
			t.multiplier = 1
			t.moveIntent = true
			return core.OutcomeMovePending
		case core.MoveBackward:
			t.multiplier = -1
			t.moveIntent = true
			return core.OutcomeMovePending
		case core.Shoot:
			t.state = Ready
			if t.ammo > 0 && t.cooldown == 0 {
				return core.OutcomeShotInitiated
			}
			return core.OutcomeInvalidAction
		default:
			if steps, ok := action.RotationSteps(); ok {
				t.state = Ready
				t.facing = t.facing.Rotate(steps)
				return core.OutcomeRotated
			}
			return core.OutcomeNone
		}
	}

	return core.OutcomeNone
}

// Shoot consumes one shell, arms the cooldown, and returns the spawned
// shell at the tank's current cell. Returns nil if the tank cannot fire;
// the engine should have checked via Transition first.
func (t *Tank) Shoot() *Shell {
	if t.ammo <= 0 || t.cooldown > 0 {
		return nil
	}
	t.ammo--
	t.cooldown = t.cooldownTicks
	return NewShell(t.pos, t.facing)
}

// AdvanceProgress accumulates one sub-step of movement and returns the
// tank's intended position. A tank with no movement intent this tick
// resets its progress instead of accumulating.
func (t *Tank) AdvanceProgress(maxSpeed, w, h int) core.Coord {
	if !t.moveIntent {
		t.progress = 0
		return t.pos
	}
	t.progress += TankSpeed
	if t.progress >= maxSpeed {
		t.progress -= maxSpeed
		return t.pos.Add(t.facing.Offset(t.multiplier)).Wrap(w, h)
	}
	return t.pos
}

// Block cancels the tank's movement for the remainder of the tick: a
// tank stopped by a wall does not resume multi-sub-step movement.
func (t *Tank) Block() {
	t.progress = 0
	t.moveIntent = false
}
