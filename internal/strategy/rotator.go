package strategy

import (
	"github.com/vovakirdan/tank-arena/internal/board"
	"github.com/vovakirdan/tank-arena/internal/core"
)

func init() {
	Register("rotator", "spins in place, firing whenever the cannon is ready", func(p Params) Strategy {
		return NewRotator(p)
	})
}

// Rotator is a baseline opponent: it rotates 45 degrees clockwise every
// tick and shoots whenever its mirrored cooldown and ammo allow.
type Rotator struct {
	ammo     int
	cooldown int
	reload   int
}

// NewRotator creates a rotator with local ammo and cooldown mirrors.
func NewRotator(p Params) *Rotator {
	return &Rotator{ammo: p.Ammo, reload: p.Cooldown}
}

func (r *Rotator) Interactive() bool { return false }

// AcceptInfo is a no-op: the rotator never requests battle info.
func (r *Rotator) AcceptInfo(*board.Snapshot) {}

func (r *Rotator) NextAction() core.Action {
	if r.cooldown > 0 {
		r.cooldown--
	}
	if r.ammo > 0 && r.cooldown == 0 {
		r.ammo--
		r.cooldown = r.reload
		return core.Shoot
	}
	return core.RotateRight45
}
