// Package config provides YAML-based rules configuration loading for the
// battle simulator.
package config

import "fmt"

// RulesConfig contains all tunable match rules. Map geometry, step limits
// and per-tank shell counts come from the map file; everything else lives
// here.
type RulesConfig struct {
	Combat Combat `yaml:"combat"`
	Match  Match  `yaml:"match"`
	Output Output `yaml:"output"`
}

// Combat defines weapon and obstacle parameters.
type Combat struct {
	ShootCooldown int `yaml:"shoot_cooldown"` // Ticks between shots from one cannon
	WallHealth    int `yaml:"wall_health"`    // Shell hits absorbed before a wall collapses
}

// Match defines end-of-game parameters.
type Match struct {
	GraceTicks int `yaml:"grace_ticks"` // Ticks played on after all ammo is spent
}

// Output defines transcript options.
type Output struct {
	RenderBoards bool `yaml:"render_boards"` // Append a final board render to the transcript
}

// Validate rejects rule values the engine cannot run with.
func (c RulesConfig) Validate() error {
	if c.Combat.ShootCooldown < 0 {
		return fmt.Errorf("combat.shoot_cooldown must be >= 0, got %d", c.Combat.ShootCooldown)
	}
	if c.Combat.WallHealth < 1 {
		return fmt.Errorf("combat.wall_health must be >= 1, got %d", c.Combat.WallHealth)
	}
	if c.Match.GraceTicks < 0 {
		return fmt.Errorf("match.grace_ticks must be >= 0, got %d", c.Match.GraceTicks)
	}
	return nil
}
