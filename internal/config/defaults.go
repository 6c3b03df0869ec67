package config

import (
	_ "embed"
)

//go:embed defaults/rules.yaml
var defaultRulesYAML []byte

// DefaultRulesConfig returns the default match rules.
func DefaultRulesConfig() RulesConfig {
	return RulesConfig{
		Combat: Combat{
			ShootCooldown: 4,
			WallHealth:    2,
		},
		Match: Match{
			GraceTicks: 40,
		},
		Output: Output{
			RenderBoards: false,
		},
	}
}
