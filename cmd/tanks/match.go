package main

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tank-arena/internal/config"
	"github.com/vovakirdan/tank-arena/internal/engine"
	"github.com/vovakirdan/tank-arena/internal/mapfile"
	"github.com/vovakirdan/tank-arena/internal/strategy"
)

// match bundles everything a command needs after setup.
type match struct {
	eng   *engine.Engine
	m     *mapfile.Map
	rules config.RulesConfig
}

// setupMatch parses the map, builds the board, and wires one strategy
// instance per tank. Player 1 tanks get strategy1, player 2 tanks
// strategy2.
func setupMatch(mapPath, strategy1, strategy2 string, logger *log.Logger) (*match, error) {
	rules, err := config.LoadRules(flagConfig)
	if err != nil {
		return nil, err
	}

	m, err := mapfile.ParseFile(mapPath)
	if err != nil {
		return nil, err
	}
	for _, w := range m.Warnings {
		logger.Warn("map repaired", "detail", w)
	}

	b := m.Build(rules.Combat.ShootCooldown, rules.Combat.WallHealth)
	eng, err := engine.New(b, m.MaxSteps, rules, logger)
	if err != nil {
		return nil, err
	}

	for _, t := range b.Tanks(0) {
		name := strategy1
		if t.Player() == 2 {
			name = strategy2
		}
		s, err := strategy.Create(name, strategy.Params{
			Player:   t.Player(),
			TankID:   t.ID(),
			Ammo:     t.Ammo(),
			Cooldown: rules.Combat.ShootCooldown,
		})
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", t.Player(), err)
		}
		if err := eng.AttachStrategy(t.ID(), s); err != nil {
			return nil, err
		}
	}

	return &match{eng: eng, m: m, rules: rules}, nil
}
