// Package strategy provides the per-tank decision makers and a global
// registry for them. Strategies register themselves in init() functions,
// allowing the engine to instantiate them by name without hardcoded
// dependencies.
package strategy

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tank-arena/internal/board"
	"github.com/vovakirdan/tank-arena/internal/core"
)

// Strategy is the interface every tank controller implements. Strategies
// contain pure decision logic with no engine dependencies: they see the
// battle only through snapshots they explicitly request via GetInfo.
type Strategy interface {
	// NextAction returns the action requested for this tick. Called once
	// per tick for every live tank, in tank-ID order.
	NextAction() core.Action

	// AcceptInfo delivers a fresh board snapshot. Called by the engine
	// only on the tick the strategy returned GetInfo.
	AcceptInfo(snap *board.Snapshot)

	// Interactive reports whether the strategy blocks on human input.
	// The engine relaxes its tick pacing for interactive strategies.
	Interactive() bool
}

// Params carries the per-tank facts a strategy may need at creation time.
type Params struct {
	Player   int // Owning faction (1 or 2)
	TankID   int // Unique tank identifier
	Ammo     int // Shells loaded at spawn
	Cooldown int // Ticks the cannon needs between shots
}

// Info contains metadata about a registered strategy.
type Info struct {
	ID          string
	Description string
}

// Factory is a function that creates a new strategy instance for a tank.
type Factory func(p Params) Strategy

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a strategy factory to the registry.
// Typically called from a strategy's init() function.
// Panics if a strategy with the same ID is already registered.
func Register(id, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("strategy: %q already registered", id))
	}

	factories[id] = f
	descriptions[id] = description
}

// List returns information about all registered strategies, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for id := range factories {
		result = append(result, Info{
			ID:          id,
			Description: descriptions[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new strategy by its ID.
// Returns an error if the strategy ID is not registered.
func Create(id string, p Params) (Strategy, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("strategy: unknown strategy %q", id)
	}

	return f(p), nil
}

// Exists checks if a strategy with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
