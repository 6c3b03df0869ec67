// Package engine runs the deterministic tick loop: polling strategies,
// driving tank state machines, integrating movement in sub-steps, and
// deciding the match outcome.
package engine

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tank-arena/internal/board"
	"github.com/vovakirdan/tank-arena/internal/config"
	"github.com/vovakirdan/tank-arena/internal/core"
	"github.com/vovakirdan/tank-arena/internal/strategy"
)

// Reason classifies how a match ended.
type Reason int

const (
	ReasonNone        Reason = iota
	ReasonElimination        // One or both sides lost every tank
	ReasonMaxTicks           // Tick limit reached
	ReasonAmmoSpent          // Grace window after total ammo exhaustion expired
)

// Result is the final outcome of a match.
type Result struct {
	Winner      int // 1 or 2, 0 for a tie
	Reason      Reason
	Ticks       int
	Tanks1Alive int
	Tanks2Alive int
	MaxTicks    int
	GraceTicks  int
}

// Message formats the final transcript line for this result.
func (r Result) Message() string {
	switch {
	case r.Winner == 1:
		return fmt.Sprintf("Player 1 won with %d tanks still alive", r.Tanks1Alive)
	case r.Winner == 2:
		return fmt.Sprintf("Player 2 won with %d tanks still alive", r.Tanks2Alive)
	case r.Reason == ReasonMaxTicks:
		return fmt.Sprintf("Tie, reached max steps = %d, player 1 has %d tanks, player 2 has %d tanks",
			r.MaxTicks, r.Tanks1Alive, r.Tanks2Alive)
	case r.Reason == ReasonAmmoSpent:
		return fmt.Sprintf("Tie, both players have zero shells for %d steps", r.GraceTicks)
	default:
		return "Tie, both players have zero tanks"
	}
}

// ActionRecord is one tank's reported outcome for one tick.
type ActionRecord struct {
	Player         int
	TankID         int
	Action         core.Action
	Rejected       bool // Action was refused (cooldown, empty magazine, blocked move)
	Destroyed      bool // Tank is dead after this tick
	KilledThisTick bool // Tank died during this tick
}

// String formats the record the way transcripts expect it: the action
// name, "(ignored)" for rejections, "(killed)" on the dying tick, and a
// bare "killed" for every tick after that.
func (r ActionRecord) String() string {
	if r.Destroyed && !r.KilledThisTick {
		return "killed"
	}
	s := r.Action.String()
	if r.Rejected {
		s += " (ignored)"
	}
	if r.KilledThisTick {
		s += " (killed)"
	}
	return s
}

// TickRecord collects all tanks' records for one tick, in tank-ID order.
type TickRecord struct {
	Tick    int
	Actions []ActionRecord
}

// stepData is the engine's per-tank scratch state for one tick.
type stepData struct {
	tank     *board.Tank
	action   core.Action
	outcome  core.Outcome
	intended core.Coord
	blocked  bool
	rec      ActionRecord
}

// Engine owns a match from population to game over. All mutation happens
// on the Step path; concurrent readers must not share an Engine.
type Engine struct {
	board      *board.Board
	roster     []*board.Tank // Every tank ever populated, in ID order
	strategies map[int]strategy.Strategy
	rules      config.RulesConfig
	maxTicks   int
	logger     *log.Logger

	tick    int
	over    bool
	winner  int
	reason  Reason
	records []TickRecord

	allAmmoSpent  bool
	ticksSinceDry int
}

// New creates an engine for a populated board. The logger is required by
// contract but a nil value falls back to a silent one, so tests can skip
// wiring it. A side with zero tanks at population time loses immediately.
func New(b *board.Board, maxTicks int, rules config.RulesConfig, logger *log.Logger) (*Engine, error) {
	if b == nil {
		return nil, fmt.Errorf("engine: board is required")
	}
	if maxTicks <= 0 {
		return nil, fmt.Errorf("engine: max ticks must be positive, got %d", maxTicks)
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	e := &Engine{
		board:      b,
		roster:     b.Tanks(0),
		strategies: make(map[int]strategy.Strategy),
		rules:      rules,
		maxTicks:   maxTicks,
		logger:     logger,
	}
	e.checkElimination()
	if e.over {
		e.logger.Info("match decided at population time", "winner", e.winner)
	}
	if e.logger.GetLevel() <= log.DebugLevel {
		e.logger.Debug("initial board\n" + board.Render(b))
	}
	return e, nil
}

// AttachStrategy binds a strategy to the tank with the given ID. Tanks
// without a strategy do nothing every tick.
func (e *Engine) AttachStrategy(tankID int, s strategy.Strategy) error {
	for _, t := range e.roster {
		if t.ID() == tankID {
			e.strategies[tankID] = s
			return nil
		}
	}
	return fmt.Errorf("engine: no tank with id %d", tankID)
}

// Interactive reports whether any attached strategy blocks on human input.
func (e *Engine) Interactive() bool {
	for _, s := range e.strategies {
		if s.Interactive() {
			return true
		}
	}
	return false
}

// Board exposes the live board for rendering. Callers must not mutate it.
func (e *Engine) Board() *board.Board { return e.board }

// Tick returns the number of completed ticks.
func (e *Engine) Tick() int { return e.tick }

// Over reports whether the match has ended.
func (e *Engine) Over() bool { return e.over }

// Records returns the per-tick action log accumulated so far.
func (e *Engine) Records() []TickRecord { return e.records }

// Result returns the match outcome. Valid once Over is true.
func (e *Engine) Result() Result {
	return Result{
		Winner:      e.winner,
		Reason:      e.reason,
		Ticks:       e.tick,
		Tanks1Alive: len(e.board.Tanks(1)),
		Tanks2Alive: len(e.board.Tanks(2)),
		MaxTicks:    e.maxTicks,
		GraceTicks:  e.rules.Match.GraceTicks,
	}
}

// Run steps the match to completion.
func (e *Engine) Run() Result {
	for !e.over {
		e.Step()
	}
	return e.Result()
}

// Step advances the match by one tick. Calling Step on a finished match
// is a no-op.
func (e *Engine) Step() {
	if e.over {
		return
	}
	e.tick++
	e.logger.Debug("tick start", "tick", e.tick)

	data := e.prepare()
	e.pollStrategies(data)
	e.transition(data)
	e.executeImmediate(data)
	e.runSubSteps(data)
	e.recordTick(data)
	e.checkAmmoDepletion()

	removed := e.board.Purge()
	if removed > 0 {
		e.logger.Debug("purged destroyed objects", "count", removed)
	}
	if e.logger.GetLevel() <= log.DebugLevel {
		e.logger.Debug(fmt.Sprintf("board after tick %d\n%s", e.tick, board.Render(e.board)))
	}

	if !e.over {
		e.checkElimination()
	}
	if !e.over && e.tick >= e.maxTicks {
		e.over = true
		e.winner = 0
		e.reason = ReasonMaxTicks
		e.logger.Info("tick limit reached", "ticks", e.tick)
	}
}

// prepare decrements cooldowns and builds the per-tank scratch records.
// Destroyed tanks stay in the roster so transcripts keep reporting them.
func (e *Engine) prepare() []*stepData {
	data := make([]*stepData, 0, len(e.roster))
	for _, t := range e.roster {
		if !t.Destroyed() {
			t.TickCooldown()
		}
		d := &stepData{
			tank:     t,
			intended: t.Pos(),
			rec: ActionRecord{
				Player: t.Player(),
				TankID: t.ID(),
			},
		}
		if t.Destroyed() {
			d.rec.Destroyed = true
		}
		data = append(data, d)
	}
	return data
}

// pollStrategies asks each live tank's strategy for this tick's action,
// in tank-ID order.
func (e *Engine) pollStrategies(data []*stepData) {
	for _, d := range data {
		if d.tank.Destroyed() {
			d.action = core.DoNothing
			continue
		}
		s, ok := e.strategies[d.tank.ID()]
		if !ok {
			d.action = core.DoNothing
			continue
		}
		d.action = s.NextAction()
		e.logger.Debug("action requested",
			"tank", d.tank.ID(), "player", d.tank.Player(), "action", d.action)
	}
}

// transition feeds each action through its tank's state machine.
func (e *Engine) transition(data []*stepData) {
	for _, d := range data {
		if d.tank.Destroyed() {
			d.outcome = core.OutcomeNone
			continue
		}
		d.outcome = d.tank.Transition(d.action)
		d.rec.Action = d.action
		if d.outcome == core.OutcomeInvalidAction {
			d.rec.Rejected = true
		}
	}
}

// executeImmediate handles the outcomes that take effect before movement:
// spawning shells and answering info requests. The snapshot grid is
// captured once, after rotations but before any shell spawned this tick
// hits the board, so a tank's view never depends on its poll position.
func (e *Engine) executeImmediate(data []*stepData) {
	var base *board.Snapshot
	for _, d := range data {
		if d.outcome == core.OutcomeInfoRequested {
			base = board.Capture(e.board, nil)
			break
		}
	}

	for _, d := range data {
		switch d.outcome {
		case core.OutcomeShotInitiated:
			shell := d.tank.Shoot()
			if shell == nil {
				d.rec.Rejected = true
				continue
			}
			e.board.Add(shell)
			e.logger.Debug("shell fired",
				"tank", d.tank.ID(), "pos", shell.Pos(), "dir", shell.Dir())
		case core.OutcomeInfoRequested:
			if s, ok := e.strategies[d.tank.ID()]; ok {
				s.AcceptInfo(base.WithSelf(d.tank))
			}
		}
	}
}

// recordTick finalizes and stores the tick's action records.
func (e *Engine) recordTick(data []*stepData) {
	rec := TickRecord{Tick: e.tick, Actions: make([]ActionRecord, 0, len(data))}
	for _, d := range data {
		if d.tank.Destroyed() {
			d.rec.Destroyed = true
		}
		rec.Actions = append(rec.Actions, d.rec)
	}
	e.records = append(e.records, rec)
}

// checkAmmoDepletion starts the grace countdown once no live tank holds a
// shell and none is in flight, and ends the match in a tie when the
// window expires.
func (e *Engine) checkAmmoDepletion() {
	if !e.allAmmoSpent {
		for _, t := range e.board.Tanks(0) {
			if t.Ammo() > 0 {
				return
			}
		}
		if len(e.board.Shells()) > 0 {
			return
		}
		e.allAmmoSpent = true
		e.ticksSinceDry = 0
		e.logger.Info("all shells spent", "grace_ticks", e.rules.Match.GraceTicks)
		return
	}
	if e.over {
		return
	}
	e.ticksSinceDry++
	if e.ticksSinceDry >= e.rules.Match.GraceTicks {
		e.over = true
		e.winner = 0
		e.reason = ReasonAmmoSpent
		e.logger.Info("grace window expired, match tied")
	}
}

// checkElimination ends the match when a side has no tanks left.
func (e *Engine) checkElimination() {
	alive1 := len(e.board.Tanks(1))
	alive2 := len(e.board.Tanks(2))
	switch {
	case alive1 > 0 && alive2 == 0:
		e.over = true
		e.winner = 1
		e.reason = ReasonElimination
		e.logger.Info("player 1 wins", "tanks_alive", alive1)
	case alive2 > 0 && alive1 == 0:
		e.over = true
		e.winner = 2
		e.reason = ReasonElimination
		e.logger.Info("player 2 wins", "tanks_alive", alive2)
	case alive1 == 0 && alive2 == 0:
		e.over = true
		e.winner = 0
		e.reason = ReasonElimination
		e.logger.Info("both sides eliminated, match tied")
	}
}
