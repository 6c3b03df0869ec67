package engine

import (
	"testing"

	"github.com/vovakirdan/tank-arena/internal/board"
	"github.com/vovakirdan/tank-arena/internal/config"
	"github.com/vovakirdan/tank-arena/internal/core"
)

// scripted replays a fixed action sequence, then does nothing.
type scripted struct {
	actions []core.Action
	i       int
	info    []*board.Snapshot
}

func (s *scripted) NextAction() core.Action {
	if s.i < len(s.actions) {
		a := s.actions[s.i]
		s.i++
		return a
	}
	return core.DoNothing
}

func (s *scripted) AcceptInfo(snap *board.Snapshot) { s.info = append(s.info, snap) }

func (s *scripted) Interactive() bool { return false }

func newEngine(t *testing.T, b *board.Board, maxTicks int) *Engine {
	t.Helper()
	e, err := New(b, maxTicks, config.DefaultRulesConfig(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func addTank(b *board.Board, id, player int, pos core.Coord, facing core.Direction, ammo int) *board.Tank {
	tank := board.NewTank(id, player, pos, facing, ammo, 4)
	b.Add(tank)
	return tank
}

func TestImmediateWinAtPopulation(t *testing.T) {
	b := board.New(5, 5)
	addTank(b, 1, 1, core.Coord{X: 2, Y: 2}, core.Left, 4)
	e := newEngine(t, b, 100)
	if !e.Over() {
		t.Fatal("match with no player 2 tanks must end at population")
	}
	res := e.Result()
	if res.Winner != 1 || res.Reason != ReasonElimination {
		t.Fatalf("result: %+v", res)
	}
	if got := res.Message(); got != "Player 1 won with 1 tanks still alive" {
		t.Fatalf("message: %q", got)
	}
}

func TestShellKillsTank(t *testing.T) {
	b := board.New(7, 5)
	shooter := addTank(b, 1, 1, core.Coord{X: 5, Y: 2}, core.Left, 4)
	addTank(b, 2, 2, core.Coord{X: 1, Y: 2}, core.Right, 4)
	e := newEngine(t, b, 100)
	if err := e.AttachStrategy(1, &scripted{actions: []core.Action{core.Shoot}}); err != nil {
		t.Fatal(err)
	}

	res := e.Run()
	if res.Winner != 1 || res.Reason != ReasonElimination {
		t.Fatalf("result: %+v", res)
	}
	// Shell covers two cells per tick: fired at (5,2) heading left it
	// reaches the victim at (1,2) on the second tick.
	if res.Ticks != 2 {
		t.Fatalf("ticks = %d, want 2", res.Ticks)
	}
	if shooter.Ammo() != 3 {
		t.Fatalf("shooter ammo = %d, want 3", shooter.Ammo())
	}

	last := e.Records()[len(e.Records())-1]
	victim := last.Actions[1]
	if !victim.KilledThisTick || victim.String() != "DoNothing (killed)" {
		t.Fatalf("victim record: %q", victim.String())
	}
}

func TestHeadOnShellsAnnihilate(t *testing.T) {
	b := board.New(7, 5)
	addTank(b, 1, 1, core.Coord{X: 1, Y: 2}, core.Right, 4)
	addTank(b, 2, 2, core.Coord{X: 4, Y: 2}, core.Left, 4)
	e := newEngine(t, b, 100)
	e.AttachStrategy(1, &scripted{actions: []core.Action{core.Shoot}})
	e.AttachStrategy(2, &scripted{actions: []core.Action{core.Shoot}})

	e.Step()
	if e.Over() {
		t.Fatal("both tanks must survive their own volley")
	}
	// The shells swapped cells between sub-steps and must both be gone.
	if got := len(e.Board().Shells()); got != 0 {
		t.Fatalf("shells left = %d, want 0", got)
	}
	if got := len(e.Board().Tanks(0)); got != 2 {
		t.Fatalf("tanks alive = %d, want 2", got)
	}
}

func TestWallBlocksTankAndRecordsIgnored(t *testing.T) {
	b := board.New(5, 5)
	tank := addTank(b, 1, 1, core.Coord{X: 1, Y: 1}, core.Right, 4)
	addTank(b, 2, 2, core.Coord{X: 0, Y: 4}, core.Right, 4)
	b.Add(board.NewWall(core.Coord{X: 2, Y: 1}, 2))
	e := newEngine(t, b, 100)
	e.AttachStrategy(1, &scripted{actions: []core.Action{core.MoveForward}})

	e.Step()
	if tank.Pos() != (core.Coord{X: 1, Y: 1}) {
		t.Fatalf("tank moved to %v", tank.Pos())
	}
	rec := e.Records()[0].Actions[0]
	if rec.String() != "MoveForward (ignored)" {
		t.Fatalf("record: %q", rec.String())
	}
}

func TestWallFallsAfterTwoHits(t *testing.T) {
	b := board.New(7, 5)
	addTank(b, 1, 1, core.Coord{X: 0, Y: 4}, core.Up, 0)
	addTank(b, 2, 2, core.Coord{X: 6, Y: 4}, core.Up, 0)
	b.Add(board.NewWall(core.Coord{X: 3, Y: 1}, 2))
	b.Add(board.NewShell(core.Coord{X: 1, Y: 1}, core.Right))
	b.Add(board.NewShell(core.Coord{X: 0, Y: 1}, core.Right))
	e := newEngine(t, b, 100)

	e.Step()
	wall := e.Board().WallAt(core.Coord{X: 3, Y: 1})
	if wall == nil || wall.Health() != 1 {
		t.Fatalf("after first hit: wall = %+v", wall)
	}
	e.Step()
	if e.Board().WallAt(core.Coord{X: 3, Y: 1}) != nil {
		t.Fatal("wall must collapse on the second hit")
	}
	if len(e.Board().Shells()) != 0 {
		t.Fatal("both shells must be spent")
	}
}

func TestDestroyedTankStillStopsShells(t *testing.T) {
	b := board.New(7, 5)
	addTank(b, 1, 1, core.Coord{X: 3, Y: 2}, core.Right, 4)
	addTank(b, 2, 2, core.Coord{X: 0, Y: 4}, core.Down, 4)
	// Two shells one cell apart bear down on the tank while it drives
	// toward them. The first kills it on its moved-into cell, the second
	// swaps cells with the wreck and must be consumed by it, not fly on.
	b.Add(board.NewShell(core.Coord{X: 6, Y: 2}, core.Left))
	b.Add(board.NewShell(core.Coord{X: 5, Y: 2}, core.Left))
	e := newEngine(t, b, 100)
	e.AttachStrategy(1, &scripted{actions: []core.Action{core.MoveForward}})

	e.Step()
	res := e.Result()
	if !e.Over() || res.Winner != 2 {
		t.Fatalf("result: %+v", res)
	}
	if got := len(e.Board().Shells()); got != 0 {
		t.Fatalf("shells left = %d, want 0", got)
	}
}

func TestSnapshotHidesShellsFiredThisTick(t *testing.T) {
	b := board.New(5, 5)
	addTank(b, 1, 1, core.Coord{X: 1, Y: 1}, core.Right, 4)
	tank2 := addTank(b, 2, 2, core.Coord{X: 3, Y: 3}, core.Left, 4)
	s := &scripted{actions: []core.Action{core.GetInfo}}
	e := newEngine(t, b, 100)
	e.AttachStrategy(1, &scripted{actions: []core.Action{core.Shoot}})
	e.AttachStrategy(2, s)

	// Tank 1 is polled first and fires; tank 2's snapshot is taken from
	// the state before any of this tick's shells hit the board.
	e.Step()
	if len(s.info) != 1 {
		t.Fatalf("snapshots delivered = %d, want 1", len(s.info))
	}
	if shells := s.info[0].Find(board.SymbolShell); len(shells) != 0 {
		t.Fatalf("snapshot shows same-tick shells at %v", shells)
	}
	if got := s.info[0].At(1, 1); got != '1' {
		t.Fatalf("shooter cell = %q, want '1'", got)
	}
	if got := s.info[0].AtCoord(tank2.Pos()); got != board.SymbolSelf {
		t.Fatalf("self cell = %q, want %%", got)
	}
}

func TestMineKillsTankOnce(t *testing.T) {
	b := board.New(5, 5)
	addTank(b, 1, 1, core.Coord{X: 1, Y: 1}, core.Right, 4)
	addTank(b, 2, 2, core.Coord{X: 0, Y: 4}, core.Right, 4)
	b.Add(board.NewMine(core.Coord{X: 2, Y: 1}))
	e := newEngine(t, b, 100)
	e.AttachStrategy(1, &scripted{actions: []core.Action{core.MoveForward}})

	e.Step()
	res := e.Result()
	if !e.Over() || res.Winner != 2 {
		t.Fatalf("result: %+v", res)
	}
	// The mine is consumed with the tank.
	if e.Board().MineAt(core.Coord{X: 2, Y: 1}) != nil {
		t.Fatal("mine must be consumed")
	}
	rec := e.Records()[0].Actions[0]
	if rec.String() != "MoveForward (killed)" {
		t.Fatalf("record: %q", rec.String())
	}
}

func TestTankCollisionDestroysBoth(t *testing.T) {
	b := board.New(5, 5)
	addTank(b, 1, 1, core.Coord{X: 1, Y: 1}, core.Right, 4)
	addTank(b, 2, 2, core.Coord{X: 3, Y: 1}, core.Left, 4)
	e := newEngine(t, b, 100)
	e.AttachStrategy(1, &scripted{actions: []core.Action{core.MoveForward}})
	e.AttachStrategy(2, &scripted{actions: []core.Action{core.MoveForward}})

	// Both tanks drive into (2,1) on the same tick.
	e.Step()
	res := e.Result()
	if !e.Over() || res.Winner != 0 || res.Reason != ReasonElimination {
		t.Fatalf("result: %+v", res)
	}
	if got := res.Message(); got != "Tie, both players have zero tanks" {
		t.Fatalf("message: %q", got)
	}
}

func TestStationaryTanksNextToEachOtherDoNotCollide(t *testing.T) {
	b := board.New(5, 5)
	addTank(b, 1, 1, core.Coord{X: 1, Y: 1}, core.Right, 4)
	addTank(b, 2, 2, core.Coord{X: 2, Y: 1}, core.Left, 4)
	e := newEngine(t, b, 100)

	e.Step()
	if e.Over() {
		t.Fatal("adjacent idle tanks must not collide")
	}
}

func TestShotRejectedWithoutAmmo(t *testing.T) {
	b := board.New(5, 5)
	addTank(b, 1, 1, core.Coord{X: 1, Y: 1}, core.Right, 0)
	addTank(b, 2, 2, core.Coord{X: 3, Y: 3}, core.Left, 0)
	e := newEngine(t, b, 100)
	e.AttachStrategy(1, &scripted{actions: []core.Action{core.Shoot}})

	e.Step()
	rec := e.Records()[0].Actions[0]
	if rec.String() != "Shoot (ignored)" {
		t.Fatalf("record: %q", rec.String())
	}
}

func TestInfoRequestDeliversSnapshot(t *testing.T) {
	b := board.New(5, 5)
	tank := addTank(b, 1, 1, core.Coord{X: 1, Y: 1}, core.Right, 4)
	addTank(b, 2, 2, core.Coord{X: 3, Y: 3}, core.Left, 4)
	s := &scripted{actions: []core.Action{core.GetInfo}}
	e := newEngine(t, b, 100)
	e.AttachStrategy(1, s)

	e.Step()
	if len(s.info) != 1 {
		t.Fatalf("snapshots delivered = %d, want 1", len(s.info))
	}
	if got := s.info[0].AtCoord(tank.Pos()); got != board.SymbolSelf {
		t.Fatalf("self cell = %q, want %%", got)
	}
	if got := s.info[0].At(3, 3); got != '2' {
		t.Fatalf("enemy cell = %q", got)
	}
}

func TestAmmoExhaustionGraceTie(t *testing.T) {
	b := board.New(5, 5)
	addTank(b, 1, 1, core.Coord{X: 1, Y: 1}, core.Right, 0)
	addTank(b, 2, 2, core.Coord{X: 3, Y: 3}, core.Left, 0)
	rules := config.DefaultRulesConfig()
	rules.Match.GraceTicks = 3
	e, err := New(b, 100, rules, nil)
	if err != nil {
		t.Fatal(err)
	}

	res := e.Run()
	if res.Winner != 0 || res.Reason != ReasonAmmoSpent {
		t.Fatalf("result: %+v", res)
	}
	// Tick 1 notices the dry magazines, three more ticks run the grace
	// window out.
	if res.Ticks != 4 {
		t.Fatalf("ticks = %d, want 4", res.Ticks)
	}
	if got := res.Message(); got != "Tie, both players have zero shells for 3 steps" {
		t.Fatalf("message: %q", got)
	}
}

func TestMaxTicksTie(t *testing.T) {
	b := board.New(5, 5)
	addTank(b, 1, 1, core.Coord{X: 1, Y: 1}, core.Right, 4)
	addTank(b, 2, 2, core.Coord{X: 3, Y: 3}, core.Left, 4)
	e := newEngine(t, b, 5)

	res := e.Run()
	if res.Winner != 0 || res.Reason != ReasonMaxTicks || res.Ticks != 5 {
		t.Fatalf("result: %+v", res)
	}
	want := "Tie, reached max steps = 5, player 1 has 1 tanks, player 2 has 1 tanks"
	if got := res.Message(); got != want {
		t.Fatalf("message: %q", got)
	}
}

func TestDeadTankKeepsReportingKilled(t *testing.T) {
	b := board.New(5, 5)
	addTank(b, 1, 1, core.Coord{X: 1, Y: 1}, core.Right, 4)
	addTank(b, 2, 2, core.Coord{X: 0, Y: 3}, core.Right, 4)
	b.Add(board.NewMine(core.Coord{X: 2, Y: 1}))
	addTank(b, 3, 1, core.Coord{X: 4, Y: 4}, core.Right, 4)
	e := newEngine(t, b, 100)
	e.AttachStrategy(1, &scripted{actions: []core.Action{core.MoveForward}})

	e.Step() // tank 1 dies on the mine
	e.Step()
	if e.Over() {
		t.Fatal("player 1 still has tank 3")
	}
	second := e.Records()[1].Actions[0]
	if second.String() != "killed" {
		t.Fatalf("record: %q", second.String())
	}
}

func TestNewRejectsBadInputs(t *testing.T) {
	if _, err := New(nil, 10, config.DefaultRulesConfig(), nil); err == nil {
		t.Fatal("nil board must be rejected")
	}
	b := board.New(5, 5)
	if _, err := New(b, 0, config.DefaultRulesConfig(), nil); err == nil {
		t.Fatal("non-positive max ticks must be rejected")
	}
	bad := config.DefaultRulesConfig()
	bad.Combat.WallHealth = 0
	if _, err := New(b, 10, bad, nil); err == nil {
		t.Fatal("invalid rules must be rejected")
	}
}
