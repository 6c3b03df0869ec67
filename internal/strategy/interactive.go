package strategy

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vovakirdan/tank-arena/internal/board"
	"github.com/vovakirdan/tank-arena/internal/core"
)

func init() {
	Register("interactive", "prompts a human for every action on stdin", func(p Params) Strategy {
		return NewInteractive(p, os.Stdin, os.Stdout)
	})
}

// Interactive prompts a human player for each action. It blocks the tick
// loop on stdin, which is why the engine checks the Interactive flag
// before enabling tick pacing.
type Interactive struct {
	player int
	tankID int
	in     *bufio.Scanner
	out    io.Writer

	printedHelp bool
	lastInfo    *board.Snapshot
}

// NewInteractive creates a human-driven strategy reading commands from in.
func NewInteractive(p Params, in io.Reader, out io.Writer) *Interactive {
	return &Interactive{
		player: p.Player,
		tankID: p.TankID,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

func (i *Interactive) Interactive() bool { return true }

// AcceptInfo renders the requested snapshot so the player can see the
// battlefield from their tank's perspective.
func (i *Interactive) AcceptInfo(snap *board.Snapshot) {
	i.lastInfo = snap
	header := fmt.Sprintf("Battlefield, tank %d marked %%:", i.tankID)
	width := snap.Width()
	if len(header) > width {
		width = len(header)
	}
	screen := core.NewScreen(width, snap.Height()+1)
	screen.DrawText(0, 0, header)
	board.Draw(snap, screen, 0, 1)
	fmt.Fprintln(i.out, screen.String())
}

func (i *Interactive) NextAction() core.Action {
	if !i.printedHelp {
		fmt.Fprintln(i.out, "  w: MoveForward, s: MoveBackward")
		fmt.Fprintln(i.out, "  q: RotateLeft45, a: RotateLeft90")
		fmt.Fprintln(i.out, "  e: RotateRight45, d: RotateRight90")
		fmt.Fprintln(i.out, "  k: Shoot")
		fmt.Fprintln(i.out, "  i: GetBattleInfo")
		i.printedHelp = true
	}
	for {
		fmt.Fprintf(i.out, "Player %d, action for tank %d: ", i.player, i.tankID)
		if !i.in.Scan() {
			return core.DoNothing
		}
		input := strings.TrimSpace(i.in.Text())
		if input == "" {
			return core.DoNothing
		}
		switch input[0] {
		case 'w':
			return core.MoveForward
		case 's':
			return core.MoveBackward
		case 'q':
			return core.RotateLeft45
		case 'a':
			return core.RotateLeft90
		case 'e':
			return core.RotateRight45
		case 'd':
			return core.RotateRight90
		case 'k':
			return core.Shoot
		case 'i':
			return core.GetInfo
		default:
			fmt.Fprintf(i.out, "Unknown command %q. Try again.\n", input)
		}
	}
}
