package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tank-arena/internal/platform/tui"
)

var flagRate int

var watchCmd = &cobra.Command{
	Use:   "watch <map>",
	Short: "Watch a match live in the terminal",
	Long: `Watch a match play out tick by tick in an interactive view.

Controls:
  space / p   - pause and resume
  n           - step one tick while paused
  + / -       - change playback speed
  q           - quit

Examples:
  tanks watch maps/arena.txt
  tanks watch maps/arena.txt --strategy2 rotator --rate 15`,
	Args: cobra.ExactArgs(1),
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagStrategy1, "strategy1", "chaser", "Strategy for player 1 tanks")
	watchCmd.Flags().StringVar(&flagStrategy2, "strategy2", "chaser", "Strategy for player 2 tanks")
	watchCmd.Flags().IntVar(&flagRate, "rate", 10, "Simulation ticks per second (1-60)")
	watchCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the result in the database")
}

func runWatch(cmd *cobra.Command, args []string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: watch needs an interactive terminal, use 'tanks run' instead")
		os.Exit(1)
	}

	logger := newLogger()
	mt, err := setupMatch(args[0], flagStrategy1, flagStrategy2, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if mt.eng.Interactive() {
		fmt.Fprintln(os.Stderr, "Error: interactive strategies read stdin and cannot run under watch, use 'tanks run' instead")
		os.Exit(1)
	}

	// The alternate screen is only as tall as the terminal; warn up front
	// when the board will not fit instead of letting it clip silently.
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		b := mt.eng.Board()
		if b.Width()+2 > w || b.Height()+5 > h {
			logger.Warn("terminal smaller than board, view may clip",
				"terminal", fmt.Sprintf("%dx%d", w, h),
				"board", fmt.Sprintf("%dx%d", b.Width(), b.Height()))
		}
	}

	result, err := tui.Run(mt.eng, flagRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if mt.eng.Over() {
		fmt.Println(result.Message())
		if !flagNoSave {
			saveResult(mt, result, logger)
		}
	}
}
