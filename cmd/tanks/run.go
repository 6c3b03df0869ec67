package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tank-arena/internal/engine"
	"github.com/vovakirdan/tank-arena/internal/report"
	"github.com/vovakirdan/tank-arena/internal/storage"
)

var (
	flagStrategy1 string
	flagStrategy2 string
	flagOutput    string
	flagWarnings  string
	flagNoSave    bool
)

var runCmd = &cobra.Command{
	Use:   "run <map>",
	Short: "Run a match headless and write a transcript",
	Long: `Run a full match without a display. The per-tick action transcript is
written to stdout or to the --output file, and the result is recorded in
the match database unless --no-save is given.

Map repairs (short lines, unknown characters) are written to the
--warnings file when any occurred.

Examples:
  tanks run maps/arena.txt
  tanks run maps/arena.txt --strategy1 chaser --strategy2 rotator
  tanks run maps/arena.txt --output out.txt --warnings input_errors.txt`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagStrategy1, "strategy1", "chaser", "Strategy for player 1 tanks")
	runCmd.Flags().StringVar(&flagStrategy2, "strategy2", "chaser", "Strategy for player 2 tanks")
	runCmd.Flags().StringVar(&flagOutput, "output", "", "Transcript file (default: stdout)")
	runCmd.Flags().StringVar(&flagWarnings, "warnings", "input_errors.txt", "File for map parsing warnings")
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the result in the database")
}

func runRun(cmd *cobra.Command, args []string) {
	mapPath := args[0]
	logger := newLogger()

	mt, err := setupMatch(mapPath, flagStrategy1, flagStrategy2, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := report.WriteWarningsFile(flagWarnings, mapPath, mt.m.Warnings); err != nil {
		logger.Warn("could not write warnings file", "err", err)
	}

	result := mt.eng.Run()

	opts := report.Options{RenderBoard: mt.rules.Output.RenderBoards}
	if flagOutput != "" {
		err = report.WriteTranscriptFile(flagOutput, mt.eng.Records(), result, mt.eng.Board(), opts)
	} else {
		err = report.WriteTranscript(os.Stdout, mt.eng.Records(), result, mt.eng.Board(), opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !flagNoSave {
		saveResult(mt, result, logger)
	}
}

// saveResult records the outcome in the match database. Best effort: a
// broken database must not fail the run.
func saveResult(mt *match, result engine.Result, logger *log.Logger) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open match database", "err", err)
		return
	}
	defer store.Close()

	if _, err := store.SaveMatch(storage.MatchResult{
		MapName:     mt.m.Name,
		Strategy1:   flagStrategy1,
		Strategy2:   flagStrategy2,
		Winner:      result.Winner,
		Reason:      reasonLabel(result.Reason),
		Ticks:       result.Ticks,
		Tanks1Alive: result.Tanks1Alive,
		Tanks2Alive: result.Tanks2Alive,
	}); err != nil {
		logger.Warn("could not save match result", "err", err)
	}
}

// reasonLabel maps an end-of-match reason to its database label.
func reasonLabel(r engine.Reason) string {
	switch r {
	case engine.ReasonElimination:
		return "elimination"
	case engine.ReasonMaxTicks:
		return "max_ticks"
	case engine.ReasonAmmoSpent:
		return "ammo_spent"
	default:
		return "unknown"
	}
}
