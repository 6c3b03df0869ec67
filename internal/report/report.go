// Package report writes match transcripts and input warning files.
//
// A transcript lists one line per tick with every tank's reported action
// in tank-ID order, followed by a single final result line. The format is
// stable: downstream tooling diffs transcripts to verify determinism.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vovakirdan/tank-arena/internal/board"
	"github.com/vovakirdan/tank-arena/internal/engine"
)

// Options controls optional transcript content.
type Options struct {
	// RenderBoard appends a bordered board render after the result line.
	RenderBoard bool
}

// WriteTranscript writes the full match transcript to w.
func WriteTranscript(w io.Writer, records []engine.TickRecord, result engine.Result, b *board.Board, opts Options) error {
	for _, tick := range records {
		parts := make([]string, 0, len(tick.Actions))
		for _, a := range tick.Actions {
			parts = append(parts, a.String())
		}
		if _, err := fmt.Fprintln(w, strings.Join(parts, ", ")); err != nil {
			return fmt.Errorf("report: write tick %d: %w", tick.Tick, err)
		}
	}
	if _, err := fmt.Fprintln(w, result.Message()); err != nil {
		return fmt.Errorf("report: write result: %w", err)
	}
	if opts.RenderBoard && b != nil {
		if _, err := fmt.Fprintln(w, board.Render(b)); err != nil {
			return fmt.Errorf("report: write board: %w", err)
		}
	}
	return nil
}

// WriteTranscriptFile writes the transcript to the named file, truncating
// any previous content.
func WriteTranscriptFile(path string, records []engine.TickRecord, result engine.Result, b *board.Board, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteTranscript(f, records, result, b, opts); err != nil {
		return err
	}
	return f.Close()
}

// WriteWarnings writes map-parsing warnings to w. Nothing is written when
// the warning list is empty.
func WriteWarnings(w io.Writer, mapPath string, warnings []string) error {
	if len(warnings) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "Warnings found during parsing of input file: %s\n", mapPath); err != nil {
		return err
	}
	for _, warning := range warnings {
		if _, err := fmt.Fprintf(w, "- %s\n", warning); err != nil {
			return err
		}
	}
	return nil
}

// WriteWarningsFile writes warnings to the named file. The file is not
// created when there are no warnings.
func WriteWarningsFile(path, mapPath string, warnings []string) error {
	if len(warnings) == 0 {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteWarnings(f, mapPath, warnings); err != nil {
		return fmt.Errorf("report: write warnings: %w", err)
	}
	return f.Close()
}
