// Package mapfile parses battle map files into a populated board.
//
// A map file starts with a free-form name line, four "Key = Value" header
// lines (MaxSteps, NumShells, Rows, Cols), and then Rows lines of board
// characters. Malformed board content is repaired with a recorded warning
// rather than rejected; only a broken header is fatal.
package mapfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vovakirdan/tank-arena/internal/board"
	"github.com/vovakirdan/tank-arena/internal/core"
)

// Board characters accepted in map files.
const (
	charWall  = '#'
	charMine  = '@'
	charTank1 = '1'
	charTank2 = '2'
	charEmpty = ' '
)

// Map is a parsed map file, not yet turned into live objects.
type Map struct {
	Name      string
	MaxSteps  int
	NumShells int
	Rows      int
	Cols      int

	// Warnings lists every repair made while reading the board section.
	Warnings []string

	cells [][]rune
}

// ParseFile reads and parses the map file at path.
func ParseFile(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open map %s: %w", path, err)
	}
	defer f.Close()
	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse map %s: %w", path, err)
	}
	return m, nil
}

// Parse reads a map file from r.
func Parse(r io.Reader) (*Map, error) {
	scanner := bufio.NewScanner(r)

	m := &Map{}
	if !scanner.Scan() {
		return nil, fmt.Errorf("empty map file")
	}
	m.Name = strings.TrimSpace(scanner.Text())

	headers := []struct {
		key string
		dst *int
	}{
		{"MaxSteps", &m.MaxSteps},
		{"NumShells", &m.NumShells},
		{"Rows", &m.Rows},
		{"Cols", &m.Cols},
	}
	for _, h := range headers {
		if !scanner.Scan() {
			return nil, fmt.Errorf("missing header line %s", h.key)
		}
		v, err := parseHeader(scanner.Text(), h.key)
		if err != nil {
			return nil, err
		}
		*h.dst = v
	}
	if m.Rows <= 0 || m.Cols <= 0 {
		return nil, fmt.Errorf("board dimensions must be positive, got %dx%d", m.Cols, m.Rows)
	}
	if m.MaxSteps <= 0 {
		return nil, fmt.Errorf("MaxSteps must be positive, got %d", m.MaxSteps)
	}
	if m.NumShells < 0 {
		return nil, fmt.Errorf("NumShells must be non-negative, got %d", m.NumShells)
	}

	m.cells = make([][]rune, m.Rows)
	row := 0
	for scanner.Scan() {
		line := scanner.Text()
		if row >= m.Rows {
			m.warnf("extra board line %d ignored", row+1)
			row++
			continue
		}
		m.cells[row] = m.parseRow(line, row)
		row++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read map: %w", err)
	}
	for i := range m.cells {
		if m.cells[i] == nil {
			m.warnf("board line %d missing, padded with empty cells", i+1)
			m.cells[i] = emptyRow(m.Cols)
		}
	}
	return m, nil
}

// parseHeader extracts the integer from a "Key = Value" line, tolerating
// arbitrary whitespace around the key, the equals sign, and the value.
func parseHeader(line, key string) (int, error) {
	parts := strings.SplitN(line, "=", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed header line %q, want %q", line, key+" = <value>")
	}
	if got := strings.TrimSpace(parts[0]); got != key {
		return 0, fmt.Errorf("unexpected header %q, want %q", got, key)
	}
	v, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, strings.TrimSpace(parts[1]), err)
	}
	return v, nil
}

func (m *Map) parseRow(line string, row int) []rune {
	runes := []rune(line)
	if len(runes) > m.Cols {
		m.warnf("board line %d longer than Cols, truncated", row+1)
		runes = runes[:m.Cols]
	}
	if len(runes) < m.Cols {
		m.warnf("board line %d shorter than Cols, padded with empty cells", row+1)
	}
	out := emptyRow(m.Cols)
	for x, c := range runes {
		switch c {
		case charWall, charMine, charTank1, charTank2, charEmpty:
			out[x] = c
		default:
			m.warnf("unknown character %q at row %d col %d, treated as empty", c, row+1, x+1)
		}
	}
	return out
}

func emptyRow(cols int) []rune {
	row := make([]rune, cols)
	for i := range row {
		row[i] = charEmpty
	}
	return row
}

func (m *Map) warnf(format string, args ...any) {
	m.Warnings = append(m.Warnings, fmt.Sprintf(format, args...))
}

// Build populates a board from the parsed cells. Tanks are assigned IDs
// in row-major scan order; player 1 tanks start facing left, player 2
// tanks facing right. cooldown and wallHealth come from the rules config.
func (m *Map) Build(cooldown, wallHealth int) *board.Board {
	b := board.New(m.Cols, m.Rows)
	nextID := 1
	for y := 0; y < m.Rows; y++ {
		for x := 0; x < m.Cols; x++ {
			pos := core.Coord{X: x, Y: y}
			switch m.cells[y][x] {
			case charWall:
				b.Add(board.NewWall(pos, wallHealth))
			case charMine:
				b.Add(board.NewMine(pos))
			case charTank1:
				b.Add(board.NewTank(nextID, 1, pos, core.Left, m.NumShells, cooldown))
				nextID++
			case charTank2:
				b.Add(board.NewTank(nextID, 2, pos, core.Right, m.NumShells, cooldown))
				nextID++
			}
		}
	}
	return b
}
