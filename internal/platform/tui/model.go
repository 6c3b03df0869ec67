// Package tui provides the Bubble Tea integration for watching a match
// live. It paces the engine's Step calls and renders the board; all game
// logic stays in the engine.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tank-arena/internal/board"
	"github.com/vovakirdan/tank-arena/internal/engine"
)

// StepMsg asks the model to advance the match by one tick.
type StepMsg time.Time

// stepCmd schedules the next StepMsg for the given steps-per-second rate.
func stepCmd(rate int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(rate), func(t time.Time) tea.Msg {
		return StepMsg(t)
	})
}

// symbolStyles maps board symbols to lipgloss styles.
var symbolStyles = map[rune]lipgloss.Style{
	'1':              lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	'2':              lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	board.SymbolWall: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	board.SymbolMine: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	board.SymbolShell: lipgloss.NewStyle().
		Foreground(lipgloss.Color("11")).Bold(true),
}

var (
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hudStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
)

// Model is the Bubble Tea model for watching a match.
type Model struct {
	eng      *engine.Engine
	tickRate int
	paused   bool
	quitting bool
}

// NewModel creates a viewer model for the given engine.
func NewModel(eng *engine.Engine, tickRate int) Model {
	if tickRate <= 0 {
		tickRate = 10
	}
	return Model{eng: eng, tickRate: tickRate}
}

// Init starts the step loop.
func (m Model) Init() tea.Cmd {
	return stepCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
		case "n":
			if m.paused && !m.eng.Over() {
				m.eng.Step()
			}
		case "+":
			if m.tickRate < 60 {
				m.tickRate++
			}
		case "-":
			if m.tickRate > 1 {
				m.tickRate--
			}
		}
		return m, nil

	case StepMsg:
		if !m.paused && !m.eng.Over() {
			m.eng.Step()
		}
		if m.eng.Over() {
			return m, nil
		}
		return m, stepCmd(m.tickRate)
	}

	return m, nil
}

// View renders the battlefield with a status line underneath.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.renderBoard())
	sb.WriteRune('\n')

	b := m.eng.Board()
	hud := fmt.Sprintf("tick %d   P1 tanks: %d   P2 tanks: %d   rate: %d/s",
		m.eng.Tick(), len(b.Tanks(1)), len(b.Tanks(2)), m.tickRate)
	sb.WriteString(hudStyle.Render(hud))
	sb.WriteRune('\n')

	switch {
	case m.eng.Over():
		sb.WriteString(resultStyle.Render(m.eng.Result().Message()))
		sb.WriteString(hudStyle.Render("   press q to quit"))
	case m.paused:
		sb.WriteString(pausedStyle.Render("paused"))
		sb.WriteString(hudStyle.Render("   space resumes, n steps once"))
	default:
		sb.WriteString(hudStyle.Render("space pauses, +/- changes speed, q quits"))
	}
	sb.WriteRune('\n')
	return sb.String()
}

// renderBoard draws the bordered battlefield with per-symbol styling.
func (m Model) renderBoard() string {
	b := m.eng.Board()
	snap := board.Capture(b, nil)

	var sb strings.Builder
	horizontal := borderStyle.Render("+" + strings.Repeat("-", b.Width()) + "+")
	sb.WriteString(horizontal)
	sb.WriteRune('\n')
	for y := 0; y < b.Height(); y++ {
		sb.WriteString(borderStyle.Render("|"))
		for x := 0; x < b.Width(); x++ {
			r := snap.At(x, y)
			if style, ok := symbolStyles[r]; ok {
				sb.WriteString(style.Render(string(r)))
			} else {
				sb.WriteRune(r)
			}
		}
		sb.WriteString(borderStyle.Render("|"))
		sb.WriteRune('\n')
	}
	sb.WriteString(horizontal)
	return sb.String()
}

// Run starts the Bubble Tea program for the given engine.
func Run(eng *engine.Engine, tickRate int) (engine.Result, error) {
	model := NewModel(eng, tickRate)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	if _, err := p.Run(); err != nil {
		return engine.Result{}, err
	}
	return eng.Result(), nil
}
