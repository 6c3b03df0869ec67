package board

import (
	"strings"

	"github.com/vovakirdan/tank-arena/internal/core"
)

// Render draws the board into a bordered text block, one character per
// cell with '.' for empty ground. Used by the transcript writer and by
// debug logging.
func Render(b *Board) string {
	snap := Capture(b, nil)
	var sb strings.Builder
	border := "+" + strings.Repeat("-", b.Width()) + "+"
	sb.WriteString(border)
	sb.WriteByte('\n')
	for y := 0; y < b.Height(); y++ {
		sb.WriteByte('|')
		for x := 0; x < b.Width(); x++ {
			c := snap.At(x, y)
			if c == SymbolEmpty {
				c = '.'
			}
			sb.WriteRune(c)
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	return sb.String()
}

// Draw renders a snapshot onto a screen buffer at the given offset, so
// callers can compose the battlefield with surrounding text.
func Draw(snap *Snapshot, screen *core.Screen, offsetX, offsetY int) {
	for y := 0; y < snap.Height(); y++ {
		for x := 0; x < snap.Width(); x++ {
			screen.Set(offsetX+x, offsetY+y, snap.At(x, y))
		}
	}
}
