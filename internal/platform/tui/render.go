package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/goldminer/internal/core"
)

// palette holds the ANSI 256 code for each core.Color. Empty means the
// terminal's default foreground.
var palette = [core.ColorCount]string{
	core.ColorDefault:       "",
	core.ColorYellow:        "3",
	core.ColorBrightYellow:  "11",
	core.ColorBrightCyan:    "14",
	core.ColorMagenta:       "5",
	core.ColorGreen:         "2",
	core.ColorOrange:        "208",
	core.ColorBrown:         "130",
	core.ColorGray:          "245",
	core.ColorWhite:         "7",
	core.ColorBrightWhite:   "15",
	core.ColorBrightGreen:   "10",
	core.ColorBrightRed:     "9",
	core.ColorCyan:          "6",
	core.ColorBrightMagenta: "13",
}

// ScreenRenderer turns a core.Screen into styled text for one output.
// Over SSH each session needs its own, built from the session's renderer,
// so colors match the client terminal rather than the server's.
type ScreenRenderer struct {
	styles [core.ColorCount]lipgloss.Style
}

// NewScreenRenderer builds styles for r. A nil r uses the process default.
func NewScreenRenderer(r *lipgloss.Renderer) *ScreenRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	sr := &ScreenRenderer{}
	for c, code := range palette {
		style := r.NewStyle()
		if code != "" {
			style = style.Foreground(lipgloss.Color(code))
		}
		sr.styles[c] = style
	}
	return sr
}

func (sr *ScreenRenderer) style(c core.Color) lipgloss.Style {
	if int(c) >= len(sr.styles) {
		return sr.styles[core.ColorDefault]
	}
	return sr.styles[c]
}

// Render writes the screen row by row. Each run of same-colored cells is
// styled once, which keeps escape sequences to a minimum.
func (sr *ScreenRenderer) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	run := make([]rune, 0, s.Width())
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		run = run[:0]
		runColor := core.ColorDefault
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if len(run) > 0 && cell.Color != runColor {
				sb.WriteString(sr.style(runColor).Render(string(run)))
				run = run[:0]
			}
			runColor = cell.Color
			run = append(run, cell.Rune)
		}
		if len(run) > 0 {
			sb.WriteString(sr.style(runColor).Render(string(run)))
		}
	}
	return sb.String()
}

// defaultScreenRenderer serves local play.
var defaultScreenRenderer = NewScreenRenderer(nil)

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
