package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/alyansheikhh/reportcard/internal/grading"
	"github.com/alyansheikhh/reportcard/internal/ui/theme"
)

// MarkBar displays one subject mark as a horizontal bar tinted by severity.
// Passing and Excellence, when in (0, 100), are drawn as tick marks on the
// empty part of the bar.
type MarkBar struct {
	Label      string
	LabelWidth int
	Mark       int
	Passing    float64
	Excellence float64
	Width      int
}

// NewMarkBar creates a new mark bar.
func NewMarkBar(label string, mark int, width int) MarkBar {
	return MarkBar{
		Label: label,
		Mark:  mark,
		Width: width,
	}
}

// View renders the mark bar.
func (b MarkBar) View() string {
	var result string

	if b.Label != "" {
		label := b.Label
		if pad := b.LabelWidth - lipgloss.Width(label); pad > 0 {
			label += strings.Repeat(" ", pad)
		}
		result += theme.Body.Render(label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	markWidth := 6 // "  100"

	barWidth := b.Width - labelWidth - markWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := barCells(float64(b.Mark), barWidth)
	empty := barWidth - filled

	fill := grading.ColorFor(float64(b.Mark))
	result += lipgloss.NewStyle().
		Background(theme.FromGrading(fill)).
		Render(strings.Repeat(" ", filled))
	result += theme.BarEmpty.Render(b.emptyCells(filled, empty, barWidth))

	result += theme.Tint(fill).Render(fmt.Sprintf("  %3d", b.Mark))
	return result
}

// emptyCells draws the unfilled part of the bar with threshold ticks.
func (b MarkBar) emptyCells(filled, empty, barWidth int) string {
	cells := []rune(strings.Repeat(" ", empty))
	for _, t := range []float64{b.Passing, b.Excellence} {
		if t <= 0 || t >= 100 {
			continue
		}
		pos := barCells(t, barWidth) - filled
		if pos >= 0 && pos < len(cells) {
			cells[pos] = '┊'
		}
	}
	return string(cells)
}

// barCells converts a 0-100 value into a cell count for a bar of width w.
func barCells(value float64, w int) int {
	n := int(float64(w) * value / 100)
	if n > w {
		n = w
	}
	if n < 0 {
		n = 0
	}
	return n
}
