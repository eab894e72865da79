package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/alyansheikhh/reportcard/internal/grading"
)

// Color palette
var (
	Primary = lipgloss.Color("#1565C0") // Report Blue
	Accent  = lipgloss.Color("#F9A825") // Gold
	Success = lipgloss.Color("#2E7D32") // Green
	Error   = lipgloss.Color("#C62828") // Red
	Text    = lipgloss.Color("#F8FAFC") // White
	TextDim = lipgloss.Color("#94A3B8") // Slate
	Border  = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent).
		MarginTop(1)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Pass = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Fail = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Components
var (
	BarEmpty = lipgloss.NewStyle().
			Background(Border)
)

// FromGrading converts a hex color from the grading tables into a terminal
// color.
func FromGrading(c grading.Color) color.Color {
	return lipgloss.Color(string(c))
}

// Badge returns a filled label style for a grade or severity color.
func Badge(c grading.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(FromGrading(c)).
		Foreground(Text).
		Bold(true).
		Padding(0, 1)
}

// Tint returns a bold foreground style in c.
func Tint(c grading.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(FromGrading(c)).Bold(true)
}
