package grading

// Severity classifies a mark or percentage for display.
type Severity string

const (
	SeverityExcellent Severity = "excellent"
	SeverityGood      Severity = "good"
	SeverityAverage   Severity = "average"
	SeverityWeak      Severity = "weak"
	SeverityCritical  Severity = "critical"
)

// AllSeverities returns severities from best to worst.
func AllSeverities() []Severity {
	return []Severity{SeverityExcellent, SeverityGood, SeverityAverage, SeverityWeak, SeverityCritical}
}

// severityBands is the single threshold-to-color table shared by every
// place that colors a mark or a percentage.
var severityBands = []struct {
	min      float64
	severity Severity
	color    Color
}{
	{85, SeverityExcellent, "#2E7D32"},
	{70, SeverityGood, "#1565C0"},
	{50, SeverityAverage, "#F9A825"},
	{40, SeverityWeak, "#EF6C00"},
	{0, SeverityCritical, "#C62828"},
}

// SeverityFor returns the severity band for a mark or percentage.
func SeverityFor(value float64) Severity {
	for _, b := range severityBands[:len(severityBands)-1] {
		if value >= b.min {
			return b.severity
		}
	}
	return SeverityCritical
}

// ColorFor returns the display color for a mark or percentage.
func ColorFor(value float64) Color {
	return SeverityFor(value).Color()
}

// Color returns the display color of the severity.
func (s Severity) Color() Color {
	for _, b := range severityBands {
		if b.severity == s {
			return b.color
		}
	}
	return severityBands[len(severityBands)-1].color
}

// DisplayName returns a human-readable label for the severity.
func (s Severity) DisplayName() string {
	switch s {
	case SeverityExcellent:
		return "Excellent"
	case SeverityGood:
		return "Good"
	case SeverityAverage:
		return "Average"
	case SeverityWeak:
		return "Weak"
	case SeverityCritical:
		return "Critical"
	default:
		return string(s)
	}
}
