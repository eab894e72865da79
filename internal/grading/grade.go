package grading

import (
	"fmt"
	"strings"
)

// Color is a hex display color tag attached to a grade or severity band.
type Color string

// Grade is a letter grade with its display color.
type Grade struct {
	Letter string `json:"letter"`
	Color  Color  `json:"color"`
}

// Scheme names a grading ladder.
type Scheme string

const (
	// SchemeStandard is the seven-tier A+/A/B+/B/C/D/F ladder.
	SchemeStandard Scheme = "standard"

	// SchemeLegacy is the five-tier A+/A/B/C/F ladder used by the first
	// version of the report card generator.
	SchemeLegacy Scheme = "legacy"
)

// DefaultScheme is used when no scheme is configured.
const DefaultScheme = SchemeStandard

// AllSchemes returns every supported scheme.
func AllSchemes() []Scheme {
	return []Scheme{SchemeStandard, SchemeLegacy}
}

// ParseScheme resolves a scheme name. The empty string selects DefaultScheme.
func ParseScheme(name string) (Scheme, error) {
	switch Scheme(strings.ToLower(strings.TrimSpace(name))) {
	case "":
		return DefaultScheme, nil
	case SchemeStandard:
		return SchemeStandard, nil
	case SchemeLegacy:
		return SchemeLegacy, nil
	default:
		return "", fmt.Errorf("unknown grading scheme %q (want standard or legacy)", name)
	}
}

// DisplayName returns a human-readable label for the scheme.
func (s Scheme) DisplayName() string {
	switch s {
	case SchemeStandard:
		return "Standard (7-tier)"
	case SchemeLegacy:
		return "Legacy (5-tier)"
	default:
		return string(s)
	}
}

type tier struct {
	min   float64
	grade Grade
}

// Ladders are ordered from the highest band down; the last entry is the
// catch-all and its min is never consulted.
var ladders = map[Scheme][]tier{
	SchemeStandard: {
		{90, Grade{"A+", "#1B5E20"}},
		{80, Grade{"A", "#2E7D32"}},
		{70, Grade{"B+", "#558B2F"}},
		{60, Grade{"B", "#1565C0"}},
		{50, Grade{"C", "#EF6C00"}},
		{40, Grade{"D", "#D84315"}},
		{0, Grade{"F", "#C62828"}},
	},
	SchemeLegacy: {
		{80, Grade{"A+", "#1B5E20"}},
		{70, Grade{"A", "#2E7D32"}},
		{60, Grade{"B", "#1565C0"}},
		{50, Grade{"C", "#EF6C00"}},
		{0, Grade{"F", "#C62828"}},
	},
}

// GradeFor maps a class percentage to a letter grade. It accepts any value,
// including ones outside [0, 100]; anything below the lowest band is F.
// An unknown scheme grades with DefaultScheme.
func (s Scheme) GradeFor(percentage float64) Grade {
	ladder, ok := ladders[s]
	if !ok {
		ladder = ladders[DefaultScheme]
	}
	for _, t := range ladder[:len(ladder)-1] {
		if percentage >= t.min {
			return t.grade
		}
	}
	return ladder[len(ladder)-1].grade
}

// Letters returns the scheme's letters from best to worst.
func (s Scheme) Letters() []string {
	ladder, ok := ladders[s]
	if !ok {
		ladder = ladders[DefaultScheme]
	}
	out := make([]string, len(ladder))
	for i, t := range ladder {
		out[i] = t.grade.Letter
	}
	return out
}

// Rank returns the position of letter in the scheme, 0 being best, or -1 if
// the letter is not part of the scheme.
func (s Scheme) Rank(letter string) int {
	for i, l := range s.Letters() {
		if l == letter {
			return i
		}
	}
	return -1
}
