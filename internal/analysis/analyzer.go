// Package analysis turns a student's subject marks into a performance
// analysis: statistics, tier labels, strengths and weaknesses, per-subject
// advice, badges and projected improvements. Everything here is a pure
// function of the marks and safe for concurrent use.
package analysis

import (
	"github.com/alyansheikhh/reportcard/internal/grading"
	"github.com/alyansheikhh/reportcard/internal/marks"
)

// Analysis is the derived view of one set of marks. It is recomputed on
// demand and never stored.
type Analysis struct {
	PerformanceCategory string `json:"performance_category"`
	OverallComment      string `json:"overall_comment"`
	Icon                string `json:"icon"`

	Strengths  marks.Record `json:"strengths"`
	Weaknesses marks.Record `json:"weaknesses"`
	Consistent marks.Record `json:"consistent"`

	Recommendations map[string]string `json:"recommendations"`

	ConsistencyNote  string        `json:"consistency_note"`
	ConsistencyColor grading.Color `json:"consistency_color"`

	Percentage float64 `json:"percentage"`
	AvgMarks   float64 `json:"avg_marks"`
	StdDev     float64 `json:"std_dev"`
	MaxMark    int     `json:"max_mark"`
	MinMark    int     `json:"min_mark"`

	Badges               []Badge        `json:"badges"`
	ImprovementPotential map[string]int `json:"improvement_potential"`
}

// Analyze computes the analysis of rec. It fails with marks.ErrInvalidInput
// when rec is empty, a subject is unnamed or a mark is outside [0, 100].
func Analyze(rec marks.Record) (*Analysis, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	values := rec.Values()
	stats := ComputeStats(values)
	percentage := float64(rec.Total()) / float64(rec.MaxPossible()) * 100

	upper := stats.Mean + stats.StdDev/2
	lower := stats.Mean - stats.StdDev/2

	a := &Analysis{
		Recommendations:      make(map[string]string, rec.Len()),
		ImprovementPotential: make(map[string]int, rec.Len()),
		Percentage:           percentage,
		AvgMarks:             stats.Mean,
		StdDev:               stats.StdDev,
		MaxMark:              stats.Max,
		MinMark:              stats.Min,
	}

	for _, e := range rec.Entries() {
		m := float64(e.Mark)
		switch {
		case m >= upper:
			a.Strengths.Set(e.Subject, e.Mark)
		case m < lower:
			a.Weaknesses.Set(e.Subject, e.Mark)
		default:
			a.Consistent.Set(e.Subject, e.Mark)
		}
		a.Recommendations[e.Subject] = RecommendationFor(e.Mark)
		a.ImprovementPotential[e.Subject] = ImprovementPotential(e.Mark)
	}

	cat := CategoryFor(percentage)
	a.PerformanceCategory = cat.Label
	a.OverallComment = cat.Comment
	a.Icon = cat.Icon

	level := ConsistencyFor(stats.StdDev)
	a.ConsistencyNote = level.Note
	a.ConsistencyColor = level.Color

	a.Badges = awardBadges(percentage, stats, values)

	return a, nil
}

// HasBadge reports whether b was awarded.
func (a *Analysis) HasBadge(b Badge) bool {
	for _, got := range a.Badges {
		if got == b {
			return true
		}
	}
	return false
}
