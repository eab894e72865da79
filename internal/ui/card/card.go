// Package card renders a student's report card and performance analysis for
// the terminal.
package card

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/alyansheikhh/reportcard/internal/analysis"
	"github.com/alyansheikhh/reportcard/internal/marks"
	"github.com/alyansheikhh/reportcard/internal/report"
	"github.com/alyansheikhh/reportcard/internal/ui/components"
	"github.com/alyansheikhh/reportcard/internal/ui/theme"
)

// MinWidth is the narrowest card Render will draw.
const MinWidth = 48

// Render draws rec and its analysis as a bordered card of roughly width
// columns.
func Render(rec report.StudentRecord, a *analysis.Analysis, settings report.ClassSettings, width int) string {
	if width < MinWidth {
		width = MinWidth
	}
	inner := width - 6 // border + padding

	var sections []string
	sections = append(sections, header(rec, settings))
	sections = append(sections, summary(rec, a, settings))
	sections = append(sections, subjectBars(rec, settings, inner))
	sections = append(sections, buckets(a)...)
	if len(a.Badges) > 0 {
		sections = append(sections, badges(a))
	}
	sections = append(sections, advice(rec, a))
	if rec.TeacherRemarks != "" {
		sections = append(sections,
			theme.Heading.Render("Teacher's Remarks"),
			theme.Hint.Render(rec.TeacherRemarks))
	}

	return theme.Card.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func header(rec report.StudentRecord, settings report.ClassSettings) string {
	title := theme.Title.Render(fmt.Sprintf("%s · Report Card", settings.ClassName))
	info := theme.Subtitle.Render(fmt.Sprintf("%s  ·  Roll No %s  ·  %s",
		rec.Name, rec.RollNo, rec.AssessmentDate.Format(report.DateLayout)))
	extra := theme.Subtitle.Render(fmt.Sprintf("Attendance %d%%  ·  Conduct %s",
		rec.Attendance, rec.Conduct))
	return lipgloss.JoinVertical(lipgloss.Left, title, info, extra)
}

func summary(rec report.StudentRecord, a *analysis.Analysis, settings report.ClassSettings) string {
	result := theme.Fail.Render("FAIL")
	if rec.Passed(settings) {
		result = theme.Pass.Render("PASS")
	}
	line := fmt.Sprintf("%d / %d  ·  %.2f%%  ", rec.TotalMarks, rec.MaxPossible, rec.Percentage)
	grade := theme.Badge(rec.Grade.Color).Render(rec.Grade.Letter)

	category := theme.Body.Render(fmt.Sprintf("%s %s: %s", a.Icon, a.PerformanceCategory, a.OverallComment))
	consistency := theme.Tint(a.ConsistencyColor).Render(
		fmt.Sprintf("%s (σ %.2f, avg %.1f, max %d, min %d)", a.ConsistencyNote, a.StdDev, a.AvgMarks, a.MaxMark, a.MinMark))

	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		theme.Body.Render(line)+grade+"  "+result,
		category,
		consistency,
	)
}

func subjectBars(rec report.StudentRecord, settings report.ClassSettings, width int) string {
	labelWidth := 0
	for _, s := range rec.Marks.Subjects() {
		if w := lipgloss.Width(s); w > labelWidth {
			labelWidth = w
		}
	}

	lines := []string{theme.Heading.Render("Subjects")}
	for _, e := range rec.Marks.Entries() {
		bar := components.NewMarkBar(e.Subject, e.Mark, width-4)
		bar.LabelWidth = labelWidth
		bar.Passing = float64(settings.PassingPercentage)
		bar.Excellence = float64(settings.ExcellenceThreshold)
		lines = append(lines, bar.View()+" "+statusTag(settings.StatusFor(e.Mark)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func statusTag(s report.SubjectStatus) string {
	switch s {
	case report.StatusExcellent:
		return theme.Pass.Render("★")
	case report.StatusFail:
		return theme.Fail.Render("✗")
	default:
		return " "
	}
}

func buckets(a *analysis.Analysis) []string {
	var out []string
	for _, b := range []struct {
		title string
		rec   marks.Record
	}{
		{"Strengths", a.Strengths},
		{"Needs Attention", a.Weaknesses},
		{"Steady", a.Consistent},
	} {
		if b.rec.Len() == 0 {
			continue
		}
		parts := make([]string, 0, b.rec.Len())
		for _, e := range b.rec.Entries() {
			parts = append(parts, fmt.Sprintf("%s (%d)", e.Subject, e.Mark))
		}
		out = append(out, theme.Heading.Render(b.title), theme.Body.Render(strings.Join(parts, ", ")))
	}
	return out
}

func badges(a *analysis.Analysis) string {
	parts := make([]string, 0, len(a.Badges))
	for _, b := range a.Badges {
		parts = append(parts, b.Icon()+" "+string(b))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		theme.Heading.Render("Badges"),
		theme.Body.Render(strings.Join(parts, "   ")))
}

// advice lists a recommendation and projected mark per subject, weakest
// first.
func advice(rec report.StudentRecord, a *analysis.Analysis) string {
	entries := rec.Marks.Entries()
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Mark < entries[j].Mark })

	lines := []string{theme.Heading.Render("Recommendations")}
	for _, e := range entries {
		lines = append(lines, theme.Body.Render(fmt.Sprintf("%s: %s", e.Subject, a.Recommendations[e.Subject]))+
			theme.Hint.Render(fmt.Sprintf("  (%d → %d)", e.Mark, a.ImprovementPotential[e.Subject])))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
