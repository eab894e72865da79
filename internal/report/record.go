// Package report holds student records: their construction from a
// submission, the in-memory report store and the export formats.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/alyansheikhh/reportcard/internal/analysis"
	"github.com/alyansheikhh/reportcard/internal/grading"
	"github.com/alyansheikhh/reportcard/internal/marks"
)

// Conduct is the teacher's behaviour rating.
type Conduct string

const (
	ConductPoor      Conduct = "Poor"
	ConductFair      Conduct = "Fair"
	ConductGood      Conduct = "Good"
	ConductVeryGood  Conduct = "Very Good"
	ConductExcellent Conduct = "Excellent"
)

// AllConducts returns conduct ratings from worst to best.
func AllConducts() []Conduct {
	return []Conduct{ConductPoor, ConductFair, ConductGood, ConductVeryGood, ConductExcellent}
}

// ParseConduct resolves a rating case-insensitively.
func ParseConduct(s string) (Conduct, error) {
	for _, c := range AllConducts() {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}
	return "", &marks.InvalidInputError{
		Field:  "conduct",
		Reason: fmt.Sprintf("%q is not one of Poor, Fair, Good, Very Good, Excellent", s),
	}
}

// StudentRecord is one submitted report card. Records are built once by a
// Builder and never modified afterwards.
type StudentRecord struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	RollNo         string        `json:"roll_no"`
	Marks          marks.Record  `json:"marks"`
	TotalMarks     int           `json:"total_marks"`
	MaxPossible    int           `json:"max_possible"`
	Percentage     float64       `json:"percentage"`
	Grade          grading.Grade `json:"grade"`
	AssessmentDate time.Time     `json:"assessment_date"`
	Attendance     int           `json:"attendance"`
	Conduct        Conduct       `json:"conduct"`
	TeacherRemarks string        `json:"teacher_remarks"`
	Timestamp      time.Time     `json:"timestamp"`
}

// Analyze runs the performance analysis over the record's marks.
func (r StudentRecord) Analyze() (*analysis.Analysis, error) {
	return analysis.Analyze(r.Marks)
}

// Passed reports whether the record meets the class passing percentage.
func (r StudentRecord) Passed(settings ClassSettings) bool {
	return r.Percentage >= float64(settings.PassingPercentage)
}

// ClassSettings are the class-wide thresholds used when presenting records.
type ClassSettings struct {
	PassingPercentage   int            `json:"passing_percentage"`
	ExcellenceThreshold int            `json:"excellence_threshold"`
	ClassName           string         `json:"class_name"`
	Scheme              grading.Scheme `json:"grading_scheme"`
}

// DefaultClassSettings returns the settings used when nothing is configured.
func DefaultClassSettings() ClassSettings {
	return ClassSettings{
		PassingPercentage:   40,
		ExcellenceThreshold: 85,
		ClassName:           "Class",
		Scheme:              grading.DefaultScheme,
	}
}

// Validate checks both thresholds lie in [0, 100] and the scheme is known.
func (s ClassSettings) Validate() error {
	if s.PassingPercentage < 0 || s.PassingPercentage > 100 {
		return &marks.InvalidInputError{Field: "passing_percentage", Reason: fmt.Sprintf("%d outside [0, 100]", s.PassingPercentage)}
	}
	if s.ExcellenceThreshold < 0 || s.ExcellenceThreshold > 100 {
		return &marks.InvalidInputError{Field: "excellence_threshold", Reason: fmt.Sprintf("%d outside [0, 100]", s.ExcellenceThreshold)}
	}
	if _, err := grading.ParseScheme(string(s.Scheme)); err != nil {
		return &marks.InvalidInputError{Field: "grading_scheme", Reason: err.Error()}
	}
	return nil
}

// SubjectStatus classifies one mark against the class thresholds.
type SubjectStatus string

const (
	StatusFail      SubjectStatus = "fail"
	StatusPass      SubjectStatus = "pass"
	StatusExcellent SubjectStatus = "excellent"
)

// StatusFor returns the status of mark under the settings.
func (s ClassSettings) StatusFor(mark int) SubjectStatus {
	switch {
	case mark >= s.ExcellenceThreshold:
		return StatusExcellent
	case mark >= s.PassingPercentage:
		return StatusPass
	default:
		return StatusFail
	}
}
