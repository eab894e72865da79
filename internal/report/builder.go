package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alyansheikhh/reportcard/internal/grading"
	"github.com/alyansheikhh/reportcard/internal/marks"
)

// DateLayout is the layout of assessment dates in submissions and exports.
const DateLayout = "2006-01-02"

// Submission is the raw input for one report card.
type Submission struct {
	Name           string       `json:"name"`
	RollNo         string       `json:"roll_no"`
	Marks          marks.Record `json:"marks"`
	AssessmentDate string       `json:"assessment_date,omitempty"` // YYYY-MM-DD, defaults to today
	Attendance     *int         `json:"attendance,omitempty"`      // defaults to 100
	Conduct        string       `json:"conduct,omitempty"`         // defaults to Good
	TeacherRemarks string       `json:"teacher_remarks,omitempty"`
}

// Builder validates submissions and turns them into StudentRecords.
type Builder struct {
	Scheme grading.Scheme
	Now    func() time.Time
	NewID  func() string
}

// NewBuilder creates a Builder grading with scheme.
func NewBuilder(scheme grading.Scheme) *Builder {
	return &Builder{
		Scheme: scheme,
		Now:    time.Now,
		NewID:  uuid.NewString,
	}
}

// Build validates sub and returns the resulting record. Blank names or roll
// numbers fail with *MissingFieldError; bad marks, attendance, conduct or
// dates fail with *marks.InvalidInputError.
func (b *Builder) Build(sub Submission) (*StudentRecord, error) {
	name := strings.TrimSpace(sub.Name)
	if name == "" {
		return nil, &MissingFieldError{Field: "name"}
	}
	rollNo := strings.TrimSpace(sub.RollNo)
	if rollNo == "" {
		return nil, &MissingFieldError{Field: "roll_no"}
	}

	if err := sub.Marks.Validate(); err != nil {
		return nil, err
	}

	attendance := 100
	if sub.Attendance != nil {
		attendance = *sub.Attendance
		if attendance < 0 || attendance > 100 {
			return nil, &marks.InvalidInputError{
				Field:  "attendance",
				Reason: fmt.Sprintf("%d outside [0, 100]", attendance),
			}
		}
	}

	conduct := ConductGood
	if strings.TrimSpace(sub.Conduct) != "" {
		c, err := ParseConduct(sub.Conduct)
		if err != nil {
			return nil, err
		}
		conduct = c
	}

	now := b.now().UTC()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if s := strings.TrimSpace(sub.AssessmentDate); s != "" {
		d, err := time.Parse(DateLayout, s)
		if err != nil {
			return nil, &marks.InvalidInputError{
				Field:  "assessment_date",
				Reason: fmt.Sprintf("%q is not a YYYY-MM-DD date", s),
			}
		}
		date = d
	}

	total := sub.Marks.Total()
	maxPossible := sub.Marks.MaxPossible()
	percentage := float64(total) / float64(maxPossible) * 100

	scheme := b.Scheme
	if scheme == "" {
		scheme = grading.DefaultScheme
	}

	return &StudentRecord{
		ID:             b.newID(),
		Name:           name,
		RollNo:         rollNo,
		Marks:          marks.FromEntries(sub.Marks.Entries()...),
		TotalMarks:     total,
		MaxPossible:    maxPossible,
		Percentage:     percentage,
		Grade:          scheme.GradeFor(percentage),
		AssessmentDate: date,
		Attendance:     attendance,
		Conduct:        conduct,
		TeacherRemarks: strings.TrimSpace(sub.TeacherRemarks),
		Timestamp:      now,
	}, nil
}

func (b *Builder) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}

func (b *Builder) newID() string {
	if b.NewID == nil {
		return uuid.NewString()
	}
	return b.NewID()
}
