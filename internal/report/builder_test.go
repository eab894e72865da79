package report

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alyansheikhh/reportcard/internal/grading"
	"github.com/alyansheikhh/reportcard/internal/marks"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func testBuilder(scheme grading.Scheme) *Builder {
	n := 0
	return &Builder{
		Scheme: scheme,
		Now:    func() time.Time { return fixedNow },
		NewID: func() string {
			n++
			return fmt.Sprintf("rec-%d", n)
		},
	}
}

func fiveSubjects() marks.Record {
	return marks.FromEntries(
		marks.Entry{Subject: "Math", Mark: 95},
		marks.Entry{Subject: "Physics", Mark: 40},
		marks.Entry{Subject: "Urdu", Mark: 70},
		marks.Entry{Subject: "English", Mark: 85},
		marks.Entry{Subject: "Computer", Mark: 60},
	)
}

func intPtr(v int) *int { return &v }

func TestBuild_ComputesDerivedFields(t *testing.T) {
	b := testBuilder(grading.SchemeStandard)
	rec, err := b.Build(Submission{
		Name:   "  Ayesha Khan ",
		RollNo: "R-17",
		Marks:  fiveSubjects(),
	})
	require.NoError(t, err)

	assert.Equal(t, "rec-1", rec.ID)
	assert.Equal(t, "Ayesha Khan", rec.Name)
	assert.Equal(t, 350, rec.TotalMarks)
	assert.Equal(t, 500, rec.MaxPossible)
	assert.InDelta(t, 70.0, rec.Percentage, 1e-9)
	assert.Equal(t, "B+", rec.Grade.Letter)
	assert.Equal(t, ConductGood, rec.Conduct)
	assert.Equal(t, 100, rec.Attendance)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), rec.AssessmentDate)
	assert.Equal(t, fixedNow, rec.Timestamp)
}

func TestBuild_LegacyScheme(t *testing.T) {
	rec, err := testBuilder(grading.SchemeLegacy).Build(Submission{
		Name: "Bilal", RollNo: "9", Marks: fiveSubjects(),
	})
	require.NoError(t, err)
	assert.Equal(t, "A", rec.Grade.Letter)
}

func TestBuild_OptionalFields(t *testing.T) {
	rec, err := testBuilder(grading.SchemeStandard).Build(Submission{
		Name:           "Sara",
		RollNo:         "12",
		Marks:          fiveSubjects(),
		AssessmentDate: "2025-01-20",
		Attendance:     intPtr(92),
		Conduct:        "very good",
		TeacherRemarks: " Works hard. ",
	})
	require.NoError(t, err)
	assert.Equal(t, ConductVeryGood, rec.Conduct)
	assert.Equal(t, 92, rec.Attendance)
	assert.Equal(t, time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC), rec.AssessmentDate)
	assert.Equal(t, "Works hard.", rec.TeacherRemarks)
}

func TestBuild_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		sub   Submission
		field string
	}{
		{"no name", Submission{RollNo: "1", Marks: fiveSubjects()}, "name"},
		{"blank name", Submission{Name: "   ", RollNo: "1", Marks: fiveSubjects()}, "name"},
		{"no roll", Submission{Name: "Ali", Marks: fiveSubjects()}, "roll_no"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testBuilder(grading.SchemeStandard).Build(tt.sub)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingRequiredField))
			var mf *MissingFieldError
			require.True(t, errors.As(err, &mf))
			assert.Equal(t, tt.field, mf.Field)
		})
	}
}

func TestBuild_InvalidInput(t *testing.T) {
	tooMany := marks.Record{}
	for i := 0; i < marks.MaxSubjects+1; i++ {
		tooMany.Set(fmt.Sprintf("S%d", i), 50)
	}

	tests := []struct {
		name string
		sub  Submission
	}{
		{"no marks", Submission{Name: "A", RollNo: "1"}},
		{"mark out of range", Submission{Name: "A", RollNo: "1", Marks: marks.FromEntries(marks.Entry{Subject: "Math", Mark: 120})}},
		{"too many subjects", Submission{Name: "A", RollNo: "1", Marks: tooMany}},
		{"attendance", Submission{Name: "A", RollNo: "1", Marks: fiveSubjects(), Attendance: intPtr(101)}},
		{"conduct", Submission{Name: "A", RollNo: "1", Marks: fiveSubjects(), Conduct: "Naughty"}},
		{"date", Submission{Name: "A", RollNo: "1", Marks: fiveSubjects(), AssessmentDate: "14/03/2025"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := testBuilder(grading.SchemeStandard).Build(tt.sub)
			require.Error(t, err)
			assert.Nil(t, rec)
			assert.True(t, errors.Is(err, marks.ErrInvalidInput), "got %v", err)
		})
	}
}

func TestBuild_RecordIsIsolatedFromSubmission(t *testing.T) {
	sub := Submission{Name: "A", RollNo: "1", Marks: fiveSubjects()}
	rec, err := testBuilder(grading.SchemeStandard).Build(sub)
	require.NoError(t, err)

	sub.Marks.Set("Math", 0)
	m, _ := rec.Marks.Get("Math")
	assert.Equal(t, 95, m)
}

func TestBuild_DefaultIDIsUUID(t *testing.T) {
	rec, err := NewBuilder(grading.SchemeStandard).Build(Submission{
		Name: "A", RollNo: "1", Marks: fiveSubjects(),
	})
	require.NoError(t, err)
	assert.Len(t, rec.ID, 36)
}

func TestClassSettings(t *testing.T) {
	s := DefaultClassSettings()
	require.NoError(t, s.Validate())

	assert.Equal(t, StatusFail, s.StatusFor(39))
	assert.Equal(t, StatusPass, s.StatusFor(40))
	assert.Equal(t, StatusPass, s.StatusFor(84))
	assert.Equal(t, StatusExcellent, s.StatusFor(85))

	bad := s
	bad.PassingPercentage = 120
	assert.True(t, errors.Is(bad.Validate(), marks.ErrInvalidInput))

	bad = s
	bad.Scheme = "curve"
	assert.Error(t, bad.Validate())
}

func TestParseConduct(t *testing.T) {
	for _, c := range AllConducts() {
		got, err := ParseConduct(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseConduct("great")
	assert.True(t, errors.Is(err, marks.ErrInvalidInput))
}
