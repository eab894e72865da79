package grading

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardGradeFor(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{100, "A+"},
		{90, "A+"},
		{89.99, "A"},
		{80, "A"},
		{79.9, "B+"},
		{70, "B+"},
		{69, "B"},
		{60, "B"},
		{59.5, "C"},
		{50, "C"},
		{49, "D"},
		{40, "D"},
		{39.99, "F"},
		{0, "F"},
	}

	for _, tt := range tests {
		got := SchemeStandard.GradeFor(tt.pct)
		if got.Letter != tt.want {
			t.Errorf("GradeFor(%.2f) = %q, want %q", tt.pct, got.Letter, tt.want)
		}
	}
}

func TestLegacyGradeFor(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{95, "A+"},
		{80, "A+"},
		{79, "A"},
		{70, "A"},
		{65, "B"},
		{50, "C"},
		{49.9, "F"},
	}

	for _, tt := range tests {
		got := SchemeLegacy.GradeFor(tt.pct)
		if got.Letter != tt.want {
			t.Errorf("GradeFor(%.2f) = %q, want %q", tt.pct, got.Letter, tt.want)
		}
	}
}

func TestGradeFor_Permissive(t *testing.T) {
	assert.Equal(t, "A+", SchemeStandard.GradeFor(250).Letter)
	assert.Equal(t, "F", SchemeStandard.GradeFor(-10).Letter)
	assert.Equal(t, "F", SchemeStandard.GradeFor(math.NaN()).Letter)
	assert.Equal(t, "A+", Scheme("bogus").GradeFor(95).Letter)
}

func TestGradeFor_Monotonic(t *testing.T) {
	for _, s := range AllSchemes() {
		prev := s.Rank(s.GradeFor(-5).Letter)
		for p := -5.0; p <= 105; p += 0.25 {
			rank := s.Rank(s.GradeFor(p).Letter)
			require.NotEqual(t, -1, rank)
			if rank > prev {
				t.Fatalf("%s: grade got worse at %.2f", s, p)
			}
			prev = rank
		}
	}
}

func TestGradeColorsSet(t *testing.T) {
	for _, s := range AllSchemes() {
		for p := 0.0; p <= 100; p += 5 {
			assert.NotEmpty(t, s.GradeFor(p).Color)
		}
	}
}

func TestParseScheme(t *testing.T) {
	tests := []struct {
		input   string
		want    Scheme
		wantErr bool
	}{
		{"", SchemeStandard, false},
		{"standard", SchemeStandard, false},
		{" Legacy ", SchemeLegacy, false},
		{"percentile", "", true},
	}

	for _, tt := range tests {
		got, err := ParseScheme(tt.input)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestSeverityFor(t *testing.T) {
	tests := []struct {
		value float64
		want  Severity
	}{
		{100, SeverityExcellent},
		{85, SeverityExcellent},
		{84.9, SeverityGood},
		{70, SeverityGood},
		{69, SeverityAverage},
		{50, SeverityAverage},
		{45, SeverityWeak},
		{40, SeverityWeak},
		{39, SeverityCritical},
		{0, SeverityCritical},
	}

	for _, tt := range tests {
		got := SeverityFor(tt.value)
		if got != tt.want {
			t.Errorf("SeverityFor(%.1f) = %q, want %q", tt.value, got, tt.want)
		}
		if ColorFor(tt.value) != got.Color() {
			t.Errorf("ColorFor(%.1f) disagrees with SeverityFor", tt.value)
		}
	}
}

func TestSeverity_DisplayName(t *testing.T) {
	assert.Equal(t, "Excellent", SeverityExcellent.DisplayName())
	assert.Equal(t, "Critical", SeverityCritical.DisplayName())
	assert.Equal(t, "other", Severity("other").DisplayName())
	assert.Len(t, AllSeverities(), 5)
}
