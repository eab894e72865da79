package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alyansheikhh/reportcard/internal/analysis"
	"github.com/alyansheikhh/reportcard/internal/grading"
	"github.com/alyansheikhh/reportcard/internal/report"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s := NewServer(report.DefaultClassSettings())
	n := 0
	s.Builder.Now = func() time.Time { return fixedNow }
	s.Builder.NewID = func() string {
		n++
		return fmt.Sprintf("stu-%d", n)
	}
	s.Now = func() time.Time { return fixedNow }

	ts := httptest.NewServer(s.Routes([]string{"http://localhost:3000"}))
	t.Cleanup(ts.Close)
	return s, ts
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rdr)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

const ayesha = `{
	"name": "Ayesha",
	"roll_no": "R/17",
	"marks": {"Math": 95, "Physics": 40, "Urdu": 70, "English": 85, "Computer": 60},
	"conduct": "Excellent",
	"attendance": 93
}`

func TestHealthAndSettings(t *testing.T) {
	_, ts := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+"/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/api/settings", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[report.ClassSettings](t, resp)
	assert.Equal(t, report.DefaultClassSettings(), got)
}

func TestGrade(t *testing.T) {
	_, ts := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+"/api/grade?percentage=72.5", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[map[string]any](t, resp)
	assert.Equal(t, "B+", got["letter"])
	assert.Equal(t, string(grading.SchemeStandard), got["scheme"])

	for _, q := range []string{"", "abc", "101", "-1", "NaN"} {
		resp := do(t, http.MethodGet, ts.URL+"/api/grade?percentage="+q, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "percentage=%q", q)
	}
}

func TestAnalyze(t *testing.T) {
	_, ts := newTestServer(t)

	resp := do(t, http.MethodPost, ts.URL+"/api/analyze", `{"marks": {"Math": 100, "Art": 100}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	a := decode[analysis.Analysis](t, resp)
	assert.Equal(t, "Exceptional", a.PerformanceCategory)
	assert.Equal(t, []analysis.Badge{
		analysis.BadgeGold, analysis.BadgeConsistency, analysis.BadgePerfect, analysis.BadgeAllRounder,
	}, a.Badges)
	assert.Equal(t, []string{"Math", "Art"}, a.Strengths.Subjects())

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"marks": `},
		{"empty marks", `{"marks": {}}`},
		{"out of range", `{"marks": {"Math": 101}}`},
		{"fractional", `{"marks": {"Math": 50.5}}`},
		{"too many subjects", marksBody(11)},
		{"twenty thousand subjects", marksBody(20000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, ts.URL+"/api/analyze", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(t, decode[errResp](t, resp).Error)
		})
	}
}

// marksObject returns a JSON object of n subjects named s0, s1, ...
func marksObject(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf(`"s%d": 50`, i)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func marksBody(n int) string {
	return `{"marks": ` + marksObject(n) + `}`
}

func TestAnalyze_SubjectLimit(t *testing.T) {
	_, ts := newTestServer(t)

	resp := do(t, http.MethodPost, ts.URL+"/api/analyze", marksBody(10))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodPost, ts.URL+"/api/students",
		`{"name": "A", "roll_no": "1", "marks": `+marksObject(11)+`}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalyze_NoBadgesIsEmptyList(t *testing.T) {
	_, ts := newTestServer(t)

	resp := do(t, http.MethodPost, ts.URL+"/api/analyze", `{"marks": {"A": 10, "B": 90}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"badges":[]`)
}

func TestStudentsLifecycle(t *testing.T) {
	s, ts := newTestServer(t)

	resp := do(t, http.MethodPost, ts.URL+"/api/students", ayesha)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "/api/students/stu-1", resp.Header.Get("Location"))
	rec := decode[report.StudentRecord](t, resp)
	assert.Equal(t, "stu-1", rec.ID)
	assert.Equal(t, 350, rec.TotalMarks)
	assert.Equal(t, "B+", rec.Grade.Letter)
	assert.Equal(t, report.ConductExcellent, rec.Conduct)
	assert.Equal(t, 1, s.Store.Len())

	resp = do(t, http.MethodGet, ts.URL+"/api/students", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]report.StudentRecord](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"Math", "Physics", "Urdu", "English", "Computer"}, list[0].Marks.Subjects())

	resp = do(t, http.MethodGet, ts.URL+"/api/students/stu-1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/api/students/stu-1/analysis", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	a := decode[analysis.Analysis](t, resp)
	assert.Equal(t, []string{"Math", "English"}, a.Strengths.Subjects())
	assert.Equal(t, []string{"Physics", "Computer"}, a.Weaknesses.Subjects())
	assert.Equal(t, []analysis.Badge{analysis.BadgeBronze}, a.Badges)

	resp = do(t, http.MethodDelete, ts.URL+"/api/students", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 0, s.Store.Len())
}

func TestStudents_Errors(t *testing.T) {
	_, ts := newTestServer(t)

	resp := do(t, http.MethodPost, ts.URL+"/api/students", `{"roll_no": "1", "marks": {"Math": 50}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[errResp](t, resp).Error, "name")

	resp = do(t, http.MethodPost, ts.URL+"/api/students", `{"name": "A", "roll_no": "1", "marks": {"Math": 50}, "conduct": "Rowdy"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	for _, path := range []string{"/api/students/nope", "/api/students/nope/analysis", "/api/students/nope/export"} {
		resp := do(t, http.MethodGet, ts.URL+path, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestExportStudent(t *testing.T) {
	_, ts := newTestServer(t)
	require.Equal(t, http.StatusCreated, do(t, http.MethodPost, ts.URL+"/api/students", ayesha).StatusCode)

	resp := do(t, http.MethodGet, ts.URL+"/api/students/stu-1/export", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="reportcard-R_17.json"`, resp.Header.Get("Content-Disposition"))

	doc, err := report.ReadJSON(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, report.FormatVersion, doc.Version)
	assert.Equal(t, fixedNow, doc.ExportedAt)
	require.Len(t, doc.Students, 1)
	assert.Equal(t, "Ayesha", doc.Students[0].Name)
}

func TestExportRoster(t *testing.T) {
	_, ts := newTestServer(t)
	require.Equal(t, http.StatusCreated, do(t, http.MethodPost, ts.URL+"/api/students", ayesha).StatusCode)

	resp := do(t, http.MethodGet, ts.URL+"/api/export.xlsx", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsxContentType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Class-roster.xlsx")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	subs, err := report.ReadXLSX(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "R/17", subs[0].RollNo)
}

func TestCORSPreflight(t *testing.T) {
	_, ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/students", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}
