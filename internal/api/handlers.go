package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/alyansheikhh/reportcard/internal/analysis"
	"github.com/alyansheikhh/reportcard/internal/grading"
	"github.com/alyansheikhh/reportcard/internal/marks"
	"github.com/alyansheikhh/reportcard/internal/report"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

/* ------------------------------ Stateless -------------------------------- */

func getSettings(settings report.ClassSettings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, settings)
	}
}

type gradeResp struct {
	Percentage float64        `json:"percentage"`
	Scheme     grading.Scheme `json:"scheme"`
	grading.Grade
}

func getGrade(settings report.ClassSettings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("percentage")
		pct, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(pct) || pct < 0 || pct > 100 {
			writeErr(w, http.StatusBadRequest, fmt.Sprintf("percentage must be a number in [0, 100], got %q", raw))
			return
		}
		writeJSON(w, http.StatusOK, gradeResp{
			Percentage: pct,
			Scheme:     settings.Scheme,
			Grade:      settings.Scheme.GradeFor(pct),
		})
	}
}

type analyzeReq struct {
	Marks marks.Record `json:"marks"`
}

func analyzeMarks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req analyzeReq
		if !decodeBody(w, r, &req) {
			return
		}
		a, err := analysis.Analyze(req.Marks)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

/* ------------------------------- Students -------------------------------- */

func createStudent(store *report.Store, b *report.Builder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sub report.Submission
		if !decodeBody(w, r, &sub) {
			return
		}
		rec, err := b.Build(sub)
		if err != nil {
			writeError(w, err)
			return
		}
		store.Append(*rec)
		w.Header().Set("Location", "/api/students/"+rec.ID)
		writeJSON(w, http.StatusCreated, rec)
	}
}

func listStudents(store *report.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.List())
	}
}

func clearStudents(store *report.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store.Clear()
		w.WriteHeader(http.StatusNoContent)
	}
}

func getStudent(store *report.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := store.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func getAnalysis(store *report.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := store.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		a, err := rec.Analyze()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

/* -------------------------------- Export --------------------------------- */

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func exportStudent(store *report.Store, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := store.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		var buf bytes.Buffer
		if err := report.WriteJSON(&buf, report.NewDocument(now(), rec)); err != nil {
			writeError(w, err)
			return
		}
		name := "reportcard-" + unsafeFileChars.ReplaceAllString(rec.RollNo, "_") + ".json"
		sendAttachment(w, "application/json", name, buf.Bytes())
	}
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func exportRoster(store *report.Store, settings report.ClassSettings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := report.WriteXLSX(&buf, store.List(), settings); err != nil {
			writeError(w, err)
			return
		}
		name := unsafeFileChars.ReplaceAllString(settings.ClassName, "_") + "-roster.xlsx"
		sendAttachment(w, xlsxContentType, name, buf.Bytes())
	}
}

func sendAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

/* ------------------------------- Helpers --------------------------------- */

// decodeBody decodes a JSON request body into v, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// writeError maps domain errors to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, marks.ErrInvalidInput), errors.Is(err, report.ErrMissingRequiredField):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, report.ErrNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("api: %v", err)
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errResp struct {
	Error string `json:"error"`
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errResp{Error: msg})
}
