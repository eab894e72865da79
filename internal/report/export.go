package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"golang.org/x/mod/semver"
)

// FormatVersion is the semantic version of the JSON export document.
// Documents with a different major version are rejected on import.
const FormatVersion = "v1.0.0"

// Document is the downloadable JSON snapshot of one or more records.
type Document struct {
	Version    string          `json:"version"`
	ExportedAt time.Time       `json:"exported_at"`
	Students   []StudentRecord `json:"students"`
}

// NewDocument wraps recs in a Document stamped with exportedAt.
func NewDocument(exportedAt time.Time, recs ...StudentRecord) Document {
	students := make([]StudentRecord, len(recs))
	copy(students, recs)
	return Document{
		Version:    FormatVersion,
		ExportedAt: exportedAt.UTC(),
		Students:   students,
	}
}

// WriteJSON writes doc as indented JSON.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode export document: %w", err)
	}
	return nil
}

// ReadJSON parses and validates an export document. Schema violations and
// inconsistent derived fields fail with *InvalidDocumentError; a document
// from another major version fails with ErrUnsupportedVersion.
func ReadJSON(r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read export document: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &InvalidDocumentError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := validateDocument(parsed); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &InvalidDocumentError{Err: err}
	}
	if !semver.IsValid(doc.Version) || semver.Major(doc.Version) != semver.Major(FormatVersion) {
		return nil, fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedVersion, doc.Version, semver.Major(FormatVersion))
	}

	for i, rec := range doc.Students {
		if err := checkDerived(rec); err != nil {
			return nil, &InvalidDocumentError{Err: fmt.Errorf("student %d (%s): %w", i, rec.RollNo, err)}
		}
	}
	return &doc, nil
}

// checkDerived verifies the totals stored in rec agree with its marks.
func checkDerived(rec StudentRecord) error {
	if got := rec.Marks.Total(); got != rec.TotalMarks {
		return fmt.Errorf("total_marks %d does not match marks sum %d", rec.TotalMarks, got)
	}
	if got := rec.Marks.MaxPossible(); got != rec.MaxPossible {
		return fmt.Errorf("max_possible %d does not match %d subjects", rec.MaxPossible, rec.Marks.Len())
	}
	want := float64(rec.TotalMarks) / float64(rec.MaxPossible) * 100
	if math.Abs(want-rec.Percentage) > 1e-6 {
		return fmt.Errorf("percentage %.4f does not match %.4f", rec.Percentage, want)
	}
	return nil
}
