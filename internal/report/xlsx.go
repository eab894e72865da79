package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/alyansheikhh/reportcard/internal/grading"
	"github.com/alyansheikhh/reportcard/internal/marks"
)

// RosterSheet is the sheet name used for XLSX exports.
const RosterSheet = "Report Cards"

// subjectPrefix marks a header as a subject column. It is written only for
// subjects whose name would otherwise read back as a reserved column.
const subjectPrefix = "Subject: "

type columnRole int

const (
	colSubject columnRole = iota
	colName
	colRollNo
	colAttendance
	colConduct
	colRemarks
	colDate
	colComputed
)

// headerRoles maps normalised header text to its column role. Any header
// not listed here is a subject.
var headerRoles = map[string]columnRole{
	"name":            colName,
	"student name":    colName,
	"roll no":         colRollNo,
	"roll number":     colRollNo,
	"roll_no":         colRollNo,
	"attendance":      colAttendance,
	"conduct":         colConduct,
	"remarks":         colRemarks,
	"teacher remarks": colRemarks,
	"assessment date": colDate,
	"date":            colDate,
	"total":           colComputed,
	"max":             colComputed,
	"percentage":      colComputed,
	"grade":           colComputed,
	"result":          colComputed,
}

// WriteXLSX writes recs as a roster spreadsheet: one row per record, one
// column per subject in first-seen order, grade cells filled with their
// grade color and mark cells tinted by severity.
func WriteXLSX(w io.Writer, recs []StudentRecord, settings ClassSettings) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", RosterSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	subjects := subjectColumns(recs)
	header := []any{"Name", "Roll No"}
	for _, s := range subjects {
		header = append(header, subjectHeader(s))
	}
	header = append(header, "Total", "Max", "Percentage", "Grade", "Result",
		"Attendance", "Conduct", "Assessment Date", "Remarks")
	if err := f.SetSheetRow(RosterSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetCellStyle(RosterSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	styles := newFillStyles(f)
	gradeCol := len(subjects) + 6

	for i, rec := range recs {
		rowNum := i + 2
		row := []any{rec.Name, rec.RollNo}
		for _, s := range subjects {
			if m, ok := rec.Marks.Get(s); ok {
				row = append(row, m)
			} else {
				row = append(row, nil)
			}
		}
		result := "FAIL"
		if rec.Passed(settings) {
			result = "PASS"
		}
		row = append(row,
			rec.TotalMarks,
			rec.MaxPossible,
			math.Round(rec.Percentage*100)/100,
			rec.Grade.Letter,
			result,
			rec.Attendance,
			string(rec.Conduct),
			rec.AssessmentDate.Format(DateLayout),
			rec.TeacherRemarks,
		)

		start, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(RosterSheet, start, &row); err != nil {
			return fmt.Errorf("write row %d: %w", rowNum, err)
		}

		for j, s := range subjects {
			m, ok := rec.Marks.Get(s)
			if !ok {
				continue
			}
			if err := styles.apply(RosterSheet, j+3, rowNum, grading.ColorFor(float64(m))); err != nil {
				return err
			}
		}
		if err := styles.apply(RosterSheet, gradeCol, rowNum, rec.Grade.Color); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(RosterSheet, "A", "A", 24); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// subjectColumns returns the union of subjects across recs in first-seen
// order.
func subjectColumns(recs []StudentRecord) []string {
	var out []string
	seen := map[string]bool{}
	for _, rec := range recs {
		for _, s := range rec.Marks.Subjects() {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// subjectHeader returns the column header for subject s, prefixed when s
// collides with a reserved header or already carries the prefix.
func subjectHeader(s string) string {
	_, reserved := headerRoles[strings.ToLower(strings.TrimSpace(s))]
	if _, prefixed := cutSubjectPrefix(s); reserved || prefixed {
		return subjectPrefix + s
	}
	return s
}

// cutSubjectPrefix reports whether h starts with the subject prefix, ignoring
// case, and returns the subject name that follows it.
func cutSubjectPrefix(h string) (string, bool) {
	tag := strings.TrimSpace(subjectPrefix)
	h = strings.TrimSpace(h)
	if len(h) < len(tag) || !strings.EqualFold(h[:len(tag)], tag) {
		return "", false
	}
	return strings.TrimSpace(h[len(tag):]), true
}

// fillStyles caches one excelize style per fill color.
type fillStyles struct {
	f   *excelize.File
	ids map[grading.Color]int
}

func newFillStyles(f *excelize.File) *fillStyles {
	return &fillStyles{f: f, ids: map[grading.Color]int{}}
}

func (s *fillStyles) apply(sheet string, col, row int, color grading.Color) error {
	id, ok := s.ids[color]
	if !ok {
		var err error
		id, err = s.f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{
				Type:    "pattern",
				Pattern: 1,
				Color:   []string{strings.TrimPrefix(string(color), "#")},
			},
			Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		})
		if err != nil {
			return fmt.Errorf("fill style %s: %w", color, err)
		}
		s.ids[color] = id
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return s.f.SetCellStyle(sheet, cell, cell, id)
}

// ReadXLSX reads submissions from the first sheet of a roster workbook. The
// first row is the header; blank rows are skipped. Computed columns such as
// Total or Grade are ignored so an exported roster can be read back.
func ReadXLSX(r io.Reader) ([]Submission, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook does not contain any sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	roles := make([]columnRole, len(rows[0]))
	headers := make([]string, len(rows[0]))
	hasName, hasRoll := false, false
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		headers[i] = h
		if name, ok := cutSubjectPrefix(h); ok {
			headers[i] = name
			roles[i] = colSubject
			continue
		}
		role, ok := headerRoles[strings.ToLower(h)]
		if !ok {
			role = colSubject
			if h == "" {
				role = colComputed
			}
		}
		roles[i] = role
		hasName = hasName || role == colName
		hasRoll = hasRoll || role == colRollNo
	}
	if !hasName || !hasRoll {
		return nil, errors.New("header row must contain Name and Roll No columns")
	}

	var subs []Submission
	for i, row := range rows[1:] {
		rowNum := i + 2
		if blankRow(row) {
			continue
		}
		sub, err := parseRow(row, roles, headers)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

func parseRow(row []string, roles []columnRole, headers []string) (Submission, error) {
	var sub Submission
	for j, role := range roles {
		if j >= len(row) {
			break
		}
		cell := strings.TrimSpace(row[j])
		if cell == "" {
			continue
		}
		switch role {
		case colName:
			sub.Name = cell
		case colRollNo:
			sub.RollNo = cell
		case colConduct:
			sub.Conduct = cell
		case colRemarks:
			sub.TeacherRemarks = cell
		case colDate:
			sub.AssessmentDate = cell
		case colAttendance:
			n, err := strconv.Atoi(cell)
			if err != nil {
				return sub, &marks.InvalidInputError{Field: "attendance", Reason: fmt.Sprintf("%q is not an integer", cell)}
			}
			sub.Attendance = &n
		case colSubject:
			m, err := strconv.Atoi(cell)
			if err != nil {
				return sub, &marks.InvalidInputError{Field: headers[j], Reason: fmt.Sprintf("mark %q is not an integer", cell)}
			}
			sub.Marks.Set(headers[j], m)
		}
	}
	return sub, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
