package marks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	MinMark = 0
	MaxMark = 100

	// MaxSubjects is the most subjects a single report card may carry.
	MaxSubjects = 10
)

// Entry is one subject and its mark.
type Entry struct {
	Subject string `json:"subject"`
	Mark    int    `json:"mark"`
}

// Record is an insertion-ordered mapping from subject name to mark.
// The zero value is an empty record ready to use.
//
// Set never writes through to the backing array of a copy, so a Record held
// by a value (e.g. inside a student record) is not affected by later Set
// calls on another copy.
type Record struct {
	entries []Entry
}

// FromEntries builds a Record from entries in order. A repeated subject
// overwrites the earlier mark but keeps its original position.
func FromEntries(entries ...Entry) Record {
	var r Record
	for _, e := range entries {
		r.Set(e.Subject, e.Mark)
	}
	return r
}

// Set assigns mark to subject, appending the subject if it is new.
func (r *Record) Set(subject string, mark int) {
	entries := slices.Clone(r.entries)
	for i := range entries {
		if entries[i].Subject == subject {
			entries[i].Mark = mark
			r.entries = entries
			return
		}
	}
	r.entries = append(entries, Entry{Subject: subject, Mark: mark})
}

// Get returns the mark for subject.
func (r Record) Get(subject string) (int, bool) {
	for _, e := range r.entries {
		if e.Subject == subject {
			return e.Mark, true
		}
	}
	return 0, false
}

// Len returns the number of subjects.
func (r Record) Len() int {
	return len(r.entries)
}

// Entries returns a copy of the entries in insertion order.
func (r Record) Entries() []Entry {
	return slices.Clone(r.entries)
}

// Subjects returns subject names in insertion order.
func (r Record) Subjects() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Subject
	}
	return out
}

// Values returns marks in insertion order.
func (r Record) Values() []int {
	out := make([]int, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Mark
	}
	return out
}

// Total returns the sum of all marks.
func (r Record) Total() int {
	total := 0
	for _, e := range r.entries {
		total += e.Mark
	}
	return total
}

// MaxPossible returns the maximum attainable total (100 per subject).
func (r Record) MaxPossible() int {
	return MaxMark * len(r.entries)
}

// Validate checks that the record holds 1 to MaxSubjects subjects, every
// subject is named and every mark lies in [MinMark, MaxMark].
func (r Record) Validate() error {
	if len(r.entries) == 0 {
		return invalid("marks", "at least one subject is required")
	}
	if len(r.entries) > MaxSubjects {
		return invalid("marks", "%d subjects exceeds the limit of %d", len(r.entries), MaxSubjects)
	}
	for _, e := range r.entries {
		if strings.TrimSpace(e.Subject) == "" {
			return invalid("marks", "subject name must not be empty")
		}
		if e.Mark < MinMark || e.Mark > MaxMark {
			return invalid(e.Subject, "mark %d outside [%d, %d]", e.Mark, MinMark, MaxMark)
		}
	}
	return nil
}

// MarshalJSON encodes the record as a JSON object whose keys keep
// insertion order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Subject)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(e.Mark))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving key order. Duplicate
// subjects and non-integer marks are rejected, and decoding stops with
// ErrInvalidInput once the object holds more than MaxSubjects keys.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode marks: %w", err)
	}
	if tok == nil {
		r.entries = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("decode marks: expected object, got %v", tok)
	}

	var entries []Entry
	seen := make(map[string]struct{})
	for dec.More() {
		if len(entries) == MaxSubjects {
			return invalid("marks", "more than %d subjects", MaxSubjects)
		}
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode marks: %w", err)
		}
		subject, ok := tok.(string)
		if !ok {
			return fmt.Errorf("decode marks: expected subject name, got %v", tok)
		}
		var mark int
		if err := dec.Decode(&mark); err != nil {
			return fmt.Errorf("decode marks: subject %q: %w", subject, err)
		}
		if _, dup := seen[subject]; dup {
			return fmt.Errorf("decode marks: duplicate subject %q", subject)
		}
		seen[subject] = struct{}{}
		entries = append(entries, Entry{Subject: subject, Mark: mark})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode marks: %w", err)
	}

	r.entries = entries
	return nil
}

// ParseEntry parses a "Subject=Mark" pair as given on the command line.
func ParseEntry(s string) (Entry, error) {
	subject, value, ok := strings.Cut(s, "=")
	if !ok {
		return Entry{}, invalid("marks", "%q is not in Subject=Mark form", s)
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return Entry{}, invalid("marks", "subject name must not be empty in %q", s)
	}
	mark, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return Entry{}, invalid(subject, "mark %q is not an integer", value)
	}
	return Entry{Subject: subject, Mark: mark}, nil
}
