package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"todo/internal/task"
)

var (
	// ErrMalformed is returned when the stored value is not a task array.
	ErrMalformed = errors.New("malformed task data")

	// ErrInvalidTask is returned when a record breaks a task invariant.
	ErrInvalidTask = errors.New("invalid task")
)

// record is the stored shape of a task.
type record struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// wireRecord detects missing fields on decode.
type wireRecord struct {
	ID        *int    `json:"id"`
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

// Encode serializes tasks as a JSON array of {id, title, completed} objects.
func Encode(tasks []task.Task) (string, error) {
	recs := make([]record, len(tasks))
	for i, t := range tasks {
		recs[i] = record{ID: t.ID(), Title: t.Title(), Completed: t.Completed()}
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return "", fmt.Errorf("encode tasks: %w", err)
	}
	return string(data), nil
}

// Decode parses a value written by Encode.
// Every object must carry exactly id, title and completed; ids must be
// non-negative and unique and titles non-empty. "null" decodes to no tasks.
func Decode(s string) ([]task.Task, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.DisallowUnknownFields()

	var recs []*wireRecord
	if err := dec.Decode(&recs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformed)
	}

	tasks := make([]task.Task, 0, len(recs))
	seen := make(map[int]bool, len(recs))
	for i, r := range recs {
		if r == nil || r.ID == nil || r.Title == nil || r.Completed == nil {
			return nil, fmt.Errorf("%w: element %d: missing field", ErrMalformed, i)
		}
		if *r.ID < 0 {
			return nil, fmt.Errorf("%w: negative id %d", ErrInvalidTask, *r.ID)
		}
		if seen[*r.ID] {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidTask, *r.ID)
		}
		if strings.TrimSpace(*r.Title) == "" {
			return nil, fmt.Errorf("%w: empty title for id %d", ErrInvalidTask, *r.ID)
		}
		seen[*r.ID] = true
		tasks = append(tasks, task.New(*r.ID, *r.Title, *r.Completed))
	}
	return tasks, nil
}

// isBlank reports whether a stored value carries no data at all.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
