package todo

import (
	"errors"
	"fmt"
	"strings"
)

// Task is a single to-do item.
type Task struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"` // YYYY-MM-DD, empty when undated
	Time        string `json:"time,omitempty"` // HH:MM, 24-hour
	Completed   bool   `json:"completed"`
}

// IsZero returns true if the task is empty (has no ID).
func (t *Task) IsZero() bool {
	return t.ID == ""
}

// HasDate reports whether the task carries a non-blank date.
func (t *Task) HasDate() bool {
	return strings.TrimSpace(t.Date) != ""
}

// Draft is the caller-supplied part of a task. The store assigns ID and
// Completed.
type Draft struct {
	Name        string
	Description string
	Date        string
	Time        string
}

// DraftOf returns the editable fields of t.
func DraftOf(t Task) Draft {
	return Draft{
		Name:        t.Name,
		Description: t.Description,
		Date:        t.Date,
		Time:        t.Time,
	}
}

var (
	// ErrNotFound is returned when an operation references an unknown task id.
	ErrNotFound = errors.New("task not found")
	// ErrNameRequired is returned when a draft has an empty or blank name.
	ErrNameRequired = errors.New("task name is required")
)

// NotFoundError reports the id that could not be found.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %q not found", e.ID)
}

// Unwrap returns ErrNotFound so callers can use errors.Is.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // field or JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateDraft checks a draft before it is handed to Add or Edit.
// A non-nil error means the caller must not mutate the store.
func ValidateDraft(d Draft) error {
	if strings.TrimSpace(d.Name) == "" {
		return &ValidationError{Path: "name", Err: ErrNameRequired}
	}
	return nil
}

// IsValidationError reports whether err is (or wraps) a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
