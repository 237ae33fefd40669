package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nibzard/agenda/internal/agenda"
)

// DateInput turns what the user entered for a date into a canonical
// YYYY-MM-DD value. An empty result means the task is undated.
type DateInput interface {
	Parse(raw string) (string, error)
	Placeholder() string
}

// TimeInput turns what the user entered for a time into a canonical 24-hour
// HH:MM value. An empty result means no time.
type TimeInput interface {
	Parse(raw string) (string, error)
	Placeholder() string
}

var (
	// ErrInvalidDate is returned by TextDateInput for input it cannot read.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidTime is returned by TextTimeInput for input it cannot read.
	ErrInvalidTime = errors.New("invalid time")
)

// TextDateInput reads dates typed into a text field.
type TextDateInput struct{}

// Parse accepts YYYY-MM-DD or an RFC 3339 timestamp.
func (TextDateInput) Parse(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	d, ok := agenda.ParseDate(raw)
	if !ok {
		return "", fmt.Errorf("%w %q (use YYYY-MM-DD)", ErrInvalidDate, raw)
	}
	return d.Format(agenda.DateLayout), nil
}

// Placeholder returns the expected format.
func (TextDateInput) Placeholder() string { return "YYYY-MM-DD" }

// TextTimeInput reads times typed into a text field.
type TextTimeInput struct{}

// Parse accepts H:MM or HH:MM on a 24-hour clock.
func (TextTimeInput) Parse(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	hhmm, ok := agenda.ParseClock(raw)
	if !ok {
		return "", fmt.Errorf("%w %q (use HH:MM, 24h)", ErrInvalidTime, raw)
	}
	return hhmm, nil
}

// Placeholder returns the expected format.
func (TextTimeInput) Placeholder() string { return "HH:MM" }
