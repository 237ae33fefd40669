// Package agenda groups tasks into the due-date buckets shown by the list
// view and formats dates and times for display.
//
// Buckets are never stored. They are derived from a task's date and a
// reference time on every read, so the same tasks regroup as the clock
// moves past midnight.
package agenda

import (
	"fmt"

	"github.com/nibzard/agenda/internal/todo"
	"github.com/nibzard/agenda/internal/utils"
)

// Bucket is the due-date group a task falls into relative to a reference day.
type Bucket int

// Buckets in display order.
const (
	Overdue Bucket = iota
	Today
	Tomorrow
	Later
	Undated
)

const numBuckets = int(Undated) + 1

// Buckets lists every bucket in display order.
var Buckets = []Bucket{Overdue, Today, Tomorrow, Later, Undated}

func (b Bucket) String() string {
	switch b {
	case Overdue:
		return "overdue"
	case Today:
		return "today"
	case Tomorrow:
		return "tomorrow"
	case Later:
		return "later"
	case Undated:
		return "undated"
	default:
		return fmt.Sprintf("bucket(%d)", int(b))
	}
}

// MarshalText encodes the bucket by name.
func (b Bucket) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// Group is one non-empty bucket with its tasks in store order.
type Group struct {
	Bucket Bucket      `json:"bucket"`
	Label  string      `json:"label"`
	Tasks  []todo.Task `json:"tasks"`
}

// Labels holds the user-facing strings of one language.
type Labels struct {
	Name string

	Overdue  string
	Today    string
	Tomorrow string
	Later    string
	Undated  string

	// NoDate is shown in a row subtitle when the task has no date.
	NoDate string
	// NameRequired is shown when a form is saved with an empty name.
	NameRequired string
}

// SpanishLabels are the default labels.
var SpanishLabels = Labels{
	Name:         "es",
	Overdue:      "Atrasadas",
	Today:        "Hoy",
	Tomorrow:     "Mañana",
	Later:        "Mas tarde",
	Undated:      "Sin fecha",
	NoDate:       "Sin Fecha",
	NameRequired: "El nombre de la tarea es obligatorio",
}

// EnglishLabels are selected with labels = "en".
var EnglishLabels = Labels{
	Name:         "en",
	Overdue:      "Overdue",
	Today:        "Today",
	Tomorrow:     "Tomorrow",
	Later:        "Later",
	Undated:      "No date",
	NoDate:       "No date",
	NameRequired: "Task name is required",
}

// DefaultLabels is the label set used when none is configured.
var DefaultLabels = SpanishLabels

// LabelSetNames lists the accepted label set names.
var LabelSetNames = []string{"es", "en"}

// LabelsFor returns the label set with the given name.
// Empty selects DefaultLabels.
func LabelsFor(name string) (Labels, error) {
	switch utils.NormalizeName(name) {
	case "", "es":
		return SpanishLabels, nil
	case "en":
		return EnglishLabels, nil
	default:
		return Labels{}, fmt.Errorf("unknown label set %q (valid: es, en)", name)
	}
}

// For returns the heading of bucket b.
func (l Labels) For(b Bucket) string {
	switch b {
	case Overdue:
		return l.Overdue
	case Today:
		return l.Today
	case Tomorrow:
		return l.Tomorrow
	case Later:
		return l.Later
	default:
		return l.Undated
	}
}
