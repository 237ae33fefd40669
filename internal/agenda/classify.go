package agenda

import (
	"strings"
	"time"

	"github.com/nibzard/agenda/internal/todo"
)

// DateLayout is the canonical task date layout.
const DateLayout = "2006-01-02"

// ParseDate parses a task date. It accepts YYYY-MM-DD and RFC 3339
// timestamps; for timestamps only the calendar date as written is used.
// The returned time is midnight UTC of that date.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if d, err := time.Parse(DateLayout, s); err == nil {
		return d, true
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// DayOf returns the calendar date of t, read in t's location, as midnight UTC.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// BucketOf classifies a single task relative to now.
// Tasks with an empty or unparseable date are Undated.
func BucketOf(t todo.Task, now time.Time) Bucket {
	return bucketFor(t, DayOf(now))
}

// bucketFor compares calendar days; today must come from DayOf.
func bucketFor(t todo.Task, today time.Time) Bucket {
	day, ok := ParseDate(t.Date)
	if !ok {
		return Undated
	}
	tomorrow := today.AddDate(0, 0, 1)

	switch {
	case day.Before(today):
		return Overdue
	case day.Equal(today):
		return Today
	case day.Equal(tomorrow):
		return Tomorrow
	default:
		return Later
	}
}

// Classify partitions tasks into buckets relative to now.
//
// Groups come out in the fixed order Overdue, Today, Tomorrow, Later,
// Undated and empty buckets are omitted. Within a group tasks keep their
// relative input order. Every task appears in exactly one group.
func Classify(tasks []todo.Task, now time.Time, labels Labels) []Group {
	today := DayOf(now)

	var byBucket [numBuckets][]todo.Task
	for _, t := range tasks {
		b := bucketFor(t, today)
		byBucket[b] = append(byBucket[b], t)
	}

	groups := make([]Group, 0, numBuckets)
	for _, b := range Buckets {
		if len(byBucket[b]) == 0 {
			continue
		}
		groups = append(groups, Group{
			Bucket: b,
			Label:  labels.For(b),
			Tasks:  byBucket[b],
		})
	}
	return groups
}

// Classifier binds Classify to a reference clock and a label set.
type Classifier struct {
	Clock  Clock
	Labels Labels
}

// NewClassifier returns a classifier on the system clock with the default
// labels.
func NewClassifier() *Classifier {
	return &Classifier{Clock: SystemClock{}, Labels: DefaultLabels}
}

// Now returns the classifier's reference time.
func (c *Classifier) Now() time.Time {
	if c == nil || c.Clock == nil {
		return time.Now()
	}
	return c.Clock.Now()
}

// Group classifies tasks against the classifier's clock.
func (c *Classifier) Group(tasks []todo.Task) []Group {
	labels := DefaultLabels
	if c != nil && c.Labels.Name != "" {
		labels = c.Labels
	}
	return Classify(tasks, c.Now(), labels)
}
