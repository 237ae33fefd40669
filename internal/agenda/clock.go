package agenda

import (
	"fmt"
	"strings"
	"time"
)

// Clock supplies the reference time used to classify tasks.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock time.Time

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return time.Time(c) }

// ParseNow parses a reference time override. It accepts YYYY-MM-DD, which
// is read as midnight in loc, and RFC 3339 timestamps, which are converted
// to loc. An empty string returns a nil Clock and no error.
func ParseNow(s string, loc *time.Location) (Clock, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.Local
	}
	if d, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return FixedClock(d), nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return FixedClock(ts.In(loc)), nil
	}
	return nil, fmt.Errorf("invalid reference time %q (want YYYY-MM-DD or RFC 3339)", s)
}

// ClockFor returns ParseNow's clock, or SystemClock when s is empty.
func ClockFor(s string) (Clock, error) {
	c, err := ParseNow(s, time.Local)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return SystemClock{}, nil
	}
	return c, nil
}
