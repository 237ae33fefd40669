package agenda

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nibzard/agenda/internal/todo"
)

// FormatTime converts a 24-hour "HH:MM" time to "H:MM AM" or "H:MM PM".
// Hours 0 and 12 display as 12. An empty input returns "" and input that
// does not parse is returned unchanged.
func FormatTime(hhmm string) string {
	s := strings.TrimSpace(hhmm)
	if s == "" {
		return ""
	}
	h, m, ok := parseClock(s)
	if !ok {
		return hhmm
	}

	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, m, suffix)
}

// ParseClock reports whether s is a valid 24-hour "H:MM" or "HH:MM" time and
// returns it in canonical "HH:MM" form.
func ParseClock(s string) (string, bool) {
	h, m, ok := parseClock(strings.TrimSpace(s))
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", h, m), true
}

func parseClock(s string) (int, int, bool) {
	hs, ms, found := strings.Cut(s, ":")
	if !found || len(hs) == 0 || len(hs) > 2 || len(ms) != 2 || !allDigits(hs) || !allDigits(ms) {
		return 0, 0, false
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(ms)
	if err != nil || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// allDigits rejects the signs strconv.Atoi would accept.
func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FormatDate returns the task date, or noDate when it is blank.
func FormatDate(date, noDate string) string {
	if strings.TrimSpace(date) == "" {
		return noDate
	}
	return date
}

// TaskSubtitle renders the secondary line of a list row: the date (or the
// no-date label) followed by " - " and the 12-hour time when a time is set.
func TaskSubtitle(t todo.Task, labels Labels) string {
	sub := FormatDate(t.Date, labels.NoDate)
	if tm := FormatTime(t.Time); tm != "" {
		sub += " - " + tm
	}
	return sub
}
