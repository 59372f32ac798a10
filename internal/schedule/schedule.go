package schedule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Weekly maps a weekday name to its open/close spans. A day that maps to an
// empty slice is closed for the whole day. Spans are not validated for
// overlap; the stored order is kept.
type Weekly map[string][]Span

// Span is one open/close pair, both in "HH:MM" 24-hour form.
type Span struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

var weekdayNames = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

func dayName(d time.Weekday) string {
	switch d {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	}
	return "sunday"
}

// parseClock returns minutes since midnight for "HH:MM".
func parseClock(s string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// OpenAt reports whether the schedule has a span covering t. The open bound
// is inclusive, the close bound exclusive, so back-to-back spans do not
// double count the shared minute.
func (w Weekly) OpenAt(t time.Time) bool {
	spans, ok := w[dayName(t.Weekday())]
	if !ok || len(spans) == 0 {
		return false
	}
	now := t.Hour()*60 + t.Minute()
	for _, sp := range spans {
		open, ok1 := parseClock(sp.Open)
		closeAt, ok2 := parseClock(sp.Close)
		if !ok1 || !ok2 {
			continue
		}
		if closeAt < open {
			// Span crosses midnight, e.g. 18:00-02:00.
			if now >= open || now < closeAt {
				return true
			}
			continue
		}
		if now >= open && now < closeAt {
			return true
		}
	}
	return false
}

// HoursText renders a human-readable weekly summary, one day per line,
// weekdays in calendar order. Days missing from the map are shown as closed.
func (w Weekly) HoursText() string {
	if len(w) == 0 {
		return ""
	}
	var b strings.Builder
	for i, day := range weekdayNames {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(titleCase(day))
		b.WriteString(": ")
		spans := w[day]
		if len(spans) == 0 {
			b.WriteString("Closed")
			continue
		}
		parts := make([]string, 0, len(spans))
		for _, sp := range spans {
			parts = append(parts, fmt.Sprintf("%s-%s", sp.Open, sp.Close))
		}
		b.WriteString(strings.Join(parts, ", "))
	}
	return b.String()
}

// Normalize lowercases day keys and sorts each day's spans by opening time so
// the stored JSON is stable regardless of admin input order.
func (w Weekly) Normalize() Weekly {
	if w == nil {
		return nil
	}
	out := make(Weekly, len(w))
	for day, spans := range w {
		key := strings.ToLower(strings.TrimSpace(day))
		cp := make([]Span, len(spans))
		copy(cp, spans)
		sort.SliceStable(cp, func(i, j int) bool {
			a, _ := parseClock(cp[i].Open)
			b, _ := parseClock(cp[j].Open)
			return a < b
		})
		out[key] = cp
	}
	return out
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
