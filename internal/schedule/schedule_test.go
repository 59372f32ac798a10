package schedule

import (
	"testing"
	"time"
)

// monday returns a fixed Monday at the given clock time.
func monday(hour, min int) time.Time {
	return time.Date(2026, 8, 31, hour, min, 0, 0, time.UTC)
}

func TestOpenAt(t *testing.T) {
	w := Weekly{
		"monday":   {{Open: "09:00", Close: "18:00"}},
		"saturday": {{Open: "10:00", Close: "14:00"}, {Open: "16:00", Close: "20:00"}},
		"sunday":   {},
	}

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"before opening", monday(8, 59), false},
		{"opening minute is open", monday(9, 0), true},
		{"midday", monday(12, 30), true},
		{"closing minute is closed", monday(18, 0), false},
		{"day not in map", monday(12, 0).AddDate(0, 0, 1), false}, // tuesday
		{"second span", monday(17, 0).AddDate(0, 0, 5), true},    // saturday
		{"gap between spans", monday(15, 0).AddDate(0, 0, 5), false},
		{"empty span list means closed", monday(12, 0).AddDate(0, 0, 6), false}, // sunday
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.OpenAt(tc.at); got != tc.want {
				t.Fatalf("expected %v got %v", tc.want, got)
			}
		})
	}
}

func TestOpenAtCrossesMidnight(t *testing.T) {
	w := Weekly{
		"monday": {{Open: "18:00", Close: "02:00"}},
	}

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"evening", monday(23, 0), true},
		{"after midnight same day key", monday(1, 30), true},
		{"afternoon", monday(15, 0), false},
		{"exactly at close", monday(2, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.OpenAt(tc.at); got != tc.want {
				t.Fatalf("expected %v got %v", tc.want, got)
			}
		})
	}
}

func TestHoursText(t *testing.T) {
	w := Weekly{
		"monday": {{Open: "09:00", Close: "18:00"}},
		"friday": {{Open: "09:00", Close: "13:00"}, {Open: "15:00", Close: "19:00"}},
	}

	got := w.HoursText()
	want := "Monday: 09:00-18:00\n" +
		"Tuesday: Closed\n" +
		"Wednesday: Closed\n" +
		"Thursday: Closed\n" +
		"Friday: 09:00-13:00, 15:00-19:00\n" +
		"Saturday: Closed\n" +
		"Sunday: Closed"
	if got != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, got)
	}

	if (Weekly{}).HoursText() != "" {
		t.Fatalf("expected empty summary for empty schedule")
	}
}

func TestNormalize(t *testing.T) {
	w := Weekly{
		" Monday ": {{Open: "15:00", Close: "19:00"}, {Open: "09:00", Close: "13:00"}},
	}

	got := w.Normalize()
	spans, ok := got["monday"]
	if !ok {
		t.Fatalf("expected lowercased trimmed day key")
	}
	if len(spans) != 2 || spans[0].Open != "09:00" || spans[1].Open != "15:00" {
		t.Fatalf("expected spans sorted by opening time, got %+v", spans)
	}

	if Weekly(nil).Normalize() != nil {
		t.Fatalf("expected nil schedule to stay nil")
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"noon", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := parseClock(tc.in)
			if ok != tc.wantOK || got != tc.want {
				t.Fatalf("expected (%d, %v) got (%d, %v)", tc.want, tc.wantOK, got, ok)
			}
		})
	}
}
