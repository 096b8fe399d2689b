package clock_test

import (
	"testing"
	"time"

	"pomo/internal/platform/clock"
)

func TestParseTimeOfDay(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in     string
		hour   int
		minute int
	}{
		{"9am", 9, 0},
		{"9:30 AM", 9, 30},
		{"12am", 0, 0},
		{"12pm", 12, 0},
		{"5:45pm", 17, 45},
		{"17:00", 17, 0},
	}
	for _, tc := range cases {
		got, err := clock.ParseTimeOfDay(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if !got.IsSet() || got.Hour != tc.hour || got.Minute != tc.minute {
			t.Fatalf("parse %q: expected %02d:%02d, got %+v", tc.in, tc.hour, tc.minute, got)
		}
	}
}

func TestParseTimeOfDayEmptyAndInvalid(t *testing.T) {
	t.Parallel()
	empty, err := clock.ParseTimeOfDay("  ")
	if err != nil || empty.IsSet() {
		t.Fatalf("empty input should be unset without error, got %+v %v", empty, err)
	}
	for _, in := range []string{"13pm", "25:00", "9:75", "noon", "0am"} {
		if _, err := clock.ParseTimeOfDay(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestTimeOfDayOnKeepsDateAndLocation(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("test", 2*60*60)
	ref := time.Date(2026, 3, 4, 22, 10, 5, 0, loc)
	tod, err := clock.ParseTimeOfDay("8:15am")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := tod.On(ref)
	want := time.Date(2026, 3, 4, 8, 15, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
