package durfmt_test

import (
	"testing"
	"time"

	"pomo/internal/platform/durfmt"
)

func TestFormat(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   time.Duration
		want string
	}{
		{3725 * time.Second, "1h02m"},
		{125 * time.Second, "2m05s"},
		{9 * time.Second, " 9s"},
		{-40 * time.Second, "-40s"},
		{-5 * time.Second, "-5s"},
		{0, " 0s"},
		{-500 * time.Millisecond, " 0s"},
		{59*time.Second + 900*time.Millisecond, "59s"},
		{time.Minute, "1m00s"},
		{-(2*time.Hour + 5*time.Minute + 30*time.Second), "-2h05m"},
		{-(3*time.Minute + 7*time.Second), "-3m07s"},
		{30 * time.Minute, "30m00s"},
	}
	for _, tc := range cases {
		if got := durfmt.Format(tc.in); got != tc.want {
			t.Fatalf("format %s: expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
