package durfmt

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	apperrors "pomo/internal/platform/errors"
)

var unitAliases = strings.NewReplacer(
	"hours", "h", "hour", "h", "hrs", "h", "hr", "h",
	"minutes", "m", "minute", "m", "mins", "m", "min", "m",
	"seconds", "s", "second", "s", "secs", "s", "sec", "s",
)

// Parse reads human durations such as "25m", "1h 30m" or "90 seconds".
// Negative and zero spans are rejected.
func Parse(raw string) (time.Duration, error) {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToLower(raw))
	if compact == "" {
		return 0, fmt.Errorf("%w: empty", apperrors.ErrInvalidDuration)
	}
	d, err := time.ParseDuration(unitAliases.Replace(compact))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", apperrors.ErrInvalidDuration, raw)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q must be positive", apperrors.ErrInvalidDuration, raw)
	}
	return d, nil
}
