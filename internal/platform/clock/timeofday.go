package clock

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time without a date, e.g. the start of the
// working day. The zero value is unset.
type TimeOfDay struct {
	Hour   int
	Minute int
	set    bool
}

// ParseTimeOfDay accepts "9am", "9:30 am", "5:30pm" and 24h "17:00".
// An empty string yields an unset value and no error.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return TimeOfDay{}, nil
	}

	period := ""
	if strings.HasSuffix(s, "am") || strings.HasSuffix(s, "pm") {
		period = s[len(s)-2:]
		s = strings.TrimSpace(s[:len(s)-2])
	}

	hourPart, minutePart, hasMinutes := strings.Cut(s, ":")
	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("parse hour in %q: %w", raw, err)
	}
	minute := 0
	if hasMinutes {
		minute, err = strconv.Atoi(minutePart)
		if err != nil {
			return TimeOfDay{}, fmt.Errorf("parse minute in %q: %w", raw, err)
		}
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("minute out of range in %q", raw)
	}

	switch period {
	case "":
		if hour < 0 || hour > 23 {
			return TimeOfDay{}, fmt.Errorf("hour out of range in %q", raw)
		}
	default:
		if hour < 1 || hour > 12 {
			return TimeOfDay{}, fmt.Errorf("hour out of range in %q", raw)
		}
		hour %= 12
		if period == "pm" {
			hour += 12
		}
	}
	return TimeOfDay{Hour: hour, Minute: minute, set: true}, nil
}

// IsSet reports whether the value came from a non-empty input.
func (t TimeOfDay) IsSet() bool {
	return t.set
}

// On returns the instant of t on the calendar day of ref, in ref's location.
func (t TimeOfDay) On(ref time.Time) time.Time {
	y, m, d := ref.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, ref.Location())
}

func (t TimeOfDay) String() string {
	if !t.set {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}
