package domain

import (
	"time"

	"pomo/internal/platform/durfmt"
)

// Label renders the status line for r: emoji and remaining time, or an empty
// string for Idle. Past the end, the emoji cycles through the warn list once
// per second so the label blinks in a status bar.
func Label(r Record, prefs Preferences, now time.Time, withEmoji bool) string {
	if r.IsIdle() {
		return ""
	}
	remaining := r.Remaining(now)
	formatted := durfmt.Format(remaining)
	if !withEmoji {
		return formatted
	}
	emoji := labelEmoji(r, prefs, remaining)
	if emoji == "" {
		return formatted
	}
	return emoji + " " + formatted
}

func labelEmoji(r Record, prefs Preferences, remaining time.Duration) string {
	seconds := int64(remaining / time.Second)
	if seconds <= 0 {
		if len(prefs.WarnEmojis) == 0 {
			return ""
		}
		if seconds < 0 {
			seconds = -seconds
		}
		return prefs.WarnEmojis[seconds%int64(len(prefs.WarnEmojis))]
	}
	switch r.Type {
	case TypeFocus:
		return prefs.FocusEmoji
	case TypeBreak:
		return prefs.BreakEmoji
	}
	return ""
}
