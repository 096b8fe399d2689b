package domain

import (
	"time"

	"pomo/internal/platform/clock"
)

const (
	DefaultFocusEmoji = "🍅"
	DefaultBreakEmoji = "🥂"
	DefaultSound      = "default"
)

// Preferences are the resolved configuration values the engine consumes.
// They are always complete; absence is handled when settings are loaded.
type Preferences struct {
	FocusDuration time.Duration
	BreakDuration time.Duration
	FocusEmoji    string
	BreakEmoji    string
	WarnEmojis    []string
	StartSound    string
	EndSound      string
	WorkStart     clock.TimeOfDay
	WorkEnd       clock.TimeOfDay
}

func DefaultPreferences() Preferences {
	return Preferences{
		FocusDuration: DefaultFocusDuration,
		BreakDuration: DefaultBreakDuration,
		FocusEmoji:    DefaultFocusEmoji,
		BreakEmoji:    DefaultBreakEmoji,
		WarnEmojis:    []string{"🔴", "⭕"},
		StartSound:    DefaultSound,
		EndSound:      DefaultSound,
	}
}
