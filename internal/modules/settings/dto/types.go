package dto

import (
	"time"

	"pomo/internal/platform/clock"
)

type SettingsOutput struct {
	FocusDuration  time.Duration
	BreakDuration  time.Duration
	FocusEmoji     string
	BreakEmoji     string
	WarnEmojis     []string
	StartSound     string
	EndSound       string
	WorkStart      clock.TimeOfDay
	WorkEnd        clock.TimeOfDay
	NotifierKind   string
	NotifierPlugin string
	StoreBackend   string
	LogLevel       string
	// Source is the file the settings came from, empty when defaults apply.
	Source string
}

// InitInput holds the values written by config init. Empty fields keep
// their defaults.
type InitInput struct {
	FocusDuration string
	BreakDuration string
	FocusEmoji    string
	BreakEmoji    string
	StartSound    string
	EndSound      string
	WorkStart     string
	WorkEnd       string
	Notifier      string
	Store         string
	Force         bool
}

type InitOutput struct {
	Path string
}
