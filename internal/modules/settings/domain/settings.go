package domain

import (
	"fmt"
	"time"

	"pomo/internal/platform/clock"
	"pomo/internal/platform/durfmt"
)

const (
	NotifierAuto      = "auto"
	NotifierDBus      = "dbus"
	NotifierOSAScript = "osascript"
	NotifierPlugin    = "plugin"
	NotifierNone      = "none"

	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Settings is the fully resolved configuration. Every field has a value.
type Settings struct {
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
}

func Defaults() Settings {
	return Settings{
		FocusDuration: 30 * time.Minute,
		BreakDuration: 5 * time.Minute,
		FocusEmoji:    "🍅",
		BreakEmoji:    "🥂",
		WarnEmojis:    []string{"🔴", "⭕"},
		StartSound:    "default",
		EndSound:      "default",
		NotifierKind:  NotifierAuto,
		StoreBackend:  StoreFile,
	}
}

// Resolve merges f over the defaults. Values that fail to parse keep their
// default and are reported as problems; they never make Resolve fail.
func Resolve(f File) (Settings, []error) {
	s := Defaults()
	var problems []error

	if f.Durations.Focus != "" {
		if d, err := durfmt.Parse(f.Durations.Focus); err == nil {
			s.FocusDuration = d
		} else {
			problems = append(problems, fmt.Errorf("durations.focus: %w", err))
		}
	}
	if f.Durations.Break != "" {
		if d, err := durfmt.Parse(f.Durations.Break); err == nil {
			s.BreakDuration = d
		} else {
			problems = append(problems, fmt.Errorf("durations.break: %w", err))
		}
	}

	if f.Emojis.Focus != nil {
		s.FocusEmoji = *f.Emojis.Focus
	}
	if f.Emojis.Break != nil {
		s.BreakEmoji = *f.Emojis.Break
	}
	if f.Emojis.Warn != nil {
		s.WarnEmojis = append([]string(nil), f.Emojis.Warn...)
	}
	if f.Sound.Start != "" {
		s.StartSound = f.Sound.Start
	}
	if f.Sound.End != "" {
		s.EndSound = f.Sound.End
	}

	if at, err := clock.ParseTimeOfDay(f.WorkingHours.Start); err == nil {
		s.WorkStart = at
	} else {
		problems = append(problems, fmt.Errorf("working_hours.start: %w", err))
	}
	if at, err := clock.ParseTimeOfDay(f.WorkingHours.End); err == nil {
		s.WorkEnd = at
	} else {
		problems = append(problems, fmt.Errorf("working_hours.end: %w", err))
	}

	switch f.Notifier.Backend {
	case "":
	case NotifierAuto, NotifierDBus, NotifierOSAScript, NotifierPlugin, NotifierNone:
		s.NotifierKind = f.Notifier.Backend
	default:
		problems = append(problems, fmt.Errorf("notifier.backend: unknown backend %q", f.Notifier.Backend))
	}
	s.NotifierPlugin = f.Notifier.Plugin
	if s.NotifierKind == NotifierPlugin && s.NotifierPlugin == "" {
		problems = append(problems, fmt.Errorf("notifier.plugin: required for the plugin backend"))
		s.NotifierKind = NotifierAuto
	}

	switch f.Store.Backend {
	case "":
	case StoreFile, StoreSQLite:
		s.StoreBackend = f.Store.Backend
	default:
		problems = append(problems, fmt.Errorf("store.backend: unknown backend %q", f.Store.Backend))
	}
	s.LogLevel = f.Log.Level
	return s, problems
}

// FileFrom is the inverse of Resolve for writing a config file.
func FileFrom(s Settings) File {
	focus, brk := s.FocusEmoji, s.BreakEmoji
	return File{
		Durations:    Durations{Focus: s.FocusDuration.String(), Break: s.BreakDuration.String()},
		Emojis:       Emojis{Focus: &focus, Break: &brk, Warn: append([]string(nil), s.WarnEmojis...)},
		Sound:        Sound{Start: s.StartSound, End: s.EndSound},
		WorkingHours: WorkingHours{Start: s.WorkStart.String(), End: s.WorkEnd.String()},
		Notifier:     Notifier{Backend: s.NotifierKind, Plugin: s.NotifierPlugin},
		Store:        Store{Backend: s.StoreBackend},
		Log:          Log{Level: s.LogLevel},
	}
}
