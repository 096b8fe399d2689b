package domain_test

import (
	"testing"
	"time"

	"pomo/internal/modules/settings/domain"
)

func strPtr(s string) *string { return &s }

func TestResolveEmptyFileYieldsDefaults(t *testing.T) {
	t.Parallel()
	got, problems := domain.Resolve(domain.File{})
	if len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}
	want := domain.Defaults()
	if got.FocusDuration != want.FocusDuration || got.BreakDuration != want.BreakDuration {
		t.Fatalf("unexpected durations: %s / %s", got.FocusDuration, got.BreakDuration)
	}
	if got.FocusEmoji != "🍅" || got.BreakEmoji != "🥂" || len(got.WarnEmojis) != 2 {
		t.Fatalf("unexpected emojis: %+v", got)
	}
	if got.StartSound != "default" || got.EndSound != "default" || got.WorkStart.IsSet() || got.WorkEnd.IsSet() {
		t.Fatalf("unexpected defaults: %+v", got)
	}
}

func TestResolveOverridesAndFallbacks(t *testing.T) {
	t.Parallel()
	got, problems := domain.Resolve(domain.File{
		Durations:    domain.Durations{Focus: "50m", Break: "forever"},
		Emojis:       domain.Emojis{Focus: strPtr(""), Warn: []string{}},
		Sound:        domain.Sound{End: "Glass"},
		WorkingHours: domain.WorkingHours{Start: "9am", End: "25:00"},
		Notifier:     domain.Notifier{Backend: "plugin"},
		Store:        domain.Store{Backend: "sqlite"},
	})
	if got.FocusDuration != 50*time.Minute {
		t.Fatalf("expected 50m focus, got %s", got.FocusDuration)
	}
	if got.BreakDuration != 5*time.Minute {
		t.Fatalf("invalid break must fall back to default, got %s", got.BreakDuration)
	}
	if got.FocusEmoji != "" || got.BreakEmoji != "🥂" || len(got.WarnEmojis) != 0 {
		t.Fatalf("unexpected emojis: %+v", got)
	}
	if got.StartSound != "default" || got.EndSound != "Glass" {
		t.Fatalf("unexpected sounds: %+v", got)
	}
	if !got.WorkStart.IsSet() || got.WorkStart.Hour != 9 || got.WorkEnd.IsSet() {
		t.Fatalf("unexpected working hours: %+v / %+v", got.WorkStart, got.WorkEnd)
	}
	if got.NotifierKind != domain.NotifierAuto || got.StoreBackend != domain.StoreSQLite {
		t.Fatalf("unexpected backends: %q / %q", got.NotifierKind, got.StoreBackend)
	}
	if len(problems) != 3 {
		t.Fatalf("expected 3 problems, got %d: %v", len(problems), problems)
	}
}

func TestFileFromRoundTrip(t *testing.T) {
	t.Parallel()
	settings := domain.Defaults()
	settings.FocusDuration = 45 * time.Minute
	settings.EndSound = "Hero"
	got, problems := domain.Resolve(domain.FileFrom(settings))
	if len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}
	if got.FocusDuration != 45*time.Minute || got.EndSound != "Hero" || got.FocusEmoji != "🍅" {
		t.Fatalf("unexpected settings after round trip: %+v", got)
	}
}
