package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	settingsout "pomo/internal/modules/settings/adapter/out"
	settingsdto "pomo/internal/modules/settings/dto"
	settingsin "pomo/internal/modules/settings/port/in"
	"pomo/internal/modules/settings/service"
	"pomo/internal/modules/settings/usecase"
	apperrors "pomo/internal/platform/errors"
)

func newUsecase(t *testing.T) (settingsin.Usecase, string, string) {
	t.Helper()
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "config.yaml")
	jsonPath := filepath.Join(dir, "config.json")
	store := settingsout.NewYAMLFileStore(yamlPath, jsonPath)
	return usecase.NewInteractor(service.NewSettingsService(store, nil), store), yamlPath, jsonPath
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestCurrentUsesDefaultsWithoutFile(t *testing.T) {
	t.Parallel()
	uc, _, _ := newUsecase(t)
	got := uc.Current(context.Background())
	if got.FocusDuration != 30*time.Minute || got.BreakDuration != 5*time.Minute || got.Source != "" {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestCurrentReadsLegacyJSON(t *testing.T) {
	t.Parallel()
	uc, _, jsonPath := newUsecase(t)
	writeFile(t, jsonPath, `{
  "durations": {"focus": "25m", "break": "10m"},
  "emojis": {"focus": "🐢", "warn": ["!"]},
  "sound": {"start": "Ping", "end": "Glass"},
  "working_hours": {"start": "9am", "end": "5:30pm"}
}`)
	got := uc.Current(context.Background())
	if got.FocusDuration != 25*time.Minute || got.BreakDuration != 10*time.Minute {
		t.Fatalf("unexpected durations: %+v", got)
	}
	if got.FocusEmoji != "🐢" || got.BreakEmoji != "🥂" || len(got.WarnEmojis) != 1 || got.WarnEmojis[0] != "!" {
		t.Fatalf("unexpected emojis: %+v", got)
	}
	if got.StartSound != "Ping" || got.EndSound != "Glass" {
		t.Fatalf("unexpected sounds: %+v", got)
	}
	if got.WorkEnd.Hour != 17 || got.WorkEnd.Minute != 30 || got.Source != jsonPath {
		t.Fatalf("unexpected working hours or source: %+v", got)
	}
}

func TestYAMLTakesPrecedenceAndReloadPicksUpChanges(t *testing.T) {
	t.Parallel()
	uc, yamlPath, jsonPath := newUsecase(t)
	writeFile(t, jsonPath, `{"durations": {"focus": "25m"}}`)
	writeFile(t, yamlPath, "durations:\n  focus: 40m\n")
	ctx := context.Background()
	if got := uc.Current(ctx).FocusDuration; got != 40*time.Minute {
		t.Fatalf("expected yaml value, got %s", got)
	}

	writeFile(t, yamlPath, "durations:\n  focus: 50m\n")
	if got := uc.Current(ctx).FocusDuration; got != 40*time.Minute {
		t.Fatalf("expected cached value before reload, got %s", got)
	}
	if err := uc.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := uc.Current(ctx).FocusDuration; got != 50*time.Minute {
		t.Fatalf("expected reloaded value, got %s", got)
	}
}

func TestMalformedConfigFallsBackToDefaults(t *testing.T) {
	t.Parallel()
	uc, yamlPath, _ := newUsecase(t)
	writeFile(t, yamlPath, "durations: [unclosed\n")
	if err := uc.Reload(context.Background()); err == nil {
		t.Fatalf("expected reload to report the decode error")
	}
	if got := uc.Current(context.Background()); got.FocusDuration != 30*time.Minute {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestInitWritesConfigAndRefusesOverwrite(t *testing.T) {
	t.Parallel()
	uc, yamlPath, _ := newUsecase(t)
	ctx := context.Background()

	out, err := uc.Init(ctx, settingsdto.InitInput{FocusDuration: "45m", WorkStart: "8:30am", Notifier: "none"})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if out.Path != yamlPath {
		t.Fatalf("expected %s, got %s", yamlPath, out.Path)
	}
	got := uc.Current(ctx)
	if got.FocusDuration != 45*time.Minute || got.WorkStart.Hour != 8 || got.NotifierKind != "none" {
		t.Fatalf("unexpected settings after init: %+v", got)
	}

	if _, err := uc.Init(ctx, settingsdto.InitInput{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected refusal without force, got %v", err)
	}
	if _, err := uc.Init(ctx, settingsdto.InitInput{Force: true, BreakDuration: "nope"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for bad duration, got %v", err)
	}
	if _, err := uc.Init(ctx, settingsdto.InitInput{Force: true}); err != nil {
		t.Fatalf("forced init: %v", err)
	}
}

func TestRenderShowsResolvedSettings(t *testing.T) {
	t.Parallel()
	uc, yamlPath, _ := newUsecase(t)
	writeFile(t, yamlPath, "sound:\n  end: Hero\n")
	payload, err := uc.Render(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	text := string(payload)
	for _, want := range []string{"end: Hero", "focus: 30m0s", "backend: auto"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in rendered settings:\n%s", want, text)
		}
	}
}
