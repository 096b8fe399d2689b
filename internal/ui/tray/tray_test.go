package tray_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	sessioninadapter "pomo/internal/modules/session/adapter/in"
	sessiondto "pomo/internal/modules/session/dto"
	"pomo/internal/ui/tray"
)

func TestDescribe(t *testing.T) {
	end := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	title, status := tray.Describe(sessioninadapter.Snapshot{})
	if title != "pomo" || status != "Idle" {
		t.Fatalf("idle: %q %q", title, status)
	}

	title, status = tray.Describe(sessioninadapter.Snapshot{Result: sessiondto.PollOutput{
		Status: sessiondto.StatusOutput{Type: "Focus", End: end, Label: "🍅 12m03s", OneShot: true},
	}})
	if title != "🍅 12m03s" {
		t.Fatalf("unexpected title %q", title)
	}
	if !strings.HasPrefix(status, "Focus until ") || !strings.HasSuffix(status, "(one-shot)") {
		t.Fatalf("unexpected status %q", status)
	}

	title, status = tray.Describe(sessioninadapter.Snapshot{Err: errors.New("disk full")})
	if title != "pomo ⚠" || status != "Error: disk full" {
		t.Fatalf("error: %q %q", title, status)
	}
}
