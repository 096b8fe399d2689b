package bootstrap_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pomo/internal/bootstrap"
	"pomo/internal/platform/clock"
)

func newApp(t *testing.T, opts bootstrap.Options) *bootstrap.App {
	t.Helper()
	if opts.Dir == "" {
		opts.Dir = t.TempDir()
	}
	opts.LogOutput = io.Discard
	opts.Clock = clock.FixedClock{At: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	if opts.GOOS == "" {
		opts.GOOS = "plan9"
	}
	app, err := bootstrap.New(context.Background(), opts)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	t.Cleanup(func() {
		if err := app.Close(context.Background()); err != nil {
			t.Fatalf("close app: %v", err)
		}
	})
	return app
}

func TestNewWiresFileStoreByDefault(t *testing.T) {
	dir := t.TempDir()
	app := newApp(t, bootstrap.Options{Dir: dir})
	ctx := context.Background()

	out, err := app.SessionCLI.Focus(ctx, "", false, false)
	if err != nil {
		t.Fatalf("focus: %v", err)
	}
	if out.Type != "Focus" || out.End.Sub(out.Start) != 30*time.Minute {
		t.Fatalf("unexpected session: %+v", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "status.json")); err != nil {
		t.Fatalf("status file not written: %v", err)
	}
	line, err := app.SessionCLI.Line(ctx, true, false)
	if err != nil {
		t.Fatalf("line: %v", err)
	}
	if line != "30m00s" {
		t.Fatalf("unexpected line %q", line)
	}
}

func TestNewUsesSQLiteFromConfig(t *testing.T) {
	dir := t.TempDir()
	config := "store:\n  backend: sqlite\ndurations:\n  focus: 25m\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(config), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	app := newApp(t, bootstrap.Options{Dir: dir})

	out, err := app.SessionCLI.Focus(context.Background(), "", false, false)
	if err != nil {
		t.Fatalf("focus: %v", err)
	}
	if out.End.Sub(out.Start) != 25*time.Minute {
		t.Fatalf("configured focus duration not applied: %+v", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "pomo.db")); err != nil {
		t.Fatalf("sqlite database not created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "status.json")); !os.IsNotExist(err) {
		t.Fatalf("file store should be unused, stat err=%v", err)
	}
}

func TestEphemeralLeavesNoStatusFile(t *testing.T) {
	dir := t.TempDir()
	app := newApp(t, bootstrap.Options{Dir: dir, Ephemeral: true})

	if _, err := app.SessionCLI.Break(context.Background(), "2m", false, false); err != nil {
		t.Fatalf("break: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "status.json")); !os.IsNotExist(err) {
		t.Fatalf("ephemeral run wrote a status file, stat err=%v", err)
	}
}

func TestNotifierFallsBackToNone(t *testing.T) {
	app := newApp(t, bootstrap.Options{})
	backend := app.NotifyCLI.Backend()
	if backend.Configured != "auto" || backend.Resolved != "none" || backend.Sink != "none" {
		t.Fatalf("unexpected backend: %+v", backend)
	}
}

func TestMissingNotifierPluginDegrades(t *testing.T) {
	dir := t.TempDir()
	config := "notifier:\n  backend: plugin\n  plugin: ghost\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(config), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	app := newApp(t, bootstrap.Options{Dir: dir})
	backend := app.NotifyCLI.Backend()
	if backend.Resolved != "plugin" || backend.Sink != "none" {
		t.Fatalf("unexpected backend: %+v", backend)
	}
}

func TestTrayActionsPublishFreshSnapshot(t *testing.T) {
	app := newApp(t, bootstrap.Options{Ephemeral: true})
	ctx := context.Background()
	snapshots := app.Poller.Subscribe(4)
	callbacks := bootstrap.TrayCallbacks(ctx, app)

	steps := []struct {
		name string
		run  func()
		want string
	}{
		{"focus", callbacks.OnFocus, "Focus"},
		{"break", callbacks.OnBreak, "Break"},
		{"stop", callbacks.OnStop, "Idle"},
	}
	for _, step := range steps {
		step.run()
		select {
		case snapshot := <-snapshots:
			if snapshot.Err != nil || snapshot.Result.Status.Type != step.want {
				t.Fatalf("%s: unexpected snapshot %+v", step.name, snapshot)
			}
		default:
			t.Fatalf("%s: no snapshot published", step.name)
		}
	}
}
