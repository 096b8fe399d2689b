package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	sessiondto "pomo/internal/modules/session/dto"
)

type call struct {
	verb     string
	duration string
	oneShot  bool
	notify   bool
}

type fakeSession struct {
	calls []call
	poll  sessiondto.PollOutput
	err   error
}

func (f *fakeSession) Poll(context.Context, bool, bool) (sessiondto.PollOutput, error) {
	return f.poll, f.err
}

func (f *fakeSession) record(verb, duration string, oneShot, notify bool) (sessiondto.StatusOutput, error) {
	f.calls = append(f.calls, call{verb: verb, duration: duration, oneShot: oneShot, notify: notify})
	return sessiondto.StatusOutput{Type: "Focus"}, f.err
}

func (f *fakeSession) Focus(_ context.Context, d string, oneShot, notify bool) (sessiondto.StatusOutput, error) {
	return f.record("focus", d, oneShot, notify)
}

func (f *fakeSession) Break(_ context.Context, d string, oneShot, notify bool) (sessiondto.StatusOutput, error) {
	return f.record("break", d, oneShot, notify)
}

func (f *fakeSession) Toggle(_ context.Context, d string, oneShot, notify bool) (sessiondto.StatusOutput, error) {
	return f.record("toggle", d, oneShot, notify)
}

func (f *fakeSession) Stop(_ context.Context, notify bool) (sessiondto.StatusOutput, error) {
	return f.record("stop", "", false, notify)
}

func (f *fakeSession) Duration(_ context.Context, d string) (sessiondto.StatusOutput, error) {
	return f.record("duration", d, false, false)
}

func keyPress(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func TestKeysDispatchSessionIntents(t *testing.T) {
	cases := map[string]string{"f": "focus", "b": "break", "t": "toggle", "s": "stop"}
	for press, verb := range cases {
		t.Run(press, func(t *testing.T) {
			session := &fakeSession{}
			model := NewModel(session, Options{Notify: true})

			_, cmd := model.Update(keyPress(press))
			if cmd == nil {
				t.Fatalf("expected command for %q", press)
			}
			msg, ok := cmd().(actionMsg)
			if !ok {
				t.Fatalf("expected actionMsg, got %T", cmd())
			}
			if msg.err != nil {
				t.Fatalf("action failed: %v", msg.err)
			}
			if len(session.calls) != 1 || session.calls[0].verb != verb || !session.calls[0].notify {
				t.Fatalf("unexpected calls: %+v", session.calls)
			}
		})
	}
}

func TestPaletteParsesDurationAndOneShot(t *testing.T) {
	session := &fakeSession{}
	model := NewModel(session, Options{})

	_, cmd := model.executePalette("focus 25m --one-shot")
	cmd()
	_, cmd = model.executePalette("duration 10m")
	cmd()

	want := []call{
		{verb: "focus", duration: "25m", oneShot: true},
		{verb: "duration", duration: "10m"},
	}
	if len(session.calls) != len(want) {
		t.Fatalf("unexpected calls: %+v", session.calls)
	}
	for i := range want {
		if session.calls[i] != want[i] {
			t.Fatalf("call %d = %+v, want %+v", i, session.calls[i], want[i])
		}
	}
}

func TestPaletteRejectsUnknownAndIncomplete(t *testing.T) {
	model := NewModel(&fakeSession{}, Options{})

	next, cmd := model.executePalette("nap")
	if cmd != nil || next.(Model).status != "unknown command: nap" {
		t.Fatalf("unexpected result: %q", next.(Model).status)
	}
	next, cmd = model.executePalette("duration")
	if cmd != nil || !strings.HasPrefix(next.(Model).status, "usage:") {
		t.Fatalf("unexpected result: %q", next.(Model).status)
	}
}

func TestPollUpdatesTimerView(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	model := NewModel(&fakeSession{}, Options{})
	model.now = start.Add(5 * time.Minute)

	next, _ := model.Update(polledMsg{out: sessiondto.PollOutput{
		Status:      sessiondto.StatusOutput{Type: "Focus", Start: start, End: start.Add(25 * time.Minute), Label: "🍅 20m00s"},
		AutoStarted: true,
	}})
	view := next.View()
	if !strings.Contains(view, "20m00s") {
		t.Fatalf("label missing from view:\n%s", view)
	}
	if next.(Model).status != "working hours: focus started" {
		t.Fatalf("unexpected status %q", next.(Model).status)
	}
}

func TestActionErrorShowsInStatus(t *testing.T) {
	model := NewModel(&fakeSession{}, Options{})
	next, cmd := model.Update(actionMsg{verb: "duration changed", err: errors.New("no active session")})
	if cmd != nil {
		t.Fatalf("failed action should not trigger a poll")
	}
	if next.(Model).status != "duration changed failed: no active session" {
		t.Fatalf("unexpected status %q", next.(Model).status)
	}
}

func TestProgressFraction(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	out := sessiondto.StatusOutput{Start: start, End: start.Add(10 * time.Minute)}
	cases := []struct {
		at   time.Time
		want float64
	}{
		{start.Add(-time.Minute), 0},
		{start.Add(5 * time.Minute), 0.5},
		{start.Add(20 * time.Minute), 1},
	}
	for _, tc := range cases {
		if got := progressFraction(out, tc.at); got != tc.want {
			t.Fatalf("progressFraction(%s) = %v, want %v", tc.at, got, tc.want)
		}
	}
}

type countingReloader struct {
	calls int
	err   error
}

func (r *countingReloader) Reload(context.Context) error {
	r.calls++
	return r.err
}

func TestReloadTickRefreshesSettings(t *testing.T) {
	settings := &countingReloader{}
	model := NewModel(&fakeSession{}, Options{Settings: settings, ReloadInterval: time.Millisecond})

	_, cmd := model.Update(reloadTickMsg{})
	if cmd == nil {
		t.Fatalf("expected reload and reschedule commands")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected a batch, got %T", cmd())
	}
	var reloaded, rescheduled bool
	for _, c := range batch {
		if c == nil {
			continue
		}
		switch c().(type) {
		case reloadedMsg:
			reloaded = true
		case reloadTickMsg:
			rescheduled = true
		}
	}
	if !reloaded || !rescheduled || settings.calls != 1 {
		t.Fatalf("reloaded=%v rescheduled=%v calls=%d", reloaded, rescheduled, settings.calls)
	}
}

func TestReloadFailureShowsInStatus(t *testing.T) {
	model := NewModel(&fakeSession{}, Options{Settings: &countingReloader{}})
	next, _ := model.Update(reloadedMsg{err: errors.New("bad yaml")})
	if got := next.(Model).status; !strings.Contains(got, "bad yaml") {
		t.Fatalf("status %q", got)
	}
}

func TestReloadIsOffWithoutSettings(t *testing.T) {
	model := NewModel(&fakeSession{}, Options{})
	if model.reloadTickCmd() != nil {
		t.Fatalf("no settings source should schedule no reload")
	}
	if model.opts.ReloadInterval != 600*time.Second {
		t.Fatalf("default reload interval %v", model.opts.ReloadInterval)
	}
}
