package out_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	notifyout "pomo/internal/modules/notify/adapter/out"
	"pomo/internal/modules/notify/domain"
	notifyport "pomo/internal/modules/notify/port/out"
	"pomo/internal/modules/notify/service"
)

// TestNotifySendPluginEndToEnd compiles the bundled notify-send plugin,
// lists it in plugins.json and delivers an alert through it.
func TestNotifySendPluginEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("compiles a plugin binary")
	}
	t.Setenv("POMO_NOTIFY_SEND_DRY_RUN", "1")

	dir := t.TempDir()
	binary := filepath.Join(dir, "bin", "pomo-notify-send")
	build := exec.Command("go", "build", "-o", binary, "./plugins/notify-send")
	build.Dir = moduleRoot(t)
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("go build: %v\n%s", err, out)
	}
	contents, err := os.ReadFile(binary)
	if err != nil {
		t.Fatalf("read plugin: %v", err)
	}
	sum := sha256.Sum256(contents)

	listPath := filepath.Join(dir, "plugins.json")
	list, _ := json.Marshal([]domain.Manifest{{
		Name:         "notify-send",
		Version:      "1.0.0",
		Binary:       "bin/pomo-notify-send",
		SHA256:       hex.EncodeToString(sum[:]),
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityNotify},
	}})
	if err := os.WriteFile(listPath, list, 0o600); err != nil {
		t.Fatalf("write plugins.json: %v", err)
	}

	host := notifyout.NewGRPCHost(hclog.NewNullLogger())
	plugins := service.NewPluginService(notifyout.NewFileManifestStore(dir, listPath), host)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	report, err := plugins.Doctor(ctx)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(report) != 1 || !report[0].LifecycleOK {
		t.Fatalf("unexpected doctor report: %+v", report)
	}

	manifest, err := plugins.Runnable(ctx, "notify-send")
	if err != nil {
		t.Fatalf("runnable: %v", err)
	}
	meta, err := host.GetMetadata(ctx, manifest)
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if meta.Name != "notify-send" || meta.Version != "1.0.0" {
		t.Fatalf("unexpected metadata: %+v", meta)
	}

	sink, err := plugins.Sink(ctx, "notify-send", func(h notifyport.Host, m domain.Manifest) notifyport.Sink {
		return notifyout.NewPluginSink(h, m)
	})
	if err != nil {
		t.Fatalf("sink: %v", err)
	}
	if err := sink.Deliver(ctx, domain.Alert{Title: "Pomo 🍅", Subtitle: "Break is over, back to work!"}); err != nil {
		t.Fatalf("deliver: %v", err)
	}
}

func moduleRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("locate test source")
	}
	root := filepath.Dir(file)
	for {
		if _, err := os.Stat(filepath.Join(root, "go.mod")); err == nil {
			return root
		}
		parent := filepath.Dir(root)
		if parent == root {
			t.Fatal("go.mod not found above test source")
		}
		root = parent
	}
}
