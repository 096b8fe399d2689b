package out_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	notifyout "pomo/internal/modules/notify/adapter/out"
	"pomo/internal/modules/notify/domain"
)

const manifestTemplate = `[{"name": "desk", "version": "1.0.0", "binary": %q,
  "sha256": %q, "enabled": true, "capabilities": ["notify"]}]`

func loadManifests(t *testing.T, raw string) ([]domain.Manifest, string, error) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "plugins.json")
	if raw != "" {
		if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
			t.Fatalf("write plugins.json: %v", err)
		}
	}
	manifests, err := notifyout.NewFileManifestStore(dir, path).Load(context.Background())
	return manifests, dir, err
}

func manifestWithBinary(binary string) string {
	return fmt.Sprintf(manifestTemplate, binary, strings.Repeat("b", 64))
}

func TestFileManifestStoreMissingFileIsEmpty(t *testing.T) {
	t.Parallel()
	manifests, _, err := loadManifests(t, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if manifests == nil || len(manifests) != 0 {
		t.Fatalf("expected an empty list, got %#v", manifests)
	}
}

func TestFileManifestStoreBinaryResolution(t *testing.T) {
	t.Parallel()
	manifests, dir, err := loadManifests(t, manifestWithBinary("plugins/desk/pomo-desk"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if want := filepath.Join(dir, "plugins", "desk", "pomo-desk"); manifests[0].Binary != want {
		t.Fatalf("relative binary: want %s, got %s", want, manifests[0].Binary)
	}

	abs := filepath.Join(string(filepath.Separator), "opt", "pomo-desk")
	manifests, _, err = loadManifests(t, manifestWithBinary(abs))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if manifests[0].Binary != abs {
		t.Fatalf("absolute binary changed to %s", manifests[0].Binary)
	}
}

func TestFileManifestStoreExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	manifests, _, err := loadManifests(t, manifestWithBinary("~/bin/pomo-desk"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if want := filepath.Join(home, "bin", "pomo-desk"); manifests[0].Binary != want {
		t.Fatalf("want %s, got %s", want, manifests[0].Binary)
	}
}

func TestFileManifestStoreRejectsMalformedLists(t *testing.T) {
	t.Parallel()
	for name, raw := range map[string]string{
		"unknown field": `[{"name": "x", "unknown_field": true}]`,
		"not a list":    `{"name": "x"}`,
		"truncated":     `[{"name": "x"`,
	} {
		if _, _, err := loadManifests(t, raw); err == nil {
			t.Fatalf("%s: expected decode error", name)
		}
	}
}
