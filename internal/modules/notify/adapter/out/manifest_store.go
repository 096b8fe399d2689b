package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"pomo/internal/modules/notify/domain"
	notifyout "pomo/internal/modules/notify/port/out"
)

// FileManifestStore reads the notifier plugin list. Relative binaries
// resolve against the pomo directory, "~/" against the home directory.
type FileManifestStore struct {
	dir  string
	path string
}

func NewFileManifestStore(dir, path string) notifyout.ManifestStore {
	return &FileManifestStore{dir: dir, path: path}
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	f, err := os.Open(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return []domain.Manifest{}, nil
	case err != nil:
		return nil, fmt.Errorf("open plugin list: %w", err)
	}
	defer f.Close()

	var manifests []domain.Manifest
	decoder := json.NewDecoder(f)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&manifests); err != nil {
		return nil, fmt.Errorf("decode plugin list %s: %w", s.path, err)
	}
	for i := range manifests {
		manifests[i].Binary = s.resolve(manifests[i].Binary)
	}
	return manifests, nil
}

func (s *FileManifestStore) resolve(binary string) string {
	switch {
	case binary == "" || filepath.IsAbs(binary):
		return binary
	case strings.HasPrefix(binary, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, binary[2:])
		}
		return binary
	default:
		return filepath.Join(s.dir, binary)
	}
}
