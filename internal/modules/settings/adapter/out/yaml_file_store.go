package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pomo/internal/modules/settings/domain"
	settingsout "pomo/internal/modules/settings/port/out"
	apperrors "pomo/internal/platform/errors"
)

// YAMLFileStore reads config.yaml, falling back to the legacy config.json.
// JSON documents parse with the same decoder.
type YAMLFileStore struct {
	path       string
	legacyPath string
}

func NewYAMLFileStore(path, legacyPath string) settingsout.FileStore {
	return &YAMLFileStore{path: path, legacyPath: legacyPath}
}

func (s *YAMLFileStore) Load(_ context.Context) (domain.File, string, error) {
	for _, candidate := range []string{s.path, s.legacyPath} {
		if candidate == "" {
			continue
		}
		payload, err := os.ReadFile(candidate)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return domain.File{}, candidate, fmt.Errorf("read config: %w", err)
		}
		file := domain.File{}
		if err := yaml.Unmarshal(payload, &file); err != nil {
			return domain.File{}, candidate, fmt.Errorf("decode config %s: %w", candidate, err)
		}
		return file, candidate, nil
	}
	return domain.File{}, "", apperrors.ErrNotFound
}

func (s *YAMLFileStore) Save(_ context.Context, file domain.File) (string, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	payload, err := yaml.Marshal(file)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return s.path, nil
}

func (s *YAMLFileStore) Exists(_ context.Context) bool {
	_, err := os.Stat(s.path)
	return err == nil
}
