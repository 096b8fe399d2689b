package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"pomo/internal/modules/notify/domain"
	"pomo/internal/modules/notify/dto"
	notifyout "pomo/internal/modules/notify/port/out"
	apperrors "pomo/internal/platform/errors"
)

// PluginService answers questions about the notifier plugins in plugins.json.
type PluginService struct {
	store    notifyout.ManifestStore
	host     notifyout.Host
	readFile func(string) ([]byte, error)
}

func NewPluginService(store notifyout.ManifestStore, host notifyout.Host) *PluginService {
	return &PluginService{store: store, host: host, readFile: os.ReadFile}
}

func (s *PluginService) List(ctx context.Context) ([]dto.PluginInfo, error) {
	manifests, err := s.manifests(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PluginInfo, 0, len(manifests))
	for _, m := range manifests {
		out = append(out, dto.PluginInfo{
			Name:         m.Name,
			Version:      m.Version,
			Enabled:      m.Enabled,
			Binary:       m.Binary,
			Capabilities: m.CapabilityNames(),
		})
	}
	return out, nil
}

// Doctor diagnoses every listed plugin, including invalid ones.
func (s *PluginService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		results = append(results, s.diagnose(ctx, m))
	}
	return results, nil
}

func (s *PluginService) diagnose(ctx context.Context, m domain.Manifest) dto.DoctorResult {
	result := dto.DoctorResult{Name: m.Name}
	if err := m.Validate(); err != nil {
		result.Error = err.Error()
		return result
	}
	binary, err := s.readFile(m.Binary)
	if err != nil {
		result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		return result
	}
	result.BinaryReachable = true
	if m.VerifyChecksum(binary) != nil {
		result.Error = "checksum mismatch"
		return result
	}
	result.ChecksumValid = true
	if !m.Enabled || s.host == nil {
		return result
	}
	if err := s.host.CheckLifecycle(ctx, m); err != nil {
		result.Error = err.Error()
		return result
	}
	result.LifecycleOK = true
	return result
}

// Runnable returns the manifest of an enabled notifier plugin whose binary
// still matches its recorded checksum.
func (s *PluginService) Runnable(ctx context.Context, name string) (domain.Manifest, error) {
	manifests, err := s.manifests(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	idx := slices.IndexFunc(manifests, func(m domain.Manifest) bool { return m.Name == name })
	if idx < 0 {
		return domain.Manifest{}, fmt.Errorf("%w: plugin %q", apperrors.ErrNotFound, name)
	}
	manifest := manifests[idx]
	if err := manifest.CheckRunnable(); err != nil {
		return domain.Manifest{}, err
	}
	binary, err := s.readFile(manifest.Binary)
	if err != nil {
		return domain.Manifest{}, fmt.Errorf("read plugin binary: %w", err)
	}
	if err := manifest.VerifyChecksum(binary); err != nil {
		return domain.Manifest{}, err
	}
	return manifest, nil
}

// Sink builds the delivery sink for a runnable plugin.
func (s *PluginService) Sink(ctx context.Context, name string, build func(notifyout.Host, domain.Manifest) notifyout.Sink) (notifyout.Sink, error) {
	if s.host == nil {
		return nil, errors.New("plugin host is not configured")
	}
	manifest, err := s.Runnable(ctx, name)
	if err != nil {
		return nil, err
	}
	return build(s.host, manifest), nil
}

// manifests loads the list and rejects it as a whole when any entry is
// invalid or a name repeats.
func (s *PluginService) manifests(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	var problems []error
	names := make(map[string]bool, len(manifests))
	for _, m := range manifests {
		if err := m.Validate(); err != nil {
			problems = append(problems, err)
		}
		if names[m.Name] {
			problems = append(problems, fmt.Errorf("duplicate plugin name: %s", m.Name))
		}
		names[m.Name] = true
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return manifests, nil
}
