package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"pomo/internal/modules/session/domain"
	sessionout "pomo/internal/modules/session/port/out"
	"pomo/internal/platform/clock"
)

// FileStatusStore keeps the record in a JSON document. Writes go to a
// sibling temp file and are renamed into place, so readers observe either
// the previous or the new record.
type FileStatusStore struct {
	path   string
	clock  clock.Clock
	logger hclog.Logger
}

func NewFileStatusStore(path string, clock clock.Clock, logger hclog.Logger) sessionout.StatusStore {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &FileStatusStore{path: path, clock: clock, logger: logger}
}

func (s *FileStatusStore) Read(_ context.Context) domain.Record {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("read status failed, using idle", "path", s.path, "error", err)
		}
		return domain.IdleAt(s.clock.Now())
	}
	record, err := decodeRecord(payload)
	if err != nil {
		s.logger.Debug("status unusable, using idle", "path", s.path, "error", err)
		return domain.IdleAt(s.clock.Now())
	}
	return record
}

func (s *FileStatusStore) Write(_ context.Context, record domain.Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create status dir: %w", err)
	}
	payload, err := encodeRecord(record)
	if err != nil {
		return err
	}
	if err := s.replace(payload); err != nil {
		return err
	}
	s.logger.Trace("status written", "type", record.Type, "end", record.End)
	return nil
}

// replace writes payload to a temp file unique to this writer and renames
// it over the status file. Concurrent writers never share a temp file.
func (s *FileStatusStore) replace(payload []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create status temp file: %w", err)
	}
	name := tmp.Name()
	_, err = tmp.Write(payload)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(name, 0o644)
	}
	if err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("write status temp file: %w", err)
	}
	if err := os.Rename(name, s.path); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("replace status file: %w", err)
	}
	return nil
}
