package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	"pomo/internal/modules/session/domain"
	"pomo/internal/platform/clock"

	_ "modernc.org/sqlite"
)

const timeLayout = time.RFC3339Nano

// SQLiteStatusStore keeps the record as the only row of the status table.
type SQLiteStatusStore struct {
	db     *sql.DB
	clock  clock.Clock
	logger hclog.Logger
}

func NewSQLiteStatusStore(dbPath string, clock clock.Clock, logger hclog.Logger) (*SQLiteStatusStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	store := &SQLiteStatusStore{db: db, clock: clock, logger: logger}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStatusStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS status (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  type TEXT NOT NULL,
  started_at TEXT NOT NULL,
  ends_at TEXT NOT NULL,
  last_notified TEXT,
  one_shot INTEGER NOT NULL DEFAULT 0
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create status table: %w", err)
	}
	return nil
}

func (s *SQLiteStatusStore) Read(ctx context.Context) domain.Record {
	record, err := s.read(ctx)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Debug("status row unusable, using idle", "error", err)
		}
		return domain.IdleAt(s.clock.Now())
	}
	return record
}

func (s *SQLiteStatusStore) read(ctx context.Context) (domain.Record, error) {
	var (
		kind, start, end string
		lastNotified     sql.NullString
		oneShot          bool
	)
	row := s.db.QueryRowContext(ctx, `SELECT type, started_at, ends_at, last_notified, one_shot FROM status WHERE id = 1`)
	if err := row.Scan(&kind, &start, &end, &lastNotified, &oneShot); err != nil {
		return domain.Record{}, err
	}
	record := domain.Record{Type: domain.SessionType(kind), OneShot: oneShot}
	var err error
	if record.Start, err = time.Parse(timeLayout, start); err != nil {
		return domain.Record{}, fmt.Errorf("parse start: %w", err)
	}
	if record.End, err = time.Parse(timeLayout, end); err != nil {
		return domain.Record{}, fmt.Errorf("parse end: %w", err)
	}
	if lastNotified.Valid {
		at, err := time.Parse(timeLayout, lastNotified.String)
		if err != nil {
			return domain.Record{}, fmt.Errorf("parse last_notified: %w", err)
		}
		record.LastNotified = &at
	}
	if err := record.Validate(); err != nil {
		return domain.Record{}, err
	}
	return record, nil
}

func (s *SQLiteStatusStore) Write(ctx context.Context, record domain.Record) error {
	const stmt = `
INSERT INTO status (id, type, started_at, ends_at, last_notified, one_shot)
VALUES (1, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  type=excluded.type,
  started_at=excluded.started_at,
  ends_at=excluded.ends_at,
  last_notified=excluded.last_notified,
  one_shot=excluded.one_shot;
`
	var lastNotified sql.NullString
	if record.LastNotified != nil {
		lastNotified = sql.NullString{String: record.LastNotified.UTC().Format(timeLayout), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, stmt,
		string(record.Type),
		record.Start.UTC().Format(timeLayout),
		record.End.UTC().Format(timeLayout),
		lastNotified,
		record.OneShot,
	)
	if err != nil {
		return fmt.Errorf("upsert status: %w", err)
	}
	return nil
}

func (s *SQLiteStatusStore) Close() error {
	return s.db.Close()
}
