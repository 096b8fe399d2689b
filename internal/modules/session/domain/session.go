package domain

import (
	"errors"
	"fmt"
	"time"
)

// NotifyDebounce is the minimum spacing between completion alerts for the
// same record.
const NotifyDebounce = 300 * time.Second

const (
	DefaultFocusDuration = 30 * time.Minute
	DefaultBreakDuration = 5 * time.Minute
)

type SessionType string

const (
	TypeIdle  SessionType = "Idle"
	TypeFocus SessionType = "Focus"
	TypeBreak SessionType = "Break"
)

func (t SessionType) Validate() error {
	switch t {
	case TypeIdle, TypeFocus, TypeBreak:
		return nil
	default:
		return fmt.Errorf("unknown session type: %q", string(t))
	}
}

var (
	ErrEndBeforeStart    = errors.New("session end is before start")
	ErrNotifiedBeforeRun = errors.New("last notification precedes session start")
)

// Record is the single persisted snapshot of the current session.
type Record struct {
	Type         SessionType
	Start        time.Time
	End          time.Time
	LastNotified *time.Time
	OneShot      bool
}

// IdleAt is the neutral record written on stop and returned when no valid
// record is stored.
func IdleAt(now time.Time) Record {
	return Record{Type: TypeIdle, Start: now, End: now}
}

// New builds a fresh record starting at now. A new record never inherits a
// notification stamp.
func New(kind SessionType, now time.Time, duration time.Duration, oneShot bool) Record {
	return Record{Type: kind, Start: now, End: now.Add(duration), OneShot: oneShot}
}

func (r Record) Validate() error {
	if err := r.Type.Validate(); err != nil {
		return err
	}
	if r.Start.IsZero() || r.End.IsZero() {
		return fmt.Errorf("session start and end are required")
	}
	if r.End.Before(r.Start) {
		return ErrEndBeforeStart
	}
	if r.LastNotified != nil && r.LastNotified.Before(r.Start) {
		return ErrNotifiedBeforeRun
	}
	return nil
}

// Remaining is negative once the session is past its end. Idle records are
// always at or below zero.
func (r Record) Remaining(now time.Time) time.Duration {
	return r.End.Sub(now)
}

func (r Record) IsIdle() bool {
	return r.Type == TypeIdle
}

// InProgress reports whether a focus or break session has not reached its end.
func (r Record) InProgress(now time.Time) bool {
	return !r.IsIdle() && r.Remaining(now) > 0
}

// DueForAlert applies the debounce rule: a record at or past its end alerts
// when it was never notified or the last alert is at least NotifyDebounce old.
// Idle records are never due.
func (r Record) DueForAlert(now time.Time) bool {
	if r.IsIdle() || r.Remaining(now) > 0 {
		return false
	}
	if r.LastNotified == nil {
		return true
	}
	return now.Sub(*r.LastNotified) >= NotifyDebounce
}

// Stamped returns a copy of r with LastNotified set to at; every other field
// is unchanged.
func (r Record) Stamped(at time.Time) Record {
	stamped := r
	stamped.LastNotified = &at
	return stamped
}

// WithEnd returns a copy of r rescheduled to end at end.
func (r Record) WithEnd(end time.Time) Record {
	changed := r
	changed.End = end
	return changed
}
