package dto

import "time"

// StartInput carries an optional duration override; empty means the
// configured default.
type StartInput struct {
	Duration string
	OneShot  bool
	Notify   bool
}

type StopInput struct {
	Notify bool
}

type DurationInput struct {
	Duration string
}

type StatusInput struct {
	NoEmoji bool
}

type PollInput struct {
	Notify  bool
	NoEmoji bool
}

type StatusOutput struct {
	Type         string     `json:"type"`
	Start        time.Time  `json:"start"`
	End          time.Time  `json:"end"`
	LastNotified *time.Time `json:"last_notified,omitempty"`
	OneShot      bool       `json:"one_shot"`
	Remaining    string     `json:"remaining"`
	Label        string     `json:"label"`
}

// PollOutput reports what a single poll changed.
type PollOutput struct {
	Status       StatusOutput `json:"status"`
	Notified     bool         `json:"notified"`
	AutoStarted  bool         `json:"auto_started"`
	AutoStopped  bool         `json:"auto_stopped"`
	OneShotReset bool         `json:"one_shot_reset"`
}
