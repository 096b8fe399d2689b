package apperrors

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidDuration = errors.New("invalid duration")
	ErrNotFound        = errors.New("not found")
	ErrNoActiveSession = errors.New("no session in progress")
)
