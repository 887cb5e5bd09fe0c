package apperrors

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrParse        = errors.New("could not parse input")
	ErrStorage      = errors.New("storage failure")
	ErrNoActiveSet  = errors.New("no active word set")
)
