package domain

import "errors"

// Handlers map these to HTTP statuses with errors.Is; wrap them with fmt.Errorf("...: %w").
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUpstream     = errors.New("upstream error")
)
