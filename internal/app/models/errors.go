package models

import "errors"

// Domain specific errors for request intake and planning.
var (
	ErrNotFound     = errors.New("requested item not found")
	ErrValidation   = errors.New("validation failed")
	ErrOutOfRegion  = errors.New("coordinate outside service region")
	ErrUnknownTheme = errors.New("theme not present in taxonomy")
	ErrNoPath       = errors.New("no path between coordinates")
	ErrUnavailable  = errors.New("collaborator unavailable")
)
