package domain

import "errors"

// ErrNotFound is returned when no row matches the requested key.
var ErrNotFound = errors.New("not found")
