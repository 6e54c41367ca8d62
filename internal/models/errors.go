package models

import "errors"

// ErrConflict is returned by stores when a uniqueness constraint is violated.
var ErrConflict = errors.New("unique constraint violation")
