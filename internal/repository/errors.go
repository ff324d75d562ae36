package repository

import "errors"

// ErrStaleStatus is returned when a compare-and-swap status update matched
// no row: the entity's stored status changed under the caller. Transitions
// must re-read and re-validate rather than retry blindly.
var ErrStaleStatus = errors.New("status changed concurrently")

// ErrDuplicate is returned on unique-constraint violations.
var ErrDuplicate = errors.New("duplicate record")
