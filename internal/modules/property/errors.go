package property

import "errors"

var (
	ErrNotFound  = errors.New("property not found")
	ErrForbidden = errors.New("property belongs to another owner")
)
