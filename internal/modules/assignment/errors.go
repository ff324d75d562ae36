package assignment

import "errors"

var (
	ErrNotFound          = errors.New("assignment not found")
	ErrForbidden         = errors.New("assignment belongs to another owner")
	ErrProgressBackwards = errors.New("progress cannot decrease")
	ErrPhotoLimit        = errors.New("photo limit reached")
	ErrNotOnSite         = errors.New("assignment is not in an on-site state")
)
