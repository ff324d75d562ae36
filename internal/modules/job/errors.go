package job

import "errors"

var (
	ErrNotFound     = errors.New("job not found")
	ErrForbidden    = errors.New("job belongs to another owner")
	ErrNotOpen      = errors.New("job is not open for applications")
	ErrAlreadyTaken = errors.New("application already answered")
)
