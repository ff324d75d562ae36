package offer

import "errors"

var (
	ErrNotFound   = errors.New("offer not found")
	ErrForbidden  = errors.New("offer belongs to another owner")
	ErrJobNotOpen = errors.New("job is not open for offers")
)
