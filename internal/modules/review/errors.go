package review

import "errors"

var (
	ErrNotFound        = errors.New("assignment not found")
	ErrForbidden       = errors.New("assignment belongs to another owner")
	ErrNotApproved     = errors.New("assignment is not approved")
	ErrAlreadyReviewed = errors.New("assignment already reviewed")
)
