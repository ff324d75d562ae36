package billing

import "errors"

var (
	ErrNotFound    = errors.New("invoice not found")
	ErrForbidden   = errors.New("invoice belongs to another owner")
	ErrNotPayable  = errors.New("invoice is not open for payment")
	ErrWrongAmount = errors.New("payment does not match the invoice total")
)
