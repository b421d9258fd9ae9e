package usecase

import "errors"

// User-recoverable failures. Match them with errors.Is; messages may carry
// extra context after the sentinel text.
var (
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrValidationFailed     = errors.New("validation failed")
	ErrSubmissionFailed     = errors.New("order submission failed")
	ErrSubmissionTimeout    = errors.New("order submission timed out")
	ErrSubmissionInProgress = errors.New("order submission already in progress")
	ErrOrderCancelled       = errors.New("order attempt cancelled")
)
