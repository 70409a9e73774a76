package errs

import (
	"errors"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrUnavailable       = errors.New("book is not available")
	ErrNotBorrowed       = errors.New("this book was not borrowed by you")
	ErrAlreadyBorrowed   = errors.New("book is already borrowed by you")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("forbidden")
	ErrUnauthorized      = errors.New("invalid credentials")
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("conflict")
)
