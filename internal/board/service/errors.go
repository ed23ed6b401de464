package service

import "errors"

// Error taxonomy surfaced by every service operation. The HTTP layer maps
// these to status codes; nothing here is fatal to the process.
var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrDuplicateIdentity  = errors.New("username or email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("insufficient privileges")
	ErrProtectedAccount   = errors.New("superadmin account cannot be modified")
	ErrUserNotFound       = errors.New("user not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrParentNotFound     = errors.New("parent note not found")
)
