package tracker

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownUser       = errors.New("user does not exist")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrAuthentication    = errors.New("authentication failed")
	ErrInvalidField      = errors.New("invalid field")
	ErrInvalidDate       = errors.New("invalid date, expected YYYY-MM-DD")
	ErrNotPermitted      = errors.New("not permitted")
	ErrNotLoggedIn       = errors.New("not logged in")
)

// AuthError is returned by Session.Login.
type AuthError struct {
	Username string
	Reason   string
}

func (e *AuthError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s for %q: %s", ErrAuthentication, e.Username, e.Reason)
}

func (e *AuthError) Unwrap() error { return ErrAuthentication }

const (
	ReasonUnknownUser   = "user does not exist"
	ReasonWrongPassword = "wrong password"
)

func invalidFieldf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidField, fmt.Sprintf(format, args...))
}
