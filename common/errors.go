package common

import (
	"errors"
	"fmt"
)

// Commonly used errors
var (
	ErrInvalidCreds   = ErrAccessDenied("invalid login credentials")
	ErrInvalidCaptcha = ErrAccessDenied("invalid captcha")
	ErrNoPermissions  = ErrAccessDenied("insufficient permissions")
	ErrNotLoggedIn    = ErrAccessDenied("not logged in")
	ErrPageOutOfRange = ErrInvalidInput("page out of range")
)

// StatusError is a simple error with HTTP status code attached
type StatusError struct {
	Err  error
	Code int
}

func (e StatusError) Error() string {
	var prefix string
	switch e.Code {
	case 400:
		prefix = "invalid input"
	case 403:
		prefix = "access denied"
	case 404:
		prefix = "not found"
	case 500:
		prefix = "internal server error"
	case 502:
		prefix = "upstream unavailable"
	}
	return fmt.Sprintf("%s: %s", prefix, e.Err)
}

// ErrTooLong is passed, when a field exceeds the maximum string length
// for that specific field
func ErrTooLong(s string) error {
	return StatusError{errors.New(s + " too long"), 400}
}

// ErrInvalidInput is an error that invalid user input was supplied
func ErrInvalidInput(s string) error {
	return StatusError{errors.New(s), 400}
}

// ErrAccessDenied is an error that the user does not have enough access
// rights
func ErrAccessDenied(s string) error {
	return StatusError{errors.New(s), 403}
}

// ErrNotFound is an error that a referenced entity does not exist
func ErrNotFound(s string) error {
	return StatusError{errors.New(s + " not found"), 404}
}

// ErrPersistence is an error that a write-through to the JSON store did
// not complete. The triggering mutation must not be treated as
// committed.
func ErrPersistence(err error) error {
	return StatusError{fmt.Errorf("could not persist: %s", err), 500}
}

// ErrUpstream is an error that a remote collaborator service could not
// be reached
func ErrUpstream(err error) error {
	return StatusError{err, 502}
}

// CanIgnoreClientError returns, if a client-caused error can be safely
// ignored and not logged
func CanIgnoreClientError(err error) bool {
	if err == nil {
		return true
	}
	if se, ok := err.(StatusError); ok {
		return se.Code >= 400 && se.Code < 500
	}
	return false
}
