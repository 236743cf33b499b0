// Package common holds the error taxonomy shared by the store, service and
// transport layers.
package common

import "errors"

var (
	// session errors
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingToken = errors.New("no token provided")

	// authorization errors
	ErrUnauthenticated = errors.New("you must be logged in")
	ErrForbidden       = errors.New("you are not allowed to modify this link")

	// credential errors
	ErrInvalidCredential = errors.New("invalid password")
	ErrDuplicateUser     = errors.New("user with this email already exists")

	// store errors
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")

	ErrInvalidArgument = errors.New("invalid argument")
)
