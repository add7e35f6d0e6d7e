// Package repository defines error types that are reused across the
// data-access layer. These sentinel values let callers distinguish
// recoverable outcomes (duplicate username, bad credentials, missing
// row, missing privilege) from genuine storage failures, which are
// returned as-is and never wrapped into one of these.
package repository

import "errors"

// ErrUsernameExists is returned when an insert collides with the
// unique constraint on users.username.
var ErrUsernameExists = errors.New("username already exists")

// ErrInvalidCredentials is returned when authentication finds no
// matching user. It deliberately does not distinguish an unknown
// username from a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrTipNotFound indicates that a tip was not located in the DB.
var ErrTipNotFound = errors.New("tip not found")

// ErrForbidden is returned when the caller attempts an operation
// their role does not permit.
var ErrForbidden = errors.New("forbidden")
