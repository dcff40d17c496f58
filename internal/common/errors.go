// Package common defines shared constants and sentinel errors used across
// the ADHDo layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound  = errors.New("not found")
	ErrAmbiguousID = errors.New("id prefix matches more than one record")

	// Validation errors.
	ErrEmptyTitle    = errors.New("title must not be empty")
	ErrEmptyName     = errors.New("name must not be empty")
	ErrInvalidURL    = errors.New("url must be an absolute http(s) address")
	ErrDuplicateName = errors.New("name is already in use")

	// ErrNoChange is returned when an edit leaves the stored value untouched.
	ErrNoChange = errors.New("value did not change")

	// Input parsing errors.
	ErrUnknownFilter  = errors.New("unknown task filter")
	ErrUnknownSetting = errors.New("unknown setting")
	ErrUnknownCommand = errors.New("unknown command")
)
