package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Validation errors
	ErrMsgValidation      = "validation failed"
	ErrMsgInvalidEmail    = "invalid email address"
	ErrMsgPasswordTooWeak = "password must be at least 6 characters"

	// Auth errors
	ErrMsgConflict         = "email already registered"
	ErrMsgAuthentication   = "invalid email or password"
	ErrMsgNotAuthenticated = "no authenticated session"

	// User errors
	ErrMsgUserNotFound = "user not found"

	// External service errors
	ErrMsgNotConfigured = "missing required credential"
	ErrMsgAPI           = "remote service error"

	// Storage errors
	ErrMsgStorage = "storage operation failed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrValidation reports malformed input caught before any I/O.
	ErrValidation = errors.New(ErrMsgValidation)

	// ErrConflict reports a duplicate registration.
	ErrConflict = errors.New(ErrMsgConflict)

	// ErrAuthentication reports credentials that do not match a stored record.
	ErrAuthentication = errors.New(ErrMsgAuthentication)

	// ErrNotAuthenticated reports an operation that requires a session that doesn't exist.
	ErrNotAuthenticated = errors.New(ErrMsgNotAuthenticated)

	// ErrUserNotFound reports a lookup for an unknown user.
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	// ErrNotConfigured reports a missing external credential.
	ErrNotConfigured = errors.New(ErrMsgNotConfigured)

	// ErrAPI reports a remote call that reached the server but returned failure.
	ErrAPI = errors.New(ErrMsgAPI)

	// ErrStorage reports a local persistence I/O failure.
	ErrStorage = errors.New(ErrMsgStorage)
)
