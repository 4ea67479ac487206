package service

import "errors"

// Errors surfaced by the service layer. Handlers translate these into API
// responses; anything else is treated as an internal failure and logged.
var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the two cases are indistinguishable to a caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrWeakPassword rejects account passwords below the minimum length.
	ErrWeakPassword = errors.New("password must be at least 8 characters")

	// ErrPasscodeMismatch is a normal rejected-attempt outcome, not a fault.
	// Re-entry is permitted with no rate limiting or lockout.
	ErrPasscodeMismatch = errors.New("incorrect passcode")

	// ErrNotOwner rejects share, revoke and delete attempts by anyone but
	// the folder's owner.
	ErrNotOwner = errors.New("only the folder owner may perform this action")
)
