package repositories

import "errors"

var (
	// ErrDuplicateIdentity is returned when a signup or profile update
	// collides with an existing username or email.
	ErrDuplicateIdentity = errors.New("username or email already taken")

	// ErrInvalidCredentials covers every login failure: unknown identifier,
	// wrong password, unverified account. Callers must not distinguish them.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrVerificationFailed is returned for a wrong or already-used
	// verification code.
	ErrVerificationFailed = errors.New("verification failed")
)
