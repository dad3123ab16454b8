package auth

import "errors"

// Sentinel errors returned by the session service and the stores behind it.
// Handlers map these onto HTTP status codes; anything else is a 500.
var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. The two causes are deliberately indistinguishable to the
	// caller so login cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned by Register when the email already exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrNotFound is returned when a user, session, or live session does
	// not exist. An expired session and a session that never existed look
	// identical through this error.
	ErrNotFound = errors.New("not found")
)
