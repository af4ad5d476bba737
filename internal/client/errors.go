package client

import "errors"

// Error kinds surfaced by the client. Callers match them with errors.Is;
// every failure is terminal for the call that produced it, the client never
// retries on its own.
var (
	// ErrAuthentication covers bad credentials, an expired or rejected auth
	// token, and a session response that is missing the token.
	ErrAuthentication = errors.New("ring: authentication failed")

	// ErrTransport covers network failures and any HTTP status the operation
	// does not expect.
	ErrTransport = errors.New("ring: request failed")

	// ErrDecode covers malformed response bodies and entries missing
	// required fields.
	ErrDecode = errors.New("ring: malformed response")

	// ErrInvalidArgument is returned before any network I/O when a caller
	// violates an operation's precondition.
	ErrInvalidArgument = errors.New("ring: invalid argument")
)
