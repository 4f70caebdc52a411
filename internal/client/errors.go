// ABOUTME: Error type returned by every API client operation
// ABOUTME: Carries only a human-readable message; callers own retry and routing policy

package client

// RequestError is the single failure kind surfaced by the client.
// Error returns Message verbatim so it can be shown to the user as-is.
type RequestError struct {
	Message string
	cause   error
}

func newRequestError(message string, cause error) *RequestError {
	return &RequestError{Message: message, cause: cause}
}

func (e *RequestError) Error() string {
	return e.Message
}

// Unwrap exposes the transport or decode failure behind the message, if any
func (e *RequestError) Unwrap() error {
	return e.cause
}
