package calendar

import "fmt"

// AuthError means credential acquisition or token refresh failed.
// The fetch it belongs to is abandoned; the caller decides whether to
// retry on its own cadence.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("calendar authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// RemoteError means an upstream listing or creation call failed.
// Status carries the upstream HTTP status when one was received,
// 0 otherwise.
type RemoteError struct {
	Status int
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("calendar request failed (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("calendar request failed: %v", e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
