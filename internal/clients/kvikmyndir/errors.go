package kvikmyndir

import (
	"errors"
	"fmt"
)

var ErrAuthentication = errors.New("authentication failed")

// AuthError reports a failed call to the authentication endpoint. StatusCode
// is zero when the request itself never produced a response.
type AuthError struct {
	StatusCode int
	Status     string
	Body       string
	Err        error
}

func (e *AuthError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("authentication failed: %d %s - %s", e.StatusCode, e.Status, e.Body)
	case e.Err != nil:
		return "authentication failed: " + e.Err.Error()
	}
	return "authentication failed"
}

func (e *AuthError) Is(target error) bool {
	return target == ErrAuthentication
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// FetchError reports a non-2xx response from a collection endpoint.
type FetchError struct {
	Resource   string
	StatusCode int
	Status     string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %d %s", e.Resource, e.StatusCode, e.Status)
}
