package core

import "fmt"

// AuthError means the client-credentials exchange failed: a non-2xx from the
// token endpoint, a malformed body, or a transport failure while talking to it.
type AuthError struct {
	// Status is the HTTP status of the token endpoint response, 0 if the
	// request never completed.
	Status  int
	Reason  string
	Wrapped error
}

func (e *AuthError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("authentication failed [%d]: %s", e.Status, e.Reason)
	}
	if e.Wrapped != nil {
		return fmt.Sprintf("authentication failed: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

func (e *AuthError) Unwrap() error {
	return e.Wrapped
}

// APIError is a create or delete call the platform rejected.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error [%d]: %s", e.Status, e.Body)
}

// NetworkError is a transport failure (timeout, connection refused) on a
// create or delete call. For retry purposes it is equivalent to an APIError.
type NetworkError struct {
	Op      string
	Wrapped error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Wrapped)
}

func (e *NetworkError) Unwrap() error {
	return e.Wrapped
}

// ConfigError is missing or invalid configuration. Fatal at startup, before
// any cycle begins.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}
