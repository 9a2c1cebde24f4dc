package core

import "fmt"

// ValidationError reports bad or missing caller input. It is raised locally,
// before any network traffic, and is never retried.
type ValidationError struct {
	// Field names the offending input in wire notation (e.g. "channel_name").
	Field   string
	Message string
}

// Error implements error.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Message)
}

// ConfigurationError reports a malformed or unrecognized vendor configuration.
// Like ValidationError it is local and never retried, but it is kept distinct
// so callers can route "fix your vendor config" separately from "fix your
// call parameters".
type ConfigurationError struct {
	// Vendor is the vendor tag involved, when known.
	Vendor  string
	Message string
}

// Error implements error.
func (e *ConfigurationError) Error() string {
	if e.Vendor == "" {
		return "configuration error: " + e.Message
	}
	return fmt.Sprintf("configuration error: vendor %q: %s", e.Vendor, e.Message)
}

// AuthenticationError reports that the remote service rejected the request
// credentials (HTTP 401/403). Fatal to the call; never retried.
type AuthenticationError struct {
	StatusCode int
	Body       string
}

// Error implements error.
func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication rejected (status %d): %s", e.StatusCode, e.Body)
}

// TransientServiceError reports a network failure or a 5xx response. Eligible
// for bounded retry with backoff in the API layer.
type TransientServiceError struct {
	StatusCode int // 0 when the failure happened below HTTP
	Body       string
	Err        error // underlying transport error, if any
}

// Error implements error.
func (e *TransientServiceError) Error() string {
	if e.Err != nil {
		return "transient service error: " + e.Err.Error()
	}
	return fmt.Sprintf("transient service error (status %d): %s", e.StatusCode, e.Body)
}

// Unwrap exposes the underlying transport error.
func (e *TransientServiceError) Unwrap() error { return e.Err }

// RemoteAgentError is a structured failure surfaced by the Conversational AI
// engine (e.g. an invalid uid format). The remote reason and detail are
// preserved verbatim for programmatic handling.
type RemoteAgentError struct {
	StatusCode int
	Reason     string
	Detail     string
}

// Error implements error.
func (e *RemoteAgentError) Error() string {
	return fmt.Sprintf("agent request rejected (status %d): %s: %s", e.StatusCode, e.Reason, e.Detail)
}

// RetryError reports that all retry attempts were exhausted. The last
// underlying failure is preserved through Unwrap so errors.As still reaches
// the TransientServiceError beneath it.
type RetryError struct {
	Attempts int
	Last     error
}

// Error implements error.
func (e *RetryError) Error() string {
	if e.Last != nil {
		return fmt.Sprintf("request failed after %d attempts: %s", e.Attempts, e.Last.Error())
	}
	return fmt.Sprintf("request failed after %d attempts", e.Attempts)
}

// Unwrap exposes the last underlying failure.
func (e *RetryError) Unwrap() error { return e.Last }
