// Package api implements the REST calls of the Conversational AI engine:
// join (create an agent and join a channel), leave (stop an agent) and query
// (read an agent's running status). All handlers share one base handler that
// signs requests with the configured credential, applies a per-attempt
// timeout and retries transient failures with linear backoff.
//
// Retry policy: 2xx stops, 4xx is never retried (401/403 surface as
// AuthenticationError, other client errors as RemoteAgentError with the
// remote reason/detail preserved), 5xx and transport errors are retried for
// idempotent calls only. Join is not idempotent and is never retried
// automatically.
package api
