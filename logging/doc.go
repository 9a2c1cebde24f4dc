// Package logging provides a minimal logging interface and adapters for the
// ConvoAI SDK.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that the API handlers use for observability. This package
// includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (the library default)
//   - ConvoAILogger with contextual helpers and an API-call helper
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelDebug, "text", false)
//	client, err := convoai.New(appID, cert, customerID, secret, func(o *convoai.Options) {
//		o.Logger = logger
//	})
//
// The design intentionally keeps the interface minimal to avoid vendor
// lock-in while supporting structured logging where available.
package logging
