// Package core provides the foundational domain types shared by the ConvoAI
// SDK packages. It defines:
//
//   - Config / ServiceRegion (client configuration and endpoint selection)
//   - Credential / BasicAuthCredential (request signing)
//   - The SDK error taxonomy (validation, configuration, authentication,
//     transient service and remote agent failures)
//
// The package intentionally keeps implementation concerns (HTTP transport,
// request construction, token generation) out of scope, exposing small types
// so the feature packages can depend on a stable center without cycles.
package core
