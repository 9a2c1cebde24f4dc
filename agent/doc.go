// Package agent assembles the join request body for the Conversational AI
// engine. It defines the wire types of the join properties (LLM/TTS/ASR
// blocks, advanced features, turn detection, parameters) and a property
// builder that merges a generated token, channel identifiers and the three
// normalized vendor configurations into one request, applying the documented
// defaults for every unset field.
//
// The builder is a pure transformation: it performs no I/O and allocates a
// fresh request per call.
package agent
