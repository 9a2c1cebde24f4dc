// Package component defines the per-vendor configuration records for the
// speech recognition (ASR), language model (LLM) and speech synthesis (TTS)
// modules of a Conversational AI agent.
//
// Each record holds a vendor tag plus typed fields with documented defaults;
// constructing a record with only its credential yields a fully usable
// configuration. NormalizedParams translates the record into the exact
// parameter mapping the join API expects for that vendor (including
// field-name translation such as api_key -> key).
//
// Two construction paths produce identical normalized output:
//
//	component.DeepgramASR{APIKey: "x"}
//	component.ASRFromMap(map[string]any{"vendor": "deepgram", "api_key": "x"})
//
// Unsupported vendors go through the Custom escape hatch, which passes a raw
// parameter mapping to the wire unmodified and is the only variant that
// bypasses field validation.
package component
