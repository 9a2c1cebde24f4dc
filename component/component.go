package component

import (
	"fmt"

	"github.com/hupe1980/convoai/core"
)

// Kind identifies which agent module a configuration belongs to.
type Kind string

const (
	// KindASR marks speech recognition configurations.
	KindASR Kind = "asr"
	// KindLLM marks language model configurations.
	KindLLM Kind = "llm"
	// KindTTS marks speech synthesis configurations.
	KindTTS Kind = "tts"
)

// Config is implemented by every vendor configuration record.
type Config interface {
	// Kind returns the agent module this configuration targets.
	Kind() Kind
	// Vendor returns the wire vendor tag.
	Vendor() string
	// NormalizedParams returns the vendor parameter mapping in the exact
	// shape the join API expects, with defaults applied. It fails with a
	// ConfigurationError when the required credential field is missing.
	NormalizedParams() (map[string]any, error)
}

// Custom is the escape hatch for vendors the SDK does not model. It carries
// an arbitrary vendor tag and a raw parameter mapping that is passed to the
// wire unmodified; no field validation or defaulting is applied.
type Custom struct {
	kind       Kind
	VendorName string
	Params     map[string]any
}

// NewCustom creates a pass-through configuration for an unlisted vendor.
func NewCustom(kind Kind, vendor string, params map[string]any) Custom {
	return Custom{kind: kind, VendorName: vendor, Params: params}
}

// Kind implements Config.
func (c Custom) Kind() Kind { return c.kind }

// Vendor implements Config.
func (c Custom) Vendor() string { return c.VendorName }

// NormalizedParams implements Config. Pure pass-through.
func (c Custom) NormalizedParams() (map[string]any, error) {
	return c.Params, nil
}

// Normalize accepts either a typed Config or an equivalent plain mapping and
// returns the typed form. This is the single entry point behind the dual
// typed-or-map construction path: both inputs yield identical normalized
// output. A mapping with an unrecognized vendor tag is only accepted when it
// carries a raw "params" payload (the Custom path).
func Normalize(kind Kind, v any) (Config, error) {
	switch c := v.(type) {
	case Config:
		if c.Kind() != kind {
			return nil, &core.ConfigurationError{Vendor: c.Vendor(), Message: fmt.Sprintf("%s config supplied where %s expected", c.Kind(), kind)}
		}
		return c, nil
	case map[string]any:
		switch kind {
		case KindASR:
			return ASRFromMap(c)
		case KindLLM:
			return LLMFromMap(c)
		case KindTTS:
			return TTSFromMap(c)
		default:
			return nil, &core.ConfigurationError{Message: fmt.Sprintf("unknown component kind %q", kind)}
		}
	case nil:
		return nil, &core.ConfigurationError{Message: fmt.Sprintf("%s config is required", kind)}
	default:
		return nil, &core.ConfigurationError{Message: fmt.Sprintf("unsupported %s config type %T", kind, v)}
	}
}

// customFromMap handles the map-input escape hatch shared by the ASR/TTS
// dispatchers: an unrecognized vendor tag is accepted only with a raw params
// payload.
func customFromMap(kind Kind, vendor string, m map[string]any) (Config, error) {
	raw, ok := m["params"].(map[string]any)
	if !ok {
		return nil, &core.ConfigurationError{Vendor: vendor, Message: "unrecognized vendor and no params payload supplied"}
	}
	return NewCustom(kind, vendor, raw), nil
}

func stringOr(m map[string]any, key, fallback string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// intOr tolerates float64 because values arriving via encoding/json decode
// numbers that way.
func intOr(m map[string]any, key string, fallback int) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}

func floatOr(m map[string]any, key string, fallback float64) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return fallback
	}
}
