package component

import "github.com/hupe1980/convoai/core"

// ASR vendor tags.
const (
	ASRVendorDeepgram  = "deepgram"
	ASRVendorMicrosoft = "microsoft"
)

// Deepgram defaults.
const (
	DefaultDeepgramURL      = "wss://api.deepgram.com/v1/listen"
	DefaultDeepgramModel    = "nova-2"
	DefaultDeepgramLanguage = "en-US"
)

// DeepgramASR configures Deepgram speech recognition. Only APIKey is
// required; every other field has a usable default.
type DeepgramASR struct {
	// APIKey authenticates against Deepgram (required).
	APIKey string
	// URL is the streaming endpoint. Defaults to DefaultDeepgramURL.
	URL string
	// Model selects the recognition model. Defaults to DefaultDeepgramModel.
	Model string
	// Language is the recognition language. Defaults to DefaultDeepgramLanguage.
	Language string
}

// Kind implements Config.
func (c DeepgramASR) Kind() Kind { return KindASR }

// Vendor implements Config.
func (c DeepgramASR) Vendor() string { return ASRVendorDeepgram }

// NormalizedParams implements Config.
func (c DeepgramASR) NormalizedParams() (map[string]any, error) {
	if c.APIKey == "" {
		return nil, &core.ConfigurationError{Vendor: ASRVendorDeepgram, Message: "api_key is required"}
	}
	params := map[string]any{
		"url":      DefaultDeepgramURL,
		"key":      c.APIKey,
		"model":    DefaultDeepgramModel,
		"language": DefaultDeepgramLanguage,
	}
	if c.URL != "" {
		params["url"] = c.URL
	}
	if c.Model != "" {
		params["model"] = c.Model
	}
	if c.Language != "" {
		params["language"] = c.Language
	}
	return params, nil
}

// Microsoft ASR defaults.
const (
	DefaultMicrosoftASRRegion   = "eastus"
	DefaultMicrosoftASRLanguage = "en-US"
)

// MicrosoftASR configures Azure speech recognition. Only Key is required.
type MicrosoftASR struct {
	// Key authenticates against the Azure speech service (required).
	Key string
	// Region is the Azure region hosting the service. Defaults to DefaultMicrosoftASRRegion.
	Region string
	// Language is the recognition language. Defaults to DefaultMicrosoftASRLanguage.
	Language string
	// PhraseList biases recognition toward the given phrases.
	PhraseList []string
}

// Kind implements Config.
func (c MicrosoftASR) Kind() Kind { return KindASR }

// Vendor implements Config.
func (c MicrosoftASR) Vendor() string { return ASRVendorMicrosoft }

// NormalizedParams implements Config.
func (c MicrosoftASR) NormalizedParams() (map[string]any, error) {
	if c.Key == "" {
		return nil, &core.ConfigurationError{Vendor: ASRVendorMicrosoft, Message: "key is required"}
	}
	params := map[string]any{
		"key":      c.Key,
		"region":   DefaultMicrosoftASRRegion,
		"language": DefaultMicrosoftASRLanguage,
	}
	if c.Region != "" {
		params["region"] = c.Region
	}
	if c.Language != "" {
		params["language"] = c.Language
	}
	if len(c.PhraseList) > 0 {
		params["phrase_list"] = c.PhraseList
	}
	return params, nil
}

// ASRFromMap builds a typed ASR configuration from a plain mapping. The
// mapping uses wire-adjacent keys ("vendor", "api_key", "model", ...);
// recognized vendors are translated into their typed records so the result
// is identical to typed construction. Unrecognized vendors fall through to
// the Custom escape hatch when a "params" payload is present.
func ASRFromMap(m map[string]any) (Config, error) {
	vendor, _ := m["vendor"].(string)
	switch vendor {
	case ASRVendorDeepgram:
		return DeepgramASR{
			APIKey:   stringOr(m, "api_key", ""),
			URL:      stringOr(m, "url", ""),
			Model:    stringOr(m, "model", ""),
			Language: stringOr(m, "language", ""),
		}, nil
	case ASRVendorMicrosoft:
		cfg := MicrosoftASR{
			Key:      stringOr(m, "key", stringOr(m, "api_key", "")),
			Region:   stringOr(m, "region", ""),
			Language: stringOr(m, "language", ""),
		}
		if phrases, ok := m["phrase_list"].([]string); ok {
			cfg.PhraseList = phrases
		}
		return cfg, nil
	case "":
		return nil, &core.ConfigurationError{Message: "asr config requires a vendor tag"}
	default:
		return customFromMap(KindASR, vendor, m)
	}
}
