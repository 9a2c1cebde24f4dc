package component

import "github.com/hupe1980/convoai/core"

// LLMVendorOpenAI tags the OpenAI-compatible language model configuration.
// The join API drives any OpenAI-protocol endpoint; there is no per-vendor
// LLM schema beyond this one.
const LLMVendorOpenAI = "openai"

// OpenAI-compatible LLM defaults.
const (
	DefaultLLMURL           = "https://api.openai.com/v1"
	DefaultLLMModel         = "gpt-4"
	DefaultLLMMaxTokens     = 1024
	DefaultLLMMaxHistory    = 64
	DefaultLLMSystemMessage = "You are a helpful assistant."
	DefaultLLMGreeting      = "Hello, how can I help you?"
)

// OpenAILLM configures the agent's language model against any endpoint that
// speaks the OpenAI chat completion protocol. Only APIKey is required.
type OpenAILLM struct {
	// APIKey authenticates against the LLM endpoint (required).
	APIKey string
	// URL is the OpenAI-compatible base URL. Defaults to DefaultLLMURL.
	URL string
	// Model names the chat model. Defaults to DefaultLLMModel.
	Model string
	// MaxTokens caps a single completion. Defaults to DefaultLLMMaxTokens.
	MaxTokens int
	// MaxHistory is the number of short-term memory entries cached in the
	// LLM. Defaults to DefaultLLMMaxHistory.
	MaxHistory int
	// SystemMessage is prepended to every LLM call. Defaults to DefaultLLMSystemMessage.
	SystemMessage string
	// Greeting is spoken to the first subscribed user. Defaults to DefaultLLMGreeting.
	Greeting string
}

// Kind implements Config.
func (c OpenAILLM) Kind() Kind { return KindLLM }

// Vendor implements Config.
func (c OpenAILLM) Vendor() string { return LLMVendorOpenAI }

// NormalizedParams implements Config.
func (c OpenAILLM) NormalizedParams() (map[string]any, error) {
	if c.APIKey == "" {
		return nil, &core.ConfigurationError{Vendor: LLMVendorOpenAI, Message: "api_key is required"}
	}
	params := map[string]any{
		"api_key":        c.APIKey,
		"url":            DefaultLLMURL,
		"model":          DefaultLLMModel,
		"max_tokens":     DefaultLLMMaxTokens,
		"max_history":    DefaultLLMMaxHistory,
		"system_message": DefaultLLMSystemMessage,
		"greeting":       DefaultLLMGreeting,
	}
	if c.URL != "" {
		params["url"] = c.URL
	}
	if c.Model != "" {
		params["model"] = c.Model
	}
	if c.MaxTokens > 0 {
		params["max_tokens"] = c.MaxTokens
	}
	if c.MaxHistory > 0 {
		params["max_history"] = c.MaxHistory
	}
	if c.SystemMessage != "" {
		params["system_message"] = c.SystemMessage
	}
	if c.Greeting != "" {
		params["greeting"] = c.Greeting
	}
	return params, nil
}

// LLMFromMap builds a typed LLM configuration from a plain mapping. The LLM
// schema is OpenAI-compatible only, so no vendor dispatch happens here; a
// "params" payload with an explicit unrecognized vendor tag still reaches
// the Custom escape hatch.
func LLMFromMap(m map[string]any) (Config, error) {
	if vendor, _ := m["vendor"].(string); vendor != "" && vendor != LLMVendorOpenAI {
		return customFromMap(KindLLM, vendor, m)
	}
	return OpenAILLM{
		APIKey:        stringOr(m, "api_key", ""),
		URL:           stringOr(m, "url", ""),
		Model:         stringOr(m, "model", ""),
		MaxTokens:     intOr(m, "max_tokens", 0),
		MaxHistory:    intOr(m, "max_history", 0),
		SystemMessage: stringOr(m, "system_message", ""),
		Greeting:      stringOr(m, "greeting", ""),
	}, nil
}
