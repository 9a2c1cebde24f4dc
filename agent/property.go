package agent

import (
	"github.com/hupe1980/convoai/component"
	"github.com/hupe1980/convoai/core"
)

// Defaults applied by the property builder when no override is given.
const (
	DefaultIdleTimeout    = 120
	DefaultSilenceTimeout = 30

	DefaultTurnDetectionType  = "agora_vad"
	DefaultInterruptDuration  = 160
	DefaultPrefixPadding      = 300
	DefaultSilenceDuration    = 480
	DefaultThreshold          = 0.5
	DefaultDataChannel        = "rtm"
	DefaultLLMInputModality   = "text"
	DefaultLLMOutputModality  = "text"
	DefaultSystemMessageRole  = "system"
	DefaultGreetingFallback   = "Hello, how can I help you?"
	DefaultSystemMsgFallback  = "You are a helpful assistant."
	DefaultLLMMaxTokensOnWire = 1024
	DefaultLLMMaxHistory      = 64
)

// BuildOptions overrides the defaulted parts of the join properties.
type BuildOptions struct {
	// IdleTimeout overrides the channel idle timeout in seconds.
	IdleTimeout int
	// SilenceTimeout overrides the agent silence timeout in seconds.
	SilenceTimeout int
	// EnableStringUID enables string uids in the channel.
	EnableStringUID bool
	// ASRLanguage sets the top-level interaction language of the ASR block.
	ASRLanguage string
	// AdvancedFeatures replaces the default feature toggles (AIVAD, RTM, SAL on).
	AdvancedFeatures *AdvancedFeatures
	// TurnDetection replaces the default turn detection tuning.
	TurnDetection *TurnDetection
	// Parameters replaces the default engine parameters.
	Parameters *Parameters
	// TTSSkipPatterns sets the bracketed-content skip list of the TTS block.
	TTSSkipPatterns []int
}

// BuildJoinProperties merges a generated token, channel identifiers and the
// three vendor configurations into one join properties body. The vendor
// arguments accept either typed component configs or equivalent plain
// mappings; both yield identical output. remoteUIDs is carried through in
// caller order, untouched.
//
// Validation failures return a ValidationError naming the offending field;
// vendor configuration failures are propagated as returned by the component
// package, not re-wrapped.
func BuildJoinProperties(token, channel, agentUID string, remoteUIDs []string, asr, llm, tts any, optFns ...func(o *BuildOptions)) (*JoinProperties, error) {
	if token == "" {
		return nil, &core.ValidationError{Field: "token", Message: "cannot be empty"}
	}
	if channel == "" {
		return nil, &core.ValidationError{Field: "channel_name", Message: "cannot be empty"}
	}
	if agentUID == "" {
		return nil, &core.ValidationError{Field: "agent_rtc_uid", Message: "cannot be empty"}
	}
	for _, uid := range remoteUIDs {
		if uid == agentUID {
			return nil, &core.ValidationError{Field: "agent_rtc_uid", Message: "must not appear in remote_rtc_uids"}
		}
	}

	opts := BuildOptions{
		IdleTimeout:    DefaultIdleTimeout,
		SilenceTimeout: DefaultSilenceTimeout,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	asrBody, err := buildASR(asr, opts.ASRLanguage)
	if err != nil {
		return nil, err
	}
	llmBody, err := buildLLM(llm)
	if err != nil {
		return nil, err
	}
	ttsBody, err := buildTTS(tts, opts.TTSSkipPatterns)
	if err != nil {
		return nil, err
	}

	// Fresh copy so later caller mutations cannot reach the request.
	uids := make([]string, len(remoteUIDs))
	copy(uids, remoteUIDs)

	return &JoinProperties{
		Token:            token,
		Channel:          channel,
		AgentRTCUID:      agentUID,
		RemoteRTCUIDs:    uids,
		EnableStringUID:  opts.EnableStringUID,
		IdleTimeout:      opts.IdleTimeout,
		SilenceTimeout:   opts.SilenceTimeout,
		AdvancedFeatures: defaultAdvancedFeatures(opts.AdvancedFeatures),
		LLM:              llmBody,
		TTS:              ttsBody,
		ASR:              asrBody,
		TurnDetection:    defaultTurnDetection(opts.TurnDetection),
		Parameters:       defaultParameters(opts.Parameters),
	}, nil
}

// BuildJoinRequest wraps properties with the unique agent name.
func BuildJoinRequest(name string, properties *JoinProperties) (*JoinRequest, error) {
	if name == "" {
		return nil, &core.ValidationError{Field: "name", Message: "cannot be empty"}
	}
	if properties == nil {
		return nil, &core.ValidationError{Field: "properties", Message: "cannot be nil"}
	}
	return &JoinRequest{Name: name, Properties: properties}, nil
}

func buildASR(v any, language string) (*ASRBody, error) {
	cfg, err := component.Normalize(component.KindASR, v)
	if err != nil {
		return nil, err
	}
	params, err := cfg.NormalizedParams()
	if err != nil {
		return nil, err
	}
	return &ASRBody{Language: language, Vendor: cfg.Vendor(), Params: params}, nil
}

func buildTTS(v any, skipPatterns []int) (*TTSBody, error) {
	cfg, err := component.Normalize(component.KindTTS, v)
	if err != nil {
		return nil, err
	}
	params, err := cfg.NormalizedParams()
	if err != nil {
		return nil, err
	}
	return &TTSBody{Vendor: cfg.Vendor(), Params: params, SkipPatterns: skipPatterns}, nil
}

// buildLLM maps the flat normalized LLM params onto the structured wire
// block: url/api_key at the top level, model and token budget inside params,
// prompt and greeting as messages. Keys outside the known set (the Custom
// path) are forwarded inside params.
func buildLLM(v any) (*LLMBody, error) {
	cfg, err := component.Normalize(component.KindLLM, v)
	if err != nil {
		return nil, err
	}
	normalized, err := cfg.NormalizedParams()
	if err != nil {
		return nil, err
	}

	apiKey := paramString(normalized, "api_key")
	if apiKey == "" {
		return nil, &core.ConfigurationError{Vendor: cfg.Vendor(), Message: "api_key is required"}
	}

	systemMessage := paramStringOr(normalized, "system_message", DefaultSystemMsgFallback)
	greeting := paramStringOr(normalized, "greeting", DefaultGreetingFallback)

	params := map[string]any{
		"max_tokens": paramIntOr(normalized, "max_tokens", DefaultLLMMaxTokensOnWire),
	}
	if model := paramString(normalized, "model"); model != "" {
		params["model"] = model
	}
	for k, v := range normalized {
		switch k {
		case "api_key", "url", "model", "max_tokens", "max_history", "system_message", "greeting":
		default:
			params[k] = v
		}
	}

	return &LLMBody{
		URL:              paramString(normalized, "url"),
		APIKey:           apiKey,
		SystemMessages:   []map[string]any{{"role": DefaultSystemMessageRole, "content": systemMessage}},
		Params:           params,
		MaxHistory:       paramIntOr(normalized, "max_history", DefaultLLMMaxHistory),
		GreetingMessage:  greeting,
		InputModalities:  []string{DefaultLLMInputModality},
		OutputModalities: []string{DefaultLLMOutputModality},
	}, nil
}

func defaultAdvancedFeatures(override *AdvancedFeatures) *AdvancedFeatures {
	if override != nil {
		return override
	}
	return &AdvancedFeatures{EnableAIVAD: true, EnableRTM: true, EnableSAL: true}
}

func defaultTurnDetection(override *TurnDetection) *TurnDetection {
	if override != nil {
		return override
	}
	return &TurnDetection{
		Type:                DefaultTurnDetectionType,
		InterruptDurationMS: DefaultInterruptDuration,
		PrefixPaddingMS:     DefaultPrefixPadding,
		SilenceDurationMS:   DefaultSilenceDuration,
		Threshold:           DefaultThreshold,
	}
}

func defaultParameters(override *Parameters) *Parameters {
	if override != nil {
		return override
	}
	return &Parameters{
		FixedParams: &FixedParams{
			DataChannel:        DefaultDataChannel,
			EnableMetrics:      true,
			EnableErrorMessage: true,
		},
	}
}

func paramString(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return v
}

func paramStringOr(m map[string]any, key, fallback string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func paramIntOr(m map[string]any, key string, fallback int) int {
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
