package agent

import "encoding/json"

// JoinRequest is the full body of a join call: a unique agent name plus the
// agent properties. It is built fresh per call and never mutated afterwards.
type JoinRequest struct {
	// Name uniquely identifies the agent instance. The service rejects reuse.
	Name       string          `json:"name"`
	Properties *JoinProperties `json:"properties"`
}

// JoinProperties configures the agent joining the RTC channel.
type JoinProperties struct {
	// Token authorizes the agent to join the channel.
	Token string `json:"token"`
	// Channel is the RTC channel name the agent joins.
	Channel string `json:"channel"`
	// AgentRTCUID is the agent's uid inside the channel.
	AgentRTCUID string `json:"agent_rtc_uid"`
	// RemoteRTCUIDs lists the uids the agent subscribes to, in caller order.
	// ["*"] subscribes to all users.
	RemoteRTCUIDs []string `json:"remote_rtc_uids"`
	// EnableStringUID enables string uids in the channel.
	EnableStringUID bool `json:"enable_string_uid"`
	// IdleTimeout is the maximum idle time of the channel in seconds.
	IdleTimeout int `json:"idle_timeout,omitempty"`
	// SilenceTimeout is the maximum silence time of the agent in seconds.
	SilenceTimeout int `json:"silence_timeout,omitempty"`

	AdvancedFeatures *AdvancedFeatures `json:"advanced_features,omitempty"`
	LLM              *LLMBody          `json:"llm,omitempty"`
	TTS              *TTSBody          `json:"tts,omitempty"`
	ASR              *ASRBody          `json:"asr,omitempty"`
	TurnDetection    *TurnDetection    `json:"turn_detection,omitempty"`
	Parameters       *Parameters       `json:"parameters,omitempty"`
}

// LLMBody is the language model block of the join properties. The endpoint
// must speak the OpenAI chat completion protocol.
type LLMBody struct {
	URL              string           `json:"url"`
	APIKey           string           `json:"api_key"`
	SystemMessages   []map[string]any `json:"system_messages,omitempty"`
	Params           map[string]any   `json:"params,omitempty"`
	MaxHistory       int              `json:"max_history,omitempty"`
	GreetingMessage  string           `json:"greeting_message,omitempty"`
	InputModalities  []string         `json:"input_modalities,omitempty"`
	OutputModalities []string         `json:"output_modalities,omitempty"`
	FailureMessage   string           `json:"failure_message,omitempty"`
}

// TTSBody is the speech synthesis block of the join properties.
type TTSBody struct {
	Vendor string         `json:"vendor"`
	Params map[string]any `json:"params"`
	// SkipPatterns controls which bracketed content the TTS skips when
	// reading LLM output (1: （）, 2: 【】, 3: (), 4: [], 5: {}).
	SkipPatterns []int `json:"skip_patterns,omitempty"`
}

// ASRBody is the speech recognition block of the join properties.
type ASRBody struct {
	Language string         `json:"language,omitempty"`
	Vendor   string         `json:"vendor"`
	Params   map[string]any `json:"params"`
}

// AdvancedFeatures toggles optional engine capabilities.
type AdvancedFeatures struct {
	// EnableAIVAD enables graceful interruption for natural conversations.
	EnableAIVAD bool `json:"enable_aivad"`
	// EnableRTM enables the Real-time Messaging module.
	EnableRTM bool `json:"enable_rtm"`
	// EnableSAL enables Speaker Adaptive Learning.
	EnableSAL bool `json:"enable_sal"`
}

// TurnDetection tunes conversation turn detection.
type TurnDetection struct {
	// Type selects the detection mechanism: agora_vad, server_vad or semantic_vad.
	Type string `json:"type,omitempty"`
	// InterruptMode is one of interrupt, append or ignore.
	InterruptMode string `json:"interrupt_mode,omitempty"`
	// InterruptDurationMS is how long the user's voice must exceed the
	// threshold before an interrupt fires.
	InterruptDurationMS int `json:"interrupt_duration_ms,omitempty"`
	// PrefixPaddingMS is extra forward padding before processing speech.
	PrefixPaddingMS int `json:"prefix_padding_ms,omitempty"`
	// SilenceDurationMS is the silence window that closes a turn.
	SilenceDurationMS int `json:"silence_duration_ms,omitempty"`
	// Threshold is the voice activity sensitivity, in (0.0, 1.0).
	Threshold float64 `json:"threshold,omitempty"`
}

// SilenceConfig controls agent behavior during prolonged silence.
type SilenceConfig struct {
	// TimeoutMS is the maximum silence time in ms, in (0, 60000].
	TimeoutMS int `json:"timeout_ms,omitempty"`
	// Action is speak or think.
	Action string `json:"action,omitempty"`
	// Content is the silence message.
	Content string `json:"content,omitempty"`
}

// FixedParams are the type-safe engine parameters.
type FixedParams struct {
	SilenceConfig *SilenceConfig `json:"silence_config,omitempty"`
	// DataChannel selects the transmission channel: rtm or datastream.
	DataChannel string `json:"data_channel,omitempty"`
	// EnableMetrics opts into agent performance data.
	EnableMetrics bool `json:"enable_metrics,omitempty"`
	// EnableErrorMessage opts into agent error events.
	EnableErrorMessage bool `json:"enable_error_message,omitempty"`
}

// Parameters combines type-safe fixed parameters with free-form extras.
// On the wire both are flattened into one object; an extra key overrides a
// fixed one of the same name.
type Parameters struct {
	FixedParams *FixedParams
	ExtraParams map[string]any
}

// MarshalJSON implements the flatten-and-merge wire shape.
func (p Parameters) MarshalJSON() ([]byte, error) {
	merged := map[string]any{}
	if p.FixedParams != nil {
		fixed, err := json.Marshal(p.FixedParams)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(fixed, &merged); err != nil {
			return nil, err
		}
	}
	for k, v := range p.ExtraParams {
		merged[k] = v
	}
	return json.Marshal(merged)
}
