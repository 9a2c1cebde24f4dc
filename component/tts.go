package component

import "github.com/hupe1980/convoai/core"

// TTS vendor tags.
const (
	TTSVendorElevenLabs = "elevenlabs"
	TTSVendorMicrosoft  = "microsoft"
	TTSVendorCartesia   = "cartesia"
	TTSVendorOpenAI     = "openai"
)

// ElevenLabs defaults.
const (
	DefaultElevenLabsModelID = "eleven_multilingual_v2"
	DefaultElevenLabsVoiceID = "pNInz6obpgDQGcFmaJgB"
)

// ElevenLabsTTS configures ElevenLabs speech synthesis. Only APIKey is
// required.
type ElevenLabsTTS struct {
	// APIKey authenticates against ElevenLabs (required).
	APIKey string
	// ModelID selects the synthesis model. Defaults to DefaultElevenLabsModelID.
	ModelID string
	// VoiceID selects the voice. Defaults to DefaultElevenLabsVoiceID.
	VoiceID string
}

// Kind implements Config.
func (c ElevenLabsTTS) Kind() Kind { return KindTTS }

// Vendor implements Config.
func (c ElevenLabsTTS) Vendor() string { return TTSVendorElevenLabs }

// NormalizedParams implements Config.
func (c ElevenLabsTTS) NormalizedParams() (map[string]any, error) {
	if c.APIKey == "" {
		return nil, &core.ConfigurationError{Vendor: TTSVendorElevenLabs, Message: "api_key is required"}
	}
	params := map[string]any{
		"key":      c.APIKey,
		"model_id": DefaultElevenLabsModelID,
		"voice_id": DefaultElevenLabsVoiceID,
	}
	if c.ModelID != "" {
		params["model_id"] = c.ModelID
	}
	if c.VoiceID != "" {
		params["voice_id"] = c.VoiceID
	}
	return params, nil
}

// Microsoft TTS defaults.
const (
	DefaultMicrosoftTTSRegion     = "eastus"
	DefaultMicrosoftTTSVoiceName  = "en-US-JennyNeural"
	DefaultMicrosoftTTSSpeed      = 1.0
	DefaultMicrosoftTTSVolume     = 70.0
	DefaultMicrosoftTTSSampleRate = 24000
)

// MicrosoftTTS configures Azure speech synthesis. Only Key is required.
type MicrosoftTTS struct {
	// Key authenticates against the Azure speech service (required).
	Key string
	// Region is the Azure region hosting the service. Defaults to DefaultMicrosoftTTSRegion.
	Region string
	// VoiceName selects the synthesis voice. Defaults to DefaultMicrosoftTTSVoiceName.
	VoiceName string
	// Speed is the speaking rate, 0.5 to 2.0. Defaults to DefaultMicrosoftTTSSpeed.
	Speed float64
	// Volume is the audio volume, 0.0 to 100.0. Defaults to DefaultMicrosoftTTSVolume.
	Volume float64
	// SampleRate is the audio sampling rate in Hz. Defaults to DefaultMicrosoftTTSSampleRate.
	SampleRate int
}

// Kind implements Config.
func (c MicrosoftTTS) Kind() Kind { return KindTTS }

// Vendor implements Config.
func (c MicrosoftTTS) Vendor() string { return TTSVendorMicrosoft }

// NormalizedParams implements Config.
func (c MicrosoftTTS) NormalizedParams() (map[string]any, error) {
	if c.Key == "" {
		return nil, &core.ConfigurationError{Vendor: TTSVendorMicrosoft, Message: "key is required"}
	}
	params := map[string]any{
		"key":         c.Key,
		"region":      DefaultMicrosoftTTSRegion,
		"voice_name":  DefaultMicrosoftTTSVoiceName,
		"speed":       DefaultMicrosoftTTSSpeed,
		"volume":      DefaultMicrosoftTTSVolume,
		"sample_rate": DefaultMicrosoftTTSSampleRate,
	}
	if c.Region != "" {
		params["region"] = c.Region
	}
	if c.VoiceName != "" {
		params["voice_name"] = c.VoiceName
	}
	if c.Speed > 0 {
		params["speed"] = c.Speed
	}
	if c.Volume > 0 {
		params["volume"] = c.Volume
	}
	if c.SampleRate > 0 {
		params["sample_rate"] = c.SampleRate
	}
	return params, nil
}

// Cartesia defaults.
const (
	DefaultCartesiaModelID   = "sonic-2"
	DefaultCartesiaVoiceMode = "id"
)

// CartesiaTTS configures Cartesia speech synthesis. Only APIKey is required;
// the voice block is omitted from the wire when no VoiceID is set.
type CartesiaTTS struct {
	// APIKey authenticates against Cartesia (required).
	APIKey string
	// ModelID selects the synthesis model. Defaults to DefaultCartesiaModelID.
	ModelID string
	// VoiceMode is how VoiceID is interpreted. Defaults to DefaultCartesiaVoiceMode.
	VoiceMode string
	// VoiceID selects the voice. Optional.
	VoiceID string
}

// Kind implements Config.
func (c CartesiaTTS) Kind() Kind { return KindTTS }

// Vendor implements Config.
func (c CartesiaTTS) Vendor() string { return TTSVendorCartesia }

// NormalizedParams implements Config.
func (c CartesiaTTS) NormalizedParams() (map[string]any, error) {
	if c.APIKey == "" {
		return nil, &core.ConfigurationError{Vendor: TTSVendorCartesia, Message: "api_key is required"}
	}
	params := map[string]any{
		"api_key":  c.APIKey,
		"model_id": DefaultCartesiaModelID,
	}
	if c.ModelID != "" {
		params["model_id"] = c.ModelID
	}
	if c.VoiceID != "" {
		mode := c.VoiceMode
		if mode == "" {
			mode = DefaultCartesiaVoiceMode
		}
		params["voice"] = map[string]any{"mode": mode, "id": c.VoiceID}
	}
	return params, nil
}

// OpenAI TTS defaults.
const (
	DefaultOpenAITTSModel = "gpt-4o-mini-tts"
	DefaultOpenAITTSVoice = "alloy"
	DefaultOpenAITTSSpeed = 1.0
)

// OpenAITTS configures OpenAI speech synthesis. Only APIKey is required.
type OpenAITTS struct {
	// APIKey authenticates against OpenAI (required).
	APIKey string
	// Model selects the synthesis model. Defaults to DefaultOpenAITTSModel.
	Model string
	// Voice selects the voice. Defaults to DefaultOpenAITTSVoice.
	Voice string
	// Instructions steer delivery style. Optional.
	Instructions string
	// Speed is the speaking rate. Defaults to DefaultOpenAITTSSpeed.
	Speed float64
}

// Kind implements Config.
func (c OpenAITTS) Kind() Kind { return KindTTS }

// Vendor implements Config.
func (c OpenAITTS) Vendor() string { return TTSVendorOpenAI }

// NormalizedParams implements Config.
func (c OpenAITTS) NormalizedParams() (map[string]any, error) {
	if c.APIKey == "" {
		return nil, &core.ConfigurationError{Vendor: TTSVendorOpenAI, Message: "api_key is required"}
	}
	params := map[string]any{
		"api_key": c.APIKey,
		"model":   DefaultOpenAITTSModel,
		"voice":   DefaultOpenAITTSVoice,
		"speed":   DefaultOpenAITTSSpeed,
	}
	if c.Model != "" {
		params["model"] = c.Model
	}
	if c.Voice != "" {
		params["voice"] = c.Voice
	}
	if c.Instructions != "" {
		params["instructions"] = c.Instructions
	}
	if c.Speed > 0 {
		params["speed"] = c.Speed
	}
	return params, nil
}

// TTSFromMap builds a typed TTS configuration from a plain mapping,
// dispatching on the vendor tag. Unrecognized vendors fall through to the
// Custom escape hatch when a "params" payload is present.
func TTSFromMap(m map[string]any) (Config, error) {
	vendor, _ := m["vendor"].(string)
	switch vendor {
	case TTSVendorElevenLabs:
		return ElevenLabsTTS{
			APIKey:  stringOr(m, "api_key", ""),
			ModelID: stringOr(m, "model_id", ""),
			VoiceID: stringOr(m, "voice_id", ""),
		}, nil
	case TTSVendorMicrosoft:
		return MicrosoftTTS{
			Key:        stringOr(m, "key", stringOr(m, "api_key", "")),
			Region:     stringOr(m, "region", ""),
			VoiceName:  stringOr(m, "voice_name", ""),
			Speed:      floatOr(m, "speed", 0),
			Volume:     floatOr(m, "volume", 0),
			SampleRate: intOr(m, "sample_rate", 0),
		}, nil
	case TTSVendorCartesia:
		return CartesiaTTS{
			APIKey:    stringOr(m, "api_key", ""),
			ModelID:   stringOr(m, "model_id", ""),
			VoiceMode: stringOr(m, "voice_mode", ""),
			VoiceID:   stringOr(m, "voice_id", ""),
		}, nil
	case TTSVendorOpenAI:
		return OpenAITTS{
			APIKey:       stringOr(m, "api_key", ""),
			Model:        stringOr(m, "model", ""),
			Voice:        stringOr(m, "voice", ""),
			Instructions: stringOr(m, "instructions", ""),
			Speed:        floatOr(m, "speed", 0),
		}, nil
	case "":
		return nil, &core.ConfigurationError{Message: "tts config requires a vendor tag"}
	default:
		return customFromMap(KindTTS, vendor, m)
	}
}
