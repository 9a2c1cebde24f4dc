package component

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/convoai/core"
)

// Interface compliance (compile-time assertions)
var (
	_ Config = DeepgramASR{}
	_ Config = MicrosoftASR{}
	_ Config = OpenAILLM{}
	_ Config = ElevenLabsTTS{}
	_ Config = MicrosoftTTS{}
	_ Config = CartesiaTTS{}
	_ Config = OpenAITTS{}
	_ Config = Custom{}
)

func TestDefaults_CredentialOnly(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want map[string]any
	}{
		{
			name: "deepgram asr",
			cfg:  DeepgramASR{APIKey: "dg-key"},
			want: map[string]any{
				"url":      "wss://api.deepgram.com/v1/listen",
				"key":      "dg-key",
				"model":    "nova-2",
				"language": "en-US",
			},
		},
		{
			name: "microsoft asr",
			cfg:  MicrosoftASR{Key: "ms-key"},
			want: map[string]any{
				"key":      "ms-key",
				"region":   "eastus",
				"language": "en-US",
			},
		},
		{
			name: "openai llm",
			cfg:  OpenAILLM{APIKey: "sk-test"},
			want: map[string]any{
				"api_key":        "sk-test",
				"url":            "https://api.openai.com/v1",
				"model":          "gpt-4",
				"max_tokens":     1024,
				"max_history":    64,
				"system_message": "You are a helpful assistant.",
				"greeting":       "Hello, how can I help you?",
			},
		},
		{
			name: "elevenlabs tts",
			cfg:  ElevenLabsTTS{APIKey: "el-key"},
			want: map[string]any{
				"key":      "el-key",
				"model_id": "eleven_multilingual_v2",
				"voice_id": "pNInz6obpgDQGcFmaJgB",
			},
		},
		{
			name: "microsoft tts",
			cfg:  MicrosoftTTS{Key: "ms-key"},
			want: map[string]any{
				"key":         "ms-key",
				"region":      "eastus",
				"voice_name":  "en-US-JennyNeural",
				"speed":       1.0,
				"volume":      70.0,
				"sample_rate": 24000,
			},
		},
		{
			name: "cartesia tts",
			cfg:  CartesiaTTS{APIKey: "ca-key"},
			want: map[string]any{
				"api_key":  "ca-key",
				"model_id": "sonic-2",
			},
		},
		{
			name: "openai tts",
			cfg:  OpenAITTS{APIKey: "sk-test"},
			want: map[string]any{
				"api_key": "sk-test",
				"model":   "gpt-4o-mini-tts",
				"voice":   "alloy",
				"speed":   1.0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.NormalizedParams()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMissingCredential(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"deepgram asr", DeepgramASR{Model: "nova-3"}},
		{"microsoft asr", MicrosoftASR{Region: "westus"}},
		{"openai llm", OpenAILLM{Model: "gpt-4o"}},
		{"elevenlabs tts", ElevenLabsTTS{VoiceID: "abc"}},
		{"microsoft tts", MicrosoftTTS{Region: "westus"}},
		{"cartesia tts", CartesiaTTS{ModelID: "sonic-3"}},
		{"openai tts", OpenAITTS{Voice: "nova"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.NormalizedParams()
			var cfgErr *core.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
		})
	}
}

// mustJSON marshals normalized params for byte-level comparison; map keys are
// sorted by encoding/json, so equal maps produce equal bytes.
func mustJSON(t *testing.T, c Config) []byte {
	t.Helper()
	params, err := c.NormalizedParams()
	require.NoError(t, err)
	b, err := json.Marshal(params)
	require.NoError(t, err)
	return b
}

func TestDualInputEquivalence(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		typed Config
		plain map[string]any
	}{
		{
			name:  "deepgram asr",
			kind:  KindASR,
			typed: DeepgramASR{APIKey: "dg-key", Model: "nova-3"},
			plain: map[string]any{"vendor": "deepgram", "api_key": "dg-key", "model": "nova-3"},
		},
		{
			name:  "microsoft asr",
			kind:  KindASR,
			typed: MicrosoftASR{Key: "ms-key", Region: "westeurope"},
			plain: map[string]any{"vendor": "microsoft", "key": "ms-key", "region": "westeurope"},
		},
		{
			name:  "openai llm",
			kind:  KindLLM,
			typed: OpenAILLM{APIKey: "sk-test", Model: "gpt-4o", MaxTokens: 2048},
			plain: map[string]any{"api_key": "sk-test", "model": "gpt-4o", "max_tokens": 2048},
		},
		{
			name:  "elevenlabs tts",
			kind:  KindTTS,
			typed: ElevenLabsTTS{APIKey: "el-key", VoiceID: "v1"},
			plain: map[string]any{"vendor": "elevenlabs", "api_key": "el-key", "voice_id": "v1"},
		},
		{
			name:  "openai tts",
			kind:  KindTTS,
			typed: OpenAITTS{APIKey: "sk-test", Voice: "nova", Speed: 1.2},
			plain: map[string]any{"vendor": "openai", "api_key": "sk-test", "voice": "nova", "speed": 1.2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fromMap, err := Normalize(tt.kind, tt.plain)
			require.NoError(t, err)
			fromTyped, err := Normalize(tt.kind, tt.typed)
			require.NoError(t, err)

			assert.Equal(t, mustJSON(t, fromTyped), mustJSON(t, fromMap))
			assert.Equal(t, fromTyped.Vendor(), fromMap.Vendor())
		})
	}
}

func TestCustomPassThrough(t *testing.T) {
	raw := map[string]any{"api_key": "x", "foo": "bar"}

	cfg, err := TTSFromMap(map[string]any{"vendor": "custom", "params": raw})
	require.NoError(t, err)
	assert.Equal(t, "custom", cfg.Vendor())

	params, err := cfg.NormalizedParams()
	require.NoError(t, err)
	assert.Equal(t, raw, params)
}

func TestUnrecognizedVendor(t *testing.T) {
	_, err := ASRFromMap(map[string]any{"vendor": "acme", "api_key": "x"})
	var cfgErr *core.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "acme", cfgErr.Vendor)

	// With a params payload the same vendor is accepted via the escape hatch.
	cfg, err := ASRFromMap(map[string]any{"vendor": "acme", "params": map[string]any{"key": "x"}})
	require.NoError(t, err)
	assert.Equal(t, "acme", cfg.Vendor())
	assert.Equal(t, KindASR, cfg.Kind())
}

func TestMissingVendorTag(t *testing.T) {
	var cfgErr *core.ConfigurationError

	_, err := ASRFromMap(map[string]any{"api_key": "x"})
	require.ErrorAs(t, err, &cfgErr)

	_, err = TTSFromMap(map[string]any{"api_key": "x"})
	require.ErrorAs(t, err, &cfgErr)
}

func TestNormalize_KindMismatch(t *testing.T) {
	_, err := Normalize(KindTTS, DeepgramASR{APIKey: "x"})
	var cfgErr *core.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestNormalize_Nil(t *testing.T) {
	_, err := Normalize(KindASR, nil)
	var cfgErr *core.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}
