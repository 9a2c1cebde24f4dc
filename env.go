package convoai

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/hupe1980/convoai/core"
)

// EnvConfig is the set of credentials read from the environment. Agora
// credentials are required; the vendor keys are optional and empty when the
// corresponding variable is unset.
type EnvConfig struct {
	AppID          string
	AppCertificate string
	CustomerID     string
	CustomerSecret string

	// LLMAPIKey is read from LLM_API_KEY.
	LLMAPIKey string
	// ElevenLabsAPIKey is read from TTS_ELEVENLABS_API_KEY.
	ElevenLabsAPIKey string
	// DeepgramAPIKey is read from ASR_DEEPGRAM_API_KEY.
	DeepgramAPIKey string
}

// LoadEnvConfig reads credentials from the environment. A .env.local or .env
// file in the working directory is loaded first without overriding variables
// that are already set. Each Agora variable is resolved through a prefix
// fallback chain: VITE_AG_<KEY>, then AGORA_<KEY>, then the bare <KEY>;
// CUSTOMER_ID and CUSTOMER_SECRET additionally fall back to API_KEY and
// API_SECRET.
func LoadEnvConfig() (*EnvConfig, error) {
	for _, name := range []string{".env.local", ".env"} {
		if _, err := os.Stat(name); err == nil {
			_ = godotenv.Load(name)
			break
		}
	}

	cfg := &EnvConfig{
		AppID:            envWithFallbacks("APP_ID"),
		AppCertificate:   envWithFallbacks("APP_CERTIFICATE"),
		CustomerID:       envWithFallbacks("CUSTOMER_ID"),
		CustomerSecret:   envWithFallbacks("CUSTOMER_SECRET"),
		LLMAPIKey:        os.Getenv("LLM_API_KEY"),
		ElevenLabsAPIKey: os.Getenv("TTS_ELEVENLABS_API_KEY"),
		DeepgramAPIKey:   os.Getenv("ASR_DEEPGRAM_API_KEY"),
	}

	var missing []string
	if cfg.AppID == "" {
		missing = append(missing, "APP_ID")
	}
	if cfg.AppCertificate == "" {
		missing = append(missing, "APP_CERTIFICATE")
	}
	if cfg.CustomerID == "" {
		missing = append(missing, "CUSTOMER_ID (or API_KEY)")
	}
	if cfg.CustomerSecret == "" {
		missing = append(missing, "CUSTOMER_SECRET (or API_SECRET)")
	}
	if len(missing) > 0 {
		return nil, &core.ValidationError{
			Field:   "environment",
			Message: "missing required variables: " + strings.Join(missing, ", "),
		}
	}

	return cfg, nil
}

// NewFromEnv creates a Client from environment credentials. See LoadEnvConfig
// for the variable resolution rules.
func NewFromEnv(optFns ...func(o *Options)) (*Client, error) {
	cfg, err := LoadEnvConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg.AppID, cfg.AppCertificate, cfg.CustomerID, cfg.CustomerSecret, optFns...)
}

func envWithFallbacks(key string) string {
	for _, prefix := range []string{"VITE_AG_", "AGORA_", ""} {
		if v := os.Getenv(prefix + key); v != "" {
			return v
		}
	}
	switch key {
	case "CUSTOMER_ID":
		return os.Getenv("API_KEY")
	case "CUSTOMER_SECRET":
		return os.Getenv("API_SECRET")
	}
	return ""
}
