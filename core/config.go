package core

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hupe1980/convoai/logging"
)

// ServiceRegion selects the Conversational AI service endpoint. The Chinese
// Mainland and Global regions are two different services with separate
// projects and credentials.
type ServiceRegion int

const (
	// ServiceRegionUnknown is the zero value and is rejected by Config validation.
	ServiceRegionUnknown ServiceRegion = iota
	// ServiceRegionChineseMainland targets the Chinese Mainland service.
	ServiceRegionChineseMainland
	// ServiceRegionGlobal targets the Global service (excluding Chinese Mainland).
	ServiceRegionGlobal
)

// String returns the string representation of the service region.
func (r ServiceRegion) String() string {
	switch r {
	case ServiceRegionChineseMainland:
		return "CHINESE_MAINLAND"
	case ServiceRegionGlobal:
		return "GLOBAL"
	default:
		return "UNKNOWN"
	}
}

const (
	// DefaultHTTPTimeout bounds a single request attempt.
	DefaultHTTPTimeout = 60 * time.Second
	// DefaultRetryCount is the number of additional attempts after the first.
	DefaultRetryCount = 3
)

// Config carries everything needed to reach the Conversational AI service:
// project identity, signing credential, region and transport tuning. A Config
// is immutable for the lifetime of the client that holds it.
type Config struct {
	// AppID is the Agora project App ID (required).
	AppID string
	// Credential signs outgoing requests (required).
	Credential Credential
	// ServiceRegion selects the endpoint (required, defaults to Global).
	ServiceRegion ServiceRegion
	// HTTPTimeout bounds a single request attempt.
	HTTPTimeout time.Duration
	// RetryCount is the number of retries after a retryable failure.
	RetryCount int
	// HTTPClient overrides the default transport; nil means a tuned default.
	HTTPClient *http.Client
	// Logger receives debug/warn output; nil means silence.
	Logger logging.Logger
}

// NewConfig builds a validated Config with defaults applied.
func NewConfig(appID string, credential Credential, optFns ...func(c *Config)) (*Config, error) {
	cfg := &Config{
		AppID:         appID,
		Credential:    credential,
		ServiceRegion: ServiceRegionGlobal,
		HTTPTimeout:   DefaultHTTPTimeout,
		RetryCount:    DefaultRetryCount,
		Logger:        logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the required fields.
func (c *Config) Validate() error {
	if c.AppID == "" {
		return &ValidationError{Field: "app_id", Message: "cannot be empty"}
	}
	if c.Credential == nil {
		return &ValidationError{Field: "credential", Message: "cannot be nil"}
	}
	if c.ServiceRegion != ServiceRegionChineseMainland && c.ServiceRegion != ServiceRegionGlobal {
		return &ValidationError{Field: "service_region", Message: fmt.Sprintf("unsupported region %q", c.ServiceRegion)}
	}
	return nil
}

// BaseURL returns the API origin for the configured region.
func (c *Config) BaseURL() string {
	if c.ServiceRegion == ServiceRegionChineseMainland {
		return "https://api.agora.io/cn"
	}
	return "https://api.agora.io"
}

// PrefixPath returns the project-scoped API path prefix, e.g.
// /api/conversational-ai-agent/v2/projects/{app_id}.
func (c *Config) PrefixPath() string {
	return "/api/conversational-ai-agent/v2/projects/" + c.AppID
}
