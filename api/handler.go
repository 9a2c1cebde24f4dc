package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/hupe1980/convoai/core"
	"github.com/hupe1980/convoai/logging"
)

// handler is the shared base of all API handlers. It owns the signed HTTP
// transport, the retry loop and the error mapping; concrete handlers only
// contribute a path and a response shape.
type handler struct {
	module     string
	cfg        *core.Config
	httpClient *http.Client
	logger     logging.Logger
}

func newHandler(module string, cfg *core.Config) *handler {
	client := cfg.HTTPClient
	if client == nil {
		client = newDefaultHTTPClient()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &handler{module: module, cfg: cfg, httpClient: client, logger: logger}
}

// newDefaultHTTPClient configures sane transport-level timeouts while keeping
// the overall request lifetime controlled by per-attempt context deadlines.
func newDefaultHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		ForceAttemptHTTP2:     true,
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
	}
	return &http.Client{Transport: transport}
}

// doREST executes one signed request with up to cfg.RetryCount retries when
// retryable is true. Non-retryable calls (join) get exactly one attempt.
//
// Status handling: 2xx returns the body; 401/403 -> AuthenticationError;
// other 4xx -> RemoteAgentError with the remote reason/detail; 5xx and
// transport failures -> TransientServiceError, retried with linear backoff
// (1s, 2s, ...) until the budget is exhausted, then wrapped in RetryError.
func (h *handler) doREST(ctx context.Context, path, method string, requestBody any, retryable bool) ([]byte, error) {
	retries := 0
	if retryable {
		retries = h.cfg.RetryCount
	}

	var encoded []byte
	if requestBody != nil {
		var err error
		encoded, err = json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}

	url := h.cfg.BaseURL() + path

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			wait := time.Duration(attempt) * time.Second
			h.logger.Debug("retrying request", "module", h.module, "attempt", attempt+1, "wait", wait.String())
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		h.logger.Debug("sending request", "module", h.module, "method", method, "url", url, "attempt", attempt+1)

		body, err := h.execute(ctx, url, method, encoded)
		if err == nil {
			return body, nil
		}

		var transient *core.TransientServiceError
		if !errors.As(err, &transient) {
			return nil, err
		}
		lastErr = err
	}

	if !retryable {
		return nil, lastErr
	}
	return nil, &core.RetryError{Attempts: retries + 1, Last: lastErr}
}

// execute performs a single attempt under the configured per-attempt timeout.
func (h *handler) execute(ctx context.Context, url, method string, encoded []byte) ([]byte, error) {
	attemptCtx := ctx
	if h.cfg.HTTPTimeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, h.cfg.HTTPTimeout)
		defer cancel()
	}

	var bodyReader io.Reader
	if encoded != nil {
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range h.cfg.Credential.AuthHeader() {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		// Caller cancellation is not a service failure.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &core.TransientServiceError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &core.TransientServiceError{Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		return raw, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &core.AuthenticationError{StatusCode: resp.StatusCode, Body: string(raw)}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var remote errResponse
		_ = json.Unmarshal(raw, &remote)
		if remote.Reason == "" && remote.Detail == "" {
			remote.Detail = string(raw)
		}
		return nil, &core.RemoteAgentError{StatusCode: resp.StatusCode, Reason: remote.Reason, Detail: remote.Detail}
	default:
		return nil, &core.TransientServiceError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
}
