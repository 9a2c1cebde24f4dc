package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/convoai/agent"
	"github.com/hupe1980/convoai/core"
	"github.com/hupe1980/convoai/internal/testutil"
)

// rewriteTransport redirects every request to the test server while leaving
// the request path untouched, so handlers build their real URLs.
type rewriteTransport struct {
	target *url.URL
}

func (t rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = t.target.Scheme
	req.URL.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func newTestConfig(t *testing.T, server *httptest.Server, retryCount int) *core.Config {
	t.Helper()

	cred, err := core.NewBasicAuthCredential(testutil.CustomerID, testutil.CustomerSecret)
	require.NoError(t, err)

	target, err := url.Parse(server.URL)
	require.NoError(t, err)

	cfg, err := core.NewConfig(testutil.AppID, cred, func(c *core.Config) {
		c.RetryCount = retryCount
		c.HTTPTimeout = 5 * time.Second
		c.HTTPClient = &http.Client{Transport: rewriteTransport{target: target}}
	})
	require.NoError(t, err)

	return cfg
}

func TestJoinAPI(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotPath, gotAuth, gotContentType string
		var gotBody map[string]any

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			gotContentType = r.Header.Get("Content-Type")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"agent_id":"agent-1","create_ts":1700000000,"status":"RUNNING"}`))
		}))
		defer server.Close()

		joinAPI := NewJoinAPI(newTestConfig(t, server, 3))

		properties, err := testutil.NewPropertiesBuilder().Channel("room").AgentUID("123456").Build()
		require.NoError(t, err)

		info, err := joinAPI.Do(context.Background(), &agent.JoinRequest{Name: "demo-agent", Properties: properties})
		require.NoError(t, err)

		assert.Equal(t, "/api/conversational-ai-agent/v2/projects/"+testutil.AppID+"/join", gotPath)
		assert.Equal(t, "Basic Y3VzdG9tZXI6c2VjcmV0", gotAuth)
		assert.Equal(t, "application/json; charset=utf-8", gotContentType)
		assert.Equal(t, "demo-agent", gotBody["name"])

		assert.Equal(t, "agent-1", info.AgentID)
		assert.Equal(t, int64(1700000000), info.CreateTS)
		assert.Equal(t, "RUNNING", info.Status)
	})

	t.Run("never retried on transient failure", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		joinAPI := NewJoinAPI(newTestConfig(t, server, 3))

		_, err := joinAPI.Do(context.Background(), &agent.JoinRequest{Name: "demo"})
		require.Error(t, err)

		var transient *core.TransientServiceError
		require.ErrorAs(t, err, &transient)
		assert.Equal(t, http.StatusServiceUnavailable, transient.StatusCode)

		var retryErr *core.RetryError
		assert.False(t, errors.As(err, &retryErr), "join must fail fast, not wrap a retry")
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("nil request", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		joinAPI := NewJoinAPI(newTestConfig(t, server, 0))

		_, err := joinAPI.Do(context.Background(), nil)

		var verr *core.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "request", verr.Field)
	})
}

func TestLeaveAPI(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotPath, gotMethod string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotMethod = r.Method
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		leaveAPI := NewLeaveAPI(newTestConfig(t, server, 3))

		require.NoError(t, leaveAPI.Do(context.Background(), "agent-1"))
		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "/api/conversational-ai-agent/v2/projects/"+testutil.AppID+"/agents/agent-1/leave", gotPath)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		leaveAPI := NewLeaveAPI(newTestConfig(t, server, 1))

		require.NoError(t, leaveAPI.Do(context.Background(), "agent-1"))
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("exhausted retries wrap the last failure", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		leaveAPI := NewLeaveAPI(newTestConfig(t, server, 1))

		err := leaveAPI.Do(context.Background(), "agent-1")
		require.Error(t, err)

		var retryErr *core.RetryError
		require.ErrorAs(t, err, &retryErr)
		assert.Equal(t, 2, retryErr.Attempts)

		var transient *core.TransientServiceError
		require.ErrorAs(t, err, &transient)
		assert.Equal(t, http.StatusBadGateway, transient.StatusCode)

		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("empty agent id", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		leaveAPI := NewLeaveAPI(newTestConfig(t, server, 0))

		err := leaveAPI.Do(context.Background(), "")

		var verr *core.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "agent_id", verr.Field)
	})
}

func TestQueryAPI(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotPath, gotMethod string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotMethod = r.Method
			_, _ = w.Write([]byte(`{"agent_id":"agent-1","create_ts":1700000000,"status":"STOPPED"}`))
		}))
		defer server.Close()

		queryAPI := NewQueryAPI(newTestConfig(t, server, 3))

		info, err := queryAPI.Do(context.Background(), "agent-1")
		require.NoError(t, err)

		assert.Equal(t, http.MethodGet, gotMethod)
		assert.Equal(t, "/api/conversational-ai-agent/v2/projects/"+testutil.AppID+"/agents/agent-1", gotPath)
		assert.Equal(t, "STOPPED", info.Status)
	})

	t.Run("not found maps to remote agent error", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"reason":"agent not found","detail":"no agent with id agent-x"}`))
		}))
		defer server.Close()

		queryAPI := NewQueryAPI(newTestConfig(t, server, 3))

		_, err := queryAPI.Do(context.Background(), "agent-x")
		require.Error(t, err)

		var remote *core.RemoteAgentError
		require.ErrorAs(t, err, &remote)
		assert.Equal(t, http.StatusNotFound, remote.StatusCode)
		assert.Equal(t, "agent not found", remote.Reason)
		assert.Equal(t, "no agent with id agent-x", remote.Detail)

		// 4xx must not burn retry budget.
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestHandlerErrorMapping(t *testing.T) {
	t.Run("unauthorized", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("bad credentials"))
		}))
		defer server.Close()

		queryAPI := NewQueryAPI(newTestConfig(t, server, 3))

		_, err := queryAPI.Do(context.Background(), "agent-1")

		var authErr *core.AuthenticationError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
		assert.Equal(t, "bad credentials", authErr.Body)
	})

	t.Run("client error without envelope keeps raw body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("plain failure text"))
		}))
		defer server.Close()

		queryAPI := NewQueryAPI(newTestConfig(t, server, 3))

		_, err := queryAPI.Do(context.Background(), "agent-1")

		var remote *core.RemoteAgentError
		require.ErrorAs(t, err, &remote)
		assert.Equal(t, "plain failure text", remote.Detail)
	})

	t.Run("context cancellation surfaces as context error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		queryAPI := NewQueryAPI(newTestConfig(t, server, 3))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := queryAPI.Do(ctx, "agent-1")
		require.ErrorIs(t, err, context.Canceled)
	})
}
