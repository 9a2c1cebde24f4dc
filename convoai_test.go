package convoai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/convoai/core"
	"github.com/hupe1980/convoai/internal/testutil"
	"github.com/hupe1980/convoai/token"
)

// rewriteTransport points the client at the test server while preserving the
// request path.
type rewriteTransport struct {
	target *url.URL
}

func (t rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = t.target.Scheme
	req.URL.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()

	target, err := url.Parse(server.URL)
	require.NoError(t, err)

	client, err := New(testutil.AppID, testutil.AppCertificate, testutil.CustomerID, testutil.CustomerSecret, func(o *Options) {
		o.HTTPClient = &http.Client{Transport: rewriteTransport{target: target}}
	})
	require.NoError(t, err)

	return client
}

func TestNew(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		client, err := New(testutil.AppID, testutil.AppCertificate, testutil.CustomerID, testutil.CustomerSecret)
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("missing credentials", func(t *testing.T) {
		tests := []struct {
			name                                             string
			appID, appCert, customerID, customerSecret, want string
		}{
			{"app id", "", testutil.AppCertificate, testutil.CustomerID, testutil.CustomerSecret, "app_id"},
			{"app certificate", testutil.AppID, "", testutil.CustomerID, testutil.CustomerSecret, "app_certificate"},
			{"customer id", testutil.AppID, testutil.AppCertificate, "", testutil.CustomerSecret, "customer_id"},
			{"customer secret", testutil.AppID, testutil.AppCertificate, testutil.CustomerID, "", "customer_secret"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := New(tt.appID, tt.appCert, tt.customerID, tt.customerSecret)

				var verr *core.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.want, verr.Field)
			})
		}
	})

	t.Run("unknown region rejected", func(t *testing.T) {
		_, err := New(testutil.AppID, testutil.AppCertificate, testutil.CustomerID, testutil.CustomerSecret, func(o *Options) {
			o.ServiceRegion = core.ServiceRegionUnknown
		})

		var verr *core.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "service_region", verr.Field)
	})
}

func TestStartAgent(t *testing.T) {
	t.Run("success with generated name", func(t *testing.T) {
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_, _ = w.Write([]byte(`{"agent_id":"agent-1","create_ts":1700000000,"status":"RUNNING"}`))
		}))
		defer server.Close()

		client := newTestClient(t, server)

		info, err := client.StartAgent(context.Background(), StartAgentParams{
			ChannelName: "room",
			AgentUID:    "123456",
			ASR:         testutil.ASR(),
			LLM:         testutil.LLM(),
			TTS:         testutil.TTS(),
		})
		require.NoError(t, err)
		assert.Equal(t, "agent-1", info.AgentID)

		name, _ := gotBody["name"].(string)
		assert.True(t, strings.HasPrefix(name, testutil.AppID+":room:"), "generated name carries app id and channel, got %q", name)

		properties, ok := gotBody["properties"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "room", properties["channel"])
		assert.Equal(t, "123456", properties["agent_rtc_uid"])
		assert.Equal(t, []any{"*"}, properties["remote_rtc_uids"])

		channelToken, _ := properties["token"].(string)
		assert.True(t, strings.HasPrefix(channelToken, "007"))
	})

	t.Run("explicit name and user uids", func(t *testing.T) {
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_, _ = w.Write([]byte(`{"agent_id":"agent-2","create_ts":1700000000,"status":"RUNNING"}`))
		}))
		defer server.Close()

		client := newTestClient(t, server)

		_, err := client.StartAgent(context.Background(), StartAgentParams{
			ChannelName: "room",
			AgentUID:    "123456",
			UserUIDs:    []string{"1001", "1002"},
			Name:        "support-desk",
			ASR:         testutil.ASR(),
			LLM:         testutil.LLM(),
			TTS:         testutil.TTS(),
		})
		require.NoError(t, err)

		assert.Equal(t, "support-desk", gotBody["name"])
		properties := gotBody["properties"].(map[string]any)
		assert.Equal(t, []any{"1001", "1002"}, properties["remote_rtc_uids"])
	})

	t.Run("agent uid must not collide with user uids", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		client := newTestClient(t, server)

		_, err := client.StartAgent(context.Background(), StartAgentParams{
			ChannelName: "room",
			AgentUID:    "1001",
			UserUIDs:    []string{"1001"},
			ASR:         testutil.ASR(),
			LLM:         testutil.LLM(),
			TTS:         testutil.TTS(),
		})

		var verr *core.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "agent_rtc_uid", verr.Field)
	})

	t.Run("missing channel", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		client := newTestClient(t, server)

		_, err := client.StartAgent(context.Background(), StartAgentParams{AgentUID: "1"})

		var verr *core.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "channel_name", verr.Field)
	})
}

func TestStopAgent(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server)

	require.NoError(t, client.StopAgent(context.Background(), "agent-1"))
	assert.Equal(t, "/api/conversational-ai-agent/v2/projects/"+testutil.AppID+"/agents/agent-1/leave", gotPath)
}

func TestQueryAgent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"agent_id":"agent-1","create_ts":1700000000,"status":"RUNNING"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	info, err := client.QueryAgent(context.Background(), "agent-1")
	require.NoError(t, err)
	assert.Equal(t, "RUNNING", info.Status)
}

func TestGenerateToken(t *testing.T) {
	client, err := New(testutil.AppID, testutil.AppCertificate, testutil.CustomerID, testutil.CustomerSecret)
	require.NoError(t, err)

	t.Run("numeric uid", func(t *testing.T) {
		tok, err := client.GenerateToken("room", "123456")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(tok, "007"))

		parsed, err := token.Parse(tok)
		require.NoError(t, err)
		assert.Equal(t, testutil.AppID, parsed.AppID)
		assert.Equal(t, token.DefaultExpireSeconds, parsed.Expire)
	})

	t.Run("non-numeric uid falls back to wildcard", func(t *testing.T) {
		tok, err := client.GenerateToken("room", "alice")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(tok, "007"))
	})

	t.Run("expiry override", func(t *testing.T) {
		tok, err := client.GenerateToken("room", "123456", func(o *token.GenerateOptions) {
			o.ExpireSeconds = 600
		})
		require.NoError(t, err)

		parsed, err := token.Parse(tok)
		require.NoError(t, err)
		assert.Equal(t, uint32(600), parsed.Expire)
	})

	t.Run("empty channel", func(t *testing.T) {
		_, err := client.GenerateToken("", "123456")

		var verr *core.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "channel_name", verr.Field)
	})
}

func TestGenerateConnectionConfig(t *testing.T) {
	client, err := New(testutil.AppID, testutil.AppCertificate, testutil.CustomerID, testutil.CustomerSecret)
	require.NoError(t, err)

	cfg, err := client.GenerateConnectionConfig()
	require.NoError(t, err)

	assert.Equal(t, testutil.AppID, cfg.AppID)
	_, err = uuid.Parse(cfg.ChannelName)
	assert.NoError(t, err, "channel name is a uuid")

	assert.NotEmpty(t, cfg.AgentUID)
	assert.NotEmpty(t, cfg.UserUID)
	assert.NotEqual(t, cfg.AgentUID, cfg.UserUID)

	assert.True(t, strings.HasPrefix(cfg.UserToken, "007"))
}
