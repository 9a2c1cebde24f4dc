// Package convoai provides a high-level façade over the Conversational AI
// engine building blocks (tokens, vendor components, agent properties and the
// REST API) enabling rapid construction of voice agent backends. Most
// applications interact with this package by:
//  1. Creating a Client via New() or NewFromEnv() (optionally overriding region, transport or logging)
//  2. Starting an agent in an RTC channel with vendor configs for ASR, LLM and TTS
//  3. Querying the agent's status and stopping it when the conversation ends
//
// The façade delegates token signing to the token package, property assembly
// to the agent package and the REST calls to the api package while keeping
// setup and usage ergonomics concise. All defaults are safe for development;
// production deployments typically supply a structured logger and tune the
// retry budget.
package convoai

import (
	"context"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/convoai/agent"
	"github.com/hupe1980/convoai/api"
	"github.com/hupe1980/convoai/core"
	"github.com/hupe1980/convoai/logging"
	"github.com/hupe1980/convoai/token"
)

// Options configures the Client instance.
type Options struct {
	// ServiceRegion selects the Conversational AI endpoint. Defaults to Global.
	ServiceRegion core.ServiceRegion

	// HTTPTimeout bounds a single request attempt.
	HTTPTimeout time.Duration

	// RetryCount is the number of retries after a retryable failure. Only
	// idempotent calls (stop, query) consume it; starting an agent is never
	// retried automatically.
	RetryCount int

	// HTTPClient overrides the default transport; nil means a tuned default.
	HTTPClient *http.Client

	// TokenExpireSeconds is the lifetime of generated channel tokens.
	// Defaults to 24 hours.
	TokenExpireSeconds uint32

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Client is the high-level façade aggregating token generation, property
// assembly and the REST API handlers. A Client is safe for concurrent use.
type Client struct {
	opts           Options
	cfg            *core.Config
	appCertificate string
	tokenBuilder   *token.Builder
	joinAPI        *api.JoinAPI
	leaveAPI       *api.LeaveAPI
	queryAPI       *api.QueryAPI
}

// New creates a Client for one Agora project. appID and appCertificate come
// from the project page of the console; customerID and customerSecret are the
// RESTful API credentials.
func New(appID, appCertificate, customerID, customerSecret string, optFns ...func(o *Options)) (*Client, error) {
	if appCertificate == "" {
		return nil, &core.ValidationError{Field: "app_certificate", Message: "cannot be empty"}
	}

	opts := Options{
		ServiceRegion:      core.ServiceRegionGlobal,
		HTTPTimeout:        core.DefaultHTTPTimeout,
		RetryCount:         core.DefaultRetryCount,
		TokenExpireSeconds: token.DefaultExpireSeconds,
		Logger:             logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	credential, err := core.NewBasicAuthCredential(customerID, customerSecret)
	if err != nil {
		return nil, err
	}

	cfg, err := core.NewConfig(appID, credential, func(c *core.Config) {
		c.ServiceRegion = opts.ServiceRegion
		c.HTTPTimeout = opts.HTTPTimeout
		c.RetryCount = opts.RetryCount
		c.HTTPClient = opts.HTTPClient
		c.Logger = opts.Logger
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		opts:           opts,
		cfg:            cfg,
		appCertificate: appCertificate,
		tokenBuilder:   token.NewBuilder(),
		joinAPI:        api.NewJoinAPI(cfg),
		leaveAPI:       api.NewLeaveAPI(cfg),
		queryAPI:       api.NewQueryAPI(cfg),
	}, nil
}

// StartAgentParams describes the agent to start. ASR, LLM and TTS accept
// either typed component configs or equivalent plain mappings.
type StartAgentParams struct {
	// ChannelName is the RTC channel the agent joins (required).
	ChannelName string
	// AgentUID is the agent's uid inside the channel (required, must not
	// collide with UserUIDs).
	AgentUID string
	// UserUIDs lists the uids the agent subscribes to. Empty means all users.
	UserUIDs []string
	// Name uniquely identifies the agent instance. Empty means a generated
	// unique name; reusing a name for a running agent is rejected remotely.
	Name string

	ASR any
	LLM any
	TTS any
}

// StartAgent generates a channel token for the agent, assembles the join
// properties and creates the agent instance. The optional build options tune
// the defaulted parts of the properties (timeouts, turn detection, engine
// parameters).
//
// Starting is not idempotent: on a transient failure the caller decides
// whether to retry, typically after querying whether the agent came up.
func (c *Client) StartAgent(ctx context.Context, params StartAgentParams, optFns ...func(o *agent.BuildOptions)) (*api.AgentInfo, error) {
	if params.ChannelName == "" {
		return nil, &core.ValidationError{Field: "channel_name", Message: "cannot be empty"}
	}
	if params.AgentUID == "" {
		return nil, &core.ValidationError{Field: "agent_rtc_uid", Message: "cannot be empty"}
	}

	channelToken, err := c.GenerateToken(params.ChannelName, params.AgentUID)
	if err != nil {
		return nil, err
	}

	remoteUIDs := params.UserUIDs
	if len(remoteUIDs) == 0 {
		remoteUIDs = []string{"*"}
	}

	properties, err := agent.BuildJoinProperties(channelToken, params.ChannelName, params.AgentUID, remoteUIDs, params.ASR, params.LLM, params.TTS, optFns...)
	if err != nil {
		return nil, err
	}

	name := params.Name
	if name == "" {
		name = c.cfg.AppID + ":" + params.ChannelName + ":" + uuid.NewString()
	}

	req, err := agent.BuildJoinRequest(name, properties)
	if err != nil {
		return nil, err
	}

	c.cfg.Logger.Info("starting agent", "channel", params.ChannelName, "agent_uid", params.AgentUID, "name", name)

	return c.joinAPI.Do(ctx, req)
}

// StopAgent stops a running agent instance. Stopping an already-stopped agent
// succeeds.
func (c *Client) StopAgent(ctx context.Context, agentID string) error {
	return c.leaveAPI.Do(ctx, agentID)
}

// QueryAgent returns the current running status of an agent instance.
func (c *Client) QueryAgent(ctx context.Context, agentID string) (*api.AgentInfo, error) {
	return c.queryAPI.Do(ctx, agentID)
}

// GenerateToken derives a signed channel token for the given uid. A uid that
// is not a decimal number (string uids, "*") yields a wildcard token valid
// for any joining uid.
func (c *Client) GenerateToken(channelName, uid string, optFns ...func(o *token.GenerateOptions)) (string, error) {
	numericUID := parseUID(uid)

	return c.tokenBuilder.Generate(c.cfg.AppID, c.appCertificate, channelName, numericUID, func(o *token.GenerateOptions) {
		o.ExpireSeconds = c.opts.TokenExpireSeconds
		for _, fn := range optFns {
			fn(o)
		}
	})
}

// ConnectionConfig is a ready-made set of channel coordinates for one user
// session: a fresh channel, distinct agent and user uids and a signed token
// for the user side. Hand it to a frontend to join the channel, then pass
// ChannelName and AgentUID to StartAgent.
type ConnectionConfig struct {
	AppID       string `json:"app_id"`
	ChannelName string `json:"channel_name"`
	AgentUID    string `json:"agent_uid"`
	UserUID     string `json:"user_uid"`
	UserToken   string `json:"user_token"`
}

// GenerateConnectionConfig mints a unique channel name plus random,
// non-colliding agent and user uids and signs a token for the user.
func (c *Client) GenerateConnectionConfig(optFns ...func(o *token.GenerateOptions)) (*ConnectionConfig, error) {
	channelName := uuid.NewString()

	agentUID := randomUID()
	userUID := randomUID()
	for userUID == agentUID {
		userUID = randomUID()
	}

	userToken, err := c.GenerateToken(channelName, strconv.FormatUint(uint64(userUID), 10), optFns...)
	if err != nil {
		return nil, err
	}

	return &ConnectionConfig{
		AppID:       c.cfg.AppID,
		ChannelName: channelName,
		AgentUID:    strconv.FormatUint(uint64(agentUID), 10),
		UserUID:     strconv.FormatUint(uint64(userUID), 10),
		UserToken:   userToken,
	}, nil
}

func parseUID(uid string) uint32 {
	n, err := strconv.ParseUint(uid, 10, 32)
	if err != nil {
		return 0
	}
	return uint32(n)
}

// randomUID picks a uid in [100000, 4294967295), avoiding the low range some
// demos reserve for well-known uids.
func randomUID() uint32 {
	return rand.Uint32N(4294967295-100000) + 100000
}
