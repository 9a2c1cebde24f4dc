package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hupe1980/convoai/agent"
	"github.com/hupe1980/convoai/core"
)

// JoinAPI creates an agent instance and joins it to the requested channel.
type JoinAPI struct {
	*handler
}

// NewJoinAPI constructs the join handler.
func NewJoinAPI(cfg *core.Config) *JoinAPI {
	return &JoinAPI{handler: newHandler("convoai:join", cfg)}
}

func (a *JoinAPI) buildPath() string {
	return a.cfg.PrefixPath() + "/join"
}

// Do executes the join call. Join is not idempotent (the agent name must be
// unique), so it is never retried automatically; transient failures surface
// directly as TransientServiceError for the caller to decide.
func (a *JoinAPI) Do(ctx context.Context, req *agent.JoinRequest) (*AgentInfo, error) {
	if req == nil {
		return nil, &core.ValidationError{Field: "request", Message: "cannot be nil"}
	}

	raw, err := a.doREST(ctx, a.buildPath(), http.MethodPost, req, false)
	if err != nil {
		return nil, err
	}

	var info AgentInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("parse join response: %w", err)
	}
	return &info, nil
}
