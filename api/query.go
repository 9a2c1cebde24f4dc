package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hupe1980/convoai/core"
)

// QueryAPI reads the current running status of an agent instance.
type QueryAPI struct {
	*handler
}

// NewQueryAPI constructs the query handler.
func NewQueryAPI(cfg *core.Config) *QueryAPI {
	return &QueryAPI{handler: newHandler("convoai:query", cfg)}
}

func (a *QueryAPI) buildPath(agentID string) string {
	return a.cfg.PrefixPath() + "/agents/" + agentID
}

// Do executes the query call. Queries are read-only and retried on transient
// failures.
func (a *QueryAPI) Do(ctx context.Context, agentID string) (*AgentInfo, error) {
	if agentID == "" {
		return nil, &core.ValidationError{Field: "agent_id", Message: "cannot be empty"}
	}

	raw, err := a.doREST(ctx, a.buildPath(agentID), http.MethodGet, nil, true)
	if err != nil {
		return nil, err
	}

	var info AgentInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("parse query response: %w", err)
	}
	return &info, nil
}
