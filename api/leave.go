package api

import (
	"context"
	"net/http"

	"github.com/hupe1980/convoai/core"
)

// LeaveAPI stops an agent instance and removes it from its channel.
type LeaveAPI struct {
	*handler
}

// NewLeaveAPI constructs the leave handler.
func NewLeaveAPI(cfg *core.Config) *LeaveAPI {
	return &LeaveAPI{handler: newHandler("convoai:leave", cfg)}
}

func (a *LeaveAPI) buildPath(agentID string) string {
	return a.cfg.PrefixPath() + "/agents/" + agentID + "/leave"
}

// Do executes the leave call. Stopping an already-stopped agent is safe, so
// transient failures are retried.
func (a *LeaveAPI) Do(ctx context.Context, agentID string) error {
	if agentID == "" {
		return &core.ValidationError{Field: "agent_id", Message: "cannot be empty"}
	}

	_, err := a.doREST(ctx, a.buildPath(agentID), http.MethodPost, nil, true)
	return err
}
