package api

// AgentInfo is the success payload returned by the join and query calls.
type AgentInfo struct {
	// AgentID uniquely identifies the agent instance.
	AgentID string `json:"agent_id"`
	// CreateTS is the timestamp the agent was created.
	CreateTS int64 `json:"create_ts"`
	// Status is the running status of the agent: IDLE, STARTING, RUNNING,
	// STOPPING, STOPPED, RECOVERING or FAILED.
	Status string `json:"status"`
}

// errResponse is the error envelope returned by the engine.
type errResponse struct {
	Detail string `json:"detail"`
	Reason string `json:"reason"`
}
