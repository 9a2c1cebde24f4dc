package testutil

import (
	"github.com/hupe1980/convoai/agent"
	"github.com/hupe1980/convoai/component"
)

// Canned project credentials. The hex values satisfy the 32-character App ID
// and certificate format the token builder enforces.
const (
	AppID          = "970ca35de60c44645bbae8a215061b33"
	AppCertificate = "5cfd2fd1755d40ecb72977518be15d3b"
	CustomerID     = "customer"
	CustomerSecret = "secret"
)

// ASR returns a minimal valid Deepgram ASR config.
func ASR() *component.DeepgramASR {
	return &component.DeepgramASR{APIKey: "dg-test-key"}
}

// LLM returns a minimal valid OpenAI LLM config.
func LLM() *component.OpenAILLM {
	return &component.OpenAILLM{APIKey: "sk-test-key"}
}

// TTS returns a minimal valid ElevenLabs TTS config.
func TTS() *component.ElevenLabsTTS {
	return &component.ElevenLabsTTS{APIKey: "el-test-key"}
}

// PropertiesBuilder constructs join properties with fluent chaining for
// tests. Example:
//
//	props, err := NewPropertiesBuilder().Channel("room").AgentUID("42").Build()
type PropertiesBuilder struct {
	token      string
	channel    string
	agentUID   string
	remoteUIDs []string
	asr, llm   any
	tts        any
	optFns     []func(o *agent.BuildOptions)
}

// NewPropertiesBuilder creates a builder preloaded with valid defaults so a
// test only overrides what it exercises.
func NewPropertiesBuilder() *PropertiesBuilder {
	return &PropertiesBuilder{
		token:      "007test-token",
		channel:    "test-channel",
		agentUID:   "123456",
		remoteUIDs: []string{"*"},
		asr:        ASR(),
		llm:        LLM(),
		tts:        TTS(),
	}
}

// Token overrides the channel token (chainable).
func (b *PropertiesBuilder) Token(token string) *PropertiesBuilder {
	b.token = token
	return b
}

// Channel overrides the channel name (chainable).
func (b *PropertiesBuilder) Channel(channel string) *PropertiesBuilder {
	b.channel = channel
	return b
}

// AgentUID overrides the agent uid (chainable).
func (b *PropertiesBuilder) AgentUID(uid string) *PropertiesBuilder {
	b.agentUID = uid
	return b
}

// RemoteUIDs overrides the subscribed uids (chainable).
func (b *PropertiesBuilder) RemoteUIDs(uids ...string) *PropertiesBuilder {
	b.remoteUIDs = uids
	return b
}

// Vendors overrides the three vendor configs (chainable).
func (b *PropertiesBuilder) Vendors(asr, llm, tts any) *PropertiesBuilder {
	b.asr, b.llm, b.tts = asr, llm, tts
	return b
}

// Options appends build options (chainable).
func (b *PropertiesBuilder) Options(optFns ...func(o *agent.BuildOptions)) *PropertiesBuilder {
	b.optFns = append(b.optFns, optFns...)
	return b
}

// Build assembles the join properties, returning any builder error so tests
// can assert on failure paths too.
func (b *PropertiesBuilder) Build() (*agent.JoinProperties, error) {
	return agent.BuildJoinProperties(b.token, b.channel, b.agentUID, b.remoteUIDs, b.asr, b.llm, b.tts, b.optFns...)
}
