package token

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/hupe1980/convoai/core"
)

// Role controls which RTC privileges a generated token carries.
type Role int

const (
	// RolePublisher grants join plus audio/video/data publishing. Agents and
	// hosts need this role.
	RolePublisher Role = 1
	// RoleSubscriber grants join only.
	RoleSubscriber Role = 2
)

// DefaultExpireSeconds is the token lifetime applied when none is given (24h).
const DefaultExpireSeconds uint32 = 86400

// Clock supplies the issue timestamp. Injectable so tests can pin "now".
type Clock func() time.Time

// SaltSource supplies the random salt mixed into the signing key.
type SaltSource func() uint32

// BuilderOptions configures a Builder.
type BuilderOptions struct {
	Clock Clock
	Salt  SaltSource
}

// Builder derives signed, time-bound access tokens carrying RTC, RTM and
// Chat privileges for one channel/uid pair. The zero-cost default Builder
// uses the wall clock and a random salt; both are overridable.
type Builder struct {
	opts BuilderOptions
}

// NewBuilder constructs a Builder with optional overrides.
func NewBuilder(optFns ...func(o *BuilderOptions)) *Builder {
	opts := BuilderOptions{
		Clock: time.Now,
		Salt:  func() uint32 { return rand.Uint32N(99999999) + 1 },
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Builder{opts: opts}
}

// GenerateOptions configures a single Generate call.
type GenerateOptions struct {
	// Role selects the RTC privilege set. Defaults to RolePublisher.
	Role Role
	// ExpireSeconds is the token lifetime. Defaults to DefaultExpireSeconds.
	ExpireSeconds uint32
}

// Generate derives a token for the channel/uid pair. uid 0 is the wildcard
// "any uid" and is encoded as an empty account, which the verifier accepts
// for any joining uid. The output is deterministic for a fixed clock and
// salt; with the defaults every call produces a fresh token.
func (b *Builder) Generate(appID, appCertificate, channelName string, uid uint32, optFns ...func(o *GenerateOptions)) (string, error) {
	if appID == "" {
		return "", &core.ValidationError{Field: "app_id", Message: "cannot be empty"}
	}
	if appCertificate == "" {
		return "", &core.ValidationError{Field: "app_certificate", Message: "cannot be empty"}
	}
	if channelName == "" {
		return "", &core.ValidationError{Field: "channel_name", Message: "cannot be empty"}
	}

	opts := GenerateOptions{Role: RolePublisher, ExpireSeconds: DefaultExpireSeconds}
	for _, fn := range optFns {
		fn(&opts)
	}

	account := ""
	if uid != 0 {
		account = strconv.FormatUint(uint64(uid), 10)
	}

	issueTS := uint32(b.opts.Clock().Unix())
	expire := opts.ExpireSeconds

	rtc := NewRtcService(channelName, account)
	rtc.AddPrivilege(PrivilegeJoinChannel, expire)
	if opts.Role == RolePublisher {
		rtc.AddPrivilege(PrivilegePublishAudio, expire)
		rtc.AddPrivilege(PrivilegePublishVideo, expire)
		rtc.AddPrivilege(PrivilegePublishData, expire)
	}

	rtm := NewRtmService(account)
	rtm.AddPrivilege(PrivilegeLogin, expire)

	chat := NewChatService(account)
	chat.AddPrivilege(PrivilegeChatUser, expire)

	t := NewAccessToken(appID, appCertificate, issueTS, expire, b.opts.Salt())
	t.AddService(rtc)
	t.AddService(rtm)
	t.AddService(chat)

	return t.Build()
}

// Generate is a convenience wrapper around a default Builder.
func Generate(appID, appCertificate, channelName string, uid uint32, optFns ...func(o *GenerateOptions)) (string, error) {
	return NewBuilder().Generate(appID, appCertificate, channelName, uid, optFns...)
}
