package token

import (
	"bytes"
	"compress/zlib"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/hupe1980/convoai/core"
)

// version is the wire format marker prepended to every token.
const version = "007"

// AccessToken assembles an App-ID-scoped credential from an issue timestamp,
// an expiry window, a random salt and a set of service grants. Build produces
// the encoded token string; Parse reverses the non-cryptographic part of the
// encoding (the signature is retained but not verified, which requires the
// certificate and is the remote side's job).
type AccessToken struct {
	AppID     string
	AppCert   string
	IssueTS   uint32
	Expire    uint32
	Salt      uint32
	Services  map[uint16]Service
	Signature []byte // populated by Parse
}

// NewAccessToken creates an empty token shell. IssueTS and Salt are supplied
// by the Builder so they stay injectable for deterministic tests.
func NewAccessToken(appID, appCert string, issueTS, expire, salt uint32) *AccessToken {
	return &AccessToken{
		AppID:    appID,
		AppCert:  appCert,
		IssueTS:  issueTS,
		Expire:   expire,
		Salt:     salt,
		Services: make(map[uint16]Service),
	}
}

// AddService registers a service grant. At most one service per type is kept.
func (t *AccessToken) AddService(s Service) {
	t.Services[s.ServiceType()] = s
}

// Build signs and encodes the token.
func (t *AccessToken) Build() (string, error) {
	if !isHexID(t.AppID) {
		return "", &core.ValidationError{Field: "app_id", Message: "must be a 32-character hex string"}
	}
	if !isHexID(t.AppCert) {
		return "", &core.ValidationError{Field: "app_certificate", Message: "must be a 32-character hex string"}
	}

	signingInfo := new(bytes.Buffer)
	if err := packString(signingInfo, t.AppID); err != nil {
		return "", err
	}
	if err := packUint32(signingInfo, t.IssueTS); err != nil {
		return "", err
	}
	if err := packUint32(signingInfo, t.Expire); err != nil {
		return "", err
	}
	if err := packUint32(signingInfo, t.Salt); err != nil {
		return "", err
	}
	if err := packUint16(signingInfo, uint16(len(t.Services))); err != nil {
		return "", err
	}
	for _, serviceType := range t.sortedServiceTypes() {
		if err := t.Services[serviceType].Pack(signingInfo); err != nil {
			return "", err
		}
	}

	signature := t.sign(signingInfo.Bytes())

	content := new(bytes.Buffer)
	if err := packBytes(content, signature); err != nil {
		return "", err
	}
	content.Write(signingInfo.Bytes())

	compressed, err := compressZlib(content.Bytes())
	if err != nil {
		return "", err
	}

	return version + base64.StdEncoding.EncodeToString(compressed), nil
}

// sign derives the signing key from issue timestamp and salt, then MACs the
// packed payload. The double derivation is part of the verifier contract.
func (t *AccessToken) sign(signingInfo []byte) []byte {
	issueTS := new(bytes.Buffer)
	_ = packUint32(issueTS, t.IssueTS)
	h := hmac.New(sha256.New, issueTS.Bytes())
	h.Write([]byte(t.AppCert))
	signing := h.Sum(nil)

	salt := new(bytes.Buffer)
	_ = packUint32(salt, t.Salt)
	h = hmac.New(sha256.New, salt.Bytes())
	h.Write(signing)
	signing = h.Sum(nil)

	h = hmac.New(sha256.New, signing)
	h.Write(signingInfo)
	return h.Sum(nil)
}

func (t *AccessToken) sortedServiceTypes() []uint16 {
	types := make([]int, 0, len(t.Services))
	for st := range t.Services {
		types = append(types, int(st))
	}
	sort.Ints(types)
	out := make([]uint16, len(types))
	for i, st := range types {
		out[i] = uint16(st)
	}
	return out
}

// Parse decodes a token string back into its fields. The certificate is not
// recoverable and the signature is not verified locally.
func Parse(tokenString string) (*AccessToken, error) {
	if !strings.HasPrefix(tokenString, version) {
		return nil, fmt.Errorf("unsupported token version: %q", firstN(tokenString, 3))
	}
	raw, err := base64.StdEncoding.DecodeString(tokenString[len(version):])
	if err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	content, err := decompressZlib(raw)
	if err != nil {
		return nil, fmt.Errorf("decompress token: %w", err)
	}

	r := bytes.NewReader(content)
	signature, err := unpackBytes(r)
	if err != nil {
		return nil, fmt.Errorf("read signature: %w", err)
	}
	appID, err := unpackString(r)
	if err != nil {
		return nil, fmt.Errorf("read app id: %w", err)
	}
	issueTS, err := unpackUint32(r)
	if err != nil {
		return nil, fmt.Errorf("read issue timestamp: %w", err)
	}
	expire, err := unpackUint32(r)
	if err != nil {
		return nil, fmt.Errorf("read expire: %w", err)
	}
	salt, err := unpackUint32(r)
	if err != nil {
		return nil, fmt.Errorf("read salt: %w", err)
	}
	count, err := unpackUint16(r)
	if err != nil {
		return nil, fmt.Errorf("read service count: %w", err)
	}

	t := &AccessToken{
		AppID:     appID,
		IssueTS:   issueTS,
		Expire:    expire,
		Salt:      salt,
		Services:  make(map[uint16]Service, count),
		Signature: signature,
	}
	for i := uint16(0); i < count; i++ {
		svc, err := unpackService(r)
		if err != nil {
			return nil, fmt.Errorf("read service %d: %w", i, err)
		}
		t.Services[svc.ServiceType()] = svc
	}
	return t, nil
}

// isHexID reports whether s looks like an Agora App ID / App Certificate
// (32 hex characters).
func isHexID(s string) bool {
	if len(s) != 32 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

func compressZlib(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompressZlib(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	return io.ReadAll(r)
}

func firstN(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}
