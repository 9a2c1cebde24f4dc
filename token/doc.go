// Package token generates the time-bound access tokens ("007" format) that
// authorize an agent or user to join an RTC channel. A token binds an App ID,
// a channel and a uid to an expiry and a set of service privileges, signed
// with the App Certificate via nested HMAC-SHA256.
//
// The wire layout must match the remote verifier bit-for-bit: little-endian
// length-prefixed packing, a signature computed over the packed payload, zlib
// compression and standard base64 encoding behind the "007" version marker.
//
// Token generation is a pure function of its inputs plus the current time and
// a random salt; both are injectable so tests can assert exact outputs:
//
//	b := token.NewBuilder(func(o *token.BuilderOptions) {
//		o.Clock = func() time.Time { return fixed }
//		o.Salt = func() uint32 { return 1 }
//	})
//	tok, err := b.Generate(appID, appCert, "demo", 123456)
package token
