package core

import "encoding/base64"

// Credential produces the authorization headers attached to every REST call.
// Implementations must be safe for concurrent use; the SDK shares one
// credential across all API handlers.
type Credential interface {
	// AuthHeader returns the header name/value pairs that authenticate a request.
	AuthHeader() map[string]string
}

// BasicAuthCredential signs requests with HTTP Basic Auth using the RESTful
// API customer ID and customer secret from the Agora console.
type BasicAuthCredential struct {
	customerID     string
	customerSecret string
}

// NewBasicAuthCredential creates a Basic Auth credential. Both values are
// required; construction fails with a ValidationError otherwise so that a
// misconfigured client is caught before the first request.
func NewBasicAuthCredential(customerID, customerSecret string) (*BasicAuthCredential, error) {
	if customerID == "" {
		return nil, &ValidationError{Field: "customer_id", Message: "cannot be empty"}
	}
	if customerSecret == "" {
		return nil, &ValidationError{Field: "customer_secret", Message: "cannot be empty"}
	}
	return &BasicAuthCredential{customerID: customerID, customerSecret: customerSecret}, nil
}

// AuthHeader implements Credential.
func (c *BasicAuthCredential) AuthHeader() map[string]string {
	encoded := base64.StdEncoding.EncodeToString([]byte(c.customerID + ":" + c.customerSecret))
	return map[string]string{"Authorization": "Basic " + encoded}
}
