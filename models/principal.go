package models

import "time"

// IssuerKind identifies which trust model produced a verified token.
type IssuerKind string

const (
	// IssuerLocal marks principals extracted from self-issued HMAC session
	// tokens. The subject is the internal numeric user ID.
	IssuerLocal IssuerKind = "local"

	// IssuerRemote marks principals extracted from identity-provider tokens
	// validated against the provider's published key set. The subject is the
	// provider-assigned "sub" claim, not an internal ID.
	IssuerRemote IssuerKind = "remote"
)

// Principal is the verified identity extracted from a bearer token,
// prior to resolution against internal storage.
type Principal struct {
	// Subject is the token's "sub" claim. Stable per issuer.
	Subject string

	// Kind reports which verifier variant produced this principal.
	Kind IssuerKind

	// Issuer is the validated "iss" claim.
	Issuer string

	// ExpiresAt is the validated "exp" claim.
	ExpiresAt time.Time

	// Name is the optional display-name claim carried by remote tokens.
	// Used when provisioning a user record on first sight.
	Name string

	// Email is the optional e-mail claim carried by remote tokens.
	Email string
}
