package jwks

import "errors"

// Errors returned by the Provider. Callers match them with errors.Is to
// distinguish a signing key that is genuinely unknown from a fetch that
// could not be performed.
var (
	// ErrKeyNotFound - the key set was fetched successfully but contains no key with the requested ID.
	ErrKeyNotFound = errors.New("signing key not found in key set")
	// ErrUpstreamUnavailable - the key set endpoint could not be reached or returned a bad response.
	ErrUpstreamUnavailable = errors.New("key set endpoint unavailable")
	// ErrRateLimited - a refetch was needed but the per-minute fetch budget is exhausted.
	ErrRateLimited = errors.New("key set fetch rate limit exceeded")
	// ErrBadKeySet - the key set response could not be parsed.
	ErrBadKeySet = errors.New("malformed key set response")
)
