// Package jwks caches the RSA public keys published by a remote identity
// provider and resolves them by key ID for token signature verification.
package jwks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/utils"
	"github.com/MicahParks/jwkset"
	"golang.org/x/time/rate"
)

// Provider fetches a JSON Web Key Set over HTTP and serves individual keys
// by key ID (`kid`) from an in-memory cache.
//
// A key ID missing from the cache triggers a refetch of the whole set: the
// identity provider rotates keys, and a token signed with a fresh key can
// arrive before the cache has seen it. Refetches are limited to a fixed
// number per minute so a flood of tokens with bogus key IDs cannot turn the
// service into a request amplifier against the upstream.
//
// All methods are safe for concurrent use.
type Provider struct {
	url     string
	client  *utils.HTTPClient
	limiter *rate.Limiter
	log     *logger.Logger

	mu   sync.RWMutex
	keys map[string]any
}

// NewProvider creates a Provider for the key set published at url.
//
// fetchTimeout bounds each HTTP fetch; fetchesPerMinute caps how often the
// key set may be re-downloaded. Keys are fetched lazily on first use - the
// constructor performs no network calls, so the service starts even when
// the identity provider is down.
func NewProvider(url string, fetchTimeout time.Duration, fetchesPerMinute int, log *logger.Logger) *Provider {
	if fetchesPerMinute <= 0 {
		fetchesPerMinute = 5
	}

	return &Provider{
		url:     url,
		client:  utils.NewHTTPClient(fetchTimeout),
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(fetchesPerMinute)), fetchesPerMinute),
		log:     &logger.Logger{Logger: log.With().Str("component", "jwks").Logger()},
		keys:    make(map[string]any),
	}
}

// Resolve returns the public key with the given key ID.
//
// Cached keys are returned without touching the network. On a cache miss the
// whole key set is refetched once; a key ID still absent after a successful
// refetch yields ErrKeyNotFound. When the fetch budget is spent the cached
// set is authoritative and ErrRateLimited is returned instead of waiting.
func (p *Provider) Resolve(ctx context.Context, keyID string) (any, error) {
	p.mu.RLock()
	key, ok := p.keys[keyID]
	p.mu.RUnlock()
	if ok {
		return key, nil
	}

	if !p.limiter.Allow() {
		p.log.Warn().Str("func", "Resolve").Str("kid", keyID).Msg("key set refetch skipped: rate limit exceeded")
		return nil, ErrRateLimited
	}

	if err := p.refresh(ctx); err != nil {
		return nil, err
	}

	p.mu.RLock()
	key, ok = p.keys[keyID]
	p.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: kid=%s", ErrKeyNotFound, keyID)
	}

	return key, nil
}

// refresh downloads the key set and replaces the cache with its contents.
func (p *Provider) refresh(ctx context.Context) error {
	resp, err := p.client.R().SetContext(ctx).Get(p.url)
	if err != nil {
		p.log.Error().Err(err).Str("func", "refresh").Str("url", p.url).Msg("key set fetch failed")
		return fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		p.log.Error().Str("func", "refresh").Str("url", p.url).Int("status", resp.StatusCode()).Msg("key set fetch returned non-OK status")
		return fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode())
	}

	keys, err := parseKeySet(resp.Body())
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.keys = keys
	p.mu.Unlock()

	p.log.Debug().Str("func", "refresh").Int("keys", len(keys)).Msg("key set refreshed")

	return nil
}

// parseKeySet decodes a JWKS document into a kid-indexed map of public keys.
// Entries without a key ID or with unsupported parameters are skipped rather
// than failing the whole set.
func parseKeySet(body []byte) (map[string]any, error) {
	var set jwkset.JWKSMarshal
	if err := json.Unmarshal(body, &set); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadKeySet, err)
	}

	keys := make(map[string]any, len(set.Keys))
	for _, marshal := range set.Keys {
		if marshal.KID == "" {
			continue
		}
		jwk, err := jwkset.NewJWKFromMarshal(marshal, jwkset.JWKMarshalOptions{}, jwkset.JWKValidateOptions{})
		if err != nil {
			continue
		}
		keys[marshal.KID] = jwk.Key()
	}

	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: no usable keys", ErrBadKeySet)
	}

	return keys, nil
}
