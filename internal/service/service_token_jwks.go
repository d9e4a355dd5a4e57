package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-recipe-box/internal/config"
	"github.com/MKhiriev/go-recipe-box/internal/jwks"
	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/models"
	"github.com/golang-jwt/jwt/v5"
)

// remoteClaims is the claim set of identity-provider tokens. Beyond the
// registered claims it carries the optional profile claims used to provision
// an account on first sight.
type remoteClaims struct {
	jwt.RegisteredClaims
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// jwksVerifier is the [TokenVerifier] for RS256 tokens issued by an external
// identity provider and validated against its published key set. The subject
// of a verified token is the provider-assigned "sub" claim.
type jwksVerifier struct {
	keys     KeyResolver
	issuer   string
	audience string
	logger   *logger.Logger
}

// NewJWKSVerifier constructs the remote-mode [TokenVerifier] from app config
// and the key set resolver.
func NewJWKSVerifier(keys KeyResolver, cfg config.App, logger *logger.Logger) TokenVerifier {
	return &jwksVerifier{
		keys:     keys,
		issuer:   cfg.IssuerURL(),
		audience: cfg.Auth0Audience,
		logger:   logger,
	}
}

// Extract reads the bearer token from the Authorization header, falling back
// to the "token" query parameter. The fallback exists for image tags and
// similar contexts that cannot set headers.
func (v *jwksVerifier) Extract(r *http.Request) (string, error) {
	token, err := bearerToken(r)
	if err == nil {
		return token, nil
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}

	return "", ErrNoToken
}

// Verify validates the signature, issuer, audience, and expiry of an
// identity-provider token.
//
// The algorithm allowlist admits RS256 only: alg=none and HMAC algorithms
// are rejected before the key lookup, closing the key-confusion hole where
// the public key doubles as an HMAC secret. The signing key is located by
// the "kid" header through the key resolver; an unknown kid triggers one
// rate-limited key set refetch inside the resolver.
//
// Error mapping:
//   - expired token → [ErrTokenExpired]
//   - key set unreachable or fetch budget exhausted → [ErrUpstreamAuth]
//   - everything else (unknown kid, bad signature, wrong iss/aud,
//     malformed) → [ErrTokenInvalid]
func (v *jwksVerifier) Verify(ctx context.Context, rawToken string) (models.Principal, error) {
	log := logger.FromContext(ctx)

	claims := &remoteClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims,
		func(t *jwt.Token) (any, error) {
			kid, _ := t.Header["kid"].(string)
			if kid == "" {
				return nil, ErrTokenInvalid
			}
			return v.keys.Resolve(ctx, kid)
		},
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return models.Principal{}, ErrTokenExpired
		case errors.Is(err, jwks.ErrUpstreamUnavailable), errors.Is(err, jwks.ErrRateLimited), errors.Is(err, jwks.ErrBadKeySet):
			log.Warn().Err(err).Str("func", "jwksVerifier.Verify").Msg("key material unavailable")
			return models.Principal{}, ErrUpstreamAuth
		default:
			log.Debug().Err(err).Str("func", "jwksVerifier.Verify").Msg("identity-provider token rejected")
			return models.Principal{}, ErrTokenInvalid
		}
	}
	if !token.Valid || claims.Subject == "" {
		return models.Principal{}, ErrTokenInvalid
	}

	principal := models.Principal{
		Subject: claims.Subject,
		Kind:    models.IssuerRemote,
		Issuer:  claims.Issuer,
		Name:    claims.Name,
		Email:   claims.Email,
	}
	if claims.ExpiresAt != nil {
		principal.ExpiresAt = claims.ExpiresAt.Time
	}

	return principal, nil
}
