package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-recipe-box/internal/config"
	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/models"
	"github.com/golang-jwt/jwt/v5"
)

// hmacVerifier is the [TokenVerifier] for self-issued session tokens signed
// with the shared HMAC secret. The subject of a verified token is the
// internal numeric user ID.
type hmacVerifier struct {
	signKey string
	issuer  string
	logger  *logger.Logger
}

// NewHMACVerifier constructs the local-mode [TokenVerifier] from app config.
func NewHMACVerifier(cfg config.App, logger *logger.Logger) TokenVerifier {
	return &hmacVerifier{
		signKey: cfg.TokenSignKey,
		issuer:  cfg.TokenIssuer,
		logger:  logger,
	}
}

// Extract reads the bearer token from the Authorization header.
// Self-issued tokens are never accepted from query parameters.
func (v *hmacVerifier) Extract(r *http.Request) (string, error) {
	return bearerToken(r)
}

// Verify validates the signature, issuer, and expiry of a session token.
//
// The signing algorithm is pinned to HS256 before any claim is trusted, so a
// token re-signed under a different algorithm fails closed.
//
// Error mapping:
//   - expired token → [ErrTokenExpired]
//   - anything else (bad signature, wrong issuer, malformed) → [ErrTokenInvalid]
func (v *hmacVerifier) Verify(ctx context.Context, rawToken string) (models.Principal, error) {
	log := logger.FromContext(ctx)

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims,
		func(t *jwt.Token) (any, error) {
			return []byte(v.signKey), nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Principal{}, ErrTokenExpired
		}
		log.Debug().Err(err).Str("func", "hmacVerifier.Verify").Msg("session token rejected")
		return models.Principal{}, ErrTokenInvalid
	}
	if !token.Valid || claims.Subject == "" {
		return models.Principal{}, ErrTokenInvalid
	}

	principal := models.Principal{
		Subject: claims.Subject,
		Kind:    models.IssuerLocal,
		Issuer:  claims.Issuer,
	}
	if claims.ExpiresAt != nil {
		principal.ExpiresAt = claims.ExpiresAt.Time
	}

	return principal, nil
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Returns [ErrNoToken] when the header is absent or not a bearer
// scheme.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrNoToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrNoToken
	}

	return parts[1], nil
}
