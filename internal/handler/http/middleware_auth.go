package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/service"
	"github.com/MKhiriev/go-recipe-box/internal/utils"
)

// auth is the HTTP middleware enforcing token-based authentication.
//
// It extracts the raw token via the configured [service.TokenVerifier],
// verifies it, resolves the principal to an internal account, and on
// success stores the resolved [models.User] in the request context under
// [utils.UserCtxKey] before delegating to the next handler.
//
// Every failure is a 401 with one of the distinguished bodies written by
// writeAuthError; authorization (403) decisions only ever happen after this
// middleware has admitted the request.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		ctx := r.Context()

		rawToken, err := h.verifier.Extract(r)
		if err != nil {
			writeAuthError(w, err)
			return
		}

		principal, err := h.verifier.Verify(ctx, rawToken)
		if err != nil {
			log.Debug().Err(err).Msg("token verification failed")
			writeAuthError(w, err)
			return
		}

		user, err := h.services.AuthService.ResolvePrincipal(ctx, principal)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrTokenInvalid) {
				writeAuthError(w, err)
				return
			}
			log.Err(err).Msg("principal resolution failed")
			h.internalError(w, err)
			return
		}

		ctx = context.WithValue(ctx, utils.UserCtxKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// maybeAuth resolves a caller when a token is present but admits anonymous
// requests. Used on read endpoints where approved content is public and an
// authenticated viewer may additionally see their own unapproved recipes.
//
// A missing token proceeds anonymously; a present-but-bad token is still a
// hard 401 so that a client with broken credentials notices.
func (h *Handler) maybeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		rawToken, err := h.verifier.Extract(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		principal, err := h.verifier.Verify(ctx, rawToken)
		if err != nil {
			writeAuthError(w, err)
			return
		}

		user, err := h.services.AuthService.ResolvePrincipal(ctx, principal)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrTokenInvalid) {
				writeAuthError(w, err)
				return
			}
			h.internalError(w, err)
			return
		}

		ctx = context.WithValue(ctx, utils.UserCtxKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin rejects non-admin callers with 403. Must be mounted after
// auth so that the account is already resolved; a missing context user is a
// wiring bug and fails closed as 401.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := utils.GetUserFromContext(r.Context())
		if !ok {
			writeAuthError(w, service.ErrNoToken)
			return
		}

		if !user.IsAdmin {
			logger.FromRequest(r).Debug().Int64("user_id", user.UserID).Msg("admin route denied")
			writeError(w, http.StatusForbidden, "Admin access required", "")
			return
		}

		next.ServeHTTP(w, r)
	})
}
