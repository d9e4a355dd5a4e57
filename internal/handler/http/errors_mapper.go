// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/service"
	"github.com/MKhiriev/go-recipe-box/internal/store"
	"github.com/MKhiriev/go-recipe-box/internal/utils"
	"github.com/MKhiriev/go-recipe-box/models"
)

// writeError sends the standard {error, message} JSON body. An empty
// message is omitted from the payload.
func writeError(w http.ResponseWriter, statusCode int, errText, message string) {
	utils.WriteJSON(w, models.ErrorResponse{Error: errText, Message: message}, statusCode)
}

// writeAuthError maps a verification or resolution failure to its 401 body.
// The five distinguished bodies let clients tell "get a token" from "log in
// again" from "give up" without parsing free text.
func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNoToken):
		writeError(w, http.StatusUnauthorized, "Authentication required", "No token provided")
	case errors.Is(err, service.ErrTokenExpired):
		writeError(w, http.StatusUnauthorized, "Token expired", "Please log in again")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusUnauthorized, "Invalid token", "User not found")
	case errors.Is(err, service.ErrUpstreamAuth):
		writeError(w, http.StatusUnauthorized, "Authentication failed", "Unable to verify token")
	default:
		writeError(w, http.StatusUnauthorized, "Invalid token", "Token verification failed")
	}
}

// handleServiceError maps every non-auth service failure to its HTTP
// response. Handlers call it from their error branches after ruling out any
// endpoint-specific statuses.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	switch {
	case errors.Is(err, service.ErrInvalidDataProvided),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrRatingOutOfRange):
		writeError(w, http.StatusBadRequest, "Invalid data", err.Error())

	case errors.Is(err, service.ErrNotOwner):
		writeError(w, http.StatusForbidden, "Not allowed", "Only the submitter or an admin may modify this recipe")

	case errors.Is(err, store.ErrRecipeNotFound):
		writeError(w, http.StatusNotFound, "Recipe not found", "")
	case errors.Is(err, service.ErrNoImage):
		writeError(w, http.StatusNotFound, "No image", "This recipe has no stored image")
	case errors.Is(err, store.ErrFavoriteNotFound):
		writeError(w, http.StatusNotFound, "Favorite not found", "")
	case errors.Is(err, store.ErrNoteNotFound):
		writeError(w, http.StatusNotFound, "Note not found", "")
	case errors.Is(err, store.ErrRatingNotFound):
		writeError(w, http.StatusNotFound, "Rating not found", "")
	case errors.Is(err, store.ErrNoUserWasFound):
		writeError(w, http.StatusNotFound, "User not found", "")

	case errors.Is(err, store.ErrUserAlreadyExists):
		writeError(w, http.StatusConflict, "Account already exists", "Username or email is already taken")
	case errors.Is(err, store.ErrAlreadyFavorite):
		writeError(w, http.StatusConflict, "Already favorited", "")

	default:
		log.Err(err).Msg("unexpected error while handling request")
		h.internalError(w, err)
	}
}

// internalError writes a 500. The underlying message is attached only in
// development mode.
func (h *Handler) internalError(w http.ResponseWriter, err error) {
	message := ""
	if h.devMode && err != nil {
		message = err.Error()
	}
	writeError(w, http.StatusInternalServerError, "Internal server error", message)
}
