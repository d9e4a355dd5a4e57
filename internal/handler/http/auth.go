package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/service"
	"github.com/MKhiriev/go-recipe-box/internal/utils"
	"github.com/MKhiriev/go-recipe-box/models"
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, http.StatusBadRequest, "Invalid JSON", "")
		return
	}

	user, token, err := h.services.AuthService.Signup(ctx, req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.AuthResponse{
		Message: "Account created",
		Token:   token.SignedString,
		User:    user,
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, http.StatusBadRequest, "Invalid JSON", "")
		return
	}

	user, token, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		// one body for every credential failure: no account oracle
		if errors.Is(err, service.ErrWrongPassword) {
			log.Debug().Msg("login rejected")
			writeError(w, http.StatusUnauthorized, "Invalid credentials", "Email or password is incorrect")
			return
		}
		h.handleServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.AuthResponse{
		Message: "Logged in",
		Token:   token.SignedString,
		User:    user,
	}, http.StatusOK)
}

// me returns the already-resolved caller. Useful for session restoration on
// the client without re-sending credentials.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		writeAuthError(w, service.ErrNoToken)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}
