package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/service"
	"github.com/MKhiriev/go-recipe-box/internal/utils"
	"github.com/MKhiriev/go-recipe-box/models"
)

// ratingSummary is public: average score and vote count disclose nothing
// about individual raters.
func (h *Handler) ratingSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Recipe not found", "")
		return
	}

	summary, err := h.services.RatingService.Summary(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, summary, http.StatusOK)
}

func (h *Handler) getRating(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeAuthError(w, service.ErrNoToken)
		return
	}

	id, idOK := recipeID(r)
	if !idOK {
		writeError(w, http.StatusNotFound, "Rating not found", "")
		return
	}

	rating, err := h.services.RatingService.Get(ctx, user.UserID, id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, rating, http.StatusOK)
}

func (h *Handler) saveRating(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeAuthError(w, service.ErrNoToken)
		return
	}

	id, idOK := recipeID(r)
	if !idOK {
		writeError(w, http.StatusNotFound, "Recipe not found", "")
		return
	}

	var rating models.Rating
	if err := json.NewDecoder(r.Body).Decode(&rating); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, http.StatusBadRequest, "Invalid JSON", "")
		return
	}
	rating.UserID = user.UserID
	rating.RecipeID = id

	if err := h.services.RatingService.Save(ctx, rating); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, map[string]string{"message": "Rating saved"}, http.StatusOK)
}
