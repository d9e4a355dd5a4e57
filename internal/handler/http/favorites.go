package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/service"
	"github.com/MKhiriev/go-recipe-box/internal/utils"
	"github.com/MKhiriev/go-recipe-box/models"
)

func (h *Handler) listFavorites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeAuthError(w, service.ErrNoToken)
		return
	}

	favorites, err := h.services.FavoriteService.List(ctx, user.UserID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, favorites, http.StatusOK)
}

func (h *Handler) addFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeAuthError(w, service.ErrNoToken)
		return
	}

	var favorite models.Favorite
	if err := json.NewDecoder(r.Body).Decode(&favorite); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, http.StatusBadRequest, "Invalid JSON", "")
		return
	}
	// the source flag defaults to community for bare {recipe_id} payloads
	if favorite.Source == "" {
		favorite.Source = models.SourceCommunity
	}
	favorite.UserID = user.UserID

	if err := h.services.FavoriteService.Add(ctx, favorite); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, map[string]string{"message": "Recipe favorited"}, http.StatusCreated)
}

func (h *Handler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeAuthError(w, service.ErrNoToken)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, "Favorite not found", "")
		return
	}

	source := models.RecipeSource(r.URL.Query().Get("source"))
	if source == "" {
		source = models.SourceCommunity
	}

	favorite := models.Favorite{UserID: user.UserID, RecipeID: id, Source: source}
	if err := h.services.FavoriteService.Remove(ctx, favorite); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, map[string]string{"message": "Favorite removed"}, http.StatusOK)
}
