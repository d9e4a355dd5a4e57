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

// recipeID parses the {id} route parameter. A non-numeric id is reported as
// not found rather than bad request: the route space only contains numbers.
func recipeID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// viewer returns the resolved caller for visibility decisions, nil for
// anonymous requests.
func viewer(r *http.Request) *models.User {
	if user, ok := utils.GetUserFromContext(r.Context()); ok {
		return &user
	}
	return nil
}

func (h *Handler) listRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.services.RecipeService.ListApproved(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, recipes, http.StatusOK)
}

func (h *Handler) getRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Recipe not found", "")
		return
	}

	recipe, err := h.services.RecipeService.Get(r.Context(), viewer(r), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, recipe, http.StatusOK)
}

func (h *Handler) recipeImage(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Recipe not found", "")
		return
	}

	imageData, imageType, err := h.services.RecipeService.GetImage(r.Context(), viewer(r), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if imageType == "" {
		imageType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", imageType)
	w.WriteHeader(http.StatusOK)
	w.Write(imageData)
}

func (h *Handler) createRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeAuthError(w, service.ErrNoToken)
		return
	}

	var input models.RecipeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, http.StatusBadRequest, "Invalid JSON", "")
		return
	}

	recipeIDValue, err := h.services.RecipeService.Create(ctx, user.UserID, input)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.RecipeCreatedResponse{
		Message:  "Recipe submitted for moderation",
		RecipeID: recipeIDValue,
	}, http.StatusCreated)
}

func (h *Handler) replaceRecipe(w http.ResponseWriter, r *http.Request) {
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

	var input models.RecipeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, http.StatusBadRequest, "Invalid JSON", "")
		return
	}

	if err := h.services.RecipeService.Replace(ctx, user, id, input); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, map[string]string{"message": "Recipe updated"}, http.StatusOK)
}

func (h *Handler) deleteRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

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

	snapshot, err := h.services.RecipeService.Delete(ctx, user, id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.RecipeDeletedResponse{
		Message: "Recipe deleted",
		Recipe:  snapshot,
	}, http.StatusOK)
}

func (h *Handler) setApproval(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, ok := recipeID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Recipe not found", "")
		return
	}

	var req models.ApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, http.StatusBadRequest, "Invalid JSON", "")
		return
	}

	if err := h.services.RecipeService.SetApproval(ctx, id, req.Approved); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	message := "Recipe approved"
	if !req.Approved {
		message = "Recipe unapproved"
	}
	utils.WriteJSON(w, map[string]string{"message": message}, http.StatusOK)
}

func (h *Handler) myRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeAuthError(w, service.ErrNoToken)
		return
	}

	recipes, err := h.services.RecipeService.ListByCreator(ctx, user.UserID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, recipes, http.StatusOK)
}
