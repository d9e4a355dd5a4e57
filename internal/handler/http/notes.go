package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/service"
	"github.com/MKhiriev/go-recipe-box/internal/utils"
	"github.com/MKhiriev/go-recipe-box/models"
)

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeAuthError(w, service.ErrNoToken)
		return
	}

	id, idOK := recipeID(r)
	if !idOK {
		writeError(w, http.StatusNotFound, "Note not found", "")
		return
	}

	note, err := h.services.NoteService.Get(ctx, user.UserID, id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) saveNote(w http.ResponseWriter, r *http.Request) {
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

	var note models.Note
	if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, http.StatusBadRequest, "Invalid JSON", "")
		return
	}
	note.UserID = user.UserID
	note.RecipeID = id

	if err := h.services.NoteService.Save(ctx, note); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, map[string]string{"message": "Note saved"}, http.StatusOK)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeAuthError(w, service.ErrNoToken)
		return
	}

	id, idOK := recipeID(r)
	if !idOK {
		writeError(w, http.StatusNotFound, "Note not found", "")
		return
	}

	if err := h.services.NoteService.Delete(ctx, user.UserID, id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, map[string]string{"message": "Note deleted"}, http.StatusOK)
}
