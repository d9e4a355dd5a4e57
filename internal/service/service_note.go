package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/store"
	"github.com/MKhiriev/go-recipe-box/models"
)

// noteService is the concrete implementation of [NoteService].
type noteService struct {
	noteRepository store.NoteRepository
	logger         *logger.Logger
}

// NewNoteService constructs a [NoteService] on top of the given repository.
func NewNoteService(noteRepository store.NoteRepository, logger *logger.Logger) NoteService {
	return &noteService{
		noteRepository: noteRepository,
		logger:         logger,
	}
}

// Save upserts the caller's note for a recipe. A blank note is rejected;
// removal goes through [Delete].
func (n *noteService) Save(ctx context.Context, note models.Note) error {
	note.Note = strings.TrimSpace(note.Note)
	if note.RecipeID <= 0 || note.Note == "" {
		return ErrInvalidDataProvided
	}

	return n.noteRepository.SaveNote(ctx, note)
}

// Get returns the caller's stored note for a recipe.
// Returns [store.ErrNoteNotFound] when none exists.
func (n *noteService) Get(ctx context.Context, userID, recipeID int64) (models.Note, error) {
	return n.noteRepository.GetNote(ctx, userID, recipeID)
}

// Delete removes the caller's stored note for a recipe.
// Returns [store.ErrNoteNotFound] when none exists.
func (n *noteService) Delete(ctx context.Context, userID, recipeID int64) error {
	return n.noteRepository.DeleteNote(ctx, userID, recipeID)
}
