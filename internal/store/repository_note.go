package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/models"
)

// noteRepository is the PostgreSQL-backed implementation of [NoteRepository]
// over the "notes" table. One note per (user, recipe) pair; saving again
// overwrites via an upsert.
type noteRepository struct {
	*DB
	logger *logger.Logger
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveNote inserts the note or overwrites the existing text through
// ON CONFLICT DO UPDATE on the (user_id, recipe_id) primary key.
func (n *noteRepository) SaveNote(ctx context.Context, note models.Note) error {
	log := logger.FromContext(ctx)

	_, err := n.DB.ExecContext(ctx, saveNote, note.UserID, note.RecipeID, note.Note)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.SaveNote").
			Int64("user_id", note.UserID).
			Int64("recipe_id", note.RecipeID).
			Msg("failed to upsert note")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetNote returns the stored note for the (user, recipe) pair.
// Returns [ErrNoteNotFound] when none exists.
func (n *noteRepository) GetNote(ctx context.Context, userID, recipeID int64) (models.Note, error) {
	log := logger.FromContext(ctx)

	var note models.Note
	row := n.DB.QueryRowContext(ctx, getNote, userID, recipeID)
	if err := row.Scan(&note.UserID, &note.RecipeID, &note.Note); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}
		log.Err(err).Str("func", "noteRepository.GetNote").Int64("user_id", userID).Msg("failed to scan note row")
		return models.Note{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return note, nil
}

// DeleteNote removes the stored note for the (user, recipe) pair.
// Returns [ErrNoteNotFound] when none exists.
func (n *noteRepository) DeleteNote(ctx context.Context, userID, recipeID int64) error {
	log := logger.FromContext(ctx)

	result, err := n.DB.ExecContext(ctx, deleteNote, userID, recipeID)
	if err != nil {
		log.Err(err).Str("func", "noteRepository.DeleteNote").Int64("user_id", userID).Msg("failed to delete note")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}
