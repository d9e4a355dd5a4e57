package store

import "github.com/MKhiriev/go-recipe-box/internal/logger"

// Storages aggregates every repository implementation behind its interface.
type Storages struct {
	UserRepository     UserRepository
	RecipeRepository   RecipeRepository
	FavoriteRepository FavoriteRepository
	NoteRepository     NoteRepository
	RatingRepository   RatingRepository
}

// NewStorages wires all PostgreSQL-backed repositories onto the given
// database connection.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:     NewUserRepository(db, log),
		RecipeRepository:   NewRecipeRepository(db, log),
		FavoriteRepository: NewFavoriteRepository(db, log),
		NoteRepository:     NewNoteRepository(db, log),
		RatingRepository:   NewRatingRepository(db, log),
	}
}
