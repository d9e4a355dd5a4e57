package store

import (
	"context"

	"github.com/MKhiriev/go-recipe-box/models"
)

// UserRepository persists and retrieves user accounts.
type UserRepository interface {
	// CreateUser inserts a password-based account and returns it with
	// server-assigned fields populated.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// CreateFederatedUser inserts an externally provisioned account keyed by
	// its identity provider subject. The operation is idempotent under
	// concurrency: when a concurrent insert wins, the winner's row is
	// returned instead of an error.
	CreateFederatedUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByExternalSubject(ctx context.Context, subject string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	// UpdateUserProfile updates mutable profile fields and replaces the
	// user's stored preferences atomically.
	UpdateUserProfile(ctx context.Context, user models.User, preferences []string) error
	GetPreferences(ctx context.Context, userID int64) ([]string, error)
}

// RecipeRepository persists community recipe aggregates. A recipe, its
// ingredients, and its instructions are always written and deleted inside a
// single transaction.
type RecipeRepository interface {
	// CreateRecipe inserts the recipe row and its child rows atomically and
	// returns the new recipe ID.
	CreateRecipe(ctx context.Context, recipe models.Recipe) (int64, error)
	// ReplaceRecipe overwrites the recipe row and rebuilds all child rows
	// atomically. When updateImage is false the stored image is preserved.
	ReplaceRecipe(ctx context.Context, recipe models.Recipe, updateImage bool) error
	// SetApproval flips the moderation flag and bumps updated_at.
	SetApproval(ctx context.Context, recipeID int64, approved bool) error
	// DeleteRecipe removes the aggregate and returns a snapshot of the
	// recipe row as it existed right before deletion.
	DeleteRecipe(ctx context.Context, recipeID int64) (models.Recipe, error)
	// GetRecipe loads the full aggregate including child rows.
	GetRecipe(ctx context.Context, recipeID int64) (models.Recipe, error)
	// GetRecipeImage loads only the stored image bytes and MIME type.
	GetRecipeImage(ctx context.Context, recipeID int64) ([]byte, string, error)
	// ListApproved returns approved recipes without image payloads.
	ListApproved(ctx context.Context) ([]models.Recipe, error)
	// ListByCreator returns all recipes submitted by one user, regardless of
	// approval state.
	ListByCreator(ctx context.Context, userID int64) ([]models.Recipe, error)
	// Exists reports whether a recipe row with the given ID is present.
	Exists(ctx context.Context, recipeID int64) (bool, error)
}

// FavoriteRepository persists per-user favorite marks.
type FavoriteRepository interface {
	AddFavorite(ctx context.Context, favorite models.Favorite) error
	RemoveFavorite(ctx context.Context, favorite models.Favorite) error
	ListFavorites(ctx context.Context, userID int64) ([]models.Favorite, error)
}

// NoteRepository persists per-(user, recipe) singleton notes.
type NoteRepository interface {
	// SaveNote inserts the note or overwrites the existing text.
	SaveNote(ctx context.Context, note models.Note) error
	GetNote(ctx context.Context, userID, recipeID int64) (models.Note, error)
	DeleteNote(ctx context.Context, userID, recipeID int64) error
}

// RatingRepository persists per-(user, recipe) singleton scores.
type RatingRepository interface {
	// SaveRating inserts the rating or overwrites the existing score.
	SaveRating(ctx context.Context, rating models.Rating) error
	GetRating(ctx context.Context, userID, recipeID int64) (models.Rating, error)
	// GetSummary returns the average score and vote count for a recipe.
	GetSummary(ctx context.Context, recipeID int64) (models.RatingSummary, error)
}
