package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/store"
	"github.com/MKhiriev/go-recipe-box/models"
)

// favoriteService is the concrete implementation of [FavoriteService].
//
// Favorites reference recipes by bare ID plus a source flag because
// external-catalog recipes live outside this database: referential
// integrity cannot be enforced in the schema, so the community-source
// existence check happens here instead.
type favoriteService struct {
	favoriteRepository store.FavoriteRepository
	recipeRepository   store.RecipeRepository
	logger             *logger.Logger
}

// NewFavoriteService constructs a [FavoriteService] on top of the favorite
// and recipe repositories.
func NewFavoriteService(favoriteRepository store.FavoriteRepository, recipeRepository store.RecipeRepository, logger *logger.Logger) FavoriteService {
	return &favoriteService{
		favoriteRepository: favoriteRepository,
		recipeRepository:   recipeRepository,
		logger:             logger,
	}
}

// Add marks a recipe as favorite.
//
// Community-source recipes must exist in this database; external-catalog
// IDs are taken on faith. Returns [store.ErrAlreadyFavorite] for a
// duplicate mark and [store.ErrRecipeNotFound] for an unknown community
// recipe.
func (f *favoriteService) Add(ctx context.Context, favorite models.Favorite) error {
	log := logger.FromContext(ctx)

	if favorite.RecipeID <= 0 || !favorite.Source.Valid() {
		return ErrInvalidDataProvided
	}

	if favorite.Source == models.SourceCommunity {
		exists, err := f.recipeRepository.Exists(ctx, favorite.RecipeID)
		if err != nil {
			log.Err(err).Str("func", "favoriteService.Add").Int64("recipe_id", favorite.RecipeID).Msg("recipe existence check failed")
			return fmt.Errorf("recipe existence check failed: %w", err)
		}
		if !exists {
			return store.ErrRecipeNotFound
		}
	}

	return f.favoriteRepository.AddFavorite(ctx, favorite)
}

// Remove deletes a favorite mark.
// Returns [store.ErrFavoriteNotFound] when the mark does not exist.
func (f *favoriteService) Remove(ctx context.Context, favorite models.Favorite) error {
	if favorite.RecipeID <= 0 || !favorite.Source.Valid() {
		return ErrInvalidDataProvided
	}

	return f.favoriteRepository.RemoveFavorite(ctx, favorite)
}

// List returns every favorite mark of one user.
func (f *favoriteService) List(ctx context.Context, userID int64) ([]models.Favorite, error) {
	return f.favoriteRepository.ListFavorites(ctx, userID)
}
