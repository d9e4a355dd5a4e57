package service

import (
	"context"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/store"
	"github.com/MKhiriev/go-recipe-box/models"
)

// ratingService is the concrete implementation of [RatingService].
type ratingService struct {
	ratingRepository store.RatingRepository
	logger           *logger.Logger
}

// NewRatingService constructs a [RatingService] on top of the given
// repository.
func NewRatingService(ratingRepository store.RatingRepository, logger *logger.Logger) RatingService {
	return &ratingService{
		ratingRepository: ratingRepository,
		logger:           logger,
	}
}

// Save upserts the caller's score for a recipe.
// Returns [ErrRatingOutOfRange] for scores outside the 1..5 scale.
func (r *ratingService) Save(ctx context.Context, rating models.Rating) error {
	if rating.RecipeID <= 0 {
		return ErrInvalidDataProvided
	}
	if rating.Rating < 1 || rating.Rating > 5 {
		return ErrRatingOutOfRange
	}

	return r.ratingRepository.SaveRating(ctx, rating)
}

// Get returns the caller's own score for a recipe.
// Returns [store.ErrRatingNotFound] when none exists.
func (r *ratingService) Get(ctx context.Context, userID, recipeID int64) (models.Rating, error) {
	return r.ratingRepository.GetRating(ctx, userID, recipeID)
}

// Summary returns the public average score and vote count for a recipe.
func (r *ratingService) Summary(ctx context.Context, recipeID int64) (models.RatingSummary, error) {
	return r.ratingRepository.GetSummary(ctx, recipeID)
}
