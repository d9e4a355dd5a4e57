package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/models"
)

// ratingRepository is the PostgreSQL-backed implementation of
// [RatingRepository] over the "rating" table. One score per (user, recipe)
// pair; saving again overwrites via an upsert.
type ratingRepository struct {
	*DB
	logger *logger.Logger
}

// NewRatingRepository constructs a [RatingRepository] backed by the provided
// database connection and logger.
func NewRatingRepository(db *DB, logger *logger.Logger) RatingRepository {
	logger.Debug().Msg("creating rating repository")
	return &ratingRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveRating inserts the score or overwrites the existing one through
// ON CONFLICT DO UPDATE on the (user_id, recipe_id) primary key.
func (r *ratingRepository) SaveRating(ctx context.Context, rating models.Rating) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, saveRating, rating.UserID, rating.RecipeID, rating.Rating)
	if err != nil {
		log.Err(err).
			Str("func", "ratingRepository.SaveRating").
			Int64("user_id", rating.UserID).
			Int64("recipe_id", rating.RecipeID).
			Msg("failed to upsert rating")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetRating returns the caller's own score for a recipe.
// Returns [ErrRatingNotFound] when none exists.
func (r *ratingRepository) GetRating(ctx context.Context, userID, recipeID int64) (models.Rating, error) {
	log := logger.FromContext(ctx)

	var rating models.Rating
	row := r.DB.QueryRowContext(ctx, getRating, userID, recipeID)
	if err := row.Scan(&rating.UserID, &rating.RecipeID, &rating.Rating); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Rating{}, ErrRatingNotFound
		}
		log.Err(err).Str("func", "ratingRepository.GetRating").Int64("user_id", userID).Msg("failed to scan rating row")
		return models.Rating{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return rating, nil
}

// GetSummary returns the average score and vote count for a recipe.
// A recipe without votes yields a zero average and zero count.
func (r *ratingRepository) GetSummary(ctx context.Context, recipeID int64) (models.RatingSummary, error) {
	log := logger.FromContext(ctx)

	var summary models.RatingSummary
	row := r.DB.QueryRowContext(ctx, getRatingSummary, recipeID)
	if err := row.Scan(&summary.AverageRating, &summary.TotalRatings); err != nil {
		log.Err(err).Str("func", "ratingRepository.GetSummary").Int64("recipe_id", recipeID).Msg("failed to scan rating summary")
		return models.RatingSummary{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return summary, nil
}
