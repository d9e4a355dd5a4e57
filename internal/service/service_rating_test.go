// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/models"
)

func TestRatingSave_EnforcesScale(t *testing.T) {
	saved := 0
	repo := &mockRatingRepository{
		saveFn: func(ctx context.Context, rating models.Rating) error {
			saved++
			return nil
		},
	}
	svc := NewRatingService(repo, logger.NewLogger("test"))

	for _, score := range []int{1, 3, 5} {
		err := svc.Save(context.Background(), models.Rating{UserID: 1, RecipeID: 11, Rating: score})
		assert.NoError(t, err, "score %d should be accepted", score)
	}
	for _, score := range []int{0, -1, 6, 100} {
		err := svc.Save(context.Background(), models.Rating{UserID: 1, RecipeID: 11, Rating: score})
		assert.ErrorIs(t, err, ErrRatingOutOfRange, "score %d should be rejected", score)
	}

	assert.Equal(t, 3, saved)
}

func TestRatingSave_RequiresRecipeID(t *testing.T) {
	svc := NewRatingService(&mockRatingRepository{}, logger.NewLogger("test"))

	err := svc.Save(context.Background(), models.Rating{UserID: 1, Rating: 4})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestRatingSummary_Passthrough(t *testing.T) {
	repo := &mockRatingRepository{
		summaryFn: func(ctx context.Context, recipeID int64) (models.RatingSummary, error) {
			return models.RatingSummary{AverageRating: 4.5, TotalRatings: 2}, nil
		},
	}
	svc := NewRatingService(repo, logger.NewLogger("test"))

	summary, err := svc.Summary(context.Background(), 11)

	assert.NoError(t, err)
	assert.Equal(t, 4.5, summary.AverageRating)
	assert.Equal(t, int64(2), summary.TotalRatings)
}
