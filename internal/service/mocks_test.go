// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-recipe-box/models"
)

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createFn          func(ctx context.Context, user models.User) (models.User, error)
	createFederatedFn func(ctx context.Context, user models.User) (models.User, error)
	findByIDFn        func(ctx context.Context, userID int64) (models.User, error)
	findByEmailFn     func(ctx context.Context, email string) (models.User, error)
	findBySubjectFn   func(ctx context.Context, subject string) (models.User, error)
	listFn            func(ctx context.Context) ([]models.User, error)
	updateProfileFn   func(ctx context.Context, user models.User, preferences []string) error
	getPreferencesFn  func(ctx context.Context, userID int64) ([]string, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) CreateFederatedUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createFederatedFn != nil {
		return m.createFederatedFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, userID)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindUserByExternalSubject(ctx context.Context, subject string) (models.User, error) {
	if m.findBySubjectFn != nil {
		return m.findBySubjectFn(ctx, subject)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockUserRepository) UpdateUserProfile(ctx context.Context, user models.User, preferences []string) error {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, user, preferences)
	}
	return nil
}

func (m *mockUserRepository) GetPreferences(ctx context.Context, userID int64) ([]string, error) {
	if m.getPreferencesFn != nil {
		return m.getPreferencesFn(ctx, userID)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: store.RecipeRepository
// ─────────────────────────────────────────────

type mockRecipeRepository struct {
	createFn      func(ctx context.Context, recipe models.Recipe) (int64, error)
	replaceFn     func(ctx context.Context, recipe models.Recipe, updateImage bool) error
	setApprovalFn func(ctx context.Context, recipeID int64, approved bool) error
	deleteFn      func(ctx context.Context, recipeID int64) (models.Recipe, error)
	getFn         func(ctx context.Context, recipeID int64) (models.Recipe, error)
	getImageFn    func(ctx context.Context, recipeID int64) ([]byte, string, error)
	listFn        func(ctx context.Context) ([]models.Recipe, error)
	listByFn      func(ctx context.Context, userID int64) ([]models.Recipe, error)
	existsFn      func(ctx context.Context, recipeID int64) (bool, error)
}

func (m *mockRecipeRepository) CreateRecipe(ctx context.Context, recipe models.Recipe) (int64, error) {
	if m.createFn != nil {
		return m.createFn(ctx, recipe)
	}
	return 1, nil
}

func (m *mockRecipeRepository) ReplaceRecipe(ctx context.Context, recipe models.Recipe, updateImage bool) error {
	if m.replaceFn != nil {
		return m.replaceFn(ctx, recipe, updateImage)
	}
	return nil
}

func (m *mockRecipeRepository) SetApproval(ctx context.Context, recipeID int64, approved bool) error {
	if m.setApprovalFn != nil {
		return m.setApprovalFn(ctx, recipeID, approved)
	}
	return nil
}

func (m *mockRecipeRepository) DeleteRecipe(ctx context.Context, recipeID int64) (models.Recipe, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, recipeID)
	}
	return models.Recipe{}, nil
}

func (m *mockRecipeRepository) GetRecipe(ctx context.Context, recipeID int64) (models.Recipe, error) {
	if m.getFn != nil {
		return m.getFn(ctx, recipeID)
	}
	return models.Recipe{}, nil
}

func (m *mockRecipeRepository) GetRecipeImage(ctx context.Context, recipeID int64) ([]byte, string, error) {
	if m.getImageFn != nil {
		return m.getImageFn(ctx, recipeID)
	}
	return nil, "", nil
}

func (m *mockRecipeRepository) ListApproved(ctx context.Context) ([]models.Recipe, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockRecipeRepository) ListByCreator(ctx context.Context, userID int64) ([]models.Recipe, error) {
	if m.listByFn != nil {
		return m.listByFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockRecipeRepository) Exists(ctx context.Context, recipeID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, recipeID)
	}
	return true, nil
}

// ─────────────────────────────────────────────
// Mock: store.FavoriteRepository
// ─────────────────────────────────────────────

type mockFavoriteRepository struct {
	addFn    func(ctx context.Context, favorite models.Favorite) error
	removeFn func(ctx context.Context, favorite models.Favorite) error
	listFn   func(ctx context.Context, userID int64) ([]models.Favorite, error)
}

func (m *mockFavoriteRepository) AddFavorite(ctx context.Context, favorite models.Favorite) error {
	if m.addFn != nil {
		return m.addFn(ctx, favorite)
	}
	return nil
}

func (m *mockFavoriteRepository) RemoveFavorite(ctx context.Context, favorite models.Favorite) error {
	if m.removeFn != nil {
		return m.removeFn(ctx, favorite)
	}
	return nil
}

func (m *mockFavoriteRepository) ListFavorites(ctx context.Context, userID int64) ([]models.Favorite, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: store.RatingRepository
// ─────────────────────────────────────────────

type mockRatingRepository struct {
	saveFn    func(ctx context.Context, rating models.Rating) error
	getFn     func(ctx context.Context, userID, recipeID int64) (models.Rating, error)
	summaryFn func(ctx context.Context, recipeID int64) (models.RatingSummary, error)
}

func (m *mockRatingRepository) SaveRating(ctx context.Context, rating models.Rating) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, rating)
	}
	return nil
}

func (m *mockRatingRepository) GetRating(ctx context.Context, userID, recipeID int64) (models.Rating, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, recipeID)
	}
	return models.Rating{}, nil
}

func (m *mockRatingRepository) GetSummary(ctx context.Context, recipeID int64) (models.RatingSummary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(ctx, recipeID)
	}
	return models.RatingSummary{}, nil
}

// ─────────────────────────────────────────────
// Mock: KeyResolver
// ─────────────────────────────────────────────

type mockKeyResolver struct {
	resolveFn func(ctx context.Context, keyID string) (any, error)
}

func (m *mockKeyResolver) Resolve(ctx context.Context, keyID string) (any, error) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, keyID)
	}
	return nil, nil
}
