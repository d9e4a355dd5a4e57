// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-recipe-box/internal/service"
	"github.com/MKhiriev/go-recipe-box/models"
)

// ─────────────────────────────────────────────
// Mock: service.TokenVerifier
// ─────────────────────────────────────────────

type mockVerifier struct {
	extractFn func(r *http.Request) (string, error)
	verifyFn  func(ctx context.Context, rawToken string) (models.Principal, error)
}

func (m *mockVerifier) Extract(r *http.Request) (string, error) {
	if m.extractFn != nil {
		return m.extractFn(r)
	}
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", service.ErrNoToken
	}
	return header[len("Bearer "):], nil
}

func (m *mockVerifier) Verify(ctx context.Context, rawToken string) (models.Principal, error) {
	if m.verifyFn != nil {
		return m.verifyFn(ctx, rawToken)
	}
	return models.Principal{Subject: rawToken, Kind: models.IssuerLocal}, nil
}

// ─────────────────────────────────────────────
// Mock: service.AuthService
// ─────────────────────────────────────────────

type mockAuthService struct {
	signupFn      func(ctx context.Context, req models.SignupRequest) (models.User, models.Token, error)
	loginFn       func(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error)
	resolveFn     func(ctx context.Context, principal models.Principal) (models.User, error)
	createTokenFn func(ctx context.Context, user models.User) (models.Token, error)
}

func (m *mockAuthService) Signup(ctx context.Context, req models.SignupRequest) (models.User, models.Token, error) {
	if m.signupFn != nil {
		return m.signupFn(ctx, req)
	}
	return models.User{}, models.Token{}, nil
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, req)
	}
	return models.User{}, models.Token{}, nil
}

func (m *mockAuthService) ResolvePrincipal(ctx context.Context, principal models.Principal) (models.User, error) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, principal)
	}
	return models.User{}, nil
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if m.createTokenFn != nil {
		return m.createTokenFn(ctx, user)
	}
	return models.Token{}, nil
}

// ─────────────────────────────────────────────
// Mock: service.RecipeService
// ─────────────────────────────────────────────

type mockRecipeService struct {
	createFn      func(ctx context.Context, userID int64, input models.RecipeInput) (int64, error)
	replaceFn     func(ctx context.Context, caller models.User, recipeID int64, input models.RecipeInput) error
	setApprovalFn func(ctx context.Context, recipeID int64, approved bool) error
	deleteFn      func(ctx context.Context, caller models.User, recipeID int64) (models.Recipe, error)
	getFn         func(ctx context.Context, viewer *models.User, recipeID int64) (models.Recipe, error)
	getImageFn    func(ctx context.Context, viewer *models.User, recipeID int64) ([]byte, string, error)
	listFn        func(ctx context.Context) ([]models.Recipe, error)
	listByFn      func(ctx context.Context, userID int64) ([]models.Recipe, error)
}

func (m *mockRecipeService) Create(ctx context.Context, userID int64, input models.RecipeInput) (int64, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, input)
	}
	return 1, nil
}

func (m *mockRecipeService) Replace(ctx context.Context, caller models.User, recipeID int64, input models.RecipeInput) error {
	if m.replaceFn != nil {
		return m.replaceFn(ctx, caller, recipeID, input)
	}
	return nil
}

func (m *mockRecipeService) SetApproval(ctx context.Context, recipeID int64, approved bool) error {
	if m.setApprovalFn != nil {
		return m.setApprovalFn(ctx, recipeID, approved)
	}
	return nil
}

func (m *mockRecipeService) Delete(ctx context.Context, caller models.User, recipeID int64) (models.Recipe, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, caller, recipeID)
	}
	return models.Recipe{}, nil
}

func (m *mockRecipeService) Get(ctx context.Context, viewer *models.User, recipeID int64) (models.Recipe, error) {
	if m.getFn != nil {
		return m.getFn(ctx, viewer, recipeID)
	}
	return models.Recipe{}, nil
}

func (m *mockRecipeService) GetImage(ctx context.Context, viewer *models.User, recipeID int64) ([]byte, string, error) {
	if m.getImageFn != nil {
		return m.getImageFn(ctx, viewer, recipeID)
	}
	return nil, "", nil
}

func (m *mockRecipeService) ListApproved(ctx context.Context) ([]models.Recipe, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockRecipeService) ListByCreator(ctx context.Context, userID int64) ([]models.Recipe, error) {
	if m.listByFn != nil {
		return m.listByFn(ctx, userID)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: service.FavoriteService
// ─────────────────────────────────────────────

type mockFavoriteService struct {
	addFn    func(ctx context.Context, favorite models.Favorite) error
	removeFn func(ctx context.Context, favorite models.Favorite) error
	listFn   func(ctx context.Context, userID int64) ([]models.Favorite, error)
}

func (m *mockFavoriteService) Add(ctx context.Context, favorite models.Favorite) error {
	if m.addFn != nil {
		return m.addFn(ctx, favorite)
	}
	return nil
}

func (m *mockFavoriteService) Remove(ctx context.Context, favorite models.Favorite) error {
	if m.removeFn != nil {
		return m.removeFn(ctx, favorite)
	}
	return nil
}

func (m *mockFavoriteService) List(ctx context.Context, userID int64) ([]models.Favorite, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: service.NoteService
// ─────────────────────────────────────────────

type mockNoteService struct {
	saveFn   func(ctx context.Context, note models.Note) error
	getFn    func(ctx context.Context, userID, recipeID int64) (models.Note, error)
	deleteFn func(ctx context.Context, userID, recipeID int64) error
}

func (m *mockNoteService) Save(ctx context.Context, note models.Note) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, note)
	}
	return nil
}

func (m *mockNoteService) Get(ctx context.Context, userID, recipeID int64) (models.Note, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, recipeID)
	}
	return models.Note{}, nil
}

func (m *mockNoteService) Delete(ctx context.Context, userID, recipeID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, recipeID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: service.RatingService
// ─────────────────────────────────────────────

type mockRatingService struct {
	saveFn    func(ctx context.Context, rating models.Rating) error
	getFn     func(ctx context.Context, userID, recipeID int64) (models.Rating, error)
	summaryFn func(ctx context.Context, recipeID int64) (models.RatingSummary, error)
}

func (m *mockRatingService) Save(ctx context.Context, rating models.Rating) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, rating)
	}
	return nil
}

func (m *mockRatingService) Get(ctx context.Context, userID, recipeID int64) (models.Rating, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, recipeID)
	}
	return models.Rating{}, nil
}

func (m *mockRatingService) Summary(ctx context.Context, recipeID int64) (models.RatingSummary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(ctx, recipeID)
	}
	return models.RatingSummary{}, nil
}

// ─────────────────────────────────────────────
// Mock: service.UserService
// ─────────────────────────────────────────────

type mockUserService struct {
	getProfileFn    func(ctx context.Context, user models.User) (models.Profile, error)
	updateProfileFn func(ctx context.Context, user models.User, req models.ProfileUpdateRequest) (models.Profile, error)
	listUsersFn     func(ctx context.Context) ([]models.User, error)
}

func (m *mockUserService) GetProfile(ctx context.Context, user models.User) (models.Profile, error) {
	if m.getProfileFn != nil {
		return m.getProfileFn(ctx, user)
	}
	return models.Profile{}, nil
}

func (m *mockUserService) UpdateProfile(ctx context.Context, user models.User, req models.ProfileUpdateRequest) (models.Profile, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, user, req)
	}
	return models.Profile{}, nil
}

func (m *mockUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx)
	}
	return nil, nil
}
