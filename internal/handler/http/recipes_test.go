// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-recipe-box/internal/service"
	"github.com/MKhiriev/go-recipe-box/internal/store"
	"github.com/MKhiriev/go-recipe-box/models"
)

func soupPayload() models.RecipeInput {
	return models.RecipeInput{
		Title:        "Tomato Soup",
		Ingredients:  []string{"4 tomatoes", "1 onion"},
		Instructions: []string{"Chop everything.", "Simmer for 20 minutes."},
	}
}

func TestCreateRecipeEndpoint(t *testing.T) {
	var gotUserID int64
	recipes := &mockRecipeService{
		createFn: func(ctx context.Context, userID int64, input models.RecipeInput) (int64, error) {
			gotUserID = userID
			return 11, nil
		},
	}
	h := newTestHandler(&service.Services{RecipeService: recipes}, nil)

	w := doRequest(t, h, http.MethodPost, "/api/community", userToken(1), soupPayload())

	require.Equal(t, http.StatusCreated, w.Code)
	var body models.RecipeCreatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(11), body.RecipeID)
	assert.Equal(t, int64(1), gotUserID)
}

func TestCreateRecipeEndpoint_RequiresAuth(t *testing.T) {
	h := newTestHandler(nil, nil)

	w := doRequest(t, h, http.MethodPost, "/api/community", "", soupPayload())

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateRecipeEndpoint_Validation(t *testing.T) {
	recipes := &mockRecipeService{
		createFn: func(ctx context.Context, userID int64, input models.RecipeInput) (int64, error) {
			return 0, service.ErrInvalidDataProvided
		},
	}
	h := newTestHandler(&service.Services{RecipeService: recipes}, nil)

	w := doRequest(t, h, http.MethodPost, "/api/community", userToken(1), models.RecipeInput{})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRecipeEndpoint_NotFound(t *testing.T) {
	recipes := &mockRecipeService{
		getFn: func(ctx context.Context, viewer *models.User, recipeID int64) (models.Recipe, error) {
			return models.Recipe{}, store.ErrRecipeNotFound
		},
	}
	h := newTestHandler(&service.Services{RecipeService: recipes}, nil)

	w := doRequest(t, h, http.MethodGet, "/api/community/404", "", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Recipe not found", decodeErrorBody(t, w).Error)
}

func TestGetRecipeEndpoint_NonNumericID(t *testing.T) {
	h := newTestHandler(nil, nil)

	w := doRequest(t, h, http.MethodGet, "/api/community/latest", "", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestReplaceRecipeEndpoint_NotOwner(t *testing.T) {
	recipes := &mockRecipeService{
		replaceFn: func(ctx context.Context, caller models.User, recipeID int64, input models.RecipeInput) error {
			return service.ErrNotOwner
		},
	}
	h := newTestHandler(&service.Services{RecipeService: recipes}, nil)

	w := doRequest(t, h, http.MethodPut, "/api/community/11", userToken(2), soupPayload())

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteRecipeEndpoint_ReturnsSnapshot(t *testing.T) {
	recipes := &mockRecipeService{
		deleteFn: func(ctx context.Context, caller models.User, recipeID int64) (models.Recipe, error) {
			return models.Recipe{ID: recipeID, Title: "Tomato Soup", CreatedBy: caller.UserID}, nil
		},
	}
	h := newTestHandler(&service.Services{RecipeService: recipes}, nil)

	w := doRequest(t, h, http.MethodDelete, "/api/community/11", userToken(1), nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body models.RecipeDeletedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Tomato Soup", body.Recipe.Title)
}

func TestApprovalEndpoint_AdminOnly(t *testing.T) {
	var gotApproved bool
	recipes := &mockRecipeService{
		setApprovalFn: func(ctx context.Context, recipeID int64, approved bool) error {
			gotApproved = approved
			return nil
		},
	}
	h := newTestHandler(&service.Services{RecipeService: recipes}, nil)

	// non-admin blocked before the service is reached
	w := doRequest(t, h, http.MethodPatch, "/api/community/11/approval", userToken(1), models.ApprovalRequest{Approved: true})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, h, http.MethodPatch, "/api/community/11/approval", userToken(3), models.ApprovalRequest{Approved: true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, gotApproved)
}

func TestRecipeImageEndpoint(t *testing.T) {
	recipes := &mockRecipeService{
		getImageFn: func(ctx context.Context, viewer *models.User, recipeID int64) ([]byte, string, error) {
			return []byte{0xff, 0xd8, 0xff}, "image/jpeg", nil
		},
	}
	h := newTestHandler(&service.Services{RecipeService: recipes}, nil)

	w := doRequest(t, h, http.MethodGet, "/api/community/11/image", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, w.Body.Bytes())
}

func TestRecipeImageEndpoint_NoImage(t *testing.T) {
	recipes := &mockRecipeService{
		getImageFn: func(ctx context.Context, viewer *models.User, recipeID int64) ([]byte, string, error) {
			return nil, "", service.ErrNoImage
		},
	}
	h := newTestHandler(&service.Services{RecipeService: recipes}, nil)

	w := doRequest(t, h, http.MethodGet, "/api/community/11/image", "", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestMyRecipesEndpoint(t *testing.T) {
	recipes := &mockRecipeService{
		listByFn: func(ctx context.Context, userID int64) ([]models.Recipe, error) {
			return []models.Recipe{{ID: 11, CreatedBy: userID, Approved: false}}, nil
		},
	}
	h := newTestHandler(&service.Services{RecipeService: recipes}, nil)

	w := doRequest(t, h, http.MethodGet, "/api/users/my-recipes", userToken(1), nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body []models.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, int64(1), body[0].CreatedBy)
}
