package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/store"
	"github.com/MKhiriev/go-recipe-box/models"
)

// recipeService is the concrete implementation of [RecipeService]. It owns
// input normalization and validation, the unapproved-recipe visibility rule,
// and ownership checks; all multi-table persistence is delegated to the
// transactional [store.RecipeRepository].
type recipeService struct {
	recipeRepository store.RecipeRepository
	logger           *logger.Logger
}

// NewRecipeService constructs a [RecipeService] on top of the given
// repository.
func NewRecipeService(recipeRepository store.RecipeRepository, logger *logger.Logger) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		logger:           logger,
	}
}

// Create validates and stores a new recipe aggregate for the given user,
// returning the server-assigned ID. New recipes always start unapproved and
// enter the public listing only after moderation.
func (r *recipeService) Create(ctx context.Context, userID int64, input models.RecipeInput) (int64, error) {
	log := logger.FromContext(ctx)

	recipe, err := buildAggregate(input)
	if err != nil {
		return 0, err
	}
	recipe.CreatedBy = userID

	recipeID, err := r.recipeRepository.CreateRecipe(ctx, recipe)
	if err != nil {
		log.Err(err).Str("func", "recipeService.Create").Int64("user_id", userID).Msg("recipe creation ended with error")
		return 0, fmt.Errorf("recipe creation ended with error: %w", err)
	}

	return recipeID, nil
}

// Replace validates and fully replaces an existing aggregate. The submitted
// ingredient and instruction lists become the new truth; when the input
// carries no new image the stored one is preserved.
//
// Returns [ErrNotOwner] when the caller is neither the submitter nor an
// admin, and [store.ErrRecipeNotFound] when the recipe does not exist.
func (r *recipeService) Replace(ctx context.Context, caller models.User, recipeID int64, input models.RecipeInput) error {
	log := logger.FromContext(ctx)

	existing, err := r.recipeRepository.GetRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if err = requireOwnership(caller, existing); err != nil {
		return err
	}

	recipe, err := buildAggregate(input)
	if err != nil {
		return err
	}
	recipe.ID = recipeID

	if err = r.recipeRepository.ReplaceRecipe(ctx, recipe, input.HasImage()); err != nil {
		log.Err(err).Str("func", "recipeService.Replace").Int64("recipe_id", recipeID).Msg("recipe replace ended with error")
		return fmt.Errorf("recipe replace ended with error: %w", err)
	}

	return nil
}

// SetApproval flips the moderation flag. The admin gate lives in the
// handler layer; the service applies the flip unconditionally.
func (r *recipeService) SetApproval(ctx context.Context, recipeID int64, approved bool) error {
	return r.recipeRepository.SetApproval(ctx, recipeID, approved)
}

// Delete removes an aggregate and returns its final snapshot.
//
// Returns [ErrNotOwner] when the caller is neither the submitter nor an
// admin, and [store.ErrRecipeNotFound] when the recipe does not exist.
func (r *recipeService) Delete(ctx context.Context, caller models.User, recipeID int64) (models.Recipe, error) {
	log := logger.FromContext(ctx)

	existing, err := r.recipeRepository.GetRecipe(ctx, recipeID)
	if err != nil {
		return models.Recipe{}, err
	}
	if err = requireOwnership(caller, existing); err != nil {
		return models.Recipe{}, err
	}

	snapshot, err := r.recipeRepository.DeleteRecipe(ctx, recipeID)
	if err != nil {
		log.Err(err).Str("func", "recipeService.Delete").Int64("recipe_id", recipeID).Msg("recipe deletion ended with error")
		return models.Recipe{}, fmt.Errorf("recipe deletion ended with error: %w", err)
	}

	return snapshot, nil
}

// Get loads one aggregate under the visibility rule: approved recipes are
// public, unapproved ones are visible only to their submitter and admins.
// Everyone else observes [store.ErrRecipeNotFound] — an unapproved recipe's
// existence is not disclosed.
func (r *recipeService) Get(ctx context.Context, viewer *models.User, recipeID int64) (models.Recipe, error) {
	recipe, err := r.recipeRepository.GetRecipe(ctx, recipeID)
	if err != nil {
		return models.Recipe{}, err
	}

	if !recipe.Approved && !canSeeUnapproved(viewer, recipe) {
		return models.Recipe{}, store.ErrRecipeNotFound
	}

	return recipe, nil
}

// GetImage returns the stored image bytes and MIME type under the same
// visibility rule as [Get]. A visible recipe without an uploaded image
// yields [ErrNoImage].
func (r *recipeService) GetImage(ctx context.Context, viewer *models.User, recipeID int64) ([]byte, string, error) {
	if _, err := r.Get(ctx, viewer, recipeID); err != nil {
		return nil, "", err
	}

	imageData, imageType, err := r.recipeRepository.GetRecipeImage(ctx, recipeID)
	if err != nil {
		return nil, "", err
	}
	if len(imageData) == 0 {
		return nil, "", ErrNoImage
	}

	return imageData, imageType, nil
}

// ListApproved returns the public recipe listing.
func (r *recipeService) ListApproved(ctx context.Context) ([]models.Recipe, error) {
	return r.recipeRepository.ListApproved(ctx)
}

// ListByCreator returns one user's submissions regardless of approval state.
func (r *recipeService) ListByCreator(ctx context.Context, userID int64) ([]models.Recipe, error) {
	return r.recipeRepository.ListByCreator(ctx, userID)
}

// buildAggregate normalizes and validates a submitted payload into a
// persistable aggregate.
//
// Ingredient and instruction entries are trimmed and blank entries dropped;
// surviving instructions are renumbered 1..N contiguously in submission
// order, so step numbers never carry gaps regardless of how the client
// interleaved blanks.
//
// Validation: a recipe needs a title, at least one ingredient, and at least
// one instruction after blank-dropping.
func buildAggregate(input models.RecipeInput) (models.Recipe, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return models.Recipe{}, fmt.Errorf("%w: title is required", ErrInvalidDataProvided)
	}

	ingredients := make([]models.Ingredient, 0, len(input.Ingredients))
	for _, entry := range input.Ingredients {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		ingredients = append(ingredients, models.Ingredient{Ingredient: entry})
	}
	if len(ingredients) == 0 {
		return models.Recipe{}, fmt.Errorf("%w: at least one ingredient is required", ErrInvalidDataProvided)
	}

	instructions := make([]models.Instruction, 0, len(input.Instructions))
	for _, entry := range input.Instructions {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		instructions = append(instructions, models.Instruction{
			StepNumber:  len(instructions) + 1,
			Instruction: entry,
		})
	}
	if len(instructions) == 0 {
		return models.Recipe{}, fmt.Errorf("%w: at least one instruction is required", ErrInvalidDataProvided)
	}

	return models.Recipe{
		Title:        title,
		ImageData:    input.ImageData,
		ImageType:    input.ImageType,
		Ingredients:  ingredients,
		Instructions: instructions,
	}, nil
}

// requireOwnership admits the submitter and admins; everyone else gets
// [ErrNotOwner].
func requireOwnership(caller models.User, recipe models.Recipe) error {
	if caller.IsAdmin || caller.UserID == recipe.CreatedBy {
		return nil
	}
	return ErrNotOwner
}

// canSeeUnapproved reports whether the viewer may observe an unapproved
// recipe.
func canSeeUnapproved(viewer *models.User, recipe models.Recipe) bool {
	if viewer == nil {
		return false
	}
	return viewer.IsAdmin || viewer.UserID == recipe.CreatedBy
}
