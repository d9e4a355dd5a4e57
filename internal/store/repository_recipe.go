package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/models"
)

// recipeRepository is the PostgreSQL-backed implementation of
// [RecipeRepository]. A recipe aggregate spans three tables
// (community_recipes, ingredients, instructions); every mutation that
// touches more than one of them runs inside a single transaction so that a
// mid-write failure leaves no partial aggregate behind.
type recipeRepository struct {
	*DB
	logger *logger.Logger
}

// NewRecipeRepository constructs a [RecipeRepository] backed by the provided
// database connection and logger.
func NewRecipeRepository(db *DB, logger *logger.Logger) RecipeRepository {
	logger.Debug().Msg("creating recipe repository")
	return &recipeRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateRecipe inserts the recipe row and all of its child rows atomically
// and returns the server-assigned recipe ID.
//
// Child rows are written through prepared statements: submissions routinely
// carry a dozen or more ingredient and instruction lines.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe models.Recipe) (int64, error) {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "recipeRepository.CreateRecipe").Msg("failed to begin transaction")
		return 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var recipeID int64
	row := tx.QueryRowContext(ctx, createRecipe, recipe.Title, nullableBytes(recipe.ImageData), recipe.ImageType, recipe.CreatedBy)
	if err = row.Scan(&recipeID); err != nil {
		log.Err(err).Str("func", "recipeRepository.CreateRecipe").Msg("failed to insert recipe row")
		if r.errorClassificator.Classify(err) == Retryable {
			log.Warn().Str("func", "recipeRepository.CreateRecipe").Msg("insert failed with a retryable error")
		}
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = insertChildren(ctx, tx, recipeID, recipe.Ingredients, recipe.Instructions); err != nil {
		log.Err(err).Str("func", "recipeRepository.CreateRecipe").Int64("recipe_id", recipeID).Msg("failed to insert child rows")
		return 0, err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).Str("func", "recipeRepository.CreateRecipe").Msg("failed to commit transaction")
		return 0, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	log.Info().
		Str("func", "recipeRepository.CreateRecipe").
		Int64("recipe_id", recipeID).
		Int("ingredients", len(recipe.Ingredients)).
		Int("instructions", len(recipe.Instructions)).
		Msg("recipe aggregate created")

	return recipeID, nil
}

// ReplaceRecipe overwrites the recipe row and rebuilds all child rows inside
// a single transaction. Child rows are always deleted and reinserted: the
// submitted lists are the new truth, diffing against the old rows buys
// nothing.
//
// When updateImage is false the stored image columns are left untouched, so
// a replace submitted without a new image preserves the existing one.
//
// Returns [ErrRecipeNotFound] when no recipe row matches.
func (r *recipeRepository) ReplaceRecipe(ctx context.Context, recipe models.Recipe, updateImage bool) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "recipeRepository.ReplaceRecipe").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var result sql.Result
	if updateImage {
		result, err = tx.ExecContext(ctx, updateRecipeWithImage, recipe.Title, nullableBytes(recipe.ImageData), recipe.ImageType, recipe.ID)
	} else {
		result, err = tx.ExecContext(ctx, updateRecipeKeepImage, recipe.Title, recipe.ID)
	}
	if err != nil {
		log.Err(err).Str("func", "recipeRepository.ReplaceRecipe").Int64("recipe_id", recipe.ID).Msg("failed to update recipe row")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrRecipeNotFound
	}

	if _, err = tx.ExecContext(ctx, deleteRecipeIngredients, recipe.ID); err != nil {
		log.Err(err).Str("func", "recipeRepository.ReplaceRecipe").Int64("recipe_id", recipe.ID).Msg("failed to clear ingredients")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if _, err = tx.ExecContext(ctx, deleteRecipeInstructions, recipe.ID); err != nil {
		log.Err(err).Str("func", "recipeRepository.ReplaceRecipe").Int64("recipe_id", recipe.ID).Msg("failed to clear instructions")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = insertChildren(ctx, tx, recipe.ID, recipe.Ingredients, recipe.Instructions); err != nil {
		log.Err(err).Str("func", "recipeRepository.ReplaceRecipe").Int64("recipe_id", recipe.ID).Msg("failed to insert child rows")
		return err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).Str("func", "recipeRepository.ReplaceRecipe").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	log.Info().
		Str("func", "recipeRepository.ReplaceRecipe").
		Int64("recipe_id", recipe.ID).
		Bool("image_updated", updateImage).
		Msg("recipe aggregate replaced")

	return nil
}

// SetApproval flips the moderation flag and bumps updated_at.
// Returns [ErrRecipeNotFound] when no recipe row matches.
func (r *recipeRepository) SetApproval(ctx context.Context, recipeID int64, approved bool) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, setRecipeApproval, approved, recipeID)
	if err != nil {
		log.Err(err).Str("func", "recipeRepository.SetApproval").Int64("recipe_id", recipeID).Msg("failed to update approval flag")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrRecipeNotFound
	}

	log.Info().
		Str("func", "recipeRepository.SetApproval").
		Int64("recipe_id", recipeID).
		Bool("approved", approved).
		Msg("recipe approval updated")

	return nil
}

// DeleteRecipe removes the aggregate and returns a snapshot of the recipe
// row as it existed right before deletion. Ingredient and instruction rows
// are removed by the ON DELETE CASCADE constraints.
//
// Returns [ErrRecipeNotFound] when no recipe row matches.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, recipeID int64) (models.Recipe, error) {
	log := logger.FromContext(ctx)

	var snapshot models.Recipe
	row := r.DB.QueryRowContext(ctx, deleteRecipe, recipeID)
	err := row.Scan(
		&snapshot.ID,
		&snapshot.Title,
		&snapshot.ImageType,
		&snapshot.CreatedBy,
		&snapshot.Approved,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Recipe{}, ErrRecipeNotFound
		}
		log.Err(err).Str("func", "recipeRepository.DeleteRecipe").Int64("recipe_id", recipeID).Msg("failed to delete recipe")
		return models.Recipe{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	log.Info().
		Str("func", "recipeRepository.DeleteRecipe").
		Int64("recipe_id", recipeID).
		Msg("recipe aggregate deleted")

	return snapshot, nil
}

// GetRecipe loads the full aggregate: the recipe row joined with the
// submitter's username, plus all ingredient and instruction rows in their
// stored order. Image bytes are not loaded; use [GetRecipeImage].
func (r *recipeRepository) GetRecipe(ctx context.Context, recipeID int64) (models.Recipe, error) {
	log := logger.FromContext(ctx)

	var recipe models.Recipe
	row := r.DB.QueryRowContext(ctx, getRecipe, recipeID)
	err := row.Scan(
		&recipe.ID,
		&recipe.Title,
		&recipe.ImageType,
		&recipe.CreatedBy,
		&recipe.CreatedByUsername,
		&recipe.Approved,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Recipe{}, ErrRecipeNotFound
		}
		log.Err(err).Str("func", "recipeRepository.GetRecipe").Int64("recipe_id", recipeID).Msg("failed to load recipe row")
		return models.Recipe{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if recipe.Ingredients, err = r.loadIngredients(ctx, recipeID); err != nil {
		return models.Recipe{}, err
	}
	if recipe.Instructions, err = r.loadInstructions(ctx, recipeID); err != nil {
		return models.Recipe{}, err
	}

	return recipe, nil
}

// GetRecipeImage loads only the stored image bytes and MIME type.
// Returns [ErrRecipeNotFound] when no recipe row matches; a recipe without
// an uploaded image yields nil bytes and no error.
func (r *recipeRepository) GetRecipeImage(ctx context.Context, recipeID int64) ([]byte, string, error) {
	log := logger.FromContext(ctx)

	var imageData []byte
	var imageType string

	row := r.DB.QueryRowContext(ctx, getRecipeImage, recipeID)
	if err := row.Scan(&imageData, &imageType); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrRecipeNotFound
		}
		log.Err(err).Str("func", "recipeRepository.GetRecipeImage").Int64("recipe_id", recipeID).Msg("failed to load recipe image")
		return nil, "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return imageData, imageType, nil
}

// ListApproved returns approved recipes without image payloads, newest first.
func (r *recipeRepository) ListApproved(ctx context.Context) ([]models.Recipe, error) {
	return r.list(ctx, true, nil)
}

// ListByCreator returns all recipes submitted by one user regardless of
// approval state, newest first.
func (r *recipeRepository) ListByCreator(ctx context.Context, userID int64) ([]models.Recipe, error) {
	return r.list(ctx, false, &userID)
}

// Exists reports whether a recipe row with the given ID is present.
func (r *recipeRepository) Exists(ctx context.Context, recipeID int64) (bool, error) {
	log := logger.FromContext(ctx)

	var exists bool
	if err := r.DB.QueryRowContext(ctx, recipeExists, recipeID).Scan(&exists); err != nil {
		log.Err(err).Str("func", "recipeRepository.Exists").Int64("recipe_id", recipeID).Msg("failed to execute existence query")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return exists, nil
}

func (r *recipeRepository) list(ctx context.Context, approvedOnly bool, createdBy *int64) ([]models.Recipe, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListRecipesQuery(approvedOnly, createdBy)
	if err != nil {
		log.Err(err).Str("func", "recipeRepository.list").Msg("failed to build listing query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "recipeRepository.list").Msg("failed to execute listing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	recipes := make([]models.Recipe, 0, 50)

	for rows.Next() {
		var recipe models.Recipe

		scanErr := rows.Scan(
			&recipe.ID,
			&recipe.Title,
			&recipe.ImageType,
			&recipe.CreatedBy,
			&recipe.CreatedByUsername,
			&recipe.Approved,
			&recipe.CreatedAt,
			&recipe.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "recipeRepository.list").Msg("failed to scan recipe row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		recipes = append(recipes, recipe)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "recipeRepository.list").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return recipes, nil
}

func (r *recipeRepository) loadIngredients(ctx context.Context, recipeID int64) ([]models.Ingredient, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, getRecipeIngredients, recipeID)
	if err != nil {
		log.Err(err).Str("func", "recipeRepository.loadIngredients").Int64("recipe_id", recipeID).Msg("failed to execute ingredients query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	ingredients := make([]models.Ingredient, 0, 16)

	for rows.Next() {
		var ingredient models.Ingredient
		if scanErr := rows.Scan(&ingredient.ID, &ingredient.Ingredient); scanErr != nil {
			log.Err(scanErr).Str("func", "recipeRepository.loadIngredients").Msg("failed to scan ingredient row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		ingredients = append(ingredients, ingredient)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "recipeRepository.loadIngredients").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return ingredients, nil
}

func (r *recipeRepository) loadInstructions(ctx context.Context, recipeID int64) ([]models.Instruction, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, getRecipeInstructions, recipeID)
	if err != nil {
		log.Err(err).Str("func", "recipeRepository.loadInstructions").Int64("recipe_id", recipeID).Msg("failed to execute instructions query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	instructions := make([]models.Instruction, 0, 16)

	for rows.Next() {
		var instruction models.Instruction
		if scanErr := rows.Scan(&instruction.StepNumber, &instruction.Instruction); scanErr != nil {
			log.Err(scanErr).Str("func", "recipeRepository.loadInstructions").Msg("failed to scan instruction row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		instructions = append(instructions, instruction)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "recipeRepository.loadInstructions").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return instructions, nil
}

// insertChildren writes ingredient and instruction rows for one recipe
// through prepared statements within the caller's transaction.
func insertChildren(ctx context.Context, tx *sql.Tx, recipeID int64, ingredients []models.Ingredient, instructions []models.Instruction) error {
	ingredientStmt, err := tx.PrepareContext(ctx, insertIngredient)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPreparingStatement, err)
	}
	defer ingredientStmt.Close()

	for _, ingredient := range ingredients {
		if _, err = ingredientStmt.ExecContext(ctx, recipeID, ingredient.Ingredient); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	instructionStmt, err := tx.PrepareContext(ctx, insertInstruction)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPreparingStatement, err)
	}
	defer instructionStmt.Close()

	for _, instruction := range instructions {
		if _, err = instructionStmt.ExecContext(ctx, recipeID, instruction.StepNumber, instruction.Instruction); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return nil
}

// nullableBytes maps an empty byte slice to NULL so that "no image" is
// stored as SQL NULL rather than a zero-length bytea.
func nullableBytes(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
