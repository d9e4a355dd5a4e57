package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

const (
	// password_hash and external_subject are nullable and mutually
	// exclusive; COALESCE keeps the scan targets plain strings.
	userColumns = `user_id, username, email, COALESCE(password_hash, ''), COALESCE(external_subject, ''), is_admin, created_at`

	createUser = `INSERT INTO "user" (username, email, password_hash)
    VALUES ($1, $2, $3)
    RETURNING ` + userColumns + `;`

	createFederatedUser = `INSERT INTO "user" (username, email, external_subject)
    VALUES ($1, $2, $3)
    RETURNING ` + userColumns + `;`

	findUserByID = `SELECT ` + userColumns + `
    FROM "user"
    WHERE user_id = $1;`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM "user"
    WHERE email = $1;`

	findUserByExternalSubject = `SELECT ` + userColumns + `
    FROM "user"
    WHERE external_subject = $1;`

	listUsers = `SELECT ` + userColumns + `
    FROM "user"
    ORDER BY user_id;`

	updateUserProfile = `UPDATE "user"
    SET username = $1, email = $2
    WHERE user_id = $3;`

	deleteUserPreferences = `DELETE FROM user_preference
    WHERE user_id = $1;`

	insertUserPreference = `INSERT INTO user_preference (user_id, preference)
    VALUES ($1, $2);`

	getUserPreferences = `SELECT preference
    FROM user_preference
    WHERE user_id = $1
    ORDER BY preference;`

	createRecipe = `INSERT INTO community_recipes (title, image_data, image_type, created_by)
    VALUES ($1, $2, $3, $4)
    RETURNING id;`

	insertIngredient = `INSERT INTO ingredients (recipe_id, ingredient)
    VALUES ($1, $2);`

	insertInstruction = `INSERT INTO instructions (recipe_id, step_number, instruction)
    VALUES ($1, $2, $3);`

	updateRecipeWithImage = `UPDATE community_recipes
    SET title = $1, image_data = $2, image_type = $3, updated_at = NOW()
    WHERE id = $4;`

	updateRecipeKeepImage = `UPDATE community_recipes
    SET title = $1, updated_at = NOW()
    WHERE id = $2;`

	deleteRecipeIngredients = `DELETE FROM ingredients
    WHERE recipe_id = $1;`

	deleteRecipeInstructions = `DELETE FROM instructions
    WHERE recipe_id = $1;`

	setRecipeApproval = `UPDATE community_recipes
    SET approved = $1, updated_at = NOW()
    WHERE id = $2;`

	// children are removed by ON DELETE CASCADE
	deleteRecipe = `DELETE FROM community_recipes
    WHERE id = $1
    RETURNING id, title, image_type, created_by, approved, created_at, updated_at;`

	getRecipe = `SELECT r.id, r.title, r.image_type, r.created_by, u.username, r.approved, r.created_at, r.updated_at
    FROM community_recipes r
    JOIN "user" u ON u.user_id = r.created_by
    WHERE r.id = $1;`

	getRecipeIngredients = `SELECT id, ingredient
    FROM ingredients
    WHERE recipe_id = $1
    ORDER BY id;`

	getRecipeInstructions = `SELECT step_number, instruction
    FROM instructions
    WHERE recipe_id = $1
    ORDER BY step_number;`

	getRecipeImage = `SELECT image_data, image_type
    FROM community_recipes
    WHERE id = $1;`

	recipeExists = `SELECT EXISTS (SELECT 1 FROM community_recipes WHERE id = $1);`

	addFavorite = `INSERT INTO favorites (user_id, recipe_id, source)
    VALUES ($1, $2, $3);`

	removeFavorite = `DELETE FROM favorites
    WHERE user_id = $1 AND recipe_id = $2 AND source = $3;`

	listFavorites = `SELECT user_id, recipe_id, source
    FROM favorites
    WHERE user_id = $1
    ORDER BY recipe_id;`

	saveNote = `INSERT INTO notes (user_id, recipe_id, note)
    VALUES ($1, $2, $3)
    ON CONFLICT (user_id, recipe_id) DO UPDATE SET note = EXCLUDED.note;`

	getNote = `SELECT user_id, recipe_id, note
    FROM notes
    WHERE user_id = $1 AND recipe_id = $2;`

	deleteNote = `DELETE FROM notes
    WHERE user_id = $1 AND recipe_id = $2;`

	saveRating = `INSERT INTO rating (user_id, recipe_id, rating)
    VALUES ($1, $2, $3)
    ON CONFLICT (user_id, recipe_id) DO UPDATE SET rating = EXCLUDED.rating;`

	getRating = `SELECT user_id, recipe_id, rating
    FROM rating
    WHERE user_id = $1 AND recipe_id = $2;`

	getRatingSummary = `SELECT COALESCE(AVG(rating), 0), COUNT(*)
    FROM rating
    WHERE recipe_id = $1;`
)

// psql is the squirrel statement builder configured for PostgreSQL
// positional placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListRecipesQuery assembles the recipe listing query. Image payloads
// are deliberately excluded from listings.
//
// Filters:
//   - approvedOnly restricts the result to moderator-approved recipes;
//   - createdBy, when non-nil, restricts the result to one submitter.
func buildListRecipesQuery(approvedOnly bool, createdBy *int64) (string, []any, error) {
	builder := psql.
		Select("r.id", "r.title", "r.image_type", "r.created_by", "u.username", "r.approved", "r.created_at", "r.updated_at").
		From("community_recipes r").
		Join(`"user" u ON u.user_id = r.created_by`).
		OrderBy("r.created_at DESC", "r.id DESC")

	if approvedOnly {
		builder = builder.Where(sq.Eq{"r.approved": true})
	}
	if createdBy != nil {
		builder = builder.Where(sq.Eq{"r.created_by": *createdBy})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
