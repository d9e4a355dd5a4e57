package models

// RecipeSource distinguishes where a favorited recipe lives.
type RecipeSource string

const (
	// SourceCommunity marks recipes stored in this service's own
	// community_recipes table. Existence is checked before favoriting.
	SourceCommunity RecipeSource = "community"

	// SourceExternal marks recipes from the external read-only catalog.
	// No referential integrity is enforced for these IDs.
	SourceExternal RecipeSource = "external"
)

// Valid reports whether s is one of the known recipe sources.
func (s RecipeSource) Valid() bool {
	return s == SourceCommunity || s == SourceExternal
}

// Favorite is a composite-keyed relation between a user and a recipe.
// A (user, recipe, source) triple is unique.
type Favorite struct {
	UserID   int64        `json:"user_id"`
	RecipeID int64        `json:"recipe_id"`
	Source   RecipeSource `json:"source"`
}

// TableName returns the name of the database table
// associated with the Favorite model.
func (f Favorite) TableName() string {
	return "favorites"
}
