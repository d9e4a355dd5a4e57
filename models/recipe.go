package models

import "time"

// Recipe is the parent entity of a community recipe aggregate. It owns an
// ordered set of ingredients and an ordered set of instructions; the three
// are always written and deleted as one atomic unit.
type Recipe struct {
	// ID is the internal unique identifier of the recipe.
	ID int64 `json:"id"`

	// Title is the display title of the recipe.
	Title string `json:"title"`

	// ImageData holds the raw uploaded image bytes. Never serialized into
	// aggregate responses; served through the dedicated image endpoint.
	ImageData []byte `json:"-"`

	// ImageType is the MIME type of ImageData (e.g. "image/jpeg").
	ImageType string `json:"image_type,omitempty"`

	// CreatedBy references the internal ID of the user who submitted
	// the recipe.
	CreatedBy int64 `json:"created_by"`

	// CreatedByUsername is the submitter's username, populated only by
	// queries that join the user table.
	CreatedByUsername string `json:"created_by_username,omitempty"`

	// Approved reports whether a moderator has made the recipe publicly
	// visible. Rejection clears the flag; the row is retained.
	Approved bool `json:"approved"`

	// CreatedAt is the submission timestamp.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is bumped on every full replace and moderation action.
	UpdatedAt time.Time `json:"updated_at"`

	// Ingredients are the owned ingredient lines in submission order.
	Ingredients []Ingredient `json:"ingredients,omitempty"`

	// Instructions are the owned steps ordered by StepNumber.
	Instructions []Instruction `json:"instructions,omitempty"`
}

// TableName returns the name of the database table
// associated with the Recipe model.
func (r Recipe) TableName() string {
	return "community_recipes"
}

// Ingredient is a single free-text ingredient line owned by a recipe.
// Submission order is preserved through the surrogate ID.
type Ingredient struct {
	ID         int64  `json:"-"`
	Ingredient string `json:"ingredient"`
}

// Instruction is a single preparation step owned by a recipe. StepNumber is
// 1-based and contiguous in submission order.
type Instruction struct {
	StepNumber  int    `json:"step_number"`
	Instruction string `json:"instruction"`
}

// RecipeInput is the submitted payload for creating or fully replacing a
// recipe aggregate. Ingredient and instruction entries are taken in slice
// order; blank entries are dropped before persistence.
type RecipeInput struct {
	Title        string   `json:"title"`
	ImageData    []byte   `json:"image_data,omitempty"`
	ImageType    string   `json:"image_type,omitempty"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// HasImage reports whether the input carries a new image to store.
// A replace without a new image must leave the stored image untouched.
func (in RecipeInput) HasImage() bool {
	return len(in.ImageData) > 0
}
