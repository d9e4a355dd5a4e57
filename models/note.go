package models

// Note is a per-(user, recipe) singleton free-text annotation.
// Saving a note for an existing pair overwrites the previous text.
type Note struct {
	UserID   int64  `json:"user_id"`
	RecipeID int64  `json:"recipe_id"`
	Note     string `json:"note"`
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "notes"
}
