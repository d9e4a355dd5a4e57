package models

// Rating is a per-(user, recipe) singleton score between 1 and 5.
// Saving a rating for an existing pair overwrites the previous score.
type Rating struct {
	UserID   int64 `json:"user_id"`
	RecipeID int64 `json:"recipe_id"`
	Rating   int   `json:"rating"`
}

// TableName returns the name of the database table
// associated with the Rating model.
func (r Rating) TableName() string {
	return "rating"
}

// RatingSummary is the public aggregate view over all ratings of one recipe.
type RatingSummary struct {
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int64   `json:"total_ratings"`
}
