package models

// ErrorResponse is the JSON body returned for every failed request.
// Message carries the human-readable detail and is omitted when empty
// (authorization failures return only the error field).
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is the body of the liveness endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// SignupRequest is the payload for local account registration.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the payload for local credential authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned on successful signup or login. Token holds the
// compact signed session token.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// RecipeCreatedResponse acknowledges a stored recipe aggregate.
type RecipeCreatedResponse struct {
	Message  string `json:"message"`
	RecipeID int64  `json:"recipe_id"`
}

// RecipeDeletedResponse returns the snapshot of a deleted aggregate for
// confirmation display.
type RecipeDeletedResponse struct {
	Message string `json:"message"`
	Recipe  Recipe `json:"recipe"`
}

// ApprovalRequest is the moderation payload flipping a recipe's
// approved flag.
type ApprovalRequest struct {
	Approved bool `json:"approved"`
}

// Profile is the authenticated user's own account view, including the
// stored dietary preferences.
type Profile struct {
	UserID    int64    `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	IsAdmin   bool     `json:"is_admin"`
	Allergies []string `json:"allergies"`
}

// ProfileUpdateRequest is the payload for replacing the caller's profile
// and preference set.
type ProfileUpdateRequest struct {
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Allergies []string `json:"allergies"`
}
