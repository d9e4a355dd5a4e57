package service

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-recipe-box/models"
)

// TokenVerifier checks a raw bearer token and extracts the verified identity.
// Each deployment runs exactly one verifier variant, chosen from config:
// self-issued HMAC session tokens or identity-provider RS256 tokens.
//
// Extract owns the variant's extraction rule (header only vs header plus
// query fallback); Verify owns signature and claim validation.
type TokenVerifier interface {
	// Extract pulls the raw compact token out of the request.
	// Returns ErrNoToken when the request carries none.
	Extract(r *http.Request) (string, error)

	// Verify validates the token and returns the extracted principal.
	// Failures are one of ErrTokenExpired, ErrTokenInvalid, ErrUpstreamAuth.
	Verify(ctx context.Context, rawToken string) (models.Principal, error)
}

// KeyResolver provides public keys by key ID for remote token verification.
// Implemented by the jwks package's Provider.
type KeyResolver interface {
	Resolve(ctx context.Context, keyID string) (any, error)
}

// AuthService handles account registration, credential authentication, and
// the resolution of verified principals to internal accounts.
type AuthService interface {
	// Signup registers a password-based account and issues a session token.
	Signup(ctx context.Context, req models.SignupRequest) (models.User, models.Token, error)
	// Login authenticates stored credentials and issues a session token.
	// All credential failures collapse into ErrWrongPassword.
	Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error)
	// ResolvePrincipal maps a verified principal to an internal account.
	// Local principals must already exist; remote principals are provisioned
	// on first sight.
	ResolvePrincipal(ctx context.Context, principal models.Principal) (models.User, error)
	// CreateToken issues a signed session token for the given user.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
}

// RecipeService owns recipe aggregate validation, visibility rules, and
// ownership checks on top of the transactional repository.
type RecipeService interface {
	// Create validates and stores a new aggregate, returning its ID.
	// New recipes always start unapproved.
	Create(ctx context.Context, userID int64, input models.RecipeInput) (int64, error)
	// Replace validates and fully replaces an aggregate. Only the submitter
	// or an admin may replace; a replace without a new image preserves the
	// stored one.
	Replace(ctx context.Context, caller models.User, recipeID int64, input models.RecipeInput) error
	// SetApproval flips the moderation flag. Callers must be admins; the
	// gate lives in the handler layer.
	SetApproval(ctx context.Context, recipeID int64, approved bool) error
	// Delete removes an aggregate and returns its final snapshot. Only the
	// submitter or an admin may delete.
	Delete(ctx context.Context, caller models.User, recipeID int64) (models.Recipe, error)
	// Get loads one aggregate. Unapproved recipes are visible only to their
	// submitter and admins; everyone else observes not-found.
	Get(ctx context.Context, viewer *models.User, recipeID int64) (models.Recipe, error)
	// GetImage returns the stored image under the same visibility rule.
	GetImage(ctx context.Context, viewer *models.User, recipeID int64) ([]byte, string, error)
	// ListApproved returns the public recipe listing.
	ListApproved(ctx context.Context) ([]models.Recipe, error)
	// ListByCreator returns one user's submissions regardless of approval.
	ListByCreator(ctx context.Context, userID int64) ([]models.Recipe, error)
}

// FavoriteService manages per-user favorite marks.
type FavoriteService interface {
	// Add marks a recipe as favorite. Community recipes must exist;
	// external-catalog IDs are taken on faith.
	Add(ctx context.Context, favorite models.Favorite) error
	Remove(ctx context.Context, favorite models.Favorite) error
	List(ctx context.Context, userID int64) ([]models.Favorite, error)
}

// NoteService manages per-(user, recipe) singleton notes.
type NoteService interface {
	Save(ctx context.Context, note models.Note) error
	Get(ctx context.Context, userID, recipeID int64) (models.Note, error)
	Delete(ctx context.Context, userID, recipeID int64) error
}

// RatingService manages per-(user, recipe) singleton scores and the public
// aggregate.
type RatingService interface {
	Save(ctx context.Context, rating models.Rating) error
	Get(ctx context.Context, userID, recipeID int64) (models.Rating, error)
	Summary(ctx context.Context, recipeID int64) (models.RatingSummary, error)
}

// UserService manages the caller's own profile and the admin user list.
type UserService interface {
	GetProfile(ctx context.Context, user models.User) (models.Profile, error)
	UpdateProfile(ctx context.Context, user models.User, req models.ProfileUpdateRequest) (models.Profile, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}
