package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrWrongPassword       = errors.New("wrong credentials")

	// Token verification failures. The handler layer maps each of these to a
	// distinguished 401 body, so their identities matter.
	ErrNoToken      = errors.New("no token provided")
	ErrTokenExpired = errors.New("token is expired")
	ErrTokenInvalid = errors.New("token is invalid")
	ErrUserNotFound = errors.New("token subject has no account")
	ErrUpstreamAuth = errors.New("unable to verify token with identity provider")

	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrNotOwner is returned when a caller who is neither the submitter nor
	// an admin tries to mutate a recipe.
	ErrNotOwner = errors.New("caller does not own the recipe")

	// ErrNoImage is returned when a recipe exists but carries no stored image.
	ErrNoImage = errors.New("recipe has no image")

	// ErrRatingOutOfRange is returned for scores outside the 1..5 scale.
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
)
