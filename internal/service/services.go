package service

import (
	"github.com/MKhiriev/go-recipe-box/internal/config"
	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/store"
)

// Services aggregates every domain service behind its interface.
type Services struct {
	AuthService     AuthService
	RecipeService   RecipeService
	FavoriteService FavoriteService
	NoteService     NoteService
	RatingService   RatingService
	UserService     UserService
}

// NewServices wires all domain services onto the given repositories.
// The token verifier is constructed separately: its variant depends on the
// configured auth mode and, in remote mode, on the key set provider.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:     NewAuthService(storages.UserRepository, cfg.App, logger),
		RecipeService:   NewRecipeService(storages.RecipeRepository, logger),
		FavoriteService: NewFavoriteService(storages.FavoriteRepository, storages.RecipeRepository, logger),
		NoteService:     NewNoteService(storages.NoteRepository, logger),
		RatingService:   NewRatingService(storages.RatingRepository, logger),
		UserService:     NewUserService(storages.UserRepository, logger),
	}
}
