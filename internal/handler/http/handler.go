package http

import (
	"github.com/MKhiriev/go-recipe-box/internal/config"
	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/service"
)

type Handler struct {
	services *service.Services
	verifier service.TokenVerifier

	// devMode widens 500 bodies with the underlying error message.
	// Production responses never leak internals.
	devMode bool

	logger *logger.Logger
}

func NewHandler(services *service.Services, verifier service.TokenVerifier, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Str("auth_mode", cfg.AuthMode).Msg("http handler created")
	return &Handler{
		services: services,
		verifier: verifier,
		devMode:  cfg.Environment == config.EnvDevelopment,
		logger:   logger,
	}
}
