package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-recipe-box/internal/config"
	myHTTP "github.com/MKhiriev/go-recipe-box/internal/handler/http"
	"github.com/MKhiriev/go-recipe-box/internal/jwks"
	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/server"
	"github.com/MKhiriev/go-recipe-box/internal/service"
	"github.com/MKhiriev/go-recipe-box/internal/store"
	"github.com/MKhiriev/go-recipe-box/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("recipe-box-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err = migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)
	services := service.NewServices(storages, cfg, log)

	handler := myHTTP.NewHandler(services, newVerifier(cfg, log), cfg.App, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// newVerifier picks the token verification variant for this deployment.
// Local mode checks self-issued HMAC session tokens; auth0 mode checks
// RS256 tokens against the provider's published key set.
func newVerifier(cfg *config.StructuredConfig, log *logger.Logger) service.TokenVerifier {
	if cfg.App.AuthMode == config.AuthModeAuth0 {
		provider := jwks.NewProvider(
			cfg.App.JWKSURL(),
			cfg.App.JWKSFetchTimeout,
			cfg.App.JWKSFetchesPerMinute,
			log,
		)
		return service.NewJWKSVerifier(provider, cfg.App, log)
	}

	return service.NewHMACVerifier(cfg.App, log)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
