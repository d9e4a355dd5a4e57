// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// Defaults applied to fields left unset by every configuration source.
const (
	DefaultHTTPAddress          = "localhost:8080"
	DefaultRequestTimeout       = 30 * time.Second
	DefaultTokenIssuer          = "go-recipe-box"
	DefaultTokenDuration        = 24 * time.Hour
	DefaultJWKSFetchTimeout     = 30 * time.Second
	DefaultJWKSFetchesPerMinute = 5
)

// applyDefaults fills in fields that no configuration source set.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.Environment == "" {
		cfg.App.Environment = EnvDevelopment
	}
	if cfg.App.AuthMode == "" {
		cfg.App.AuthMode = AuthModeLocal
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.App.JWKSFetchTimeout == 0 {
		cfg.App.JWKSFetchTimeout = DefaultJWKSFetchTimeout
	}
	if cfg.App.JWKSFetchesPerMinute == 0 {
		cfg.App.JWKSFetchesPerMinute = DefaultJWKSFetchesPerMinute
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	if cfg.App.Environment != EnvDevelopment && cfg.App.Environment != EnvProduction {
		return fmt.Errorf("%w: unknown environment %q", ErrInvalidAppConfigs, cfg.App.Environment)
	}

	switch cfg.App.AuthMode {
	case AuthModeLocal:
		if cfg.App.TokenSignKey == "" {
			return fmt.Errorf("%w: token sign key is required in local auth mode", ErrInvalidAppConfigs)
		}
	case AuthModeAuth0:
		if cfg.App.Auth0Domain == "" {
			return fmt.Errorf("%w: auth0 domain is required in auth0 auth mode", ErrInvalidAppConfigs)
		}
		if cfg.App.Auth0Audience == "" {
			return fmt.Errorf("%w: auth0 audience is required in auth0 auth mode", ErrInvalidAppConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown auth mode %q", ErrInvalidAppConfigs, cfg.App.AuthMode)
	}

	return nil
}
