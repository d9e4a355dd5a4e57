package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-recipe-box/internal/config"
	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/store"
	"github.com/MKhiriev/go-recipe-box/internal/utils"
	"github.com/MKhiriev/go-recipe-box/models"
)

// minPasswordLength is the minimum accepted password length at signup.
const minPasswordLength = 8

// authService is the concrete implementation of [AuthService].
// It handles account registration, credential verification, session token
// issuance, and the resolution of verified principals to internal accounts,
// using a UserRepository for persistence and bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign session tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued session token.
	tokenIssuer string

	// tokenDuration controls how long a newly issued session token remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new [AuthService] wired to the given
// UserRepository and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// Signup registers a password-based account and issues a session token.
//
// Returns:
//   - [ErrInvalidDataProvided] if username, email, or password is blank;
//   - [ErrPasswordTooShort] for passwords under the minimum length;
//   - [store.ErrUserAlreadyExists] (wrapped) when username or email is taken.
func (a *authService) Signup(ctx context.Context, req models.SignupRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if username == "" || email == "" || req.Password == "" {
		return models.User{}, models.Token{}, ErrInvalidDataProvided
	}
	if len(req.Password) < minPasswordLength {
		return models.User{}, models.Token{}, ErrPasswordTooShort
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Err(err).Str("func", "authService.Signup").Msg("password hashing failed")
		return models.User{}, models.Token{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		log.Err(err).Str("func", "authService.Signup").Str("username", username).Msg("user creation ended with error")
		return models.User{}, models.Token{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	token, err := a.CreateToken(ctx, user)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	log.Info().Str("func", "authService.Signup").Int64("user_id", user.UserID).Msg("account registered")

	return user, token, nil
}

// Login authenticates stored credentials and issues a session token.
//
// Every credential failure collapses into [ErrWrongPassword] so that
// responses leak nothing about which accounts exist.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.Password == "" {
		return models.User{}, models.Token{}, ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, models.Token{}, ErrWrongPassword
		}
		log.Err(err).Str("func", "authService.Login").Msg("user search by email failed")
		return models.User{}, models.Token{}, fmt.Errorf("user search by email failed: %w", err)
	}

	// federated accounts have no password to check
	if user.PasswordHash == "" {
		return models.User{}, models.Token{}, ErrWrongPassword
	}

	if err = utils.ComparePassword(req.Password, user.PasswordHash); err != nil {
		log.Debug().Str("func", "authService.Login").Int64("user_id", user.UserID).Msg("wrong password")
		return models.User{}, models.Token{}, ErrWrongPassword
	}

	token, err := a.CreateToken(ctx, user)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}

// ResolvePrincipal maps a verified principal to an internal account.
//
// Local principals carry the internal numeric user ID as subject; the
// account must still exist — the existence check is the only session
// revocation mechanism, so a deleted user's otherwise-valid token yields
// [ErrUserNotFound].
//
// Remote principals carry the identity provider's subject; an unknown
// subject is provisioned on first sight with a display name chosen by
// precedence: name claim, then e-mail local-part, then a fragment of the
// subject itself. Concurrent first use of one subject converges on a single
// row via the repository's unique-constraint race handling. When the derived
// username or e-mail collides with an unrelated account, the insert is
// retried with a subject-unique username and, failing that, a synthetic
// subject-derived address, so a verified principal always gets a row.
func (a *authService) ResolvePrincipal(ctx context.Context, principal models.Principal) (models.User, error) {
	log := logger.FromContext(ctx)

	switch principal.Kind {
	case models.IssuerLocal:
		userID, err := strconv.ParseInt(principal.Subject, 10, 64)
		if err != nil {
			return models.User{}, ErrTokenInvalid
		}

		user, err := a.userRepository.FindUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNoUserWasFound) {
				return models.User{}, ErrUserNotFound
			}
			log.Err(err).Str("func", "authService.ResolvePrincipal").Int64("user_id", userID).Msg("user lookup failed")
			return models.User{}, fmt.Errorf("user lookup failed: %w", err)
		}
		return user, nil

	case models.IssuerRemote:
		user, err := a.userRepository.FindUserByExternalSubject(ctx, principal.Subject)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, store.ErrNoUserWasFound) {
			log.Err(err).Str("func", "authService.ResolvePrincipal").Str("subject", principal.Subject).Msg("subject lookup failed")
			return models.User{}, fmt.Errorf("subject lookup failed: %w", err)
		}

		account := federatedAccount(principal)

		provisioned, err := a.userRepository.CreateFederatedUser(ctx, account)
		if errors.Is(err, store.ErrUserAlreadyExists) {
			// the derived display name is taken by an unrelated account;
			// make it subject-unique and retry
			account.Username = account.Username + "_" + subjectFragment(principal.Subject)
			provisioned, err = a.userRepository.CreateFederatedUser(ctx, account)
		}
		if errors.Is(err, store.ErrUserAlreadyExists) {
			// the provider-asserted e-mail already belongs to another
			// account; fall back to a synthetic subject-derived address
			account.Email = principal.Subject + "@external.invalid"
			provisioned, err = a.userRepository.CreateFederatedUser(ctx, account)
		}
		if err != nil {
			log.Err(err).Str("func", "authService.ResolvePrincipal").Str("subject", principal.Subject).Msg("first-sight provisioning failed")
			return models.User{}, fmt.Errorf("first-sight provisioning failed: %w", err)
		}

		log.Info().
			Str("func", "authService.ResolvePrincipal").
			Int64("user_id", provisioned.UserID).
			Msg("federated account provisioned")

		return provisioned, nil

	default:
		return models.User{}, ErrTokenInvalid
	}
}

// CreateToken issues a signed session token for the given user.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// federatedAccount builds the user record for first-sight provisioning of a
// remote principal.
//
// Display name precedence: name claim → e-mail local-part → "user_" plus a
// fragment of the provider subject. The e-mail column is unique and
// required, so principals without an e-mail claim get a synthetic
// subject-derived address under a reserved TLD.
func federatedAccount(principal models.Principal) models.User {
	username := strings.TrimSpace(principal.Name)
	if username == "" && principal.Email != "" {
		if at := strings.Index(principal.Email, "@"); at > 0 {
			username = principal.Email[:at]
		}
	}
	if username == "" {
		username = "user_" + subjectFragment(principal.Subject)
	}

	email := principal.Email
	if email == "" {
		email = principal.Subject + "@external.invalid"
	}

	return models.User{
		Username:        username,
		Email:           email,
		ExternalSubject: principal.Subject,
	}
}

// subjectFragment trims a provider subject like "auth0|66f1a2b3c4" down to a
// short stable fragment usable in a generated username.
func subjectFragment(subject string) string {
	fragment := subject
	if idx := strings.LastIndex(fragment, "|"); idx >= 0 && idx+1 < len(fragment) {
		fragment = fragment[idx+1:]
	}
	if len(fragment) > 8 {
		fragment = fragment[:8]
	}
	return fragment
}
