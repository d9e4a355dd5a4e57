// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-recipe-box/internal/config"
	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/store"
	"github.com/MKhiriev/go-recipe-box/internal/utils"
	"github.com/MKhiriev/go-recipe-box/models"
)

func newTestAuthService(repo store.UserRepository) AuthService {
	cfg := config.App{
		TokenSignKey:  "unit-test-sign-key",
		TokenIssuer:   "go-recipe-box",
		TokenDuration: time.Hour,
	}
	return NewAuthService(repo, cfg, logger.NewLogger("test"))
}

// ─────────────────────────────────────────────
// Signup
// ─────────────────────────────────────────────

func TestSignup_Success(t *testing.T) {
	repo := &mockUserRepository{
		createFn: func(ctx context.Context, user models.User) (models.User, error) {
			user.UserID = 7
			return user, nil
		},
	}
	svc := newTestAuthService(repo)

	user, token, err := svc.Signup(context.Background(), models.SignupRequest{
		Username: "  alice  ",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), user.UserID)
	assert.Equal(t, "alice", user.Username, "username should be trimmed before storage")
	assert.NotEmpty(t, token.SignedString)
	assert.NoError(t, utils.ComparePassword("correct-horse", user.PasswordHash))
}

func TestSignup_RejectsBlankFields(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	tests := []struct {
		name string
		req  models.SignupRequest
	}{
		{"no username", models.SignupRequest{Email: "a@b.c", Password: "longenough"}},
		{"no email", models.SignupRequest{Username: "alice", Password: "longenough"}},
		{"no password", models.SignupRequest{Username: "alice", Email: "a@b.c"}},
		{"whitespace username", models.SignupRequest{Username: "   ", Email: "a@b.c", Password: "longenough"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Signup(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestSignup_RejectsShortPassword(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, _, err := svc.Signup(context.Background(), models.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "short12",
	})

	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestSignup_DuplicateAccount(t *testing.T) {
	repo := &mockUserRepository{
		createFn: func(ctx context.Context, user models.User) (models.User, error) {
			return models.User{}, store.ErrUserAlreadyExists
		},
	}
	svc := newTestAuthService(repo)

	_, _, err := svc.Signup(context.Background(), models.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})

	assert.ErrorIs(t, err, store.ErrUserAlreadyExists)
}

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	hash, err := utils.HashPassword("correct-horse")
	require.NoError(t, err)

	repo := &mockUserRepository{
		findByEmailFn: func(ctx context.Context, email string) (models.User, error) {
			return models.User{UserID: 7, Username: "alice", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := newTestAuthService(repo)

	user, token, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), user.UserID)
	assert.NotEmpty(t, token.SignedString)
}

// Unknown e-mail, wrong password, and password-less federated accounts must
// all fail identically so login responses cannot probe for accounts.
func TestLogin_AllCredentialFailuresLookAlike(t *testing.T) {
	hash, err := utils.HashPassword("correct-horse")
	require.NoError(t, err)

	tests := []struct {
		name   string
		lookup func(ctx context.Context, email string) (models.User, error)
	}{
		{
			name: "unknown email",
			lookup: func(ctx context.Context, email string) (models.User, error) {
				return models.User{}, store.ErrNoUserWasFound
			},
		},
		{
			name: "wrong password",
			lookup: func(ctx context.Context, email string) (models.User, error) {
				return models.User{UserID: 7, PasswordHash: hash}, nil
			},
		},
		{
			name: "federated account without password",
			lookup: func(ctx context.Context, email string) (models.User, error) {
				return models.User{UserID: 8, ExternalSubject: "auth0|abc"}, nil
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuthService(&mockUserRepository{findByEmailFn: tt.lookup})

			_, _, err := svc.Login(context.Background(), models.LoginRequest{
				Email:    "whoever@example.com",
				Password: "not-the-password",
			})

			assert.ErrorIs(t, err, ErrWrongPassword)
		})
	}
}

// ─────────────────────────────────────────────
// ResolvePrincipal
// ─────────────────────────────────────────────

func TestResolvePrincipal_LocalSuccess(t *testing.T) {
	repo := &mockUserRepository{
		findByIDFn: func(ctx context.Context, userID int64) (models.User, error) {
			return models.User{UserID: userID, Username: "alice"}, nil
		},
	}
	svc := newTestAuthService(repo)

	user, err := svc.ResolvePrincipal(context.Background(), models.Principal{
		Subject: "42",
		Kind:    models.IssuerLocal,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), user.UserID)
}

// A valid token for a since-deleted account must not authenticate: the
// existence check is the only revocation mechanism for local sessions.
func TestResolvePrincipal_LocalDeletedUser(t *testing.T) {
	repo := &mockUserRepository{
		findByIDFn: func(ctx context.Context, userID int64) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}
	svc := newTestAuthService(repo)

	_, err := svc.ResolvePrincipal(context.Background(), models.Principal{
		Subject: "42",
		Kind:    models.IssuerLocal,
	})

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestResolvePrincipal_LocalNonNumericSubject(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.ResolvePrincipal(context.Background(), models.Principal{
		Subject: "auth0|abc",
		Kind:    models.IssuerLocal,
	})

	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestResolvePrincipal_RemoteKnownSubject(t *testing.T) {
	created := false
	repo := &mockUserRepository{
		findBySubjectFn: func(ctx context.Context, subject string) (models.User, error) {
			return models.User{UserID: 9, ExternalSubject: subject}, nil
		},
		createFederatedFn: func(ctx context.Context, user models.User) (models.User, error) {
			created = true
			return user, nil
		},
	}
	svc := newTestAuthService(repo)

	user, err := svc.ResolvePrincipal(context.Background(), models.Principal{
		Subject: "auth0|abc",
		Kind:    models.IssuerRemote,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(9), user.UserID)
	assert.False(t, created, "known subject must not be re-provisioned")
}

func TestResolvePrincipal_RemoteFirstSightProvisioning(t *testing.T) {
	tests := []struct {
		name         string
		principal    models.Principal
		wantUsername string
		wantEmail    string
	}{
		{
			name: "name claim wins",
			principal: models.Principal{
				Subject: "auth0|66f1a2b3c4",
				Kind:    models.IssuerRemote,
				Name:    "Alice Cooper",
				Email:   "alice@example.com",
			},
			wantUsername: "Alice Cooper",
			wantEmail:    "alice@example.com",
		},
		{
			name: "email local-part when name is absent",
			principal: models.Principal{
				Subject: "auth0|66f1a2b3c4",
				Kind:    models.IssuerRemote,
				Email:   "alice@example.com",
			},
			wantUsername: "alice",
			wantEmail:    "alice@example.com",
		},
		{
			name: "subject fragment when both are absent",
			principal: models.Principal{
				Subject: "auth0|66f1a2b3c4",
				Kind:    models.IssuerRemote,
			},
			wantUsername: "user_66f1a2b3",
			wantEmail:    "auth0|66f1a2b3c4@external.invalid",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var provisioned models.User
			repo := &mockUserRepository{
				findBySubjectFn: func(ctx context.Context, subject string) (models.User, error) {
					return models.User{}, store.ErrNoUserWasFound
				},
				createFederatedFn: func(ctx context.Context, user models.User) (models.User, error) {
					user.UserID = 10
					provisioned = user
					return user, nil
				},
			}
			svc := newTestAuthService(repo)

			user, err := svc.ResolvePrincipal(context.Background(), tt.principal)

			require.NoError(t, err)
			assert.Equal(t, int64(10), user.UserID)
			assert.Equal(t, tt.wantUsername, provisioned.Username)
			assert.Equal(t, tt.wantEmail, provisioned.Email)
			assert.Equal(t, tt.principal.Subject, provisioned.ExternalSubject)
		})
	}
}

// Two distinct subjects may derive the same display name ("alice" from the
// name claim or e-mail local-part). The second one must still get a row:
// the insert is retried with a subject-unique username.
func TestResolvePrincipal_RemoteUsernameCollisionRetries(t *testing.T) {
	var attempts []models.User
	repo := &mockUserRepository{
		findBySubjectFn: func(ctx context.Context, subject string) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
		createFederatedFn: func(ctx context.Context, user models.User) (models.User, error) {
			attempts = append(attempts, user)
			if len(attempts) == 1 {
				return models.User{}, store.ErrUserAlreadyExists
			}
			user.UserID = 11
			return user, nil
		},
	}
	svc := newTestAuthService(repo)

	user, err := svc.ResolvePrincipal(context.Background(), models.Principal{
		Subject: "auth0|b1c2d3e4f5",
		Kind:    models.IssuerRemote,
		Name:    "alice",
		Email:   "alice.second@example.com",
	})

	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, "alice", attempts[0].Username)
	assert.Equal(t, "alice_b1c2d3e4", attempts[1].Username, "retry must carry a subject-unique username")
	assert.Equal(t, "alice.second@example.com", attempts[1].Email, "a free e-mail must survive the retry")
	assert.Equal(t, int64(11), user.UserID)
}

// When the provider-asserted e-mail already belongs to another account, the
// final retry substitutes a synthetic subject-derived address rather than
// locking the principal out.
func TestResolvePrincipal_RemoteEmailCollisionFallsBack(t *testing.T) {
	var attempts []models.User
	repo := &mockUserRepository{
		findBySubjectFn: func(ctx context.Context, subject string) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
		createFederatedFn: func(ctx context.Context, user models.User) (models.User, error) {
			attempts = append(attempts, user)
			if len(attempts) < 3 {
				return models.User{}, store.ErrUserAlreadyExists
			}
			user.UserID = 12
			return user, nil
		},
	}
	svc := newTestAuthService(repo)

	user, err := svc.ResolvePrincipal(context.Background(), models.Principal{
		Subject: "auth0|b1c2d3e4f5",
		Kind:    models.IssuerRemote,
		Name:    "alice",
		Email:   "alice@example.com",
	})

	require.NoError(t, err)
	require.Len(t, attempts, 3)
	assert.Equal(t, "auth0|b1c2d3e4f5@external.invalid", attempts[2].Email)
	assert.Equal(t, "alice_b1c2d3e4", attempts[2].Username)
	assert.Equal(t, int64(12), user.UserID)
}

// Concurrent first use of one never-seen subject must converge on a single
// account: exactly one insert happens and every caller observes its row.
func TestResolvePrincipal_ConcurrentFirstUseConverges(t *testing.T) {
	var (
		mu      sync.Mutex
		inserts int
		stored  models.User
		exists  bool
	)
	repo := &mockUserRepository{
		findBySubjectFn: func(ctx context.Context, subject string) (models.User, error) {
			mu.Lock()
			defer mu.Unlock()
			if exists {
				return stored, nil
			}
			return models.User{}, store.ErrNoUserWasFound
		},
		createFederatedFn: func(ctx context.Context, user models.User) (models.User, error) {
			mu.Lock()
			defer mu.Unlock()
			// only the first insert lands; losers read the winner's row,
			// mirroring the unique-constraint handling in the repository
			if !exists {
				inserts++
				user.UserID = 88
				stored = user
				exists = true
			}
			return stored, nil
		},
	}
	svc := newTestAuthService(repo)

	principal := models.Principal{
		Subject: "auth0|fresh",
		Kind:    models.IssuerRemote,
		Name:    "Fresh User",
	}

	const callers = 16
	results := make(chan models.User, callers)
	errs := make(chan error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			user, err := svc.ResolvePrincipal(context.Background(), principal)
			results <- user
			errs <- err
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	for user := range results {
		assert.Equal(t, int64(88), user.UserID, "every caller must observe the same account")
	}
	assert.Equal(t, 1, inserts, "exactly one row must be inserted")
}

func TestResolvePrincipal_UnknownKind(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.ResolvePrincipal(context.Background(), models.Principal{
		Subject: "42",
		Kind:    models.IssuerKind("weird"),
	})

	assert.ErrorIs(t, err, ErrTokenInvalid)
}
