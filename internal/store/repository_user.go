package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, and profile updates against the
// "user" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new password-based account and returns the fully
// populated [models.User] with server-assigned fields (UserID, CreatedAt).
//
// The INSERT uses the [createUser] query which returns all columns via a
// RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUserAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Username, user.Email, user.PasswordHash)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: row is nil")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrUserAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	saved, err := scanUser(row)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrUserAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		return models.User{}, err
	}

	return saved, nil
}

// externalSubjectConstraint is the unique constraint on
// "user".external_subject. A violation of it means a concurrent request
// already provisioned the same subject; violations of the username or email
// constraints mean an unrelated account holds the derived value.
const externalSubjectConstraint = "user_external_subject_key"

// CreateFederatedUser persists an account provisioned from a federated
// identity provider, keyed by its external subject.
//
// The method is idempotent under concurrent first use of the same subject:
// when the INSERT loses a race and hits the unique constraint on
// external_subject, the winner's row is read back and returned so that both
// callers observe the same account. A unique violation on any other
// constraint (username, email) yields [ErrUserAlreadyExists] so the caller
// can retry with different derived values.
func (r *userRepository) CreateFederatedUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createFederatedUser, user.Username, user.Email, user.ExternalSubject)

	err := row.Err()
	if err == nil {
		var saved models.User
		saved, err = scanUser(row)
		if err == nil {
			return saved, nil
		}
	}

	if postgresError(err) == pgerrcode.UniqueViolation {
		if postgresConstraint(err) == externalSubjectConstraint {
			log.Debug().
				Str("func", "*userRepository.CreateFederatedUser").
				Str("external_subject", user.ExternalSubject).
				Msg("lost provisioning race, reading winner's row")
			return r.FindUserByExternalSubject(ctx, user.ExternalSubject)
		}

		return models.User{}, ErrUserAlreadyExists
	}

	log.Err(err).Str("func", "*userRepository.CreateFederatedUser").Msg("error creating federated user")
	return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
}

// FindUserByID retrieves a user record by its internal identifier.
//
// Error handling:
//   - no matching row → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findOne(ctx, findUserByID, userID)
}

// FindUserByEmail retrieves a user record by its unique e-mail address.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, findUserByEmail, email)
}

// FindUserByExternalSubject retrieves a user record by the stable subject
// identifier assigned by the federated identity provider.
func (r *userRepository) FindUserByExternalSubject(ctx context.Context, subject string) (models.User, error) {
	return r.findOne(ctx, findUserByExternalSubject, subject)
}

func (r *userRepository) findOne(ctx context.Context, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query, arg)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.findOne").Msg("error: row is nil")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	found, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.findOne").Msg("error: scanning error")
		return models.User{}, err
	}

	return found, nil
}

// ListUsers returns every registered account ordered by internal ID.
func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listUsers)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("failed to execute query for listing users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 50)

	for rows.Next() {
		var user models.User

		scanErr := rows.Scan(
			&user.UserID,
			&user.Username,
			&user.Email,
			&user.PasswordHash,
			&user.ExternalSubject,
			&user.IsAdmin,
			&user.CreatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*userRepository.ListUsers").Msg("failed to scan user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		users = append(users, user)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*userRepository.ListUsers").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return users, nil
}

// UpdateUserProfile updates the user's mutable profile fields and replaces
// the stored preference list in a single transaction.
//
// Preferences are rewritten with delete-then-insert: partial preference
// updates are not supported, the submitted list is the new truth.
func (r *userRepository) UpdateUserProfile(ctx context.Context, user models.User, preferences []string) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUserProfile").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, updateUserProfile, user.Username, user.Email, user.UserID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUserProfile").Int64("user_id", user.UserID).Msg("failed to update user row")
		if postgresError(err) == pgerrcode.UniqueViolation {
			return ErrUserAlreadyExists
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	if _, err = tx.ExecContext(ctx, deleteUserPreferences, user.UserID); err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUserProfile").Int64("user_id", user.UserID).Msg("failed to clear user preferences")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	stmt, err := tx.PrepareContext(ctx, insertUserPreference)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUserProfile").Msg("failed to prepare preference insert")
		return fmt.Errorf("%w: %w", ErrPreparingStatement, err)
	}
	defer stmt.Close()

	for _, preference := range preferences {
		if _, err = stmt.ExecContext(ctx, user.UserID, preference); err != nil {
			log.Err(err).Str("func", "*userRepository.UpdateUserProfile").Str("preference", preference).Msg("failed to insert preference")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).Str("func", "*userRepository.UpdateUserProfile").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}

// GetPreferences returns the user's stored preference list in alphabetical
// order. An empty slice is returned when the user has none.
func (r *userRepository) GetPreferences(ctx context.Context, userID int64) ([]string, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getUserPreferences, userID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.GetPreferences").Int64("user_id", userID).Msg("failed to execute preferences query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	preferences := make([]string, 0, 8)

	for rows.Next() {
		var preference string
		if scanErr := rows.Scan(&preference); scanErr != nil {
			log.Err(scanErr).Str("func", "*userRepository.GetPreferences").Msg("failed to scan preference row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		preferences = append(preferences, preference)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*userRepository.GetPreferences").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return preferences, nil
}

func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.UserID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.ExternalSubject,
		&user.IsAdmin,
		&user.CreatedAt,
	)
	return user, err
}
