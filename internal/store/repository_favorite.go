package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/models"
	"github.com/jackc/pgerrcode"
)

// favoriteRepository is the PostgreSQL-backed implementation of
// [FavoriteRepository] over the "favorites" table.
//
// The table's composite primary key (user_id, recipe_id, source) enforces
// the one-mark-per-recipe rule; duplicate inserts surface as
// [ErrAlreadyFavorite].
type favoriteRepository struct {
	*DB
	logger *logger.Logger
}

// NewFavoriteRepository constructs a [FavoriteRepository] backed by the
// provided database connection and logger.
func NewFavoriteRepository(db *DB, logger *logger.Logger) FavoriteRepository {
	logger.Debug().Msg("creating favorite repository")
	return &favoriteRepository{
		DB:     db,
		logger: logger,
	}
}

// AddFavorite inserts a favorite mark.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrAlreadyFavorite].
//   - Any other driver-level error → wrapped as [ErrExecutingStatement].
func (f *favoriteRepository) AddFavorite(ctx context.Context, favorite models.Favorite) error {
	log := logger.FromContext(ctx)

	_, err := f.DB.ExecContext(ctx, addFavorite, favorite.UserID, favorite.RecipeID, favorite.Source)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return ErrAlreadyFavorite
		}
		log.Err(err).
			Str("func", "favoriteRepository.AddFavorite").
			Int64("user_id", favorite.UserID).
			Int64("recipe_id", favorite.RecipeID).
			Msg("failed to insert favorite")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// RemoveFavorite deletes a favorite mark.
// Returns [ErrFavoriteNotFound] when the triple does not exist.
func (f *favoriteRepository) RemoveFavorite(ctx context.Context, favorite models.Favorite) error {
	log := logger.FromContext(ctx)

	result, err := f.DB.ExecContext(ctx, removeFavorite, favorite.UserID, favorite.RecipeID, favorite.Source)
	if err != nil {
		log.Err(err).
			Str("func", "favoriteRepository.RemoveFavorite").
			Int64("user_id", favorite.UserID).
			Int64("recipe_id", favorite.RecipeID).
			Msg("failed to delete favorite")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrFavoriteNotFound
	}

	return nil
}

// ListFavorites returns every favorite mark of one user ordered by recipe ID.
func (f *favoriteRepository) ListFavorites(ctx context.Context, userID int64) ([]models.Favorite, error) {
	log := logger.FromContext(ctx)

	rows, err := f.DB.QueryContext(ctx, listFavorites, userID)
	if err != nil {
		log.Err(err).Str("func", "favoriteRepository.ListFavorites").Int64("user_id", userID).Msg("failed to execute favorites query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	favorites := make([]models.Favorite, 0, 20)

	for rows.Next() {
		var favorite models.Favorite
		if scanErr := rows.Scan(&favorite.UserID, &favorite.RecipeID, &favorite.Source); scanErr != nil {
			log.Err(scanErr).Str("func", "favoriteRepository.ListFavorites").Msg("failed to scan favorite row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		favorites = append(favorites, favorite)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "favoriteRepository.ListFavorites").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return favorites, nil
}
