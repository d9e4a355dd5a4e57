package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/models"
	"github.com/jackc/pgerrcode"
)

func newTestFavoriteRepo(t *testing.T) (*favoriteRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &favoriteRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestAddFavorite_Duplicate(t *testing.T) {
	repo, mock, db := newTestFavoriteRepo(t)
	defer db.Close()

	favorite := models.Favorite{UserID: 3, RecipeID: 11, Source: models.SourceCommunity}

	mock.ExpectExec("INSERT INTO favorites").
		WithArgs(favorite.UserID, favorite.RecipeID, favorite.Source).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	err := repo.AddFavorite(context.Background(), favorite)
	if !errors.Is(err, ErrAlreadyFavorite) {
		t.Fatalf("expected ErrAlreadyFavorite, got %v", err)
	}
}

func TestRemoveFavorite_NotFound(t *testing.T) {
	repo, mock, db := newTestFavoriteRepo(t)
	defer db.Close()

	favorite := models.Favorite{UserID: 3, RecipeID: 11, Source: models.SourceExternal}

	mock.ExpectExec("DELETE FROM favorites").
		WithArgs(favorite.UserID, favorite.RecipeID, favorite.Source).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.RemoveFavorite(context.Background(), favorite)
	if !errors.Is(err, ErrFavoriteNotFound) {
		t.Fatalf("expected ErrFavoriteNotFound, got %v", err)
	}
}

func TestListFavorites(t *testing.T) {
	repo, mock, db := newTestFavoriteRepo(t)
	defer db.Close()

	rows := sqlmock.
		NewRows([]string{"user_id", "recipe_id", "source"}).
		AddRow(3, 11, "community").
		AddRow(3, 5231, "external")

	mock.ExpectQuery("SELECT (.+) FROM favorites").
		WithArgs(int64(3)).
		WillReturnRows(rows)

	favorites, err := repo.ListFavorites(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(favorites) != 2 {
		t.Fatalf("expected 2 favorites, got %d", len(favorites))
	}
	if favorites[1].Source != models.SourceExternal {
		t.Errorf("expected external source, got %s", favorites[1].Source)
	}
}
