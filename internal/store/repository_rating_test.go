package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/models"
)

func newTestRatingRepo(t *testing.T) (*ratingRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &ratingRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestSaveRating_Upsert(t *testing.T) {
	repo, mock, db := newTestRatingRepo(t)
	defer db.Close()

	rating := models.Rating{UserID: 3, RecipeID: 11, Rating: 5}

	mock.ExpectExec("INSERT INTO rating").
		WithArgs(rating.UserID, rating.RecipeID, rating.Rating).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SaveRating(context.Background(), rating); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetRating_NotFound(t *testing.T) {
	repo, mock, db := newTestRatingRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM rating").
		WithArgs(int64(3), int64(11)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetRating(context.Background(), 3, 11)
	if !errors.Is(err, ErrRatingNotFound) {
		t.Fatalf("expected ErrRatingNotFound, got %v", err)
	}
}

func TestGetSummary(t *testing.T) {
	repo, mock, db := newTestRatingRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM rating").
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"avg", "count"}).AddRow(4.5, 2))

	summary, err := repo.GetSummary(context.Background(), 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.AverageRating != 4.5 || summary.TotalRatings != 2 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}
