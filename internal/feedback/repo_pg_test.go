package feedback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	entry := Entry{
		ID:        "fb-1",
		Name:      "Sam",
		Email:     "sam@example.com",
		Message:   "great site",
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO feedback").
		WithArgs(entry.ID, entry.Name, entry.Email, entry.Message, entry.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := &PGRepo{DB: db}
	if err := repo.Create(context.Background(), entry); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGRepoCreateSurfacesDBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO feedback").
		WillReturnError(errors.New("connection closed"))

	repo := &PGRepo{DB: db}
	if err := repo.Create(context.Background(), Entry{ID: "fb-1"}); err == nil {
		t.Fatalf("expected the insert failure to surface")
	}
}
