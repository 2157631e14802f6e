package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestDeleteWorryReportsExistence(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM worries").
		WithArgs("w1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM worries").
		WithArgs("w2", "u1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewWorryRepo(db)

	deleted, err := repo.DeleteWorry(context.Background(), "w1", "u1")
	if err != nil {
		t.Fatalf("delete worry: %v", err)
	}
	if !deleted {
		t.Fatal("expected deleted=true for existing worry")
	}

	deleted, err = repo.DeleteWorry(context.Background(), "w2", "u1")
	if err != nil {
		t.Fatalf("delete worry: %v", err)
	}
	if deleted {
		t.Fatal("expected deleted=false for missing worry")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetWorryByIDScopesToOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM worries WHERE id").
		WithArgs("w1", "other-user").
		WillReturnError(sql.ErrNoRows)

	repo := NewWorryRepo(db)
	w, err := repo.GetWorryByID(context.Background(), "w1", "other-user")
	if err != nil {
		t.Fatalf("expected nil error for unowned worry, got %v", err)
	}
	if w != nil {
		t.Fatalf("expected nil worry, got %+v", w)
	}
}
