package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/digiprop/inspect/internal/models"
)

func setupCodeMock(t *testing.T) (*PostgresCodeRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresCodeRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestCodePut_Upsert(t *testing.T) {
	repo, mock, cleanup := setupCodeMock(t)
	defer cleanup()

	expires := time.Now().Add(15 * time.Minute)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO verification_codes`)).
		WithArgs("test@example.com", "123456", expires).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Put(context.Background(), models.VerificationCode{
		Email: "test@example.com", Code: "123456", ExpiresAt: expires,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCodeGet_Found(t *testing.T) {
	repo, mock, cleanup := setupCodeMock(t)
	defer cleanup()

	expires := time.Now().Add(15 * time.Minute)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT code, expires_at FROM verification_codes WHERE email = $1`)).
		WithArgs("test@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"code", "expires_at"}).AddRow("123456", expires))

	code, err := repo.Get(context.Background(), "test@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code.Code != "123456" || code.Email != "test@example.com" {
		t.Errorf("unexpected code: %+v", code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCodeGet_NotFound(t *testing.T) {
	repo, mock, cleanup := setupCodeMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT code, expires_at FROM verification_codes WHERE email = $1`)).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"code", "expires_at"}))

	_, err := repo.Get(context.Background(), "nobody@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
