package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/digiprop/inspect/internal/models"
)

// PostgresCodeRepository implements CodeRepository backed by PostgreSQL.
// The email column is the primary key, so an upsert naturally enforces
// one active code per email.
type PostgresCodeRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresCodeRepository creates a new PostgresCodeRepository with the
// given database connection.
func NewPostgresCodeRepository(db *sql.DB) *PostgresCodeRepository {
	return &PostgresCodeRepository{DB: db}
}

// Put stores the code, replacing any prior code for the same email.
func (r *PostgresCodeRepository) Put(ctx context.Context, code models.VerificationCode) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO verification_codes (email, code, expires_at) VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at`,
		code.Email, code.Code, code.ExpiresAt,
	)
	return err
}

// Get returns the active code for the email, or ErrNotFound.
func (r *PostgresCodeRepository) Get(ctx context.Context, email string) (*models.VerificationCode, error) {
	code := models.VerificationCode{Email: email}
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT code, expires_at FROM verification_codes WHERE email = $1`,
		email,
	).Scan(&code.Code, &code.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &code, nil
}
