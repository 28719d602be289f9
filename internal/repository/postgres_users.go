package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/digiprop/inspect/internal/models"
)

// PostgresUserRepository implements UserRepository backed by PostgreSQL.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the
// given database connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// GetByEmail returns the user with the exact email, or ErrNotFound.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var (
		id   int
		user models.User
	)
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT id, name, email, password_hash FROM users WHERE email = $1`,
		email,
	).Scan(&id, &user.Name, &user.Email, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	user.ID = strconv.Itoa(id)
	return &user, nil
}

// GetByID returns the user with the given id, or ErrNotFound.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	numeric, err := strconv.Atoi(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var user models.User
	err = r.DB.QueryRowContext(
		ctx,
		`SELECT name, email, password_hash FROM users WHERE id = $1`,
		numeric,
	).Scan(&user.Name, &user.Email, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	user.ID = id
	return &user, nil
}

// Create inserts the user and returns it with the assigned id.
func (r *PostgresUserRepository) Create(ctx context.Context, user models.User) (*models.User, error) {
	var id int
	err := r.DB.QueryRowContext(
		ctx,
		`INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id`,
		user.Name, user.Email, user.PasswordHash,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	user.ID = strconv.Itoa(id)
	return &user, nil
}

// UpdatePassword overwrites the stored password hash for the email.
func (r *PostgresUserRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	res, err := r.DB.ExecContext(
		ctx,
		`UPDATE users SET password_hash = $1 WHERE email = $2`,
		passwordHash, email,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
