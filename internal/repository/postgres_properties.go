package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/digiprop/inspect/internal/models"
)

// PostgresPropertyRepository implements PropertyRepository backed by
// PostgreSQL.
type PostgresPropertyRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresPropertyRepository creates a new PostgresPropertyRepository
// with the given database connection.
func NewPostgresPropertyRepository(db *sql.DB) *PostgresPropertyRepository {
	return &PostgresPropertyRepository{DB: db}
}

// List returns all properties ordered by id.
func (r *PostgresPropertyRepository) List(ctx context.Context) ([]models.Property, error) {
	rows, err := r.DB.QueryContext(
		ctx,
		`SELECT id, address, bedrooms, bathrooms, property_type, image, created_at, updated_at
		FROM properties ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Property
	for rows.Next() {
		var prop models.Property
		if err := rows.Scan(
			&prop.ID, &prop.Address, &prop.Bedrooms, &prop.Bathrooms,
			&prop.PropertyType, &prop.Image, &prop.CreatedAt, &prop.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, prop)
	}
	return out, rows.Err()
}

// GetByID returns the property with the given id, or ErrNotFound.
func (r *PostgresPropertyRepository) GetByID(ctx context.Context, id int) (*models.Property, error) {
	var prop models.Property
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT id, address, bedrooms, bathrooms, property_type, image, created_at, updated_at
		FROM properties WHERE id = $1`,
		id,
	).Scan(
		&prop.ID, &prop.Address, &prop.Bedrooms, &prop.Bathrooms,
		&prop.PropertyType, &prop.Image, &prop.CreatedAt, &prop.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &prop, nil
}

// Create inserts the property and returns it with the assigned id.
func (r *PostgresPropertyRepository) Create(ctx context.Context, prop models.Property) (*models.Property, error) {
	err := r.DB.QueryRowContext(
		ctx,
		`INSERT INTO properties (address, bedrooms, bathrooms, property_type, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		prop.Address, prop.Bedrooms, prop.Bathrooms, prop.PropertyType,
		prop.Image, prop.CreatedAt, prop.UpdatedAt,
	).Scan(&prop.ID)
	if err != nil {
		return nil, err
	}
	return &prop, nil
}

// Replace overwrites the stored property with the matching id.
func (r *PostgresPropertyRepository) Replace(ctx context.Context, prop models.Property) error {
	res, err := r.DB.ExecContext(
		ctx,
		`UPDATE properties SET address = $1, bedrooms = $2, bathrooms = $3,
			property_type = $4, image = $5, created_at = $6, updated_at = $7
		WHERE id = $8`,
		prop.Address, prop.Bedrooms, prop.Bathrooms,
		prop.PropertyType, prop.Image, prop.CreatedAt, prop.UpdatedAt,
		prop.ID,
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

// Delete removes the property with the given id.
func (r *PostgresPropertyRepository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
