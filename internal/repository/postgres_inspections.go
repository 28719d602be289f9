package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/digiprop/inspect/internal/models"
)

// PostgresInspectionRepository implements InspectionRepository backed by
// PostgreSQL. Scalar fields live in columns; the composite wizard data
// (room results, room order, scheduling, photo references) is stored as
// JSONB, since it is read and written as a unit.
type PostgresInspectionRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresInspectionRepository creates a new PostgresInspectionRepository
// with the given database connection.
func NewPostgresInspectionRepository(db *sql.DB) *PostgresInspectionRepository {
	return &PostgresInspectionRepository{DB: db}
}

const inspectionColumns = `id, address, client, inspection_date, inspection_time,
	inventory_type, location_key, bathroom, bedroom, additional_notes,
	status, assigned_to, created_at, updated_at, submitted_at, detail`

// inspectionDetail is the JSONB blob holding the composite fields.
type inspectionDetail struct {
	RoomInspectionData map[string]models.RoomInspectionData `json:"roomInspectionData,omitempty"`
	SelectedRooms      []string                             `json:"selectedRooms,omitempty"`
	DateTimeData       *models.DateTimeData                 `json:"dateTimeData,omitempty"`
	RoomPhotos         map[string][]string                  `json:"roomPhotos,omitempty"`
}

func scanInspection(row interface{ Scan(...any) error }) (*models.Inspection, error) {
	var (
		insp   models.Inspection
		detail []byte
	)
	err := row.Scan(
		&insp.ID, &insp.Address, &insp.Client, &insp.InspectionDate, &insp.InspectionTime,
		&insp.InventoryType, &insp.LocationKey, &insp.Bathroom, &insp.Bedroom, &insp.AdditionalNotes,
		&insp.Status, &insp.AssignedTo, &insp.CreatedAt, &insp.UpdatedAt, &insp.SubmittedAt, &detail,
	)
	if err != nil {
		return nil, err
	}
	if len(detail) > 0 {
		var d inspectionDetail
		if err := json.Unmarshal(detail, &d); err != nil {
			return nil, err
		}
		insp.RoomInspectionData = d.RoomInspectionData
		insp.SelectedRooms = d.SelectedRooms
		insp.DateTimeData = d.DateTimeData
		insp.RoomPhotos = d.RoomPhotos
	}
	return &insp, nil
}

func marshalDetail(insp models.Inspection) ([]byte, error) {
	return json.Marshal(inspectionDetail{
		RoomInspectionData: insp.RoomInspectionData,
		SelectedRooms:      insp.SelectedRooms,
		DateTimeData:       insp.DateTimeData,
		RoomPhotos:         insp.RoomPhotos,
	})
}

// List returns all inspections ordered by id.
func (r *PostgresInspectionRepository) List(ctx context.Context) ([]models.Inspection, error) {
	rows, err := r.DB.QueryContext(
		ctx,
		`SELECT `+inspectionColumns+` FROM inspections ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Inspection
	for rows.Next() {
		insp, err := scanInspection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *insp)
	}
	return out, rows.Err()
}

// GetByID returns the inspection with the given id, or ErrNotFound.
func (r *PostgresInspectionRepository) GetByID(ctx context.Context, id int) (*models.Inspection, error) {
	row := r.DB.QueryRowContext(
		ctx,
		`SELECT `+inspectionColumns+` FROM inspections WHERE id = $1`,
		id,
	)
	insp, err := scanInspection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return insp, nil
}

// Create inserts the inspection and returns it with the assigned id.
func (r *PostgresInspectionRepository) Create(ctx context.Context, insp models.Inspection) (*models.Inspection, error) {
	detail, err := marshalDetail(insp)
	if err != nil {
		return nil, err
	}
	err = r.DB.QueryRowContext(
		ctx,
		`INSERT INTO inspections (address, client, inspection_date, inspection_time,
			inventory_type, location_key, bathroom, bedroom, additional_notes,
			status, assigned_to, created_at, updated_at, submitted_at, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`,
		insp.Address, insp.Client, insp.InspectionDate, insp.InspectionTime,
		insp.InventoryType, insp.LocationKey, insp.Bathroom, insp.Bedroom, insp.AdditionalNotes,
		insp.Status, insp.AssignedTo, insp.CreatedAt, insp.UpdatedAt, insp.SubmittedAt, detail,
	).Scan(&insp.ID)
	if err != nil {
		return nil, err
	}
	return &insp, nil
}

// Replace overwrites the stored inspection with the matching id.
func (r *PostgresInspectionRepository) Replace(ctx context.Context, insp models.Inspection) error {
	detail, err := marshalDetail(insp)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(
		ctx,
		`UPDATE inspections SET address = $1, client = $2, inspection_date = $3,
			inspection_time = $4, inventory_type = $5, location_key = $6,
			bathroom = $7, bedroom = $8, additional_notes = $9, status = $10,
			assigned_to = $11, created_at = $12, updated_at = $13,
			submitted_at = $14, detail = $15
		WHERE id = $16`,
		insp.Address, insp.Client, insp.InspectionDate,
		insp.InspectionTime, insp.InventoryType, insp.LocationKey,
		insp.Bathroom, insp.Bedroom, insp.AdditionalNotes, insp.Status,
		insp.AssignedTo, insp.CreatedAt, insp.UpdatedAt,
		insp.SubmittedAt, detail, insp.ID,
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

// Delete removes the inspection with the given id.
func (r *PostgresInspectionRepository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM inspections WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
