package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/digiprop/inspect/internal/models"
)

func setupInspectionMock(t *testing.T) (*PostgresInspectionRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresInspectionRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

var inspectionRowColumns = []string{
	"id", "address", "client", "inspection_date", "inspection_time",
	"inventory_type", "location_key", "bathroom", "bedroom", "additional_notes",
	"status", "assigned_to", "created_at", "updated_at", "submitted_at", "detail",
}

func TestInspectionGetByID_DetailRoundTrip(t *testing.T) {
	repo, mock, cleanup := setupInspectionMock(t)
	defer cleanup()

	detail := `{"roomInspectionData":{"Kitchen":{"completed":true,"timestamp":"2025-03-01T12:00:00Z","photos":["file:///a.jpg"]}},"selectedRooms":["Kitchen"],"roomPhotos":{"Kitchen":["file:///a.jpg"]}}`
	mock.ExpectQuery(regexp.QuoteMeta(`FROM inspections WHERE id = $1`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(inspectionRowColumns).
			AddRow(1, "12 Elm St", "Akrom", "October 15, 2024", "10:00 AM",
				"Mid term", "With landlord", "02", "04", "",
				"completed", "", "2025-03-01T11:00:00Z", "", "", []byte(detail)))

	insp, err := repo.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if insp.Address != "12 Elm St" {
		t.Errorf("unexpected address: %s", insp.Address)
	}
	room, ok := insp.RoomInspectionData["Kitchen"]
	if !ok || !room.Completed || len(room.Photos) != 1 {
		t.Errorf("room data not decoded: %+v", insp.RoomInspectionData)
	}
	if len(insp.SelectedRooms) != 1 || insp.SelectedRooms[0] != "Kitchen" {
		t.Errorf("selected rooms not decoded: %v", insp.SelectedRooms)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestInspectionGetByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupInspectionMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM inspections WHERE id = $1`)).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows(inspectionRowColumns))

	_, err := repo.GetByID(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestInspectionList(t *testing.T) {
	repo, mock, cleanup := setupInspectionMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM inspections ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows(inspectionRowColumns).
			AddRow(1, "12 Elm St", "", "", "", "", "", "", "", "", "completed", "", "", "", "", []byte(`{}`)).
			AddRow(2, "7 Oak Ave", "", "", "", "", "", "", "", "", "pending", "", "", "", "", []byte(`{}`)))

	out, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[0].ID != 1 || out[1].ID != 2 {
		t.Errorf("unexpected list: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestInspectionCreate(t *testing.T) {
	repo, mock, cleanup := setupInspectionMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO inspections`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	insp, err := repo.Create(context.Background(), models.Inspection{
		Address: "12 Elm St",
		Status:  models.StatusCompleted,
		RoomPhotos: map[string][]string{
			"Kitchen": {"file:///a.jpg"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if insp.ID != 5 {
		t.Errorf("expected id 5, got %d", insp.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestInspectionReplace_NotFound(t *testing.T) {
	repo, mock, cleanup := setupInspectionMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE inspections SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Replace(context.Background(), models.Inspection{ID: 42})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestInspectionDelete(t *testing.T) {
	repo, mock, cleanup := setupInspectionMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM inspections WHERE id = $1`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM inspections WHERE id = $1`)).
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), 1)
	if err != nil || !deleted {
		t.Errorf("expected deleted=true, got %v, %v", deleted, err)
	}
	deleted, err = repo.Delete(context.Background(), 2)
	if err != nil || deleted {
		t.Errorf("expected deleted=false, got %v, %v", deleted, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
