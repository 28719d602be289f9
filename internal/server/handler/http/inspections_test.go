package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/digiprop/inspect/internal/models"
	"github.com/digiprop/inspect/internal/service"
)

// fakeInspectionService implements InspectionService for testing.
type fakeInspectionService struct {
	list      []models.Inspection
	listErr   error
	got       *models.Inspection
	getErr    error
	created   *models.Inspection
	createErr error
	updated   *models.Inspection
	updateErr error
	deleted   bool
	deleteErr error
}

func (f *fakeInspectionService) List(ctx context.Context) ([]models.Inspection, error) {
	return f.list, f.listErr
}

func (f *fakeInspectionService) Get(ctx context.Context, id int) (*models.Inspection, error) {
	return f.got, f.getErr
}

func (f *fakeInspectionService) Create(ctx context.Context, insp models.Inspection) (*models.Inspection, error) {
	return f.created, f.createErr
}

func (f *fakeInspectionService) Update(ctx context.Context, id int, patch models.InspectionPatch) (*models.Inspection, error) {
	return f.updated, f.updateErr
}

func (f *fakeInspectionService) Delete(ctx context.Context, id int) (bool, error) {
	return f.deleted, f.deleteErr
}

func TestInspectionHandler_List(t *testing.T) {
	tests := []struct {
		name          string
		service       *fakeInspectionService
		expectedCode  int
		expectedError string
		expectedLen   int
	}{
		{
			name: "two inspections",
			service: &fakeInspectionService{list: []models.Inspection{
				{ID: 1, Address: "12 Elm St"},
				{ID: 2, Address: "7 Oak Ave"},
			}},
			expectedCode: http.StatusOK,
			expectedLen:  2,
		},
		{
			name:         "empty list",
			service:      &fakeInspectionService{},
			expectedCode: http.StatusOK,
		},
		{
			name:          "repository failure is masked",
			service:       &fakeInspectionService{listErr: errors.New("pq: down")},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Failed to fetch inspections",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/api/inspections", nil)
			h := &InspectionHandler{InspectionService: tt.service}
			h.List(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			env := decodeEnvelope(t, rec)
			if env.Error != tt.expectedError {
				t.Errorf("expected error %q, got %q", tt.expectedError, env.Error)
			}
			if tt.expectedError == "" {
				var list []models.Inspection
				if err := json.Unmarshal(env.Data, &list); err != nil {
					t.Fatalf("failed to decode data: %v", err)
				}
				if len(list) != tt.expectedLen {
					t.Errorf("expected %d inspections, got %d", tt.expectedLen, len(list))
				}
			}
		})
	}
}

func TestInspectionHandler_Create(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		service       *fakeInspectionService
		expectedCode  int
		expectedError string
	}{
		{
			name:          "invalid JSON",
			body:          `{`,
			service:       &fakeInspectionService{},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid request",
		},
		{
			name:          "service failure is masked",
			body:          `{"address":"12 Elm St"}`,
			service:       &fakeInspectionService{createErr: errors.New("boom")},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Failed to create inspection",
		},
		{
			name:         "success",
			body:         `{"address":"12 Elm St"}`,
			service:      &fakeInspectionService{created: &models.Inspection{ID: 1, Address: "12 Elm St", Status: models.StatusCompleted}},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/inspections", bytes.NewBufferString(tt.body))
			h := &InspectionHandler{InspectionService: tt.service}
			h.Create(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			env := decodeEnvelope(t, rec)
			if env.Error != tt.expectedError {
				t.Errorf("expected error %q, got %q", tt.expectedError, env.Error)
			}
			if tt.expectedError == "" {
				var insp models.Inspection
				if err := json.Unmarshal(env.Data, &insp); err != nil {
					t.Fatalf("failed to decode data: %v", err)
				}
				if insp.ID != 1 || insp.Status != models.StatusCompleted {
					t.Errorf("unexpected inspection: %+v", insp)
				}
			}
		})
	}
}

func TestInspectionHandler_NotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/inspections", bytes.NewBufferString(`{"address":"x"}`))
	h := &InspectionHandler{InspectionService: &fakeInspectionService{createErr: service.ErrInspectionNotFound}}
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for declared error, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error != "Inspection not found" {
		t.Errorf("unexpected error: %q", env.Error)
	}
}
