package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/digiprop/inspect/internal/backend"
	"github.com/digiprop/inspect/internal/models"
)

// InspectionService defines the inspection operations required by the
// HTTP handlers.
type InspectionService interface {
	List(ctx context.Context) ([]models.Inspection, error)
	Get(ctx context.Context, id int) (*models.Inspection, error)
	Create(ctx context.Context, insp models.Inspection) (*models.Inspection, error)
	Update(ctx context.Context, id int, patch models.InspectionPatch) (*models.Inspection, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// InspectionHandler handles inspection CRUD requests.
type InspectionHandler struct {
	// InspectionService performs the underlying operations.
	InspectionService InspectionService
}

// List handles GET /api/inspections.
func (h *InspectionHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.InspectionService.List(r.Context())
	if err != nil {
		writeEnvelope(w, statusFor(err), backend.Fail[[]models.Inspection](err, "Failed to fetch inspections"))
		return
	}
	writeEnvelope(w, http.StatusOK, backend.OK(list))
}

// Get handles GET /api/inspections/{id}.
func (h *InspectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, valid := urlID(r)
	if !valid {
		writeEnvelope(w, http.StatusBadRequest, backend.Response[models.Inspection]{Success: false, Error: "invalid id"})
		return
	}

	insp, err := h.InspectionService.Get(r.Context(), id)
	if err != nil {
		writeEnvelope(w, statusFor(err), backend.Fail[models.Inspection](err, "Failed to fetch inspection"))
		return
	}
	writeEnvelope(w, http.StatusOK, backend.OK(*insp))
}

// Create handles POST /api/inspections.
func (h *InspectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var insp models.Inspection
	if err := json.NewDecoder(r.Body).Decode(&insp); err != nil {
		writeEnvelope(w, http.StatusBadRequest, backend.Response[models.Inspection]{Success: false, Error: "invalid request"})
		return
	}

	created, err := h.InspectionService.Create(r.Context(), insp)
	if err != nil {
		writeEnvelope(w, statusFor(err), backend.Fail[models.Inspection](err, "Failed to create inspection"))
		return
	}
	writeEnvelope(w, http.StatusOK, backend.OK(*created))
}

// Update handles PATCH /api/inspections/{id}.
func (h *InspectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, valid := urlID(r)
	if !valid {
		writeEnvelope(w, http.StatusBadRequest, backend.Response[models.Inspection]{Success: false, Error: "invalid id"})
		return
	}

	var patch models.InspectionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeEnvelope(w, http.StatusBadRequest, backend.Response[models.Inspection]{Success: false, Error: "invalid request"})
		return
	}

	updated, err := h.InspectionService.Update(r.Context(), id, patch)
	if err != nil {
		writeEnvelope(w, statusFor(err), backend.Fail[models.Inspection](err, "Failed to update inspection"))
		return
	}
	writeEnvelope(w, http.StatusOK, backend.OK(*updated))
}

// Delete handles DELETE /api/inspections/{id}.
func (h *InspectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, valid := urlID(r)
	if !valid {
		writeEnvelope(w, http.StatusBadRequest, backend.Response[backend.Ack]{Success: false, Error: "invalid id"})
		return
	}

	deleted, err := h.InspectionService.Delete(r.Context(), id)
	if err != nil {
		writeEnvelope(w, statusFor(err), backend.Fail[backend.Ack](err, "Failed to delete inspection"))
		return
	}
	writeEnvelope(w, http.StatusOK, backend.OK(backend.Ack{Success: deleted}))
}
