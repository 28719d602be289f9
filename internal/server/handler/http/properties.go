package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/digiprop/inspect/internal/backend"
	"github.com/digiprop/inspect/internal/models"
)

// PropertyService defines the property operations required by the HTTP
// handlers.
type PropertyService interface {
	List(ctx context.Context) ([]models.Property, error)
	Get(ctx context.Context, id int) (*models.Property, error)
	Create(ctx context.Context, prop models.Property) (*models.Property, error)
	Update(ctx context.Context, id int, patch models.PropertyPatch) (*models.Property, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// PropertyHandler handles property CRUD requests.
type PropertyHandler struct {
	PropertyService PropertyService
}

// List handles GET /api/properties.
func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.PropertyService.List(r.Context())
	if err != nil {
		writeEnvelope(w, statusFor(err), backend.Fail[[]models.Property](err, "Failed to fetch properties"))
		return
	}
	writeEnvelope(w, http.StatusOK, backend.OK(list))
}

// Get handles GET /api/properties/{id}.
func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, valid := urlID(r)
	if !valid {
		writeEnvelope(w, http.StatusBadRequest, backend.Response[models.Property]{Success: false, Error: "invalid id"})
		return
	}

	prop, err := h.PropertyService.Get(r.Context(), id)
	if err != nil {
		writeEnvelope(w, statusFor(err), backend.Fail[models.Property](err, "Failed to fetch property"))
		return
	}
	writeEnvelope(w, http.StatusOK, backend.OK(*prop))
}

// Create handles POST /api/properties.
func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var prop models.Property
	if err := json.NewDecoder(r.Body).Decode(&prop); err != nil {
		writeEnvelope(w, http.StatusBadRequest, backend.Response[models.Property]{Success: false, Error: "invalid request"})
		return
	}

	created, err := h.PropertyService.Create(r.Context(), prop)
	if err != nil {
		writeEnvelope(w, statusFor(err), backend.Fail[models.Property](err, "Failed to create property"))
		return
	}
	writeEnvelope(w, http.StatusOK, backend.OK(*created))
}

// Update handles PATCH /api/properties/{id}.
func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, valid := urlID(r)
	if !valid {
		writeEnvelope(w, http.StatusBadRequest, backend.Response[models.Property]{Success: false, Error: "invalid id"})
		return
	}

	var patch models.PropertyPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeEnvelope(w, http.StatusBadRequest, backend.Response[models.Property]{Success: false, Error: "invalid request"})
		return
	}

	updated, err := h.PropertyService.Update(r.Context(), id, patch)
	if err != nil {
		writeEnvelope(w, statusFor(err), backend.Fail[models.Property](err, "Failed to update property"))
		return
	}
	writeEnvelope(w, http.StatusOK, backend.OK(*updated))
}

// Delete handles DELETE /api/properties/{id}.
func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, valid := urlID(r)
	if !valid {
		writeEnvelope(w, http.StatusBadRequest, backend.Response[backend.Ack]{Success: false, Error: "invalid id"})
		return
	}

	deleted, err := h.PropertyService.Delete(r.Context(), id)
	if err != nil {
		writeEnvelope(w, statusFor(err), backend.Fail[backend.Ack](err, "Failed to delete property"))
		return
	}
	writeEnvelope(w, http.StatusOK, backend.OK(backend.Ack{Success: deleted}))
}
