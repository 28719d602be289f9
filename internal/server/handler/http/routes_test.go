package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/digiprop/inspect/internal/models"
	"github.com/digiprop/inspect/internal/repository"
	"github.com/digiprop/inspect/internal/service"
)

var routerSecret = []byte("router-test-secret")

// newTestRouter wires the full router over seeded in-memory storage.
func newTestRouter() http.Handler {
	authService := service.NewAuthService(
		repository.NewMemoryUserRepository(),
		repository.NewMemoryCodeRepository(),
		routerSecret, time.Hour, zap.NewNop(),
	)
	return NewRouter(
		&AuthHandler{AuthService: authService},
		&InspectionHandler{InspectionService: service.NewInspectionService(repository.NewMemoryInspectionRepository())},
		&PropertyHandler{PropertyService: service.NewPropertyService(repository.NewMemoryPropertyRepository())},
		&MediaHandler{MediaService: service.NewMediaService()},
		routerSecret,
		zap.NewNop(),
	)
}

func doJSON(t *testing.T, router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func loginToken(t *testing.T, router http.Handler) string {
	t.Helper()
	rec := doJSON(t, router, "POST", "/api/auth/login",
		`{"email":"test@example.com","password":"password123"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	var result service.AuthResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("failed to decode login result: %v", err)
	}
	return result.Token
}

func TestRouterRejectsMissingToken(t *testing.T) {
	router := newTestRouter()

	for _, path := range []string{"/api/inspections", "/api/properties", "/api/users/1"} {
		rec := doJSON(t, router, "GET", path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, rec.Code)
		}
	}

	rec := doJSON(t, router, "GET", "/api/inspections", "", "not-a-token")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad token, got %d", rec.Code)
	}
}

func TestRouterInspectionFlow(t *testing.T) {
	router := newTestRouter()
	token := loginToken(t, router)

	// Create
	rec := doJSON(t, router, "POST", "/api/inspections",
		`{"address":"12 Elm St","client":"Akrom","selectedRooms":["Kitchen"]}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("create failed with status %d: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	var created models.Inspection
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("failed to decode inspection: %v", err)
	}
	if created.ID != 1 || created.Status != models.StatusCompleted {
		t.Errorf("unexpected created inspection: %+v", created)
	}

	// Patch
	rec = doJSON(t, router, "PATCH", "/api/inspections/1", `{"client":"John"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed with status %d: %s", rec.Code, rec.Body.String())
	}
	env = decodeEnvelope(t, rec)
	var updated models.Inspection
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		t.Fatalf("failed to decode inspection: %v", err)
	}
	if updated.Client != "John" || updated.Address != "12 Elm St" {
		t.Errorf("merge lost fields: %+v", updated)
	}

	// Get unknown id: declared failure with exact message.
	rec = doJSON(t, router, "GET", "/api/inspections/42", "", token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	env = decodeEnvelope(t, rec)
	if env.Error != "Inspection not found" {
		t.Errorf("unexpected error: %q", env.Error)
	}

	// Delete twice: acked both times, second reports nothing removed.
	rec = doJSON(t, router, "DELETE", "/api/inspections/1", "", token)
	env = decodeEnvelope(t, rec)
	if !env.Success || string(env.Data) != `{"success":true}` {
		t.Errorf("unexpected delete response: %s", rec.Body.String())
	}
	rec = doJSON(t, router, "DELETE", "/api/inspections/1", "", token)
	env = decodeEnvelope(t, rec)
	if !env.Success || string(env.Data) != `{"success":false}` {
		t.Errorf("unexpected second delete response: %s", rec.Body.String())
	}
}

func TestRouterProfileAndUpload(t *testing.T) {
	router := newTestRouter()
	token := loginToken(t, router)

	rec := doJSON(t, router, "GET", "/api/users/1", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile failed with status %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	var profile models.Profile
	if err := json.Unmarshal(env.Data, &profile); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}
	if profile.Name != "Test User" {
		t.Errorf("unexpected profile: %+v", profile)
	}

	rec = doJSON(t, router, "POST", "/api/images",
		`{"uri":"file:///photo.jpg","metadata":{"roomName":"Kitchen","timestamp":"2025-03-01T12:00:00Z","source":"camera"}}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload failed with status %d: %s", rec.Code, rec.Body.String())
	}
	env = decodeEnvelope(t, rec)
	var img models.UploadedImage
	if err := json.Unmarshal(env.Data, &img); err != nil {
		t.Fatalf("failed to decode image: %v", err)
	}
	if img.URL != "file:///photo.jpg" || img.Metadata.RoomName != "Kitchen" {
		t.Errorf("unexpected image: %+v", img)
	}
}

func TestRouterRejectsWrongContentType(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBufferString("email=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("expected 415, got %d", rec.Code)
	}
}
