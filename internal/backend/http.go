package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/digiprop/inspect/internal/models"
	"github.com/digiprop/inspect/internal/service"
)

// HTTPClient speaks the backend contract to a remote server. Responses
// arrive as the same envelope the Local backend produces, so callers
// cannot tell the two apart.
type HTTPClient struct {
	baseURL string
	client  *http.Client

	mu    sync.Mutex
	token string
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient constructs an HTTPClient against the given base URL,
// e.g. "http://localhost:8080".
func NewHTTPClient(baseURL string, client *http.Client) *HTTPClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPClient{baseURL: baseURL, client: client}
}

// SetToken installs the bearer token sent with authenticated requests.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) bearer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// call issues a JSON request and decodes the envelope. Transport and
// decode failures are folded into a failed envelope with the operation's
// generic message, matching the no-throw contract.
func call[T any](ctx context.Context, c *HTTPClient, method, path string, body any, generic string) Response[T] {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return Response[T]{Success: false, Error: generic}
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return Response[T]{Success: false, Error: generic}
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Response[T]{Success: false, Error: generic}
	}
	defer resp.Body.Close()

	var envelope Response[T]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return Response[T]{Success: false, Error: generic}
	}
	return envelope
}

// Login authenticates and remembers the returned token for subsequent
// authenticated calls.
func (c *HTTPClient) Login(ctx context.Context, email, password string) Response[service.AuthResult] {
	resp := call[service.AuthResult](ctx, c, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password},
		"An error occurred during login")
	if resp.Success && resp.Data != nil {
		c.SetToken(resp.Data.Token)
	}
	return resp
}

// Signup registers a new account and remembers the returned token.
func (c *HTTPClient) Signup(ctx context.Context, name, email, password string) Response[service.AuthResult] {
	resp := call[service.AuthResult](ctx, c, http.MethodPost, "/api/auth/signup",
		map[string]string{"name": name, "email": email, "password": password},
		"An error occurred during signup")
	if resp.Success && resp.Data != nil {
		c.SetToken(resp.Data.Token)
	}
	return resp
}

// ForgotPassword requests a password-reset verification code.
func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) Response[Message] {
	return call[Message](ctx, c, http.MethodPost, "/api/auth/forgot-password",
		map[string]string{"email": email},
		"Failed to process password reset request")
}

// VerifyCode checks a password-reset code.
func (c *HTTPClient) VerifyCode(ctx context.Context, email, code string) Response[service.VerifyResult] {
	return call[service.VerifyResult](ctx, c, http.MethodPost, "/api/auth/verify-code",
		map[string]string{"email": email, "code": code},
		"Failed to verify code")
}

// ResetPassword overwrites the account password.
func (c *HTTPClient) ResetPassword(ctx context.Context, email, newPassword string) Response[Ack] {
	return call[Ack](ctx, c, http.MethodPost, "/api/auth/reset-password",
		map[string]string{"email": email, "newPassword": newPassword},
		"Failed to reset password")
}

// GetUserProfile fetches the credential-free user record.
func (c *HTTPClient) GetUserProfile(ctx context.Context, userID string) Response[models.Profile] {
	return call[models.Profile](ctx, c, http.MethodGet, "/api/users/"+userID, nil,
		"Failed to fetch user profile")
}

// GetInspections lists all inspections.
func (c *HTTPClient) GetInspections(ctx context.Context) Response[[]models.Inspection] {
	return call[[]models.Inspection](ctx, c, http.MethodGet, "/api/inspections", nil,
		"Failed to fetch inspections")
}

// GetInspectionByID fetches one inspection.
func (c *HTTPClient) GetInspectionByID(ctx context.Context, id int) Response[models.Inspection] {
	return call[models.Inspection](ctx, c, http.MethodGet, fmt.Sprintf("/api/inspections/%d", id), nil,
		"Failed to fetch inspection")
}

// CreateInspection stores a new inspection.
func (c *HTTPClient) CreateInspection(ctx context.Context, insp models.Inspection) Response[models.Inspection] {
	return call[models.Inspection](ctx, c, http.MethodPost, "/api/inspections", insp,
		"Failed to create inspection")
}

// UpdateInspection sends a partial update.
func (c *HTTPClient) UpdateInspection(ctx context.Context, id int, patch models.InspectionPatch) Response[models.Inspection] {
	return call[models.Inspection](ctx, c, http.MethodPatch, fmt.Sprintf("/api/inspections/%d", id), patch,
		"Failed to update inspection")
}

// DeleteInspection removes an inspection.
func (c *HTTPClient) DeleteInspection(ctx context.Context, id int) Response[Ack] {
	return call[Ack](ctx, c, http.MethodDelete, fmt.Sprintf("/api/inspections/%d", id), nil,
		"Failed to delete inspection")
}

// GetProperties lists all properties.
func (c *HTTPClient) GetProperties(ctx context.Context) Response[[]models.Property] {
	return call[[]models.Property](ctx, c, http.MethodGet, "/api/properties", nil,
		"Failed to fetch properties")
}

// GetPropertyByID fetches one property.
func (c *HTTPClient) GetPropertyByID(ctx context.Context, id int) Response[models.Property] {
	return call[models.Property](ctx, c, http.MethodGet, fmt.Sprintf("/api/properties/%d", id), nil,
		"Failed to fetch property")
}

// CreateProperty stores a new property.
func (c *HTTPClient) CreateProperty(ctx context.Context, prop models.Property) Response[models.Property] {
	return call[models.Property](ctx, c, http.MethodPost, "/api/properties", prop,
		"Failed to create property")
}

// UpdateProperty sends a partial update.
func (c *HTTPClient) UpdateProperty(ctx context.Context, id int, patch models.PropertyPatch) Response[models.Property] {
	return call[models.Property](ctx, c, http.MethodPatch, fmt.Sprintf("/api/properties/%d", id), patch,
		"Failed to update property")
}

// DeleteProperty removes a property.
func (c *HTTPClient) DeleteProperty(ctx context.Context, id int) Response[Ack] {
	return call[Ack](ctx, c, http.MethodDelete, fmt.Sprintf("/api/properties/%d", id), nil,
		"Failed to delete property")
}

// UploadImage registers an image reference.
func (c *HTTPClient) UploadImage(ctx context.Context, uri string, metadata models.ImageMetadata) Response[models.UploadedImage] {
	return call[models.UploadedImage](ctx, c, http.MethodPost, "/api/images",
		map[string]any{"uri": uri, "metadata": metadata},
		"Failed to upload image")
}
