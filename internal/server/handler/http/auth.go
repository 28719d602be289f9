package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/digiprop/inspect/internal/backend"
	"github.com/digiprop/inspect/internal/models"
	"github.com/digiprop/inspect/internal/service"
)

// AuthService defines the authentication operations required by the
// HTTP handlers.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
	Signup(ctx context.Context, name, email, password string) (*service.AuthResult, error)
	ForgotPassword(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) (*service.VerifyResult, error)
	ResetPassword(ctx context.Context, email, newPassword string) error
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
}

// AuthHandler handles authentication and password-recovery requests.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeEnvelope(w, http.StatusBadRequest, backend.Response[service.AuthResult]{Success: false, Error: "invalid request"})
		return
	}

	result, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeEnvelope(w, statusFor(err), backend.Fail[service.AuthResult](err, "An error occurred during login"))
		return
	}
	writeEnvelope(w, http.StatusOK, backend.OK(*result))
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeEnvelope(w, http.StatusBadRequest, backend.Response[service.AuthResult]{Success: false, Error: "invalid request"})
		return
	}

	result, err := h.AuthService.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeEnvelope(w, statusFor(err), backend.Fail[service.AuthResult](err, "An error occurred during signup"))
		return
	}
	writeEnvelope(w, http.StatusOK, backend.OK(*result))
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword handles POST /api/auth/forgot-password.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeEnvelope(w, http.StatusBadRequest, backend.Response[backend.Message]{Success: false, Error: "invalid request"})
		return
	}

	if err := h.AuthService.ForgotPassword(r.Context(), req.Email); err != nil {
		writeEnvelope(w, statusFor(err), backend.Fail[backend.Message](err, "Failed to process password reset request"))
		return
	}
	writeEnvelope(w, http.StatusOK, backend.OK(backend.Message{Message: "Verification code sent to your email"}))
}

type verifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// VerifyCode handles POST /api/auth/verify-code.
func (h *AuthHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req verifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeEnvelope(w, http.StatusBadRequest, backend.Response[service.VerifyResult]{Success: false, Error: "invalid request"})
		return
	}

	result, err := h.AuthService.VerifyCode(r.Context(), req.Email, req.Code)
	if err != nil {
		writeEnvelope(w, statusFor(err), backend.Fail[service.VerifyResult](err, "Failed to verify code"))
		return
	}
	writeEnvelope(w, http.StatusOK, backend.OK(*result))
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// ResetPassword handles POST /api/auth/reset-password.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeEnvelope(w, http.StatusBadRequest, backend.Response[backend.Ack]{Success: false, Error: "invalid request"})
		return
	}

	if err := h.AuthService.ResetPassword(r.Context(), req.Email, req.NewPassword); err != nil {
		writeEnvelope(w, statusFor(err), backend.Fail[backend.Ack](err, "Failed to reset password"))
		return
	}
	writeEnvelope(w, http.StatusOK, backend.OK(backend.Ack{Success: true}))
}

// Profile handles GET /api/users/{id}.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	profile, err := h.AuthService.GetProfile(r.Context(), userID)
	if err != nil {
		writeEnvelope(w, statusFor(err), backend.Fail[models.Profile](err, "Failed to fetch user profile"))
		return
	}
	writeEnvelope(w, http.StatusOK, backend.OK(*profile))
}
