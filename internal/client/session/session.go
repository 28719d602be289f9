// Package session tracks the client's authentication state: the signed
// in user, the bearer token, and the outcome of the last auth attempt.
package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/digiprop/inspect/internal/backend"
	"github.com/digiprop/inspect/internal/models"
	"github.com/digiprop/inspect/internal/service"
)

// Backend is the slice of the backend contract the session manager uses.
type Backend interface {
	Login(ctx context.Context, email, password string) backend.Response[service.AuthResult]
	Signup(ctx context.Context, name, email, password string) backend.Response[service.AuthResult]
	ForgotPassword(ctx context.Context, email string) backend.Response[backend.Message]
	VerifyCode(ctx context.Context, email, code string) backend.Response[service.VerifyResult]
	ResetPassword(ctx context.Context, email, newPassword string) backend.Response[backend.Ack]
}

// Manager serializes auth attempts: while one is in flight, further
// attempts are ignored rather than queued, so a double-submit cannot
// race two logins.
type Manager struct {
	backend Backend
	log     *zap.Logger

	mu      sync.Mutex
	user    *models.Profile
	token   string
	busy    bool
	lastErr string
}

func NewManager(b Backend, log *zap.Logger) *Manager {
	return &Manager{backend: b, log: log}
}

// begin marks an attempt in flight. It reports false when another
// attempt is already running.
func (m *Manager) begin() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.busy {
		return false
	}
	m.busy = true
	m.lastErr = ""
	return true
}

// Login authenticates and, on success, stores the user and token.
func (m *Manager) Login(ctx context.Context, email, password string) bool {
	if !m.begin() {
		return false
	}
	resp := m.backend.Login(ctx, email, password)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.busy = false
	if !resp.Success || resp.Data == nil {
		m.lastErr = resp.Error
		m.log.Warn("login failed", zap.String("email", email), zap.String("error", resp.Error))
		return false
	}
	user := resp.Data.User
	m.user = &user
	m.token = resp.Data.Token
	return true
}

// Signup registers a new account and signs it in.
func (m *Manager) Signup(ctx context.Context, name, email, password string) bool {
	if !m.begin() {
		return false
	}
	resp := m.backend.Signup(ctx, name, email, password)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.busy = false
	if !resp.Success || resp.Data == nil {
		m.lastErr = resp.Error
		m.log.Warn("signup failed", zap.String("email", email), zap.String("error", resp.Error))
		return false
	}
	user := resp.Data.User
	m.user = &user
	m.token = resp.Data.Token
	return true
}

// ForgotPassword requests a verification code for the email. It returns
// the acknowledgment message on success.
func (m *Manager) ForgotPassword(ctx context.Context, email string) (string, bool) {
	if !m.begin() {
		return "", false
	}
	resp := m.backend.ForgotPassword(ctx, email)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.busy = false
	if !resp.Success || resp.Data == nil {
		m.lastErr = resp.Error
		return "", false
	}
	return resp.Data.Message, true
}

// VerifyCode checks a reset code. A mismatched code is a successful
// call with Valid=false, not an error.
func (m *Manager) VerifyCode(ctx context.Context, email, code string) (valid bool, ok bool) {
	if !m.begin() {
		return false, false
	}
	resp := m.backend.VerifyCode(ctx, email, code)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.busy = false
	if !resp.Success || resp.Data == nil {
		m.lastErr = resp.Error
		return false, false
	}
	return resp.Data.Valid, true
}

// ResetPassword sets a new password after code verification.
func (m *Manager) ResetPassword(ctx context.Context, email, newPassword string) bool {
	if !m.begin() {
		return false
	}
	resp := m.backend.ResetPassword(ctx, email, newPassword)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.busy = false
	if !resp.Success {
		m.lastErr = resp.Error
		return false
	}
	return true
}

// Logout drops the session. Captured inspection data is untouched.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	m.token = ""
	m.lastErr = ""
}

// User returns the signed-in profile, if any.
func (m *Manager) User() (models.Profile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return models.Profile{}, false
	}
	return *m.user, true
}

// Token returns the current bearer token, empty when signed out.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Busy reports whether an auth attempt is in flight.
func (m *Manager) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy
}

// Err returns the message of the last failed attempt, cleared on the
// next attempt and on logout.
func (m *Manager) Err() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}
