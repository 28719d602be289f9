package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/digiprop/inspect/internal/auth"
	"github.com/digiprop/inspect/internal/models"
	"github.com/digiprop/inspect/internal/repository"
)

// codeValidity is how long a password-reset verification code stays valid.
const codeValidity = 15 * time.Minute

// AuthResult bundles the authenticated user with a signed bearer token.
type AuthResult struct {
	User  models.Profile `json:"user"`
	Token string         `json:"token"`
}

// VerifyResult reports whether a submitted verification code matched.
// A mismatch is not an error: callers must check Valid, not just the
// envelope's success flag.
type VerifyResult struct {
	Valid bool `json:"valid"`
}

// AuthService implements login, signup, and the password-recovery flow.
type AuthService struct {
	users     repository.UserRepository
	codes     repository.CodeRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	log       *zap.Logger
	// now is indirected for expiry tests.
	now func() time.Time
}

// NewAuthService constructs an AuthService. The secret signs issued
// tokens; tokenTTL bounds their validity.
func NewAuthService(users repository.UserRepository, codes repository.CodeRepository, jwtSecret []byte, tokenTTL time.Duration, log *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		codes:     codes,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
		now:       time.Now,
	}
}

// Login verifies the credentials and returns the user with a fresh token.
// The email match is exact and case-sensitive.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidPassword
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user.Profile(), Token: token}, nil
}

// Signup creates a new account and returns it with a fresh token.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*AuthResult, error) {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailInUse
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user.Profile(), Token: token}, nil
}

// ForgotPassword issues a 6-digit verification code valid for 15 minutes,
// replacing any prior code for the email. The code is delivered
// out-of-band; here it is only observable via the log.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	_, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNoAccountFound
	}
	if err != nil {
		return err
	}

	code, err := generateVerificationCode()
	if err != nil {
		return err
	}

	if err := s.codes.Put(ctx, models.VerificationCode{
		Email:     email,
		Code:      code,
		ExpiresAt: s.now().Add(codeValidity),
	}); err != nil {
		return err
	}

	s.log.Info("verification code issued", zap.String("email", email), zap.String("code", code))
	return nil
}

// VerifyCode checks a submitted code against the stored one. A stored but
// mismatching code yields Valid=false without an error; the code is not
// consumed on a successful match.
func (s *AuthService) VerifyCode(ctx context.Context, email, code string) (*VerifyResult, error) {
	stored, err := s.codes.Get(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoCodeFound
	}
	if err != nil {
		return nil, err
	}

	if s.now().After(stored.ExpiresAt) {
		return nil, ErrCodeExpired
	}

	return &VerifyResult{Valid: stored.Code == code}, nil
}

// ResetPassword overwrites the stored password for the email.
func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	err = s.users.UpdatePassword(ctx, email, string(hash))
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPasswordUpdate
	}
	return err
}

// GetProfile returns the credential-free view of the user.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	profile := user.Profile()
	return &profile, nil
}

// generateVerificationCode returns a uniformly random 6-digit code.
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
