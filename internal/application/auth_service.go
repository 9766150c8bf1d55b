package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/notegenius-api/internal/domain/entity"
	repo "github.com/oksasatya/notegenius-api/internal/domain/repository"
	"github.com/oksasatya/notegenius-api/pkg/helpers"
)

const (
	MsgResetRequested     = "If your email exists in our system, you will receive a reset link"
	MsgInvalidCredentials = "Invalid email or password"
	MsgInvalidToken       = "Invalid or expired token"
	MsgInvalidPurpose     = "Invalid token purpose"
	MsgNoToken            = "No token provided"
	MsgUserNotFound       = "User not found"
	MsgEmailExists        = "Email already exists"
	MsgPasswordTooLong    = "Password must be at most 72 bytes"
)

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// TokenService issues and verifies signed bearer tokens.
type TokenService interface {
	Issue(claims helpers.TokenClaims, ttl time.Duration) (string, time.Time, error)
	Verify(token string) (*helpers.Claims, error)
}

// ResetNotifier delivers a password reset token to its owner.
type ResetNotifier interface {
	NotifyPasswordReset(ctx context.Context, u *entity.User, token string, expiresAt time.Time) error
}

type AuthConfig struct {
	SessionTTL time.Duration
	ResetTTL   time.Duration
	// ExposeResetToken returns the reset token in the response body. Development only.
	ExposeResetToken bool
}

type AuthService struct {
	Users    repo.UserRepository
	Hasher   PasswordHasher
	Tokens   TokenService
	Notifier ResetNotifier
	Cache    ListCache
	Logger   logrus.FieldLogger
	Cfg      AuthConfig

	dummyHash string
}

// NewAuthService wires the auth flow. notifier may be nil, in which case reset tokens are only logged.
// cache is the user list cache cleared on registration; it may be nil.
func NewAuthService(users repo.UserRepository, hasher PasswordHasher, tokens TokenService, notifier ResetNotifier, cache ListCache, logger logrus.FieldLogger, cfg AuthConfig) *AuthService {
	s := &AuthService{
		Users:    users,
		Hasher:   hasher,
		Tokens:   tokens,
		Notifier: notifier,
		Cache:    cache,
		Logger:   logger,
		Cfg:      cfg,
	}
	// compared against on unknown-email logins so both paths cost one bcrypt check
	if h, err := hasher.Hash("notegenius-timing-equalizer"); err == nil {
		s.dummyHash = h
	}
	return s
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      entity.PublicUser
}

// ResetRequest is the outcome of a reset request. DevToken is empty unless exposure is enabled.
type ResetRequest struct {
	Message  string
	DevToken string
	UserID   int64
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, validationError("Name, email and password are required")
	}

	_, err := s.Users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, conflictError(MsgEmailExists)
	case !errors.Is(err, repo.ErrNotFound):
		return nil, internalError("Failed to register user", err)
	}

	hash, err := s.hash(in.Password, "Failed to register user")
	if err != nil {
		return nil, err
	}

	u := &entity.User{Name: in.Name, Email: in.Email, PasswordHash: hash, Role: entity.RoleUser}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, conflictError(MsgEmailExists)
		}
		return nil, internalError("Failed to register user", err)
	}
	invalidate(ctx, s.Cache, s.Logger, usersListKey)

	return s.session(u, "Failed to register user")
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, validationError("Email and password are required")
	}

	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.Hasher.Verify(password, s.dummyHash)
			return nil, unauthenticatedError(MsgInvalidCredentials)
		}
		return nil, internalError("Failed to login", err)
	}
	if !s.Hasher.Verify(password, u.PasswordHash) {
		return nil, unauthenticatedError(MsgInvalidCredentials)
	}

	return s.session(u, "Failed to login")
}

// RequestPasswordReset answers identically whether or not the email is registered.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*ResetRequest, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, validationError("Email is required")
	}

	out := &ResetRequest{Message: MsgResetRequested}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return out, nil
		}
		return nil, internalError("Failed to process reset request", err)
	}

	token, exp, err := s.Tokens.Issue(helpers.TokenClaims{
		UserID:  u.ID,
		Email:   u.Email,
		Role:    u.Role.String(),
		Purpose: helpers.PurposePasswordReset,
	}, s.Cfg.ResetTTL)
	if err != nil {
		return nil, internalError("Failed to process reset request", err)
	}
	out.UserID = u.ID

	if s.Notifier != nil {
		if err := s.Notifier.NotifyPasswordReset(ctx, u, token, exp); err != nil {
			helpers.LogError(s.Logger, "reset notification failed", err, logrus.Fields{"user_id": u.ID})
		}
	} else {
		s.Logger.WithField("user_id", u.ID).Warn("no reset notifier configured; reset token not delivered")
	}

	if s.Cfg.ExposeResetToken {
		out.DevToken = token
	}
	return out, nil
}

// ConfirmPasswordReset sets a new password for the subject of a password_reset token.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) (int64, error) {
	if strings.TrimSpace(token) == "" || newPassword == "" {
		return 0, validationError("Token and new password are required")
	}

	claims, err := s.Tokens.Verify(token)
	if err != nil {
		return 0, unauthenticatedError(MsgInvalidToken)
	}
	if claims.Purpose != helpers.PurposePasswordReset {
		return 0, unauthenticatedError(MsgInvalidPurpose)
	}

	hash, err := s.hash(newPassword, "Failed to reset password")
	if err != nil {
		return 0, err
	}
	if err := s.Users.UpdatePassword(ctx, claims.UserID, hash); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return 0, notFoundError(MsgUserNotFound)
		}
		return 0, internalError("Failed to reset password", err)
	}
	return claims.UserID, nil
}

// VerifyToken resolves an Authorization header to the user it identifies.
func (s *AuthService) VerifyToken(ctx context.Context, authorization string) (*entity.PublicUser, error) {
	token, ok := BearerToken(authorization)
	if !ok {
		return nil, unauthenticatedError(MsgNoToken)
	}

	claims, err := s.Tokens.Verify(token)
	if err != nil || claims.Purpose != "" {
		return nil, unauthenticatedError(MsgInvalidToken)
	}

	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFoundError(MsgUserNotFound)
		}
		return nil, internalError("Failed to verify token", err)
	}
	pu := u.Public()
	return &pu, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" value.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func (s *AuthService) hash(password, failMsg string) (string, error) {
	hash, err := s.Hasher.Hash(password)
	if errors.Is(err, helpers.ErrPasswordTooLong) {
		return "", validationError(MsgPasswordTooLong)
	}
	if err != nil {
		return "", internalError(failMsg, err)
	}
	return hash, nil
}

func (s *AuthService) session(u *entity.User, failMsg string) (*AuthResult, error) {
	token, exp, err := s.Tokens.Issue(helpers.TokenClaims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role.String(),
	}, s.Cfg.SessionTTL)
	if err != nil {
		return nil, internalError(failMsg, err)
	}
	return &AuthResult{Token: token, ExpiresAt: exp, User: u.Public()}, nil
}
