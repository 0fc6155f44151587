package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nimasrn/invoice-dashboard/internal/forms"
	"github.com/nimasrn/invoice-dashboard/internal/model"
	"github.com/nimasrn/invoice-dashboard/pkg/logger"
	"github.com/nimasrn/invoice-dashboard/pkg/redis"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is the one classifiable authentication failure:
// unknown email or password mismatch. Callers convert it to the
// "CredentialSignin" sentinel for inline display; every other error from
// this service is fatal and propagates to the page-level error boundary.
var ErrInvalidCredentials = errors.New("invalid credentials")

type UserReadRepository interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type AuthService struct {
	users      UserReadRepository
	sessions   redis.RedisAdapter
	sessionTTL time.Duration
}

func NewAuthService(users UserReadRepository, sessions redis.RedisAdapter, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// Authenticate verifies the submitted credentials against the stored
// bcrypt hash and, on success, establishes a session and returns its
// token. Unknown emails and hash mismatches are indistinguishable to the
// caller.
func (s *AuthService) Authenticate(ctx context.Context, creds forms.Values) (string, error) {
	email := creds.Get("email")
	password := creds.Get("password")
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		logger.Error("user lookup failed", "error", err)
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	if s.sessions != nil {
		// SetNX so a token is never silently rebound to another user
		ok, err := s.sessions.SetNX("session:"+token, []byte(user.ID), s.sessionTTL)
		if err != nil {
			logger.Error("session store failed", "error", err)
			return "", err
		}
		if !ok {
			logger.Error("session token already bound", "token", token)
			return "", errors.New("session token collision")
		}
	}
	return token, nil
}

// Session resolves a session token to the user id it was issued for, or
// "" when the token is unknown or expired. A hit slides the session's
// expiry forward by the full TTL.
func (s *AuthService) Session(token string) (string, error) {
	if s.sessions == nil || token == "" {
		return "", nil
	}
	userID, err := s.sessions.Get("session:" + token)
	if err != nil {
		if errors.Is(err, redis.NilError) {
			return "", nil
		}
		return "", err
	}
	if err := s.sessions.Expire("session:"+token, s.sessionTTL); err != nil {
		logger.Warn("session refresh failed", "error", err, "token", token)
	}
	return string(userID), nil
}
