package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/nimasrn/invoice-dashboard/internal/forms"
	"github.com/nimasrn/invoice-dashboard/internal/model"
	"github.com/nimasrn/invoice-dashboard/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserReadRepository struct {
	mock.Mock
}

func (m *MockUserReadRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func hashPassword(t *testing.T, plaintext string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func credentials(email, password string) forms.Values {
	return forms.Values{"email": email, "password": password}
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("correct credentials yield a session token", func(t *testing.T) {
		users := new(MockUserReadRepository)
		svc := NewAuthService(users, nil, time.Hour)

		users.On("GetByEmail", mock.Anything, "admin@example.com").Return(&model.User{
			ID:       "user-1",
			Email:    "admin@example.com",
			Password: hashPassword(t, "secret123"),
		}, nil)

		token, err := svc.Authenticate(ctx, credentials("admin@example.com", "secret123"))
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password is a credential mismatch", func(t *testing.T) {
		users := new(MockUserReadRepository)
		svc := NewAuthService(users, nil, time.Hour)

		users.On("GetByEmail", mock.Anything, "admin@example.com").Return(&model.User{
			ID:       "user-1",
			Email:    "admin@example.com",
			Password: hashPassword(t, "secret123"),
		}, nil)

		_, err := svc.Authenticate(ctx, credentials("admin@example.com", "wrong"))
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email is indistinguishable from a wrong password", func(t *testing.T) {
		users := new(MockUserReadRepository)
		svc := NewAuthService(users, nil, time.Hour)

		users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

		_, err := svc.Authenticate(ctx, credentials("nobody@example.com", "whatever"))
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("empty credentials never hit the store", func(t *testing.T) {
		users := new(MockUserReadRepository)
		svc := NewAuthService(users, nil, time.Hour)

		_, err := svc.Authenticate(ctx, credentials("", ""))
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		users.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("store faults propagate unclassified", func(t *testing.T) {
		users := new(MockUserReadRepository)
		svc := NewAuthService(users, nil, time.Hour)

		storeErr := errors.New("connection refused")
		users.On("GetByEmail", mock.Anything, "admin@example.com").Return(nil, storeErr)

		_, err := svc.Authenticate(ctx, credentials("admin@example.com", "secret123"))
		assert.ErrorIs(t, err, storeErr)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func setupSessions(t *testing.T) (*miniredis.Miniredis, redis.RedisAdapter) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	adapter, err := redis.NewRedisAdapter(t.Name(), "", &goredis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)
	return mr, adapter
}

func knownUser(t *testing.T) *MockUserReadRepository {
	t.Helper()
	users := new(MockUserReadRepository)
	users.On("GetByEmail", mock.Anything, "admin@example.com").Return(&model.User{
		ID:       "user-1",
		Email:    "admin@example.com",
		Password: hashPassword(t, "secret123"),
	}, nil)
	return users
}

func TestAuthService_Sessions(t *testing.T) {
	ctx := context.Background()

	t.Run("a token resolves to the user it was issued for", func(t *testing.T) {
		_, sessions := setupSessions(t)
		svc := NewAuthService(knownUser(t), sessions, time.Hour)

		token, err := svc.Authenticate(ctx, credentials("admin@example.com", "secret123"))
		require.NoError(t, err)

		userID, err := svc.Session(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", userID)
	})

	t.Run("every login issues a distinct token", func(t *testing.T) {
		_, sessions := setupSessions(t)
		svc := NewAuthService(knownUser(t), sessions, time.Hour)

		first, err := svc.Authenticate(ctx, credentials("admin@example.com", "secret123"))
		require.NoError(t, err)
		second, err := svc.Authenticate(ctx, credentials("admin@example.com", "secret123"))
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("a lookup slides the expiry forward", func(t *testing.T) {
		mr, sessions := setupSessions(t)
		svc := NewAuthService(knownUser(t), sessions, time.Hour)

		token, err := svc.Authenticate(ctx, credentials("admin@example.com", "secret123"))
		require.NoError(t, err)

		// 50m + 50m outlives the 1h TTL only because the lookup in
		// between refreshed it
		mr.FastForward(50 * time.Minute)
		userID, err := svc.Session(token)
		require.NoError(t, err)
		require.Equal(t, "user-1", userID)

		mr.FastForward(50 * time.Minute)
		userID, err = svc.Session(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", userID)
	})

	t.Run("an untouched session expires", func(t *testing.T) {
		mr, sessions := setupSessions(t)
		svc := NewAuthService(knownUser(t), sessions, time.Hour)

		token, err := svc.Authenticate(ctx, credentials("admin@example.com", "secret123"))
		require.NoError(t, err)

		mr.FastForward(2 * time.Hour)
		userID, err := svc.Session(token)
		require.NoError(t, err)
		assert.Empty(t, userID)
	})
}
