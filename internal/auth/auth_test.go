package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wordday/internal/database"
	"github.com/example/wordday/pkg/models"
)

func newService(t *testing.T) (*Service, *database.UserRepository) {
	t.Helper()
	db, err := database.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := database.NewUserRepository(db)
	service, err := New(users, "test-secret", time.Hour)
	require.NoError(t, err)
	return service, users
}

func createUser(t *testing.T, users *database.UserRepository, username, password string) *models.User {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	user := &models.User{Username: username, PasswordHash: hash, ReminderHour: -1}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := New(nil, "", time.Hour)
	assert.Error(t, err)
}

func TestVerifyPassword(t *testing.T) {
	service, users := newService(t)
	ctx := context.Background()
	user := createUser(t, users, "alice", "correct horse")

	t.Run("valid credentials", func(t *testing.T) {
		id, err := service.VerifyPassword(ctx, "alice", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, user.ID, id)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.VerifyPassword(ctx, "alice", "battery staple")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := service.VerifyPassword(ctx, "mallory", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestTokenRoundTrip(t *testing.T) {
	service, _ := newService(t)

	token, err := service.CreateToken(42)
	require.NoError(t, err)

	session, err := service.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), session.UserID)
	assert.NotEmpty(t, session.SessionID)
}

func TestParseTokenRejectsTampering(t *testing.T) {
	service, _ := newService(t)

	token, err := service.CreateToken(42)
	require.NoError(t, err)

	_, err = service.ParseToken(token + "x")
	assert.Error(t, err)

	_, err = service.ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	service, users := newService(t)
	other, err := New(users, "different-secret", time.Hour)
	require.NoError(t, err)

	token, err := other.CreateToken(7)
	require.NoError(t, err)

	_, err = service.ParseToken(token)
	assert.Error(t, err)
}
