package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/testdb"
)

func createTestUser(t *testing.T, users UserRepository) *model.User {
	t.Helper()

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Login:        "alice",
		Email:        "a@x.com",
		PasswordHash: "hash",
		Status:       model.UserStatusWaitingVerification,
		APIToken:     uuid.New().String(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, users.Create(user))
	return user
}

func createTestToken(t *testing.T, tokens TokenRepository, userID string, expiresAt time.Time) *model.EmailVerificationToken {
	t.Helper()

	token := &model.EmailVerificationToken{
		ID:        uuid.New().String(),
		UserID:    userID,
		TokenHash: uuid.New().String(),
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	require.NoError(t, tokens.Create(token))
	return token
}

func TestTokenRepository_MarkUsed(t *testing.T) {
	conn := testdb.New(t)
	users := NewUserRepository(conn)
	tokens := NewTokenRepository(conn)

	user := createTestUser(t, users)
	token := createTestToken(t, tokens, user.ID, time.Now().Add(time.Hour))

	// First consumer wins.
	marked, err := tokens.MarkUsed(token.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, marked)

	// Every later attempt observes false.
	marked, err = tokens.MarkUsed(token.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, marked)

	stored, err := tokens.ByHash(token.TokenHash)
	require.NoError(t, err)
	assert.NotNil(t, stored.UsedAt)
}

func TestTokenRepository_MarkUsed_UnknownID(t *testing.T) {
	conn := testdb.New(t)
	tokens := NewTokenRepository(conn)

	marked, err := tokens.MarkUsed(uuid.New().String(), time.Now())
	require.NoError(t, err)
	assert.False(t, marked)
}

func TestTokenRepository_ByHash_NotFound(t *testing.T) {
	conn := testdb.New(t)
	tokens := NewTokenRepository(conn)

	_, err := tokens.ByHash("missing")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestTokenRepository_DeleteExpiredOrUsed(t *testing.T) {
	conn := testdb.New(t)
	users := NewUserRepository(conn)
	tokens := NewTokenRepository(conn)

	user := createTestUser(t, users)
	now := time.Now()

	live := createTestToken(t, tokens, user.ID, now.Add(time.Hour))
	expired := createTestToken(t, tokens, user.ID, now.Add(-time.Hour))
	used := createTestToken(t, tokens, user.ID, now.Add(time.Hour))
	_, err := tokens.MarkUsed(used.ID, now)
	require.NoError(t, err)

	count, err := tokens.DeleteExpiredOrUsed(now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	remaining, err := tokens.ByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, live.ID, remaining[0].ID)

	_, err = tokens.ByHash(expired.TokenHash)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestTokenRepository_DeleteExpiredOrUsed_ExactExpiryKept(t *testing.T) {
	conn := testdb.New(t)
	users := NewUserRepository(conn)
	tokens := NewTokenRepository(conn)

	user := createTestUser(t, users)
	now := time.Now()

	// Expiry is exclusive: a token expiring exactly now is still live.
	boundary := createTestToken(t, tokens, user.ID, now)

	count, err := tokens.DeleteExpiredOrUsed(now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	remaining, err := tokens.ByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, boundary.ID, remaining[0].ID)
}
