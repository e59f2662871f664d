package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todolistapp/todolist-server/internal/domain"
	"github.com/todolistapp/todolist-server/internal/id"
)

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "alice")

	byID, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
	assert.Equal(t, "digest", byID.PasswordHash)
	assert.Nil(t, byID.LastLoginDate)

	byName, err := s.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	s := newTestStore(t)

	createTestUser(t, s, "alice")

	dup := &domain.User{
		ID:           id.MustGenerate("user"),
		Username:     "alice",
		PasswordHash: "digest",
		CreateDate:   time.Now(),
	}
	err := s.CreateUser(context.Background(), dup)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestGetUser_NotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetUserByID(ctx, "user_missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUserLastLogin(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "alice")
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.UpdateUserLastLogin(ctx, user.ID, at))

	loaded, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.LastLoginDate)
	assert.True(t, loaded.LastLoginDate.Equal(at))

	err = s.UpdateUserLastLogin(ctx, "user_missing", at)
	assert.ErrorIs(t, err, ErrNotFound)
}
