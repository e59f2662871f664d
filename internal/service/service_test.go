package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/todolistapp/todolist-server/internal/auth"
	domainerrors "github.com/todolistapp/todolist-server/internal/errors"
	"github.com/todolistapp/todolist-server/internal/store"
	"github.com/todolistapp/todolist-server/internal/validation"
)

const (
	testSalt   = "pepper"
	testKeyHex = "707172737475767778797a7b7c7d7e7f808182838485868788898a8b8c8d8e8f"
)

type testServices struct {
	store *store.Store
	auth  *AuthService
	tags  *TagService
	items *ItemService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	logger := slog.Default()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	tokens, err := auth.NewTokenService(testKeyHex, "todolist-test")
	require.NoError(t, err)

	return &testServices{
		store: s,
		auth:  NewAuthService(s, tokens, testSalt, logger),
		tags:  NewTagService(s, logger),
		items: NewItemService(s, logger),
	}
}

// registerUser registers a user and returns its ID.
func registerUser(t *testing.T, svc *testServices, username string) string {
	t.Helper()

	userID, err := svc.auth.Register(context.Background(), RegisterRequest{
		Username: username,
		Password: "secret1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, userID)
	return userID
}

// fieldMessages unpacks a validation error into its message strings.
func fieldMessages(t *testing.T, err error) []string {
	t.Helper()

	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	require.Equal(t, domainerrors.CodeValidation, derr.Code)

	details, ok := derr.Details.(validation.FieldErrors)
	require.True(t, ok, "details should be field errors, got %T", derr.Details)

	messages := make([]string, len(details))
	for i, fe := range details {
		messages[i] = fe.Message
	}
	return messages
}
