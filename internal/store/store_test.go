package store

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/todolistapp/todolist-server/internal/domain"
	"github.com/todolistapp/todolist-server/internal/id"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "test.db"), slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestUser(t *testing.T, s *Store, username string) *domain.User {
	t.Helper()

	user := &domain.User{
		ID:           id.MustGenerate("user"),
		Username:     username,
		PasswordHash: "digest",
		CreateDate:   time.Now(),
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func TestOpen_EnforcesForeignKeys(t *testing.T) {
	s := newTestStore(t)

	// foreign_keys is per-connection; the DSN pragma must reach the
	// connection serving this insert.
	_, err := s.db.ExecContext(context.Background(),
		`INSERT INTO item_tags (item_id, tag_id, create_date) VALUES (?, ?, ?)`,
		"item-missing", "tag-missing", formatTime(time.Now()))
	require.ErrorContains(t, err, "FOREIGN KEY")
}

func TestTimeRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.UTC)

	parsed, err := parseTime(formatTime(now))
	require.NoError(t, err)
	require.True(t, parsed.Equal(now))
}

func TestTimeFormatOrdering(t *testing.T) {
	// Stored strings must sort the same way the times do, including
	// across fractional-second boundaries.
	earlier := time.Date(2026, 3, 14, 9, 26, 53, 500000000, time.UTC)
	later := time.Date(2026, 3, 14, 9, 26, 53, 500000001, time.UTC)

	require.Less(t, formatTime(earlier), formatTime(later))
}
