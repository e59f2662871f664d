package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/todolistapp/todolist-server/internal/domain"
)

// CreateTag inserts a new tag for a user.
func (s *Store) CreateTag(ctx context.Context, tag *domain.Tag) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (id, user_id, label, last_update_date)
		VALUES (?, ?, ?, ?)`,
		tag.ID, tag.UserID, tag.Label, formatTime(tag.LastUpdateDate))
	if err != nil {
		return fmt.Errorf("insert tag: %w", err)
	}
	return nil
}

// GetTag fetches a tag by ID, scoped to the owning user.
func (s *Store) GetTag(ctx context.Context, userID, id string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, label, last_update_date
		FROM tags WHERE id = ? AND user_id = ?`, id, userID)
	return scanTag(row)
}

// ListTags returns all tags that belong to a user, most recently
// updated first.
func (s *Store) ListTags(ctx context.Context, userID string) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, label, last_update_date
		FROM tags WHERE user_id = ?
		ORDER BY last_update_date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	tags := make([]*domain.Tag, 0)
	for rows.Next() {
		var (
			tag     domain.Tag
			updated string
		)
		if err := rows.Scan(&tag.ID, &tag.UserID, &tag.Label, &updated); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		if tag.LastUpdateDate, err = parseTime(updated); err != nil {
			return nil, fmt.Errorf("parse last update date: %w", err)
		}
		tags = append(tags, &tag)
	}
	return tags, rows.Err()
}

// UpdateTag updates a tag's label and last update date. The write is
// scoped to the owning user; updating another user's tag reports
// ErrNotFound.
func (s *Store) UpdateTag(ctx context.Context, tag *domain.Tag) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tags SET label = ?, last_update_date = ?
		WHERE id = ? AND user_id = ?`,
		tag.Label, formatTime(tag.LastUpdateDate), tag.ID, tag.UserID)
	if err != nil {
		return fmt.Errorf("update tag: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTag removes a tag and its item associations in one transaction.
func (s *Store) DeleteTag(ctx context.Context, userID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Join rows go first; the tags row is referenced by item_tags.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM item_tags WHERE tag_id = ?`, id); err != nil {
		return fmt.Errorf("delete tag associations: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM tags WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// CountTagsByLabel counts a user's tags whose trimmed label equals the
// given label, excluding the tag with excludeID. Label uniqueness is
// enforced at the service layer rather than by a schema constraint so
// the comparison can ignore surrounding whitespace.
func (s *Store) CountTagsByLabel(ctx context.Context, userID, label, excludeID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM tags
		WHERE user_id = ? AND TRIM(label) = ? AND id != ?`,
		userID, label, excludeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count tags by label: %w", err)
	}
	return count, nil
}

func scanTag(row *sql.Row) (*domain.Tag, error) {
	var (
		tag     domain.Tag
		updated string
	)
	err := row.Scan(&tag.ID, &tag.UserID, &tag.Label, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan tag: %w", err)
	}
	if tag.LastUpdateDate, err = parseTime(updated); err != nil {
		return nil, fmt.Errorf("parse last update date: %w", err)
	}
	return &tag, nil
}
