package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/todolistapp/todolist-server/internal/domain"
)

// ItemQuery describes a filtered, ordered, paginated item listing.
// Zero-valued filters are ignored. Tags require every listed tag ID to
// be attached to a matching item.
type ItemQuery struct {
	SearchText string
	Location   string
	Status     *domain.ItemStatus
	StartDate  *time.Time
	EndDate    *time.Time
	DueDate    *time.Time
	Tags       []string
	OrderBy    string // "dueDate", "title", "lastUpdate" or empty
	Descending bool
	Skip       int
	Take       int
}

// CreateItem inserts an item and its tag associations in one transaction.
func (s *Store) CreateItem(ctx context.Context, item *domain.Item, tagIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO items (id, user_id, title, status, description, location, due_date, last_update_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.UserID,
		item.Title,
		string(item.Status),
		nullableString(item.Description),
		nullableString(item.Location),
		nullTimeString(item.DueDate),
		formatTime(item.LastUpdateDate),
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}

	if err := insertItemTags(ctx, tx, item.ID, tagIDs, item.LastUpdateDate); err != nil {
		return err
	}

	return tx.Commit()
}

// GetItem fetches an item by ID, scoped to the owning user.
func (s *Store) GetItem(ctx context.Context, userID, id string) (*domain.Item, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, status, description, location, due_date, last_update_date
		FROM items WHERE id = ? AND user_id = ?`, id, userID)
	return scanItem(row.Scan)
}

// UpdateItem rewrites an item and replaces its tag associations in one
// transaction. The write is scoped to the owning user.
func (s *Store) UpdateItem(ctx context.Context, item *domain.Item, tagIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE items
		SET title = ?, status = ?, description = ?, location = ?, due_date = ?, last_update_date = ?
		WHERE id = ? AND user_id = ?`,
		item.Title,
		string(item.Status),
		nullableString(item.Description),
		nullableString(item.Location),
		nullTimeString(item.DueDate),
		formatTime(item.LastUpdateDate),
		item.ID,
		item.UserID,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	// Replace the tag set wholesale rather than diffing it.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM item_tags WHERE item_id = ?`, item.ID); err != nil {
		return fmt.Errorf("delete item associations: %w", err)
	}
	if err := insertItemTags(ctx, tx, item.ID, tagIDs, item.LastUpdateDate); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteItem removes an item and its tag associations in one transaction.
func (s *Store) DeleteItem(ctx context.Context, userID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Join rows go first; the items row is referenced by item_tags.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM item_tags WHERE item_id = ?`, id); err != nil {
		return fmt.Errorf("delete item associations: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM items WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
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

// GetItemTagIDs returns the tag IDs attached to one item.
func (s *Store) GetItemTagIDs(ctx context.Context, itemID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tag_id FROM item_tags WHERE item_id = ? ORDER BY rowid`, itemID)
	if err != nil {
		return nil, fmt.Errorf("query item tags: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan tag id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetTagIDsForItems returns the tag IDs attached to each of the given
// items, keyed by item ID. Items without tags are absent from the map.
func (s *Store) GetTagIDsForItems(ctx context.Context, itemIDs []string) (map[string][]string, error) {
	result := make(map[string][]string)
	if len(itemIDs) == 0 {
		return result, nil
	}

	placeholders := strings.Repeat("?,", len(itemIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(itemIDs))
	for i, id := range itemIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT item_id, tag_id FROM item_tags WHERE item_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("query item tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var itemID, tagID string
		if err := rows.Scan(&itemID, &tagID); err != nil {
			return nil, fmt.Errorf("scan item tag: %w", err)
		}
		result[itemID] = append(result[itemID], tagID)
	}
	return result, rows.Err()
}

// QueryItems returns the total number of items matching the query and
// the page selected by Skip and Take. The total is computed before
// pagination so clients can page through the full result set.
func (s *Store) QueryItems(ctx context.Context, userID string, query ItemQuery) (int, []*domain.Item, error) {
	where, args := buildItemFilters(userID, query)

	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE `+where, args...).Scan(&total)
	if err != nil {
		return 0, nil, fmt.Errorf("count items: %w", err)
	}

	pageArgs := append(append([]any{}, args...), query.Take, query.Skip)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, title, status, description, location, due_date, last_update_date
		FROM items WHERE `+where+`
		ORDER BY `+itemOrderClause(query)+`
		LIMIT ? OFFSET ?`,
		pageArgs...)
	if err != nil {
		return 0, nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return 0, nil, err
		}
		items = append(items, item)
	}
	return total, items, rows.Err()
}

// buildItemFilters assembles the WHERE clause shared by the count and
// page queries. Text filters use instr for substring matching, which
// keeps comparisons case sensitive regardless of LIKE collation.
func buildItemFilters(userID string, query ItemQuery) (string, []any) {
	conditions := []string{"user_id = ?"}
	args := []any{userID}

	if query.SearchText != "" {
		conditions = append(conditions,
			"(instr(title, ?) > 0 OR instr(COALESCE(description, ''), ?) > 0)")
		args = append(args, query.SearchText, query.SearchText)
	}
	if query.Location != "" {
		conditions = append(conditions, "instr(COALESCE(location, ''), ?) > 0")
		args = append(args, query.Location)
	}
	if query.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, string(*query.Status))
	}
	if query.StartDate != nil {
		conditions = append(conditions, "last_update_date >= ?")
		args = append(args, formatTime(*query.StartDate))
	}
	if query.EndDate != nil {
		conditions = append(conditions, "last_update_date <= ?")
		args = append(args, formatTime(*query.EndDate))
	}
	if query.DueDate != nil {
		conditions = append(conditions, "due_date = ?")
		args = append(args, formatTime(*query.DueDate))
	}
	for _, tagID := range query.Tags {
		conditions = append(conditions,
			"EXISTS (SELECT 1 FROM item_tags WHERE item_tags.item_id = items.id AND item_tags.tag_id = ?)")
		args = append(args, tagID)
	}

	return strings.Join(conditions, " AND "), args
}

// itemOrderClause maps the query's sort field to an ORDER BY clause.
// Unordered queries fall back to most recently updated first, which is
// also the tiebreak for every explicit sort.
func itemOrderClause(query ItemQuery) string {
	direction := "ASC"
	if query.Descending {
		direction = "DESC"
	}

	var column string
	switch query.OrderBy {
	case "dueDate":
		column = "due_date"
	case "title":
		column = "title"
	case "lastUpdate":
		column = "last_update_date"
	default:
		return "last_update_date DESC"
	}

	if column == "last_update_date" {
		return column + " " + direction
	}
	return column + " " + direction + ", last_update_date DESC"
}

func insertItemTags(ctx context.Context, tx *sql.Tx, itemID string, tagIDs []string, at time.Time) error {
	for _, tagID := range tagIDs {
		link := domain.ItemTag{ItemID: itemID, TagID: tagID, CreateDate: at}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO item_tags (item_id, tag_id, create_date)
			VALUES (?, ?, ?)`,
			link.ItemID, link.TagID, formatTime(link.CreateDate)); err != nil {
			return fmt.Errorf("insert item tag: %w", err)
		}
	}
	return nil
}

func scanItem(scan func(dest ...any) error) (*domain.Item, error) {
	var (
		item        domain.Item
		status      string
		description sql.NullString
		location    sql.NullString
		dueDate     sql.NullString
		updated     string
	)
	err := scan(&item.ID, &item.UserID, &item.Title, &status,
		&description, &location, &dueDate, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan item: %w", err)
	}

	item.Status = domain.ItemStatus(status)
	item.Description = stringPtr(description)
	item.Location = stringPtr(location)
	if item.DueDate, err = parseNullableTime(dueDate); err != nil {
		return nil, fmt.Errorf("parse due date: %w", err)
	}
	if item.LastUpdateDate, err = parseTime(updated); err != nil {
		return nil, fmt.Errorf("parse last update date: %w", err)
	}
	return &item, nil
}
