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

// CreateUser inserts a new user account.
// Returns ErrAlreadyExists when the username is already taken.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, create_date, last_login_date)
		VALUES (?, ?, ?, ?, ?)`,
		user.ID,
		user.Username,
		user.PasswordHash,
		formatTime(user.CreateDate),
		nullTimeString(user.LastLoginDate),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUserByID fetches a user by its ID.
func (s *Store) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, create_date, last_login_date
		FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByUsername fetches a user by its unique username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, create_date, last_login_date
		FROM users WHERE username = ?`, username)
	return scanUser(row)
}

// UpdateUserLastLogin records the time of a successful login.
func (s *Store) UpdateUserLastLogin(ctx context.Context, userID string, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET last_login_date = ? WHERE id = ?`,
		formatTime(at), userID)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
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

func scanUser(row *sql.Row) (*domain.User, error) {
	var (
		user      domain.User
		created   string
		lastLogin sql.NullString
	)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &created, &lastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if user.CreateDate, err = parseTime(created); err != nil {
		return nil, fmt.Errorf("parse create date: %w", err)
	}
	if user.LastLoginDate, err = parseNullableTime(lastLogin); err != nil {
		return nil, fmt.Errorf("parse last login date: %w", err)
	}
	return &user, nil
}

// isUniqueViolation reports whether err is a sqlite unique constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
