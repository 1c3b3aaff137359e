package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/crm/internal/model"
)

// CreateUser inserts a new user. Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateUser(ctx context.Context, u *model.User) error {
	if strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("user email must not be empty")
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, display_name, created_at)
		VALUES (?, ?, ?, ?)`,
		u.ID, u.Email, u.DisplayName, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a single user by ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := s.db.QueryRowxContext(ctx,
		"SELECT id, email, display_name, created_at FROM users WHERE id = ?", id,
	).Scan(&u.ID, &u.Email, &u.DisplayName, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", id, err)
	}
	return &u, nil
}

// DeleteUser removes a user by ID, cascading to all of the user's clients,
// projects, and tasks. Deleting a missing user is a no-op.
func (s *SQLiteStore) DeleteUser(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting user %s: %w", id, err)
	}
	return nil
}
