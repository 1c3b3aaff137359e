package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/nhle/crm/internal/model"
)

// CreateClient inserts a new client owned by c.UserID.
// Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateClient(ctx context.Context, c *model.Client) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("client name must not be empty")
	}
	if strings.TrimSpace(c.UserID) == "" {
		return fmt.Errorf("client owner must not be empty")
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO clients (id, name, email, phone, address, created_at, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.Phone, c.Address, c.CreatedAt, c.UserID,
	)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}
	return nil
}

// UpdateClient updates an existing client scoped to userID. Only the
// editable fields (name, email, phone, address) are written; id, owner,
// and created_at are preserved from the stored record. The read-check-write
// sequence runs in a single transaction. Returns ErrNotFound if the client
// is absent or owned by another user.
func (s *SQLiteStore) UpdateClient(ctx context.Context, userID string, c *model.Client) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := scanClientRow(tx.QueryRowxContext(ctx,
		clientColumns+" FROM clients WHERE id = ? AND user_id = ?", c.ID, userID))
	if err != nil {
		return err
	}

	existing.Name = c.Name
	existing.Email = c.Email
	existing.Phone = c.Phone
	existing.Address = c.Address

	_, err = tx.ExecContext(ctx, `
		UPDATE clients SET name = ?, email = ?, phone = ?, address = ?
		WHERE id = ? AND user_id = ?`,
		existing.Name, existing.Email, existing.Phone, existing.Address,
		existing.ID, userID,
	)
	if err != nil {
		return fmt.Errorf("updating client %s: %w", c.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing client update: %w", err)
	}

	*c = *existing
	return nil
}

// DeleteClient removes a client scoped to userID, cascading to its projects
// and their tasks. Deleting a missing or foreign-owned client is a no-op.
func (s *SQLiteStore) DeleteClient(ctx context.Context, userID, id string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM clients WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("deleting client %s: %w", id, err)
	}
	return nil
}

// GetClientByID retrieves a single client scoped to userID, with its
// projects (and their tasks) loaded. Returns ErrNotFound if the client is
// absent or owned by another user.
func (s *SQLiteStore) GetClientByID(ctx context.Context, userID, id string) (*model.Client, error) {
	c, err := scanClientRow(s.db.QueryRowxContext(ctx,
		clientColumns+" FROM clients WHERE id = ? AND user_id = ?", id, userID))
	if err != nil {
		return nil, err
	}

	projects, err := s.getProjectsForClient(ctx, userID, c.ID)
	if err != nil {
		return nil, fmt.Errorf("loading projects for client %s: %w", id, err)
	}
	c.Projects = projects
	c.ProjectCount = len(projects)

	return c, nil
}

// GetClients retrieves all clients owned by userID, newest first, with
// project counts populated.
func (s *SQLiteStore) GetClients(ctx context.Context, userID string) ([]model.Client, error) {
	query, args, err := sq.
		Select("c.id", "c.name", "c.email", "c.phone", "c.address",
			"c.created_at", "c.user_id", "COUNT(p.id)").
		From("clients c").
		LeftJoin("projects p ON p.client_id = c.id").
		Where(sq.Eq{"c.user_id": userID}).
		GroupBy("c.id").
		OrderBy("c.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building client query: %w", err)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying clients: %w", err)
	}
	defer rows.Close()

	var clients []model.Client
	for rows.Next() {
		var c model.Client
		err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address,
			&c.CreatedAt, &c.UserID, &c.ProjectCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning client row: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// OwnsClient reports whether the client exists and is owned by userID.
// A missing client and a foreign-owned client both resolve to false.
func (s *SQLiteStore) OwnsClient(ctx context.Context, userID, id string) (bool, error) {
	var exists int
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM clients WHERE id = ? AND user_id = ?)",
		id, userID)
	if err != nil {
		return false, fmt.Errorf("resolving client ownership: %w", err)
	}
	return exists != 0, nil
}

const clientColumns = "SELECT id, name, email, phone, address, created_at, user_id"

// scanClientRow scans a single client row, mapping sql.ErrNoRows to
// ErrNotFound.
func scanClientRow(row interface{ Scan(dest ...interface{}) error }) (*model.Client, error) {
	var c model.Client
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address,
		&c.CreatedAt, &c.UserID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning client row: %w", err)
	}
	return &c, nil
}
