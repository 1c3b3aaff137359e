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

// CreateTask inserts a new task under t.ProjectID. The caller is
// responsible for checking that the project is transitively owned by the
// acting user. Generates a UUID if ID is empty. CompletedAt is derived
// from Completed, never taken from the input.
func (s *SQLiteStore) CreateTask(ctx context.Context, t *model.Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task title must not be empty")
	}
	if strings.TrimSpace(t.ProjectID) == "" {
		return fmt.Errorf("task project must not be empty")
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	if t.Completed {
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (
			id, title, description, created_at, due_date,
			completed, completed_at, priority, project_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, t.CreatedAt, t.DueDate,
		boolToInt(t.Completed), t.CompletedAt, t.Priority, t.ProjectID,
	)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}
	return nil
}

// UpdateTask updates an existing task scoped to userID. Only the editable
// fields (title, description, due_date, priority, completed, project_id)
// are written; id and created_at are preserved. CompletedAt is managed
// from the completion transition: set to the current time when completed
// flips on, cleared when completed is false, and left untouched when the
// task was already complete; whatever CompletedAt the input carried is
// ignored. The read-check-write sequence runs in a single transaction.
// Returns ErrNotFound if the task is absent or owned by another user.
func (s *SQLiteStore) UpdateTask(ctx context.Context, userID string, t *model.Task) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := scanTaskRow(tx.QueryRowxContext(ctx,
		taskColumns+taskScopeJoin+" WHERE t.id = ? AND c.user_id = ?",
		t.ID, userID))
	if err != nil {
		return err
	}

	existing.Title = t.Title
	existing.Description = t.Description
	existing.DueDate = t.DueDate
	existing.Priority = t.Priority
	existing.ProjectID = t.ProjectID

	now := time.Now().UTC()
	if t.Completed && existing.CompletedAt == nil {
		existing.CompletedAt = &now
	} else if !t.Completed {
		existing.CompletedAt = nil
	}
	existing.Completed = t.Completed

	_, err = tx.ExecContext(ctx, `
		UPDATE tasks SET title = ?, description = ?, due_date = ?,
			completed = ?, completed_at = ?, priority = ?, project_id = ?
		WHERE id = ?`,
		existing.Title, existing.Description, existing.DueDate,
		boolToInt(existing.Completed), existing.CompletedAt,
		existing.Priority, existing.ProjectID,
		existing.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task %s: %w", t.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing task update: %w", err)
	}

	*t = *existing
	return nil
}

// DeleteTask removes a task scoped to userID. Deleting a missing or
// foreign-owned task is a no-op.
func (s *SQLiteStore) DeleteTask(ctx context.Context, userID, id string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM tasks WHERE id = ? AND EXISTS (
			SELECT 1 FROM projects p
			JOIN clients c ON c.id = p.client_id
			WHERE p.id = tasks.project_id AND c.user_id = ?
		)`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	return nil
}

// GetTaskByID retrieves a single task scoped to userID. Returns
// ErrNotFound if the task is absent or owned by another user.
func (s *SQLiteStore) GetTaskByID(ctx context.Context, userID, id string) (*model.Task, error) {
	t, err := scanTaskRow(s.db.QueryRowxContext(ctx,
		taskColumns+taskScopeJoin+" WHERE t.id = ? AND c.user_id = ?",
		id, userID))
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetTasks retrieves tasks transitively owned by userID, matching the
// filter. Results are ordered incomplete-first, then by priority
// descending, then by due date ascending.
func (s *SQLiteStore) GetTasks(ctx context.Context, userID string, filter TaskFilter) ([]model.Task, error) {
	builder := sq.
		Select("t.id", "t.title", "t.description", "t.created_at",
			"t.due_date", "t.completed", "t.completed_at", "t.priority",
			"t.project_id").
		From("tasks t").
		Join("projects p ON p.id = t.project_id").
		Join("clients c ON c.id = p.client_id").
		Where(sq.Eq{"c.user_id": userID}).
		OrderBy("t.completed ASC", "t.priority DESC", "t.due_date ASC")

	if filter.ProjectID != nil {
		builder = builder.Where(sq.Eq{"t.project_id": *filter.ProjectID})
	}
	if filter.Completed != nil {
		builder = builder.Where(sq.Eq{"t.completed": boolToInt(*filter.Completed)})
	}
	if filter.Priority != nil {
		builder = builder.Where(sq.Eq{"t.priority": *filter.Priority})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building task query: %w", err)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// ToggleTaskComplete flips the completion state of a task scoped to
// userID, setting or clearing completed_at symmetrically. The
// read-check-write sequence runs in a single transaction. Returns the
// updated task, or ErrNotFound if the task is absent or owned by another
// user.
func (s *SQLiteStore) ToggleTaskComplete(ctx context.Context, userID, id string) (*model.Task, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	t, err := scanTaskRow(tx.QueryRowxContext(ctx,
		taskColumns+taskScopeJoin+" WHERE t.id = ? AND c.user_id = ?",
		id, userID))
	if err != nil {
		return nil, err
	}

	t.Completed = !t.Completed
	if t.Completed {
		now := time.Now().UTC()
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE tasks SET completed = ?, completed_at = ? WHERE id = ?",
		boolToInt(t.Completed), t.CompletedAt, t.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("toggling task %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing task toggle: %w", err)
	}

	return t, nil
}

// OwnsTask reports whether the task exists and is transitively owned by
// userID. A missing task and a foreign-owned task both resolve to false.
func (s *SQLiteStore) OwnsTask(ctx context.Context, userID, id string) (bool, error) {
	var exists int
	err := s.db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM tasks t
			JOIN projects p ON p.id = t.project_id
			JOIN clients c ON c.id = p.client_id
			WHERE t.id = ? AND c.user_id = ?
		)`, id, userID)
	if err != nil {
		return false, fmt.Errorf("resolving task ownership: %w", err)
	}
	return exists != 0, nil
}

const (
	taskColumns = `SELECT t.id, t.title, t.description, t.created_at,
		t.due_date, t.completed, t.completed_at, t.priority, t.project_id`
	taskScopeJoin = ` FROM tasks t
		JOIN projects p ON p.id = t.project_id
		JOIN clients c ON c.id = p.client_id`
)

// scanTaskRow scans a task row, mapping sql.ErrNoRows to ErrNotFound.
func scanTaskRow(row interface{ Scan(dest ...interface{}) error }) (*model.Task, error) {
	var (
		t            model.Task
		completedInt int
	)
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.CreatedAt,
		&t.DueDate, &completedInt, &t.CompletedAt, &t.Priority,
		&t.ProjectID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning task row: %w", err)
	}
	t.Completed = completedInt != 0
	return &t, nil
}
