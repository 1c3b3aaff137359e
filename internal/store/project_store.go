package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/nhle/crm/internal/model"
)

// CreateProject inserts a new project under p.ClientID. The caller is
// responsible for checking that the client is owned by the acting user.
// Generates a UUID if ID is empty; defaults status to not_started.
func (s *SQLiteStore) CreateProject(ctx context.Context, p *model.Project) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("project name must not be empty")
	}
	if strings.TrimSpace(p.ClientID) == "" {
		return fmt.Errorf("project client must not be empty")
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = model.ProjectStatusNotStarted
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, description, start_date, end_date, status, client_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.StartDate, p.EndDate, p.Status, p.ClientID,
	)
	if err != nil {
		return fmt.Errorf("creating project: %w", err)
	}
	return nil
}

// UpdateProject updates an existing project scoped to userID. Only the
// editable fields (name, description, dates, status, client_id) are
// written. The caller must have validated ownership of any new client_id.
// The read-check-write sequence runs in a single transaction. Returns
// ErrNotFound if the project is absent or owned by another user.
func (s *SQLiteStore) UpdateProject(ctx context.Context, userID string, p *model.Project) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := scanProjectRow(tx.QueryRowxContext(ctx,
		projectColumns+projectScopeJoin+" WHERE p.id = ? AND c.user_id = ?",
		p.ID, userID))
	if err != nil {
		return err
	}

	existing.Name = p.Name
	existing.Description = p.Description
	existing.StartDate = p.StartDate
	existing.EndDate = p.EndDate
	existing.Status = p.Status
	existing.ClientID = p.ClientID

	_, err = tx.ExecContext(ctx, `
		UPDATE projects SET name = ?, description = ?, start_date = ?,
			end_date = ?, status = ?, client_id = ?
		WHERE id = ?`,
		existing.Name, existing.Description, existing.StartDate,
		existing.EndDate, existing.Status, existing.ClientID,
		existing.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project %s: %w", p.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing project update: %w", err)
	}

	*p = *existing
	return nil
}

// DeleteProject removes a project scoped to userID, cascading to its tasks.
// Deleting a missing or foreign-owned project is a no-op.
func (s *SQLiteStore) DeleteProject(ctx context.Context, userID, id string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM projects WHERE id = ? AND EXISTS (
			SELECT 1 FROM clients c WHERE c.id = projects.client_id AND c.user_id = ?
		)`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	return nil
}

// GetProjectByID retrieves a single project scoped to userID, with its
// client name and task list loaded. Returns ErrNotFound if the project is
// absent or owned by another user.
func (s *SQLiteStore) GetProjectByID(ctx context.Context, userID, id string) (*model.Project, error) {
	p, err := scanProjectRow(s.db.QueryRowxContext(ctx,
		projectColumns+projectScopeJoin+" WHERE p.id = ? AND c.user_id = ?",
		id, userID))
	if err != nil {
		return nil, err
	}

	tasks, err := s.GetTasks(ctx, userID, TaskFilter{ProjectID: &p.ID})
	if err != nil {
		return nil, fmt.Errorf("loading tasks for project %s: %w", id, err)
	}
	p.Tasks = tasks

	return p, nil
}

// GetProjects retrieves all projects transitively owned by userID, each
// with its client name and task list loaded so progress can be derived.
func (s *SQLiteStore) GetProjects(ctx context.Context, userID string) ([]model.Project, error) {
	query, args, err := sq.
		Select("p.id", "p.name", "p.description", "p.start_date",
			"p.end_date", "p.status", "p.client_id", "c.name").
		From("projects p").
		Join("clients c ON c.id = p.client_id").
		Where(sq.Eq{"c.user_id": userID}).
		OrderBy("p.start_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building project query: %w", err)
	}

	projects, err := s.queryProjects(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	if err := s.attachTasks(ctx, userID, projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// OwnsProject reports whether the project exists and is transitively owned
// by userID. A missing project and a foreign-owned project both resolve to
// false.
func (s *SQLiteStore) OwnsProject(ctx context.Context, userID, id string) (bool, error) {
	var exists int
	err := s.db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM projects p
			JOIN clients c ON c.id = p.client_id
			WHERE p.id = ? AND c.user_id = ?
		)`, id, userID)
	if err != nil {
		return false, fmt.Errorf("resolving project ownership: %w", err)
	}
	return exists != 0, nil
}

// getProjectsForClient loads a single client's projects with their tasks.
func (s *SQLiteStore) getProjectsForClient(ctx context.Context, userID, clientID string) ([]model.Project, error) {
	query, args, err := sq.
		Select("p.id", "p.name", "p.description", "p.start_date",
			"p.end_date", "p.status", "p.client_id", "c.name").
		From("projects p").
		Join("clients c ON c.id = p.client_id").
		Where(sq.Eq{"c.user_id": userID, "p.client_id": clientID}).
		OrderBy("p.start_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building project query: %w", err)
	}

	projects, err := s.queryProjects(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	if err := s.attachTasks(ctx, userID, projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// queryProjects runs a project query that selects projectColumns plus the
// client name and scans the result set.
func (s *SQLiteStore) queryProjects(ctx context.Context, query string, args ...interface{}) ([]model.Project, error) {
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		p, err := scanProjectRow(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// attachTasks loads the tasks for every project in the slice with a single
// scoped query and distributes them by project id.
func (s *SQLiteStore) attachTasks(ctx context.Context, userID string, projects []model.Project) error {
	if len(projects) == 0 {
		return nil
	}

	tasks, err := s.GetTasks(ctx, userID, TaskFilter{})
	if err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}

	byProject := make(map[string][]model.Task, len(projects))
	for _, t := range tasks {
		byProject[t.ProjectID] = append(byProject[t.ProjectID], t)
	}
	for i := range projects {
		projects[i].Tasks = byProject[projects[i].ID]
	}
	return nil
}

const (
	projectColumns = `SELECT p.id, p.name, p.description, p.start_date,
		p.end_date, p.status, p.client_id, c.name`
	projectScopeJoin = " FROM projects p JOIN clients c ON c.id = p.client_id"
)

// scanProjectRow scans a project row that includes the joined client name,
// mapping sql.ErrNoRows to ErrNotFound.
func scanProjectRow(row interface{ Scan(dest ...interface{}) error }) (*model.Project, error) {
	var p model.Project
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.StartDate,
		&p.EndDate, &p.Status, &p.ClientID, &p.ClientName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning project row: %w", err)
	}
	return &p, nil
}
