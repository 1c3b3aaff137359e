package store

import (
	"context"
	"errors"

	"github.com/nhle/crm/internal/model"
)

// ErrNotFound is returned by scoped reads and writes when the requested
// record does not exist or is owned by a different user. The two cases are
// deliberately indistinguishable so that callers cannot probe for the
// existence of other tenants' records.
var ErrNotFound = errors.New("record not found")

// TaskFilter controls filtering for scoped task queries.
type TaskFilter struct {
	ProjectID *string // restrict to one project (must itself be owned)
	Completed *bool   // completion state or nil (all)
	Priority  *int    // exact priority or nil (all)
}

// Store defines the persistence interface for users, clients, projects,
// and tasks. Every method below the user level takes the acting user's id
// and resolves visibility by following the ownership chain
// (Task -> Project -> Client -> User); records outside that chain behave
// as if they do not exist.
type Store interface {
	// === Users ===

	CreateUser(ctx context.Context, u *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error

	// === Clients ===

	CreateClient(ctx context.Context, c *model.Client) error
	UpdateClient(ctx context.Context, userID string, c *model.Client) error
	DeleteClient(ctx context.Context, userID, id string) error
	GetClientByID(ctx context.Context, userID, id string) (*model.Client, error)
	GetClients(ctx context.Context, userID string) ([]model.Client, error)
	OwnsClient(ctx context.Context, userID, id string) (bool, error)

	// === Projects ===

	CreateProject(ctx context.Context, p *model.Project) error
	UpdateProject(ctx context.Context, userID string, p *model.Project) error
	DeleteProject(ctx context.Context, userID, id string) error
	GetProjectByID(ctx context.Context, userID, id string) (*model.Project, error)
	GetProjects(ctx context.Context, userID string) ([]model.Project, error)
	OwnsProject(ctx context.Context, userID, id string) (bool, error)

	// === Tasks ===

	CreateTask(ctx context.Context, t *model.Task) error
	UpdateTask(ctx context.Context, userID string, t *model.Task) error
	DeleteTask(ctx context.Context, userID, id string) error
	GetTaskByID(ctx context.Context, userID, id string) (*model.Task, error)
	GetTasks(ctx context.Context, userID string, filter TaskFilter) ([]model.Task, error)
	ToggleTaskComplete(ctx context.Context, userID, id string) (*model.Task, error)
	OwnsTask(ctx context.Context, userID, id string) (bool, error)
}
