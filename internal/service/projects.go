package service

import (
	"context"
	"errors"

	"github.com/nhle/crm/internal/model"
	"github.com/nhle/crm/internal/validate"
)

// ListProjects returns all projects transitively owned by userID, with
// client names and task lists loaded so progress can be derived.
func (s *Service) ListProjects(ctx context.Context, userID string) ([]model.Project, error) {
	projects, err := s.store.GetProjects(ctx, userID)
	if err != nil {
		return nil, storeErr("listing projects", err)
	}
	return projects, nil
}

// GetProject returns a single owned project with its client name and task
// list loaded.
func (s *Service) GetProject(ctx context.Context, userID, id string) (*model.Project, error) {
	p, err := s.store.GetProjectByID(ctx, userID, id)
	if err != nil {
		return nil, storeErr("getting project", err)
	}
	return p, nil
}

// CreateProject validates the payload and the caller's ownership of the
// referenced client, then persists a new project. A client that is missing
// or owned by another user yields a validation error on client_id, not a
// generic denial.
func (s *Service) CreateProject(ctx context.Context, userID string, payload model.Project) (*model.Project, error) {
	if payload.Status == "" {
		payload.Status = model.ProjectStatusNotStarted
	}
	if err := validateProject(payload); err != nil {
		return nil, err
	}
	if err := s.checkClientOwned(ctx, userID, payload.ClientID); err != nil {
		return nil, err
	}

	payload.ID = ""
	if err := s.store.CreateProject(ctx, &payload); err != nil {
		return nil, storeErr("creating project", err)
	}

	s.log.Info("project created",
		"project_id", payload.ID, "client_id", payload.ClientID, "user_id", userID)
	return &payload, nil
}

// UpdateProject applies the editable fields of payload to the project with
// the given id, scoped to userID. The payload id must match the target id,
// and a changed client_id is re-validated against the caller's ownership;
// caller-supplied foreign keys are never trusted.
func (s *Service) UpdateProject(ctx context.Context, userID, id string, payload model.Project) (*model.Project, error) {
	if payload.ID != id {
		return nil, ErrIDMismatch
	}
	if err := validateProject(payload); err != nil {
		return nil, err
	}
	if err := s.checkClientOwned(ctx, userID, payload.ClientID); err != nil {
		return nil, err
	}

	if err := s.store.UpdateProject(ctx, userID, &payload); err != nil {
		return nil, storeErr("updating project", err)
	}

	s.log.Info("project updated", "project_id", id, "user_id", userID)
	return &payload, nil
}

// DeleteProject removes an owned project and, by cascade, its tasks.
// Deleting a missing or foreign-owned project is a no-op.
func (s *Service) DeleteProject(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteProject(ctx, userID, id); err != nil {
		return storeErr("deleting project", err)
	}
	s.log.Info("project deleted", "project_id", id, "user_id", userID)
	return nil
}

func validateProject(p model.Project) error {
	if err := validate.ProjectName(p.Name); err != nil {
		return fieldErr("name", err)
	}
	if err := validate.ProjectStatus(p.Status); err != nil {
		return fieldErr("status", err)
	}
	if err := validate.ProjectDates(p.StartDate, p.EndDate); err != nil {
		return fieldErr("end_date", err)
	}
	return nil
}

// checkClientOwned attributes a missing or foreign-owned client to the
// client_id field.
func (s *Service) checkClientOwned(ctx context.Context, userID, clientID string) error {
	if clientID == "" {
		return fieldErr("client_id", errors.New("must not be empty"))
	}
	owned, err := s.store.OwnsClient(ctx, userID, clientID)
	if err != nil {
		return storeErr("resolving client ownership", err)
	}
	if !owned {
		return fieldErr("client_id", errors.New("invalid client"))
	}
	return nil
}
