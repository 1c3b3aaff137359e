package service

import (
	"context"
	"errors"

	"github.com/nhle/crm/internal/model"
	"github.com/nhle/crm/internal/store"
	"github.com/nhle/crm/internal/validate"
)

// ListTasks returns tasks transitively owned by userID, incomplete first,
// then by priority descending and due date ascending. When projectID is
// non-nil the listing is restricted to that project, which must itself be
// owned by userID; otherwise the result behaves as if the project does not
// exist.
func (s *Service) ListTasks(ctx context.Context, userID string, projectID *string) ([]model.Task, error) {
	filter := store.TaskFilter{}
	if projectID != nil {
		owned, err := s.store.OwnsProject(ctx, userID, *projectID)
		if err != nil {
			return nil, storeErr("resolving project ownership", err)
		}
		if !owned {
			return nil, ErrNotFound
		}
		filter.ProjectID = projectID
	}

	tasks, err := s.store.GetTasks(ctx, userID, filter)
	if err != nil {
		return nil, storeErr("listing tasks", err)
	}
	return tasks, nil
}

// GetTask returns a single owned task.
func (s *Service) GetTask(ctx context.Context, userID, id string) (*model.Task, error) {
	t, err := s.store.GetTaskByID(ctx, userID, id)
	if err != nil {
		return nil, storeErr("getting task", err)
	}
	return t, nil
}

// CreateTask validates the payload and the caller's ownership of the
// referenced project, then persists a new task. A project that is missing
// or owned by another user yields a validation error on project_id, not a
// generic denial. The completion timestamp is derived server-side.
func (s *Service) CreateTask(ctx context.Context, userID string, payload model.Task) (*model.Task, error) {
	if err := validateTask(payload); err != nil {
		return nil, err
	}
	if err := s.checkProjectOwned(ctx, userID, payload.ProjectID); err != nil {
		return nil, err
	}

	payload.ID = ""
	if err := s.store.CreateTask(ctx, &payload); err != nil {
		return nil, storeErr("creating task", err)
	}

	s.log.Info("task created",
		"task_id", payload.ID, "project_id", payload.ProjectID, "user_id", userID)
	return &payload, nil
}

// UpdateTask applies the editable fields of payload to the task with the
// given id, scoped to userID. The payload id must match the target id, and
// a changed project_id is re-validated against the caller's ownership.
// Completion timestamps follow the completion flag: set on the transition
// to complete, cleared when incomplete, and never taken from the payload.
func (s *Service) UpdateTask(ctx context.Context, userID, id string, payload model.Task) (*model.Task, error) {
	if payload.ID != id {
		return nil, ErrIDMismatch
	}
	if err := validateTask(payload); err != nil {
		return nil, err
	}
	if err := s.checkProjectOwned(ctx, userID, payload.ProjectID); err != nil {
		return nil, err
	}

	if err := s.store.UpdateTask(ctx, userID, &payload); err != nil {
		return nil, storeErr("updating task", err)
	}

	s.log.Info("task updated", "task_id", id, "user_id", userID)
	return &payload, nil
}

// DeleteTask removes an owned task. Deleting a missing or foreign-owned
// task is a no-op.
func (s *Service) DeleteTask(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteTask(ctx, userID, id); err != nil {
		return storeErr("deleting task", err)
	}
	s.log.Info("task deleted", "task_id", id, "user_id", userID)
	return nil
}

// ToggleTaskComplete flips the completion state of an owned task, setting
// or clearing the completion timestamp symmetrically. It returns the
// task's project id so a caller can navigate back to the project listing.
func (s *Service) ToggleTaskComplete(ctx context.Context, userID, id string) (string, error) {
	t, err := s.store.ToggleTaskComplete(ctx, userID, id)
	if err != nil {
		return "", storeErr("toggling task", err)
	}
	s.log.Info("task toggled",
		"task_id", id, "completed", t.Completed, "user_id", userID)
	return t.ProjectID, nil
}

func validateTask(t model.Task) error {
	if err := validate.TaskTitle(t.Title); err != nil {
		return fieldErr("title", err)
	}
	if err := validate.TaskPriority(t.Priority); err != nil {
		return fieldErr("priority", err)
	}
	return nil
}

// checkProjectOwned attributes a missing or foreign-owned project to the
// project_id field.
func (s *Service) checkProjectOwned(ctx context.Context, userID, projectID string) error {
	if projectID == "" {
		return fieldErr("project_id", errors.New("must not be empty"))
	}
	owned, err := s.store.OwnsProject(ctx, userID, projectID)
	if err != nil {
		return storeErr("resolving project ownership", err)
	}
	if !owned {
		return fieldErr("project_id", errors.New("invalid project"))
	}
	return nil
}
