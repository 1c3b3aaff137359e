package service

import (
	"context"
	"errors"

	"github.com/nhle/crm/internal/model"
	"github.com/nhle/crm/internal/validate"
)

// CreateUser registers a new identity principal. The id is
// server-assigned.
func (s *Service) CreateUser(ctx context.Context, payload model.User) (*model.User, error) {
	if payload.Email == "" {
		return nil, fieldErr("email", errors.New("must not be empty"))
	}
	if err := validate.Email(payload.Email); err != nil {
		return nil, fieldErr("email", err)
	}

	payload.ID = ""
	if err := s.store.CreateUser(ctx, &payload); err != nil {
		return nil, storeErr("creating user", err)
	}
	s.log.Info("user created", "user_id", payload.ID)
	return &payload, nil
}

// GetUser retrieves a user by id.
func (s *Service) GetUser(ctx context.Context, id string) (*model.User, error) {
	u, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, storeErr("getting user", err)
	}
	return u, nil
}

// DeleteUser removes a user and, by cascade, all clients, projects, and
// tasks the user owns. Deleting a missing user is a no-op.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return storeErr("deleting user", err)
	}
	s.log.Info("user deleted", "user_id", id)
	return nil
}
