package service

import (
	"context"

	"github.com/nhle/crm/internal/model"
	"github.com/nhle/crm/internal/validate"
)

// ListClients returns all clients owned by userID, newest first.
func (s *Service) ListClients(ctx context.Context, userID string) ([]model.Client, error) {
	clients, err := s.store.GetClients(ctx, userID)
	if err != nil {
		return nil, storeErr("listing clients", err)
	}
	return clients, nil
}

// GetClient returns a single owned client with its projects loaded.
func (s *Service) GetClient(ctx context.Context, userID, id string) (*model.Client, error) {
	c, err := s.store.GetClientByID(ctx, userID, id)
	if err != nil {
		return nil, storeErr("getting client", err)
	}
	return c, nil
}

// CreateClient validates the payload and persists a new client owned by
// userID. The id and creation timestamp are server-assigned; whatever the
// payload carried for them is discarded.
func (s *Service) CreateClient(ctx context.Context, userID string, payload model.Client) (*model.Client, error) {
	if err := validateClient(payload); err != nil {
		return nil, err
	}

	payload.ID = ""
	payload.UserID = userID
	if err := s.store.CreateClient(ctx, &payload); err != nil {
		return nil, storeErr("creating client", err)
	}

	s.log.Info("client created", "client_id", payload.ID, "user_id", userID)
	return &payload, nil
}

// UpdateClient applies the editable fields of payload to the client with
// the given id, scoped to userID. The payload id must match the target id.
func (s *Service) UpdateClient(ctx context.Context, userID, id string, payload model.Client) (*model.Client, error) {
	if payload.ID != id {
		return nil, ErrIDMismatch
	}
	if err := validateClient(payload); err != nil {
		return nil, err
	}

	if err := s.store.UpdateClient(ctx, userID, &payload); err != nil {
		return nil, storeErr("updating client", err)
	}

	s.log.Info("client updated", "client_id", id, "user_id", userID)
	return &payload, nil
}

// DeleteClient removes an owned client and, by cascade, its projects and
// their tasks. Deleting a missing or foreign-owned client is a no-op.
func (s *Service) DeleteClient(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteClient(ctx, userID, id); err != nil {
		return storeErr("deleting client", err)
	}
	s.log.Info("client deleted", "client_id", id, "user_id", userID)
	return nil
}

func validateClient(c model.Client) error {
	if err := validate.ClientName(c.Name); err != nil {
		return fieldErr("name", err)
	}
	if err := validate.Email(c.Email); err != nil {
		return fieldErr("email", err)
	}
	if err := validate.Phone(c.Phone); err != nil {
		return fieldErr("phone", err)
	}
	return nil
}
