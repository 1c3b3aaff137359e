// Package service implements the scoped query service: every operation
// takes the acting user's id explicitly and applies ownership resolution
// before touching the store. Denied and missing records are
// indistinguishable to callers.
package service

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/nhle/crm/internal/store"
)

// Service exposes ownership-scoped CRUD over users, clients, projects,
// and tasks.
type Service struct {
	store store.Store
	log   *slog.Logger
}

// New creates a Service on top of the given store. A nil logger disables
// logging.
func New(st store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{store: st, log: logger}
}

// storeErr maps store failures onto the service error contract: scoped
// misses become ErrNotFound, everything else is wrapped as ErrInternal.
func storeErr(op string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}
