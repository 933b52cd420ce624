package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/DukeRupert/courtside/internal/domain"
	"github.com/DukeRupert/courtside/internal/draft"
	"github.com/DukeRupert/courtside/internal/eventform"
	"github.com/DukeRupert/courtside/internal/repository"
)

// DraftService defines the interface for server-side form drafts.
type DraftService interface {
	// Restore returns the saved form state. The boolean is false, with the
	// default state, when no usable draft exists.
	Restore(ctx context.Context, orgID uuid.UUID, name string) (eventform.State, bool, error)

	// Save stores a snapshot of the form.
	Save(ctx context.Context, orgID uuid.UUID, name string, s eventform.State) error

	// Discard deletes the draft. Discarding a missing draft is not an error.
	Discard(ctx context.Context, orgID uuid.UUID, name string) error
}

type draftService struct {
	manager *draft.Manager
	logger  *slog.Logger
}

// NewDraftService creates a DraftService backed by the event_drafts table.
func NewDraftService(queries *repository.Queries, logger *slog.Logger) DraftService {
	return NewDraftServiceWithStore(draft.NewPostgresStore(queries), logger)
}

// NewDraftServiceWithStore creates a DraftService over any draft store.
func NewDraftServiceWithStore(store draft.Store, logger *slog.Logger) DraftService {
	return &draftService{
		manager: draft.NewManager(store, logger),
		logger:  logger,
	}
}

func (s *draftService) key(op string, orgID uuid.UUID, name string) (draft.Key, error) {
	key := draft.OrganizationKey(orgID, name)
	if err := key.Validate(); err != nil {
		return draft.Key{}, domain.Invalid(op, err.Error())
	}
	return key, nil
}

func (s *draftService) Restore(ctx context.Context, orgID uuid.UUID, name string) (eventform.State, bool, error) {
	key, err := s.key("DraftService.Restore", orgID, name)
	if err != nil {
		return eventform.State{}, false, err
	}
	st, ok := s.manager.Restore(ctx, key)
	return st, ok, nil
}

func (s *draftService) Save(ctx context.Context, orgID uuid.UUID, name string, st eventform.State) error {
	const op = "DraftService.Save"

	key, err := s.key(op, orgID, name)
	if err != nil {
		return err
	}
	if err := s.manager.Save(ctx, key, st); err != nil {
		s.logger.Error("failed to save draft", "error", err, "op", op, "key", key.String())
		return domain.Internal(err, op, "Failed to save draft")
	}
	return nil
}

func (s *draftService) Discard(ctx context.Context, orgID uuid.UUID, name string) error {
	const op = "DraftService.Discard"

	key, err := s.key(op, orgID, name)
	if err != nil {
		return err
	}
	if err := s.manager.Discard(ctx, key); err != nil {
		return domain.Internal(err, op, "Failed to discard draft")
	}
	return nil
}
