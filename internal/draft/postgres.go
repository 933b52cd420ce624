package draft

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/DukeRupert/courtside/internal/repository"
)

// PostgresStore keeps drafts in the event_drafts table. Key.Scope must be an
// organization id.
type PostgresStore struct {
	queries *repository.Queries
}

// NewPostgresStore creates a PostgresStore.
func NewPostgresStore(queries *repository.Queries) *PostgresStore {
	return &PostgresStore{queries: queries}
}

// WithQueries returns a store bound to q, typically a transaction.
func (s *PostgresStore) WithQueries(q *repository.Queries) *PostgresStore {
	return &PostgresStore{queries: q}
}

func (s *PostgresStore) Load(ctx context.Context, key Key) ([]byte, error) {
	orgID, err := scopeID(key)
	if err != nil {
		return nil, err
	}
	row, err := s.queries.GetEventDraft(ctx, repository.GetEventDraftParams{
		OrganizationID: orgID,
		DraftKey:       key.Name,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.Data, nil
}

func (s *PostgresStore) Save(ctx context.Context, key Key, data []byte) error {
	orgID, err := scopeID(key)
	if err != nil {
		return err
	}
	return s.queries.UpsertEventDraft(ctx, repository.UpsertEventDraftParams{
		OrganizationID: orgID,
		DraftKey:       key.Name,
		Data:           data,
	})
}

func (s *PostgresStore) Delete(ctx context.Context, key Key) error {
	orgID, err := scopeID(key)
	if err != nil {
		return err
	}
	return s.queries.DeleteEventDraft(ctx, repository.DeleteEventDraftParams{
		OrganizationID: orgID,
		DraftKey:       key.Name,
	})
}

func scopeID(key Key) (uuid.UUID, error) {
	id, err := uuid.Parse(key.Scope)
	if err != nil {
		return uuid.Nil, fmt.Errorf("draft scope %q is not an organization id: %w", key.Scope, err)
	}
	return id, nil
}

// OrganizationKey returns the key of an organization's draft.
func OrganizationKey(orgID uuid.UUID, name string) Key {
	if name == "" {
		name = DefaultName
	}
	return Key{Scope: orgID.String(), Name: name}
}
