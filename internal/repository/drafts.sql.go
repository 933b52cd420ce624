package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

const getEventDraft = `-- name: GetEventDraft :one
SELECT organization_id, draft_key, data, updated_at
FROM event_drafts
WHERE organization_id = $1 AND draft_key = $2
`

type GetEventDraftParams struct {
	OrganizationID uuid.UUID
	DraftKey       string
}

func (q *Queries) GetEventDraft(ctx context.Context, arg GetEventDraftParams) (EventDraft, error) {
	row := q.db.QueryRowContext(ctx, getEventDraft, arg.OrganizationID, arg.DraftKey)
	var i EventDraft
	err := row.Scan(
		&i.OrganizationID,
		&i.DraftKey,
		&i.Data,
		&i.UpdatedAt,
	)
	return i, err
}

const upsertEventDraft = `-- name: UpsertEventDraft :exec
INSERT INTO event_drafts (organization_id, draft_key, data, updated_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (organization_id, draft_key)
DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
`

type UpsertEventDraftParams struct {
	OrganizationID uuid.UUID
	DraftKey       string
	Data           json.RawMessage
}

func (q *Queries) UpsertEventDraft(ctx context.Context, arg UpsertEventDraftParams) error {
	_, err := q.db.ExecContext(ctx, upsertEventDraft, arg.OrganizationID, arg.DraftKey, arg.Data)
	return err
}

const deleteEventDraft = `-- name: DeleteEventDraft :exec
DELETE FROM event_drafts WHERE organization_id = $1 AND draft_key = $2
`

type DeleteEventDraftParams struct {
	OrganizationID uuid.UUID
	DraftKey       string
}

func (q *Queries) DeleteEventDraft(ctx context.Context, arg DeleteEventDraftParams) error {
	_, err := q.db.ExecContext(ctx, deleteEventDraft, arg.OrganizationID, arg.DraftKey)
	return err
}
