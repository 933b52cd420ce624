package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

const getDashboardPreference = `-- name: GetDashboardPreference :one
SELECT organization_id, filters, checklist, updated_at
FROM dashboard_preferences
WHERE organization_id = $1
`

func (q *Queries) GetDashboardPreference(ctx context.Context, organizationID uuid.UUID) (DashboardPreference, error) {
	row := q.db.QueryRowContext(ctx, getDashboardPreference, organizationID)
	var i DashboardPreference
	err := row.Scan(
		&i.OrganizationID,
		&i.Filters,
		&i.Checklist,
		&i.UpdatedAt,
	)
	return i, err
}

const upsertDashboardFilters = `-- name: UpsertDashboardFilters :exec
INSERT INTO dashboard_preferences (organization_id, filters, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (organization_id)
DO UPDATE SET filters = EXCLUDED.filters, updated_at = NOW()
`

type UpsertDashboardFiltersParams struct {
	OrganizationID uuid.UUID
	Filters        pqtype.NullRawMessage
}

func (q *Queries) UpsertDashboardFilters(ctx context.Context, arg UpsertDashboardFiltersParams) error {
	_, err := q.db.ExecContext(ctx, upsertDashboardFilters, arg.OrganizationID, arg.Filters)
	return err
}

const upsertDashboardChecklist = `-- name: UpsertDashboardChecklist :exec
INSERT INTO dashboard_preferences (organization_id, checklist, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (organization_id)
DO UPDATE SET checklist = EXCLUDED.checklist, updated_at = NOW()
`

type UpsertDashboardChecklistParams struct {
	OrganizationID uuid.UUID
	Checklist      pqtype.NullRawMessage
}

func (q *Queries) UpsertDashboardChecklist(ctx context.Context, arg UpsertDashboardChecklistParams) error {
	_, err := q.db.ExecContext(ctx, upsertDashboardChecklist, arg.OrganizationID, arg.Checklist)
	return err
}
