package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

const financeExportColumns = `id, organization_id, status, range_days, storage_key, error_message, created_at, completed_at`

func scanFinanceExport(row interface{ Scan(...interface{}) error }) (FinanceExport, error) {
	var i FinanceExport
	err := row.Scan(
		&i.ID,
		&i.OrganizationID,
		&i.Status,
		&i.RangeDays,
		&i.StorageKey,
		&i.ErrorMessage,
		&i.CreatedAt,
		&i.CompletedAt,
	)
	return i, err
}

const createFinanceExport = `-- name: CreateFinanceExport :one
INSERT INTO finance_exports (organization_id, range_days)
VALUES ($1, $2)
RETURNING ` + financeExportColumns + `
`

type CreateFinanceExportParams struct {
	OrganizationID uuid.UUID
	RangeDays      int32
}

func (q *Queries) CreateFinanceExport(ctx context.Context, arg CreateFinanceExportParams) (FinanceExport, error) {
	return scanFinanceExport(q.db.QueryRowContext(ctx, createFinanceExport, arg.OrganizationID, arg.RangeDays))
}

const getFinanceExport = `-- name: GetFinanceExport :one
SELECT ` + financeExportColumns + ` FROM finance_exports WHERE id = $1
`

func (q *Queries) GetFinanceExport(ctx context.Context, id uuid.UUID) (FinanceExport, error) {
	return scanFinanceExport(q.db.QueryRowContext(ctx, getFinanceExport, id))
}

const getFinanceExportByIDAndOrg = `-- name: GetFinanceExportByIDAndOrg :one
SELECT ` + financeExportColumns + ` FROM finance_exports WHERE id = $1 AND organization_id = $2
`

type GetFinanceExportByIDAndOrgParams struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
}

func (q *Queries) GetFinanceExportByIDAndOrg(ctx context.Context, arg GetFinanceExportByIDAndOrgParams) (FinanceExport, error) {
	return scanFinanceExport(q.db.QueryRowContext(ctx, getFinanceExportByIDAndOrg, arg.ID, arg.OrganizationID))
}

const listFinanceExports = `-- name: ListFinanceExports :many
SELECT ` + financeExportColumns + `
FROM finance_exports
WHERE organization_id = $1
ORDER BY created_at DESC
LIMIT $2
`

type ListFinanceExportsParams struct {
	OrganizationID uuid.UUID
	Limit          int32
}

func (q *Queries) ListFinanceExports(ctx context.Context, arg ListFinanceExportsParams) ([]FinanceExport, error) {
	rows, err := q.db.QueryContext(ctx, listFinanceExports, arg.OrganizationID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []FinanceExport
	for rows.Next() {
		i, err := scanFinanceExport(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const markFinanceExportCompleted = `-- name: MarkFinanceExportCompleted :exec
UPDATE finance_exports
SET status = 'completed', storage_key = $2, error_message = NULL, completed_at = NOW()
WHERE id = $1
`

type MarkFinanceExportCompletedParams struct {
	ID         uuid.UUID
	StorageKey sql.NullString
}

func (q *Queries) MarkFinanceExportCompleted(ctx context.Context, arg MarkFinanceExportCompletedParams) error {
	_, err := q.db.ExecContext(ctx, markFinanceExportCompleted, arg.ID, arg.StorageKey)
	return err
}

const markFinanceExportFailed = `-- name: MarkFinanceExportFailed :exec
UPDATE finance_exports
SET status = 'failed', error_message = $2, completed_at = NOW()
WHERE id = $1
`

type MarkFinanceExportFailedParams struct {
	ID           uuid.UUID
	ErrorMessage sql.NullString
}

func (q *Queries) MarkFinanceExportFailed(ctx context.Context, arg MarkFinanceExportFailedParams) error {
	_, err := q.db.ExecContext(ctx, markFinanceExportFailed, arg.ID, arg.ErrorMessage)
	return err
}
