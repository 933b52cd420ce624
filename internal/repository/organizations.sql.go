package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const organizationColumns = `id, slug, name, official_email, email_verified, stripe_account_id, charges_enabled, payouts_enabled, stripe_status_checked_at, modules, created_at, updated_at`

func scanOrganization(row interface{ Scan(...interface{}) error }) (Organization, error) {
	var i Organization
	err := row.Scan(
		&i.ID,
		&i.Slug,
		&i.Name,
		&i.OfficialEmail,
		&i.EmailVerified,
		&i.StripeAccountID,
		&i.ChargesEnabled,
		&i.PayoutsEnabled,
		&i.StripeStatusCheckedAt,
		pq.Array(&i.Modules),
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getOrganizationByID = `-- name: GetOrganizationByID :one
SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1
`

func (q *Queries) GetOrganizationByID(ctx context.Context, id uuid.UUID) (Organization, error) {
	return scanOrganization(q.db.QueryRowContext(ctx, getOrganizationByID, id))
}

const getOrganizationBySlug = `-- name: GetOrganizationBySlug :one
SELECT ` + organizationColumns + ` FROM organizations WHERE slug = $1
`

func (q *Queries) GetOrganizationBySlug(ctx context.Context, slug string) (Organization, error) {
	return scanOrganization(q.db.QueryRowContext(ctx, getOrganizationBySlug, slug))
}

const getOrganizationByStripeAccount = `-- name: GetOrganizationByStripeAccount :one
SELECT ` + organizationColumns + ` FROM organizations WHERE stripe_account_id = $1
`

func (q *Queries) GetOrganizationByStripeAccount(ctx context.Context, stripeAccountID string) (Organization, error) {
	return scanOrganization(q.db.QueryRowContext(ctx, getOrganizationByStripeAccount, stripeAccountID))
}

const updateOrganizationStripeAccount = `-- name: UpdateOrganizationStripeAccount :exec
UPDATE organizations
SET stripe_account_id = $2, updated_at = NOW()
WHERE id = $1
`

type UpdateOrganizationStripeAccountParams struct {
	ID              uuid.UUID
	StripeAccountID sql.NullString
}

func (q *Queries) UpdateOrganizationStripeAccount(ctx context.Context, arg UpdateOrganizationStripeAccountParams) error {
	_, err := q.db.ExecContext(ctx, updateOrganizationStripeAccount, arg.ID, arg.StripeAccountID)
	return err
}

const updateOrganizationStripeStatus = `-- name: UpdateOrganizationStripeStatus :execrows
UPDATE organizations
SET charges_enabled = $2,
    payouts_enabled = $3,
    stripe_status_checked_at = NOW(),
    updated_at = NOW()
WHERE stripe_account_id = $1
`

type UpdateOrganizationStripeStatusParams struct {
	StripeAccountID string
	ChargesEnabled  bool
	PayoutsEnabled  bool
}

func (q *Queries) UpdateOrganizationStripeStatus(ctx context.Context, arg UpdateOrganizationStripeStatusParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateOrganizationStripeStatus, arg.StripeAccountID, arg.ChargesEnabled, arg.PayoutsEnabled)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const updateOrganizationModules = `-- name: UpdateOrganizationModules :one
UPDATE organizations
SET modules = $2, updated_at = NOW()
WHERE id = $1
RETURNING ` + organizationColumns + `
`

type UpdateOrganizationModulesParams struct {
	ID      uuid.UUID
	Modules []string
}

func (q *Queries) UpdateOrganizationModules(ctx context.Context, arg UpdateOrganizationModulesParams) (Organization, error) {
	return scanOrganization(q.db.QueryRowContext(ctx, updateOrganizationModules, arg.ID, pq.Array(arg.Modules)))
}
