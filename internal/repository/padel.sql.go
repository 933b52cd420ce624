package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const listPadelClubs = `-- name: ListPadelClubs :many
SELECT id, organization_id, name, city, partner
FROM padel_clubs
WHERE organization_id = $1
ORDER BY partner, name
`

func (q *Queries) ListPadelClubs(ctx context.Context, organizationID uuid.UUID) ([]PadelClub, error) {
	rows, err := q.db.QueryContext(ctx, listPadelClubs, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PadelClub
	for rows.Next() {
		var i PadelClub
		if err := rows.Scan(&i.ID, &i.OrganizationID, &i.Name, &i.City, &i.Partner); err != nil {
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

const listPadelCourtsByOrganization = `-- name: ListPadelCourtsByOrganization :many
SELECT c.id, c.club_id, c.name, c.indoor
FROM padel_courts c
JOIN padel_clubs cl ON cl.id = c.club_id
WHERE cl.organization_id = $1
ORDER BY c.club_id, c.name
`

func (q *Queries) ListPadelCourtsByOrganization(ctx context.Context, organizationID uuid.UUID) ([]PadelCourt, error) {
	rows, err := q.db.QueryContext(ctx, listPadelCourtsByOrganization, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PadelCourt
	for rows.Next() {
		var i PadelCourt
		if err := rows.Scan(&i.ID, &i.ClubID, &i.Name, &i.Indoor); err != nil {
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

const listPadelStaffByOrganization = `-- name: ListPadelStaffByOrganization :many
SELECT s.id, s.club_id, s.name, s.role
FROM padel_staff s
JOIN padel_clubs cl ON cl.id = s.club_id
WHERE cl.organization_id = $1
ORDER BY s.club_id, s.name
`

func (q *Queries) ListPadelStaffByOrganization(ctx context.Context, organizationID uuid.UUID) ([]PadelStaff, error) {
	rows, err := q.db.QueryContext(ctx, listPadelStaffByOrganization, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PadelStaff
	for rows.Next() {
		var i PadelStaff
		if err := rows.Scan(&i.ID, &i.ClubID, &i.Name, &i.Role); err != nil {
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

const padelCategoryColumns = `id, organization_id, label, gender_restriction, min_level, max_level, created_at`

const listPadelCategories = `-- name: ListPadelCategories :many
SELECT ` + padelCategoryColumns + `
FROM padel_categories
WHERE organization_id = $1
ORDER BY label
`

func (q *Queries) ListPadelCategories(ctx context.Context, organizationID uuid.UUID) ([]PadelCategory, error) {
	return q.queryPadelCategories(ctx, listPadelCategories, organizationID)
}

const listPadelCategoriesByIDs = `-- name: ListPadelCategoriesByIDs :many
SELECT ` + padelCategoryColumns + `
FROM padel_categories
WHERE organization_id = $1 AND id = ANY($2::bigint[])
`

type ListPadelCategoriesByIDsParams struct {
	OrganizationID uuid.UUID
	IDs            []int64
}

func (q *Queries) ListPadelCategoriesByIDs(ctx context.Context, arg ListPadelCategoriesByIDsParams) ([]PadelCategory, error) {
	return q.queryPadelCategories(ctx, listPadelCategoriesByIDs, arg.OrganizationID, pq.Array(arg.IDs))
}

func (q *Queries) queryPadelCategories(ctx context.Context, query string, args ...interface{}) ([]PadelCategory, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PadelCategory
	for rows.Next() {
		var i PadelCategory
		if err := rows.Scan(
			&i.ID,
			&i.OrganizationID,
			&i.Label,
			&i.GenderRestriction,
			&i.MinLevel,
			&i.MaxLevel,
			&i.CreatedAt,
		); err != nil {
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

const countPadelStaffByClub = `-- name: CountPadelStaffByClub :one
SELECT COUNT(*) FROM padel_staff WHERE club_id = $1
`

func (q *Queries) CountPadelStaffByClub(ctx context.Context, clubID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countPadelStaffByClub, clubID).Scan(&count)
	return count, err
}
