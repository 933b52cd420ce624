package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

const eventColumns = `id, organization_id, title, description, starts_at, ends_at, location_name, location_city, address, location_tbd, cover_url, preset, is_free, status, access_policy, padel, created_at, updated_at`

func scanEvent(row interface{ Scan(...interface{}) error }, extra ...interface{}) (Event, error) {
	var i Event
	dest := []interface{}{
		&i.ID,
		&i.OrganizationID,
		&i.Title,
		&i.Description,
		&i.StartsAt,
		&i.EndsAt,
		&i.LocationName,
		&i.LocationCity,
		&i.Address,
		&i.LocationTbd,
		&i.CoverUrl,
		&i.Preset,
		&i.IsFree,
		&i.Status,
		&i.AccessPolicy,
		&i.Padel,
		&i.CreatedAt,
		&i.UpdatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	return i, err
}

const createEvent = `-- name: CreateEvent :one
INSERT INTO events (
    organization_id, title, description, starts_at, ends_at, location_name, location_city,
    address, location_tbd, cover_url, preset, is_free, access_policy, padel
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING ` + eventColumns + `
`

type CreateEventParams struct {
	OrganizationID uuid.UUID
	Title          string
	Description    string
	StartsAt       time.Time
	EndsAt         sql.NullTime
	LocationName   string
	LocationCity   string
	Address        string
	LocationTbd    bool
	CoverUrl       string
	Preset         string
	IsFree         bool
	AccessPolicy   json.RawMessage
	Padel          pqtype.NullRawMessage
}

func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (Event, error) {
	row := q.db.QueryRowContext(ctx, createEvent,
		arg.OrganizationID,
		arg.Title,
		arg.Description,
		arg.StartsAt,
		arg.EndsAt,
		arg.LocationName,
		arg.LocationCity,
		arg.Address,
		arg.LocationTbd,
		arg.CoverUrl,
		arg.Preset,
		arg.IsFree,
		arg.AccessPolicy,
		arg.Padel,
	)
	return scanEvent(row)
}

const getEventByIDAndOrg = `-- name: GetEventByIDAndOrg :one
SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND organization_id = $2
`

type GetEventByIDAndOrgParams struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
}

func (q *Queries) GetEventByIDAndOrg(ctx context.Context, arg GetEventByIDAndOrgParams) (Event, error) {
	return scanEvent(q.db.QueryRowContext(ctx, getEventByIDAndOrg, arg.ID, arg.OrganizationID))
}

const createTicketType = `-- name: CreateTicketType :one
INSERT INTO ticket_types (
    event_id, name, price_cents, total_quantity, public_access, participant_access, padel_category_id, position
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, event_id, name, price_cents, total_quantity, public_access, participant_access, padel_category_id, position, created_at
`

type CreateTicketTypeParams struct {
	EventID           uuid.UUID
	Name              string
	PriceCents        int64
	TotalQuantity     sql.NullInt32
	PublicAccess      bool
	ParticipantAccess bool
	PadelCategoryID   sql.NullInt64
	Position          int32
}

func (q *Queries) CreateTicketType(ctx context.Context, arg CreateTicketTypeParams) (TicketType, error) {
	row := q.db.QueryRowContext(ctx, createTicketType,
		arg.EventID,
		arg.Name,
		arg.PriceCents,
		arg.TotalQuantity,
		arg.PublicAccess,
		arg.ParticipantAccess,
		arg.PadelCategoryID,
		arg.Position,
	)
	var i TicketType
	err := row.Scan(
		&i.ID,
		&i.EventID,
		&i.Name,
		&i.PriceCents,
		&i.TotalQuantity,
		&i.PublicAccess,
		&i.ParticipantAccess,
		&i.PadelCategoryID,
		&i.Position,
		&i.CreatedAt,
	)
	return i, err
}

const listTicketTypesByEvent = `-- name: ListTicketTypesByEvent :many
SELECT id, event_id, name, price_cents, total_quantity, public_access, participant_access, padel_category_id, position, created_at
FROM ticket_types
WHERE event_id = $1
ORDER BY position
`

func (q *Queries) ListTicketTypesByEvent(ctx context.Context, eventID uuid.UUID) ([]TicketType, error) {
	rows, err := q.db.QueryContext(ctx, listTicketTypesByEvent, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TicketType
	for rows.Next() {
		var i TicketType
		if err := rows.Scan(
			&i.ID,
			&i.EventID,
			&i.Name,
			&i.PriceCents,
			&i.TotalQuantity,
			&i.PublicAccess,
			&i.ParticipantAccess,
			&i.PadelCategoryID,
			&i.Position,
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

const listEventsWithStats = `-- name: ListEventsWithStats :many
SELECT ` + eventColumns + `,
    (SELECT COUNT(*) FROM ticket_types tt WHERE tt.event_id = events.id) AS ticket_type_count,
    COALESCE((SELECT SUM(s.quantity) FROM ticket_sales s WHERE s.event_id = events.id), 0)::bigint AS tickets_sold,
    COALESCE((SELECT SUM(s.gross_cents) FROM ticket_sales s WHERE s.event_id = events.id), 0)::bigint AS gross_cents
FROM events
WHERE organization_id = $1
  AND ($2::text = '' OR status = $2)
  AND ($3::text = '' OR title ILIKE '%' || $3 || '%')
ORDER BY
    CASE WHEN $6::text = 'title' THEN title END ASC,
    CASE WHEN $6::text = 'upcoming' THEN starts_at END ASC,
    starts_at DESC
LIMIT $4 OFFSET $5
`

type ListEventsWithStatsParams struct {
	OrganizationID uuid.UUID
	Status         string
	Search         string
	Limit          int32
	Offset         int32
	Sort           string
}

type ListEventsWithStatsRow struct {
	Event
	TicketTypeCount int64
	TicketsSold     int64
	GrossCents      int64
}

func (q *Queries) ListEventsWithStats(ctx context.Context, arg ListEventsWithStatsParams) ([]ListEventsWithStatsRow, error) {
	rows, err := q.db.QueryContext(ctx, listEventsWithStats,
		arg.OrganizationID,
		arg.Status,
		arg.Search,
		arg.Limit,
		arg.Offset,
		arg.Sort,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListEventsWithStatsRow
	for rows.Next() {
		var i ListEventsWithStatsRow
		event, err := scanEvent(rows, &i.TicketTypeCount, &i.TicketsSold, &i.GrossCents)
		if err != nil {
			return nil, err
		}
		i.Event = event
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

const countEvents = `-- name: CountEvents :one
SELECT COUNT(*)
FROM events
WHERE organization_id = $1
  AND ($2::text = '' OR status = $2)
  AND ($3::text = '' OR title ILIKE '%' || $3 || '%')
`

type CountEventsParams struct {
	OrganizationID uuid.UUID
	Status         string
	Search         string
}

func (q *Queries) CountEvents(ctx context.Context, arg CountEventsParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countEvents, arg.OrganizationID, arg.Status, arg.Search).Scan(&count)
	return count, err
}
