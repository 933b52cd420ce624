package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const listSalesByOrganization = `-- name: ListSalesByOrganization :many
SELECT s.id, s.event_id, e.title AS event_title, tt.name AS ticket_type_name,
       s.buyer_email, s.quantity, s.gross_cents, s.fee_cents, s.created_at
FROM ticket_sales s
JOIN events e ON e.id = s.event_id
JOIN ticket_types tt ON tt.id = s.ticket_type_id
WHERE s.organization_id = $1
  AND ($2::timestamptz IS NULL OR s.created_at >= $2)
ORDER BY s.created_at DESC
`

type ListSalesByOrganizationParams struct {
	OrganizationID uuid.UUID
	Since          sql.NullTime
}

type ListSalesByOrganizationRow struct {
	ID             uuid.UUID
	EventID        uuid.UUID
	EventTitle     string
	TicketTypeName string
	BuyerEmail     string
	Quantity       int32
	GrossCents     int64
	FeeCents       int64
	CreatedAt      time.Time
}

func (q *Queries) ListSalesByOrganization(ctx context.Context, arg ListSalesByOrganizationParams) ([]ListSalesByOrganizationRow, error) {
	rows, err := q.db.QueryContext(ctx, listSalesByOrganization, arg.OrganizationID, arg.Since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListSalesByOrganizationRow
	for rows.Next() {
		var i ListSalesByOrganizationRow
		if err := rows.Scan(
			&i.ID,
			&i.EventID,
			&i.EventTitle,
			&i.TicketTypeName,
			&i.BuyerEmail,
			&i.Quantity,
			&i.GrossCents,
			&i.FeeCents,
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

const summarizeSalesByEvent = `-- name: SummarizeSalesByEvent :many
SELECT s.event_id, e.title AS event_title,
       COALESCE(SUM(s.quantity), 0)::bigint AS tickets_sold,
       COALESCE(SUM(s.gross_cents), 0)::bigint AS gross_cents,
       COALESCE(SUM(s.fee_cents), 0)::bigint AS fee_cents
FROM ticket_sales s
JOIN events e ON e.id = s.event_id
WHERE s.organization_id = $1
  AND ($2::timestamptz IS NULL OR s.created_at >= $2)
GROUP BY s.event_id, e.title
ORDER BY gross_cents DESC
`

type SummarizeSalesByEventParams struct {
	OrganizationID uuid.UUID
	Since          sql.NullTime
}

type SummarizeSalesByEventRow struct {
	EventID     uuid.UUID
	EventTitle  string
	TicketsSold int64
	GrossCents  int64
	FeeCents    int64
}

func (q *Queries) SummarizeSalesByEvent(ctx context.Context, arg SummarizeSalesByEventParams) ([]SummarizeSalesByEventRow, error) {
	rows, err := q.db.QueryContext(ctx, summarizeSalesByEvent, arg.OrganizationID, arg.Since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SummarizeSalesByEventRow
	for rows.Next() {
		var i SummarizeSalesByEventRow
		if err := rows.Scan(
			&i.EventID,
			&i.EventTitle,
			&i.TicketsSold,
			&i.GrossCents,
			&i.FeeCents,
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
