package domain

import (
	"time"

	"github.com/google/uuid"
)

// SaleRecord is one ticket sale line used by finance dashboards and exports.
type SaleRecord struct {
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

// NetCents returns the amount paid out to the organization.
func (s SaleRecord) NetCents() int64 {
	return s.GrossCents - s.FeeCents
}

// EventFinance aggregates sales for a single event.
type EventFinance struct {
	EventID     uuid.UUID `json:"eventId"`
	EventTitle  string    `json:"eventTitle"`
	TicketsSold int64     `json:"ticketsSold"`
	GrossCents  int64     `json:"grossCents"`
	FeeCents    int64     `json:"feeCents"`
	NetCents    int64     `json:"netCents"`
}

// FinanceSummary aggregates sales for an organization over a period.
type FinanceSummary struct {
	From        *time.Time     `json:"from,omitempty"`
	To          time.Time      `json:"to"`
	TicketsSold int64          `json:"ticketsSold"`
	GrossCents  int64          `json:"grossCents"`
	FeeCents    int64          `json:"feeCents"`
	NetCents    int64          `json:"netCents"`
	Events      []EventFinance `json:"events"`
}

// ExportStatus tracks an asynchronous finance export.
type ExportStatus string

const (
	ExportStatusPending   ExportStatus = "pending"
	ExportStatusCompleted ExportStatus = "completed"
	ExportStatusFailed    ExportStatus = "failed"
)

// FinanceExport is a CSV export produced by the background worker.
type FinanceExport struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Status         ExportStatus
	RangeDays      int32 // 0 means all time
	StorageKey     string
	ErrorMessage   string
	CreatedAt      time.Time
	CompletedAt    *time.Time

	// Computed
	DownloadURL string
}
