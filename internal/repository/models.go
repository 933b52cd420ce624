package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

type Organization struct {
	ID                    uuid.UUID
	Slug                  string
	Name                  string
	OfficialEmail         string
	EmailVerified         bool
	StripeAccountID       sql.NullString
	ChargesEnabled        bool
	PayoutsEnabled        bool
	StripeStatusCheckedAt sql.NullTime
	Modules               []string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type PadelClub struct {
	ID             int64
	OrganizationID uuid.UUID
	Name           string
	City           string
	Partner        bool
}

type PadelCourt struct {
	ID     int64
	ClubID int64
	Name   string
	Indoor bool
}

type PadelStaff struct {
	ID     int64
	ClubID int64
	Name   string
	Role   string
}

type PadelCategory struct {
	ID                int64
	OrganizationID    uuid.UUID
	Label             string
	GenderRestriction sql.NullString
	MinLevel          sql.NullString
	MaxLevel          sql.NullString
	CreatedAt         time.Time
}

type Event struct {
	ID             uuid.UUID
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
	Status         string
	AccessPolicy   json.RawMessage
	Padel          pqtype.NullRawMessage
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type TicketType struct {
	ID                uuid.UUID
	EventID           uuid.UUID
	Name              string
	PriceCents        int64
	TotalQuantity     sql.NullInt32
	PublicAccess      bool
	ParticipantAccess bool
	PadelCategoryID   sql.NullInt64
	Position          int32
	CreatedAt         time.Time
}

type EventDraft struct {
	OrganizationID uuid.UUID
	DraftKey       string
	Data           json.RawMessage
	UpdatedAt      time.Time
}

type DashboardPreference struct {
	OrganizationID uuid.UUID
	Filters        pqtype.NullRawMessage
	Checklist      pqtype.NullRawMessage
	UpdatedAt      time.Time
}

type TicketSale struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	EventID        uuid.UUID
	TicketTypeID   uuid.UUID
	BuyerEmail     string
	Quantity       int32
	GrossCents     int64
	FeeCents       int64
	CreatedAt      time.Time
}

type FinanceExport struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Status         string
	RangeDays      int32
	StorageKey     sql.NullString
	ErrorMessage   sql.NullString
	CreatedAt      time.Time
	CompletedAt    sql.NullTime
}

type CoverImage struct {
	ID               uuid.UUID
	OrganizationID   uuid.UUID
	StorageKey       string
	ThumbnailKey     sql.NullString
	OriginalFilename string
	ContentType      string
	SizeBytes        int64
	Width            sql.NullInt32
	Height           sql.NullInt32
	CreatedAt        time.Time
}

type Job struct {
	ID           uuid.UUID
	JobType      string
	Payload      json.RawMessage
	Status       string
	Priority     int32
	Attempts     int32
	MaxAttempts  int32
	ScheduledAt  time.Time
	StartedAt    sql.NullTime
	CompletedAt  sql.NullTime
	ErrorMessage sql.NullString
	CreatedAt    time.Time
}
