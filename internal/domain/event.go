// Package domain contains core business types and interfaces.
//
// This file defines the Event domain type and the ticket types sold for it.
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Event Status
// =============================================================================

// EventStatus represents the publication state of an event.
type EventStatus string

const (
	// EventStatusPublished events are visible and selling.
	EventStatusPublished EventStatus = "published"

	// EventStatusCancelled events no longer accept registrations.
	EventStatusCancelled EventStatus = "cancelled"

	// EventStatusFinished events have ended.
	EventStatusFinished EventStatus = "finished"
)

// IsValid returns true if the status is a recognized value.
func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusPublished, EventStatusCancelled, EventStatusFinished:
		return true
	}
	return false
}

// EventPreset selects the wizard flavour used to create the event.
type EventPreset string

const (
	EventPresetDefault EventPreset = "default"
	EventPresetPadel   EventPreset = "padel"
)

// =============================================================================
// Event Domain Types
// =============================================================================

// Event is a published event or tournament owned by an organization.
type Event struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Title          string
	Description    string
	StartsAt       time.Time
	EndsAt         *time.Time
	LocationName   string
	LocationCity   string
	Address        string
	LocationTBD    bool
	CoverURL       string
	Preset         EventPreset
	IsFree         bool
	Status         EventStatus
	AccessPolicy   json.RawMessage // Stored as JSONB
	Padel          json.RawMessage // Stored as JSONB, nil for non-padel events
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Computed fields (populated by list queries)
	TicketTypeCount int
	TicketsSold     int64
	GrossCents      int64
}

// IsPadel returns true if the event is a padel tournament.
func (e *Event) IsPadel() bool {
	return e.Preset == EventPresetPadel
}

// TicketType is one sellable tier of an event.
type TicketType struct {
	ID                uuid.UUID
	EventID           uuid.UUID
	Name              string
	PriceCents        int64
	TotalQuantity     *int32 // nil means unlimited
	PublicAccess      bool
	ParticipantAccess bool
	PadelCategoryID   *int64
	Position          int32
	CreatedAt         time.Time
}

// IsUnlimited returns true when the ticket type has no capacity.
func (t *TicketType) IsUnlimited() bool {
	return t.TotalQuantity == nil
}

// CreateEventParams contains validated parameters for persisting an event.
type CreateEventParams struct {
	OrganizationID uuid.UUID
	Title          string
	Description    string
	StartsAt       time.Time
	EndsAt         *time.Time
	LocationName   string
	LocationCity   string
	Address        string
	LocationTBD    bool
	CoverURL       string
	Preset         EventPreset
	IsFree         bool
	AccessPolicy   json.RawMessage
	Padel          json.RawMessage
	TicketTypes    []CreateTicketTypeParams
}

// CreateTicketTypeParams contains the persisted shape of one ticket payload row.
type CreateTicketTypeParams struct {
	Name              string
	PriceCents        int64
	TotalQuantity     *int32
	PublicAccess      bool
	ParticipantAccess bool
	PadelCategoryID   *int64
}

// ListEventsParams contains parameters for listing events.
type ListEventsParams struct {
	OrganizationID uuid.UUID
	Status         string // empty for all
	Search         string
	Sort           string // "recent", "upcoming" or "title"
	Limit          int32
	Offset         int32
}

// ListEventsResult contains one page of events.
type ListEventsResult struct {
	Events []Event
	Total  int64
	Limit  int32
	Offset int32
}

// HasMore returns true if there are more results available.
func (r *ListEventsResult) HasMore() bool {
	return int64(r.Offset+r.Limit) < r.Total
}

// TotalPages returns the total number of pages.
func (r *ListEventsResult) TotalPages() int {
	if r.Limit == 0 {
		return 1
	}
	pages := r.Total / int64(r.Limit)
	if r.Total%int64(r.Limit) > 0 {
		pages++
	}
	return int(pages)
}
