package handler

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/DukeRupert/courtside/internal/domain"
	"github.com/DukeRupert/courtside/internal/service"
)

type eventResponse struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description,omitempty"`
	StartsAt        time.Time       `json:"startsAt"`
	EndsAt          *time.Time      `json:"endsAt,omitempty"`
	LocationName    string          `json:"locationName,omitempty"`
	LocationCity    string          `json:"locationCity,omitempty"`
	Address         string          `json:"address,omitempty"`
	LocationTBD     bool            `json:"locationTbd"`
	CoverURL        string          `json:"coverUrl,omitempty"`
	Preset          string          `json:"preset"`
	IsFree          bool            `json:"isFree"`
	Status          string          `json:"status"`
	AccessPolicy    json.RawMessage `json:"accessPolicy,omitempty"`
	Padel           json.RawMessage `json:"padel,omitempty"`
	TicketTypeCount int             `json:"ticketTypeCount"`
	TicketsSold     int64           `json:"ticketsSold"`
	GrossCents      int64           `json:"grossCents"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func toEventResponse(e domain.Event) eventResponse {
	return eventResponse{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		StartsAt:        e.StartsAt,
		EndsAt:          e.EndsAt,
		LocationName:    e.LocationName,
		LocationCity:    e.LocationCity,
		Address:         e.Address,
		LocationTBD:     e.LocationTBD,
		CoverURL:        e.CoverURL,
		Preset:          string(e.Preset),
		IsFree:          e.IsFree,
		Status:          string(e.Status),
		AccessPolicy:    e.AccessPolicy,
		Padel:           e.Padel,
		TicketTypeCount: e.TicketTypeCount,
		TicketsSold:     e.TicketsSold,
		GrossCents:      e.GrossCents,
		CreatedAt:       e.CreatedAt,
	}
}

type ticketTypeResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	PriceCents        int64     `json:"priceCents"`
	TotalQuantity     *int32    `json:"totalQuantity"`
	PublicAccess      bool      `json:"publicAccess"`
	ParticipantAccess bool      `json:"participantAccess"`
	PadelCategoryID   *int64    `json:"padelCategoryId,omitempty"`
	Position          int32     `json:"position"`
}

type eventDetailResponse struct {
	Event       eventResponse        `json:"event"`
	TicketTypes []ticketTypeResponse `json:"ticketTypes"`
}

func toEventDetailResponse(d *service.EventDetail) eventDetailResponse {
	resp := eventDetailResponse{
		Event:       toEventResponse(d.Event),
		TicketTypes: make([]ticketTypeResponse, 0, len(d.TicketTypes)),
	}
	for _, t := range d.TicketTypes {
		resp.TicketTypes = append(resp.TicketTypes, ticketTypeResponse{
			ID:                t.ID,
			Name:              t.Name,
			PriceCents:        t.PriceCents,
			TotalQuantity:     t.TotalQuantity,
			PublicAccess:      t.PublicAccess,
			ParticipantAccess: t.ParticipantAccess,
			PadelCategoryID:   t.PadelCategoryID,
			Position:          t.Position,
		})
	}
	return resp
}

type organizationResponse struct {
	ID            uuid.UUID               `json:"id"`
	Slug          string                  `json:"slug"`
	Name          string                  `json:"name"`
	Modules       []domain.Module         `json:"modules"`
	Readiness     domain.GatewayReadiness `json:"readiness"`
	StatusChecked *time.Time              `json:"statusCheckedAt,omitempty"`
}

func toOrganizationResponse(o *domain.Organization) organizationResponse {
	modules := o.Modules
	if modules == nil {
		modules = []domain.Module{}
	}
	return organizationResponse{
		ID:            o.ID,
		Slug:          o.Slug,
		Name:          o.Name,
		Modules:       modules,
		Readiness:     o.Readiness(),
		StatusChecked: o.StripeStatusChecked,
	}
}

type exportResponse struct {
	ID          uuid.UUID  `json:"id"`
	Status      string     `json:"status"`
	RangeDays   int32      `json:"rangeDays"`
	Error       string     `json:"error,omitempty"`
	DownloadURL string     `json:"downloadUrl,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func toExportResponse(e domain.FinanceExport) exportResponse {
	return exportResponse{
		ID:          e.ID,
		Status:      string(e.Status),
		RangeDays:   e.RangeDays,
		Error:       e.ErrorMessage,
		DownloadURL: e.DownloadURL,
		CreatedAt:   e.CreatedAt,
		CompletedAt: e.CompletedAt,
	}
}

type coverResponse struct {
	ID           uuid.UUID `json:"id"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	ContentType  string    `json:"contentType"`
	Width        int32     `json:"width"`
	Height       int32     `json:"height"`
	SizeBytes    int64     `json:"sizeBytes"`
}

func toCoverResponse(c *domain.CoverImage) coverResponse {
	return coverResponse{
		ID:           c.ID,
		URL:          c.URL,
		ThumbnailURL: c.ThumbnailURL,
		ContentType:  c.ContentType,
		Width:        c.Width,
		Height:       c.Height,
		SizeBytes:    c.SizeBytes,
	}
}
