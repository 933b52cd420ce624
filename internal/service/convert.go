package service

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/sqlc-dev/pqtype"

	"github.com/DukeRupert/courtside/internal/domain"
	"github.com/DukeRupert/courtside/internal/repository"
)

// toNullString converts a string to sql.NullString.
func toNullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{
		String: s,
		Valid:  s != "",
	}
}

// fromNullString converts sql.NullString to string.
func fromNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(nt sql.NullTime) *time.Time {
	if nt.Valid {
		return &nt.Time
	}
	return nil
}

func toNullInt32(i *int32) sql.NullInt32 {
	if i == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: *i, Valid: true}
}

func fromNullInt32(ni sql.NullInt32) *int32 {
	if ni.Valid {
		return &ni.Int32
	}
	return nil
}

func toNullInt64(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}

func fromNullInt64(ni sql.NullInt64) *int64 {
	if ni.Valid {
		return &ni.Int64
	}
	return nil
}

// toNullRawMessage stores empty and JSON null documents as SQL NULL.
func toNullRawMessage(raw json.RawMessage) pqtype.NullRawMessage {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return pqtype.NullRawMessage{}
	}
	return pqtype.NullRawMessage{RawMessage: raw, Valid: true}
}

func fromNullRawMessage(n pqtype.NullRawMessage) json.RawMessage {
	if n.Valid {
		return n.RawMessage
	}
	return nil
}

// =============================================================================
// Repository -> domain
// =============================================================================

func repoOrganizationToDomain(o repository.Organization) domain.Organization {
	modules := make([]domain.Module, 0, len(o.Modules))
	for _, m := range o.Modules {
		modules = append(modules, domain.Module(m))
	}
	return domain.Organization{
		ID:                  o.ID,
		Slug:                o.Slug,
		Name:                o.Name,
		OfficialEmail:       o.OfficialEmail,
		EmailVerified:       o.EmailVerified,
		StripeAccountID:     fromNullString(o.StripeAccountID),
		ChargesEnabled:      o.ChargesEnabled,
		PayoutsEnabled:      o.PayoutsEnabled,
		StripeStatusChecked: fromNullTime(o.StripeStatusCheckedAt),
		Modules:             modules,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}

func repoEventToDomain(e repository.Event) domain.Event {
	return domain.Event{
		ID:             e.ID,
		OrganizationID: e.OrganizationID,
		Title:          e.Title,
		Description:    e.Description,
		StartsAt:       e.StartsAt,
		EndsAt:         fromNullTime(e.EndsAt),
		LocationName:   e.LocationName,
		LocationCity:   e.LocationCity,
		Address:        e.Address,
		LocationTBD:    e.LocationTbd,
		CoverURL:       e.CoverUrl,
		Preset:         domain.EventPreset(e.Preset),
		IsFree:         e.IsFree,
		Status:         domain.EventStatus(e.Status),
		AccessPolicy:   e.AccessPolicy,
		Padel:          fromNullRawMessage(e.Padel),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func repoTicketTypeToDomain(t repository.TicketType) domain.TicketType {
	return domain.TicketType{
		ID:                t.ID,
		EventID:           t.EventID,
		Name:              t.Name,
		PriceCents:        t.PriceCents,
		TotalQuantity:     fromNullInt32(t.TotalQuantity),
		PublicAccess:      t.PublicAccess,
		ParticipantAccess: t.ParticipantAccess,
		PadelCategoryID:   fromNullInt64(t.PadelCategoryID),
		Position:          t.Position,
		CreatedAt:         t.CreatedAt,
	}
}

func repoPadelCategoryToDomain(c repository.PadelCategory) domain.PadelCategory {
	return domain.PadelCategory{
		ID:                c.ID,
		OrganizationID:    c.OrganizationID,
		Label:             c.Label,
		GenderRestriction: domain.GenderRestriction(fromNullString(c.GenderRestriction)),
		MinLevel:          fromNullString(c.MinLevel),
		MaxLevel:          fromNullString(c.MaxLevel),
		CreatedAt:         c.CreatedAt,
	}
}

func repoCoverToDomain(c repository.CoverImage) domain.CoverImage {
	cover := domain.CoverImage{
		ID:               c.ID,
		OrganizationID:   c.OrganizationID,
		StorageKey:       c.StorageKey,
		ThumbnailKey:     fromNullString(c.ThumbnailKey),
		OriginalFilename: c.OriginalFilename,
		ContentType:      c.ContentType,
		SizeBytes:        c.SizeBytes,
		CreatedAt:        c.CreatedAt,
	}
	if c.Width.Valid {
		cover.Width = c.Width.Int32
	}
	if c.Height.Valid {
		cover.Height = c.Height.Int32
	}
	return cover
}

func repoExportToDomain(e repository.FinanceExport) domain.FinanceExport {
	return domain.FinanceExport{
		ID:             e.ID,
		OrganizationID: e.OrganizationID,
		Status:         domain.ExportStatus(e.Status),
		RangeDays:      e.RangeDays,
		StorageKey:     fromNullString(e.StorageKey),
		ErrorMessage:   fromNullString(e.ErrorMessage),
		CreatedAt:      e.CreatedAt,
		CompletedAt:    fromNullTime(e.CompletedAt),
	}
}
