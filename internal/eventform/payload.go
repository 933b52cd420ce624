package eventform

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/DukeRupert/courtside/internal/domain"
)

// TicketPayload is one ticket type in the creation request.
type TicketPayload struct {
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	TotalQuantity     *int    `json:"totalQuantity"`
	PublicAccess      bool    `json:"publicAccess"`
	ParticipantAccess bool    `json:"participantAccess"`
	PadelCategoryID   *int64  `json:"padelCategoryId,omitempty"`
}

// AccessMode is the access policy of an event.
type AccessMode string

const (
	AccessPublic     AccessMode = "PUBLIC"
	AccessInviteOnly AccessMode = "INVITE_ONLY"
)

// AccessPolicy summarizes who can see the event's tickets.
type AccessPolicy struct {
	Mode              AccessMode `json:"mode"`
	PublicTicketCount int        `json:"publicTicketCount"`
}

// LocationPayload is the venue block of the creation request.
type LocationPayload struct {
	Name       string `json:"name,omitempty"`
	City       string `json:"city,omitempty"`
	Address    string `json:"address,omitempty"`
	TBD        bool   `json:"tbd"`
	ProviderID string `json:"providerId,omitempty"`
}

// PadelCategoryPayload is one selected category of a tournament.
type PadelCategoryPayload struct {
	CategoryID    int64  `json:"categoryId"`
	CapacityTeams *int   `json:"capacityTeams,omitempty"`
	Format        string `json:"format,omitempty"`
}

// PadelPayload is the tournament block of the creation request.
type PadelPayload struct {
	ClubID               *int64                 `json:"clubId,omitempty"`
	ClubMode             ClubMode               `json:"clubMode"`
	CourtIDs             []int64                `json:"courtIds"`
	StaffIDs             []int64                `json:"staffIds"`
	Format               string                 `json:"format,omitempty"`
	RuleSetID            *int64                 `json:"ruleSetId,omitempty"`
	DefaultCategoryID    *int64                 `json:"defaultCategoryId,omitempty"`
	Categories           []PadelCategoryPayload `json:"categories"`
	RegistrationOpensAt  string                 `json:"registrationOpensAt,omitempty"`
	RegistrationClosesAt string                 `json:"registrationClosesAt,omitempty"`
}

// EventPayload is the body sent to the event creation endpoint.
type EventPayload struct {
	Title        string             `json:"title"`
	Description  string             `json:"description,omitempty"`
	StartsAt     string             `json:"startsAt"`
	EndsAt       string             `json:"endsAt,omitempty"`
	Location     LocationPayload    `json:"location"`
	CoverURL     string             `json:"coverUrl,omitempty"`
	Preset       domain.EventPreset `json:"preset"`
	IsFree       bool               `json:"isFree"`
	Tickets      []TicketPayload    `json:"tickets"`
	AccessPolicy AccessPolicy       `json:"accessPolicy"`
	Padel        *PadelPayload      `json:"padel,omitempty"`
}

// MaxTicketPrice is the largest price a ticket may carry.
const MaxTicketPrice = 1_000_000.0

// ParsePrice parses a decimal price written with either '.' or ',' as the
// separator. Unparseable or non-finite input yields 0.
func ParsePrice(s string) float64 {
	s = strings.ReplaceAll(trim(s), ",", ".")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseCapacity parses a positive integer capacity. Anything else means
// unlimited and yields nil.
func ParseCapacity(s string) *int {
	v, err := strconv.Atoi(trim(s))
	if err != nil || v <= 0 {
		return nil
	}
	return &v
}

// BuildTicketsPayload maps the form state to the ticket list of the request.
func BuildTicketsPayload(s State, cat Catalog, p Policy) []TicketPayload {
	if s.IsFree {
		return freeTicketsPayload(s, cat, p)
	}

	out := make([]TicketPayload, 0, len(s.Tickets))
	for _, row := range s.Tickets {
		var categoryID *int64
		if s.IsPadel() && row.PadelCategoryID != nil && s.Selection.Contains(*row.PadelCategoryID) {
			categoryID = copyInt64(row.PadelCategoryID)
		}

		name := trim(row.Name)
		if categoryID != nil {
			name = cat.TaggedName(name, *categoryID)
		}
		if name == "" {
			continue
		}

		out = append(out, TicketPayload{
			Name:              name,
			Price:             ParsePrice(row.Price),
			TotalQuantity:     ParseCapacity(row.TotalQuantity),
			PublicAccess:      row.IsPublic(),
			ParticipantAccess: true,
			PadelCategoryID:   categoryID,
		})
	}
	return out
}

func freeTicketsPayload(s State, cat Catalog, p Policy) []TicketPayload {
	rows := FreeRows(s, cat, p)
	out := make([]TicketPayload, 0, len(rows))
	for _, row := range rows {
		out = append(out, TicketPayload{
			Name:              row.Name,
			Price:             0,
			TotalQuantity:     ParseCapacity(row.TotalQuantity),
			PublicAccess:      row.IsPublic(),
			ParticipantAccess: true,
			PadelCategoryID:   copyInt64(row.PadelCategoryID),
		})
	}
	return out
}

// BuildAccessPolicy derives the access policy from the ticket list. An event
// with no public ticket is invite only.
func BuildAccessPolicy(tickets []TicketPayload) AccessPolicy {
	policy := AccessPolicy{Mode: AccessInviteOnly}
	for _, t := range tickets {
		if t.PublicAccess {
			policy.PublicTicketCount++
		}
	}
	if policy.PublicTicketCount > 0 || len(tickets) == 0 {
		policy.Mode = AccessPublic
	}
	return policy
}

// BuildPayload maps the full form state to the creation request.
func BuildPayload(s State, cat Catalog, p Policy) EventPayload {
	tickets := BuildTicketsPayload(s, cat, p)

	payload := EventPayload{
		Title:       trim(s.Title),
		Description: trim(s.Description),
		StartsAt:    p.normalizeDate(s.StartsAt),
		EndsAt:      p.normalizeDate(s.EndsAt),
		Location: LocationPayload{
			TBD: s.LocationTBD,
		},
		CoverURL:     trim(s.CoverURL),
		Preset:       s.Preset,
		IsFree:       s.IsFree,
		Tickets:      tickets,
		AccessPolicy: BuildAccessPolicy(tickets),
	}
	if payload.Preset == "" {
		payload.Preset = domain.EventPresetDefault
	}
	if !s.LocationTBD {
		payload.Location.Name = trim(s.LocationName)
		payload.Location.City = trim(s.LocationCity)
		payload.Location.Address = trim(s.Address)
		if s.LocationMode == LocationSearch {
			payload.Location.ProviderID = trim(s.LocationProviderID)
		}
	}

	if s.IsPadel() {
		payload.Padel = buildPadelPayload(s, p)
	}
	return payload
}

func buildPadelPayload(s State, p Policy) *PadelPayload {
	padel := &PadelPayload{
		ClubID:               copyInt64(s.Padel.ClubID),
		ClubMode:             s.Padel.ClubMode,
		CourtIDs:             append([]int64{}, s.Padel.CourtIDs...),
		StaffIDs:             append([]int64{}, s.Padel.StaffIDs...),
		Format:               trim(s.Padel.Format),
		RuleSetID:            copyInt64(s.Padel.RuleSetID),
		Categories:           make([]PadelCategoryPayload, 0, len(s.Selection)),
		RegistrationOpensAt:  p.normalizeDate(s.Padel.RegistrationOpensAt),
		RegistrationClosesAt: p.normalizeDate(s.Padel.RegistrationClosesAt),
	}
	if padel.ClubMode == "" {
		padel.ClubMode = ClubOwn
	}
	if id, ok := s.Selection.Default(); ok {
		padel.DefaultCategoryID = &id
	}
	for _, id := range s.Selection {
		c := PadelCategoryPayload{
			CategoryID: id,
			Format:     s.CategoryConfigs.FormatFor(id, padel.Format),
		}
		// Paid capacity lives on the ticket row.
		if s.IsFree {
			c.CapacityTeams = ParseCapacity(s.CategoryConfigs[id].CapacityTeams)
		}
		padel.Categories = append(padel.Categories, c)
	}
	return padel
}

// normalizeDate rewrites a parseable date as RFC 3339 and passes anything else
// through trimmed.
func (p Policy) normalizeDate(value string) string {
	t, ok := p.ParseDateTime(value)
	if !ok {
		return trim(value)
	}
	return t.Format(time.RFC3339)
}
