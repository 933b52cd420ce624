// Package eventform implements the event and tournament creation form as an
// explicit state container.
//
// All derived state (category configuration, ticket rows, submission payload,
// validation issues) is computed by pure functions over State so it can be
// exercised without any UI. Form wraps a State and runs the reconciliation
// handlers synchronously after every mutating operation.
package eventform

import (
	"github.com/DukeRupert/courtside/internal/domain"
)

// FieldKey identifies a form field that can carry a validation message.
type FieldKey string

const (
	FieldTitle        FieldKey = "title"
	FieldDescription  FieldKey = "description"
	FieldStartsAt     FieldKey = "startsAt"
	FieldEndsAt       FieldKey = "endsAt"
	FieldLocationName FieldKey = "locationName"
	FieldLocationCity FieldKey = "locationCity"
	FieldAddress      FieldKey = "address"
	FieldTickets      FieldKey = "tickets"
	FieldPadel        FieldKey = "padel"
)

// Issue is one validation message for a field.
type Issue struct {
	Field   FieldKey `json:"field"`
	Message string   `json:"message"`
}

// FormErrors maps fields to their current message.
type FormErrors map[FieldKey]string

// LocationMode selects how the venue is entered.
type LocationMode string

const (
	LocationManual LocationMode = "manual"
	LocationSearch LocationMode = "search"
)

// ClubMode tells whether the tournament runs at the organization's own club or
// at a partner club.
type ClubMode string

const (
	ClubOwn     ClubMode = "own"
	ClubPartner ClubMode = "partner"
)

// TicketRow is one editable ticket or inscription tier. Numeric fields are kept
// as the text the organizer typed.
type TicketRow struct {
	Name            string `json:"name"`
	Price           string `json:"price"`
	TotalQuantity   string `json:"totalQuantity"`
	PublicAccess    *bool  `json:"publicAccess,omitempty"`
	PadelCategoryID *int64 `json:"padelCategoryId,omitempty"`
}

// IsPublic reports the row visibility, defaulting to public.
func (r TicketRow) IsPublic() bool {
	return r.PublicAccess == nil || *r.PublicAccess
}

func (r TicketRow) isBlank() bool {
	return trim(r.Name) == "" && trim(r.Price) == "" && trim(r.TotalQuantity) == ""
}

// FreeTicket holds the settings of the generic free ticket.
type FreeTicket struct {
	Name         string `json:"name"`
	Capacity     string `json:"capacity"`
	PublicAccess bool   `json:"publicAccess"`
}

// PadelSettings holds the tournament-specific part of the form.
type PadelSettings struct {
	ClubID               *int64   `json:"clubId,omitempty"`
	ClubMode             ClubMode `json:"clubMode,omitempty"`
	CourtIDs             []int64  `json:"courtIds,omitempty"`
	StaffIDs             []int64  `json:"staffIds,omitempty"`
	AvailableStaff       int      `json:"availableStaff,omitempty"`
	Format               string   `json:"format,omitempty"`
	RuleSetID            *int64   `json:"ruleSetId,omitempty"`
	RegistrationOpensAt  string   `json:"registrationOpensAt,omitempty"`
	RegistrationClosesAt string   `json:"registrationClosesAt,omitempty"`
}

// State is the complete, serializable state of the creation form.
type State struct {
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	StartsAt           string             `json:"startsAt"`
	EndsAt             string             `json:"endsAt"`
	LocationMode       LocationMode       `json:"locationMode"`
	LocationName       string             `json:"locationName"`
	LocationCity       string             `json:"locationCity"`
	Address            string             `json:"address"`
	LocationTBD        bool               `json:"locationTbd"`
	LocationProviderID string             `json:"locationProviderId,omitempty"`
	CoverURL           string             `json:"coverUrl,omitempty"`
	Preset             domain.EventPreset `json:"preset"`
	IsFree             bool               `json:"isFree"`
	FreeTicket         FreeTicket         `json:"freeTicket"`
	Tickets            []TicketRow        `json:"tickets"`
	Selection          Selection          `json:"selectedCategoryIds"`
	CategoryConfigs    CategoryConfigs    `json:"categoryConfigs"`
	Padel              PadelSettings      `json:"padel"`
}

// DefaultState returns the state of an untouched form.
func DefaultState() State {
	return State{
		LocationMode:    LocationManual,
		Preset:          domain.EventPresetDefault,
		FreeTicket:      FreeTicket{PublicAccess: true},
		Tickets:         []TicketRow{{}},
		Selection:       Selection{},
		CategoryConfigs: CategoryConfigs{},
		Padel:           PadelSettings{ClubMode: ClubOwn},
	}
}

// IsPadel reports whether the form is in padel tournament mode.
func (s State) IsPadel() bool {
	return s.Preset == domain.EventPresetPadel
}

// PaidPadel reports whether ticket rows are driven by the category selection.
func (s State) PaidPadel() bool {
	return s.IsPadel() && !s.IsFree
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := s
	out.Tickets = make([]TicketRow, len(s.Tickets))
	for i, row := range s.Tickets {
		out.Tickets[i] = row.clone()
	}
	out.Selection = append(Selection{}, s.Selection...)
	out.CategoryConfigs = s.CategoryConfigs.clone()
	out.Padel.CourtIDs = append([]int64(nil), s.Padel.CourtIDs...)
	out.Padel.StaffIDs = append([]int64(nil), s.Padel.StaffIDs...)
	out.Padel.ClubID = copyInt64(s.Padel.ClubID)
	out.Padel.RuleSetID = copyInt64(s.Padel.RuleSetID)
	return out
}

func (r TicketRow) clone() TicketRow {
	out := r
	out.PublicAccess = copyBool(r.PublicAccess)
	out.PadelCategoryID = copyInt64(r.PadelCategoryID)
	return out
}

func copyBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

func copyInt64(i *int64) *int64 {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
