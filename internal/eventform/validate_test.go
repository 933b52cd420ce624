package eventform

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/DukeRupert/courtside/internal/domain"
)

var ready = domain.GatewayReadiness{PaymentsReady: true, EmailVerified: true}

func validState() State {
	s := DefaultState()
	s.Title = "Summer Party"
	s.StartsAt = "2026-11-01T20:00"
	s.LocationName = "Clube Central"
	s.LocationCity = "Lisboa"
	s.Tickets = []TicketRow{{Name: "Geral", Price: "10"}}
	return s
}

func validPadelState() State {
	s := validState()
	s.Preset = domain.EventPresetPadel
	s.Selection = Selection{1, 2}
	s.CategoryConfigs = CategoryConfigs{}.Reconcile(s.Selection)
	s.Tickets = ReconcilePadelTickets([]TicketRow{{Name: "Inscrição", Price: "20"}}, s.Selection, testCatalog(), "Inscrição")
	s.Padel = PadelSettings{ClubID: int64Ptr(10), ClubMode: ClubOwn, CourtIDs: []int64{1}}
	return s
}

func fields(issues []Issue) []FieldKey {
	out := make([]FieldKey, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.Field)
	}
	return out
}

func englishPolicy() Policy {
	p := DefaultPolicy()
	p.Language = language.English
	return p
}

func TestCollectFormErrors_Valid(t *testing.T) {
	assert.Empty(t, CollectFormErrors(validState(), testCatalog(), ready, DefaultPolicy()))
	assert.Empty(t, CollectFormErrors(validPadelState(), testCatalog(), ready, DefaultPolicy()))
}

func TestCollectFormErrors_MissingRequiredFields(t *testing.T) {
	issues := CollectFormErrors(DefaultState(), testCatalog(), ready, DefaultPolicy())

	require.GreaterOrEqual(t, len(issues), 3)
	assert.Equal(t, FieldTitle, issues[0].Field)
	assert.Equal(t, FieldStartsAt, issues[1].Field)
	assert.Equal(t, FieldLocationCity, issues[2].Field)
	assert.Equal(t, "Informe o título do evento.", issues[0].Message)
}

func TestCollectFormErrors_Order(t *testing.T) {
	s := DefaultState()
	s.Preset = domain.EventPresetPadel
	s.StartsAt = "2026-11-01T20:00"
	s.EndsAt = "2026-11-01T18:00"
	s.LocationMode = LocationSearch
	s.Padel.RegistrationOpensAt = "2026-10-10"
	s.Padel.RegistrationClosesAt = "2026-10-01"

	issues := CollectFormErrors(s, testCatalog(), ready, englishPolicy())

	assert.Equal(t, []FieldKey{
		FieldTitle,
		FieldLocationCity,
		FieldAddress,
		FieldEndsAt,
		FieldTickets,
		FieldPadel,
	}, fields(issues))
	assert.Equal(t, "Pick one of the suggested addresses.", issues[2].Message)
	assert.Equal(t, "Choose the club hosting the tournament.", issues[5].Message)
}

func TestCollectFormErrors_OneMessagePerField(t *testing.T) {
	s := validState()
	s.Tickets = []TicketRow{
		{Name: "", Price: "-1", TotalQuantity: "abc"},
		{Name: "B", Price: "0,10"},
	}

	issues := CollectFormErrors(s, testCatalog(), ready, englishPolicy())

	require.Len(t, issues, 1)
	assert.Equal(t, Issue{Field: FieldTickets, Message: "Ticket prices cannot be negative."}, issues[0])
}

func TestCollectFormErrors_MinimumPrice(t *testing.T) {
	s := validState()
	s.Tickets = []TicketRow{{Price: "0.50"}}

	issues := CollectFormErrors(s, testCatalog(), ready, englishPolicy())
	require.Len(t, issues, 1)
	assert.Equal(t, Issue{Field: FieldTickets, Message: "Paid tickets must cost at least 1.00."}, issues[0])

	issues = CollectFormErrors(s, testCatalog(), ready, DefaultPolicy())
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "no mínimo")

	p := englishPolicy()
	p.MinPaidPrice = 0.5
	assert.Equal(t, []FieldKey{FieldTickets}, fields(CollectFormErrors(s, testCatalog(), ready, p)),
		"name is still required")
}

func TestCollectFormErrors_Tickets(t *testing.T) {
	tests := []struct {
		name    string
		tickets []TicketRow
		want    string
	}{
		{"no rows", []TicketRow{{}}, "Add at least one ticket."},
		{"missing name", []TicketRow{{Price: "10"}}, "Every ticket needs a name."},
		{"bad capacity", []TicketRow{{Name: "A", Price: "10", TotalQuantity: "0"}}, "Ticket capacity must be a whole number greater than zero."},
		{"zero price is allowed", []TicketRow{{Name: "Cortesia", Price: "0"}}, ""},
		{"NaN reads as free", []TicketRow{{Name: "Cortesia", Price: "NaN"}}, ""},
		{"price above maximum", []TicketRow{{Name: "A", Price: "1e300"}}, "Ticket prices cannot exceed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validState()
			s.Tickets = tt.tickets

			issues := CollectFormErrors(s, testCatalog(), ready, englishPolicy())

			if tt.want == "" {
				assert.Empty(t, issues)
				return
			}
			require.Len(t, issues, 1)
			assert.Contains(t, issues[0].Message, tt.want)
		})
	}
}

func TestBuildPayload_NonFinitePrice(t *testing.T) {
	s := validState()
	s.Tickets = []TicketRow{{Name: "Geral", Price: "Inf"}}

	payload := BuildPayload(s, testCatalog(), englishPolicy())
	require.Len(t, payload.Tickets, 1)
	assert.Zero(t, payload.Tickets[0].Price)

	_, err := json.Marshal(payload)
	assert.NoError(t, err)
}

func TestCollectFormErrors_Gateway(t *testing.T) {
	notReady := domain.GatewayReadiness{PaymentsReady: true}

	issues := CollectFormErrors(validState(), testCatalog(), notReady, englishPolicy())
	require.Len(t, issues, 1)
	assert.Equal(t, FieldTickets, issues[0].Field)
	assert.Contains(t, issues[0].Message, "payment account")

	free := validState()
	free.IsFree = true
	assert.Empty(t, CollectFormErrors(free, testCatalog(), notReady, englishPolicy()))
}

func TestCollectFormErrors_Location(t *testing.T) {
	s := validState()
	s.LocationTBD = true
	s.LocationCity = ""
	s.LocationName = ""
	assert.Empty(t, CollectFormErrors(s, testCatalog(), ready, DefaultPolicy()))

	s = validState()
	s.LocationMode = LocationSearch
	s.LocationProviderID = "place-1"
	s.LocationName = ""
	assert.Empty(t, CollectFormErrors(s, testCatalog(), ready, DefaultPolicy()))
}

func TestCollectFormErrors_Padel(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*State)
		field  FieldKey
		want   string
	}{
		{
			name:   "no courts",
			mutate: func(s *State) { s.Padel.CourtIDs = nil },
			field:  FieldPadel,
			want:   "Choose at least one court.",
		},
		{
			name: "partner club staff",
			mutate: func(s *State) {
				s.Padel.ClubMode = ClubPartner
				s.Padel.AvailableStaff = 3
			},
			field: FieldPadel,
			want:  "Choose the staff working at the partner club.",
		},
		{
			name:   "partner club without staff",
			mutate: func(s *State) { s.Padel.ClubMode = ClubPartner },
		},
		{
			name: "no categories",
			mutate: func(s *State) {
				s.Selection = Selection{}
				s.Tickets = []TicketRow{{Name: "Inscrição", Price: "20"}}
			},
			field: FieldPadel,
			want:  "Choose at least one category.",
		},
		{
			name:   "missing category ticket",
			mutate: func(s *State) { s.Tickets = s.Tickets[:1] },
			field:  FieldTickets,
			want:   "Each category needs exactly one ticket.",
		},
		{
			name:   "duplicate category ticket",
			mutate: func(s *State) { s.Tickets = append(s.Tickets, s.Tickets[0]) },
			field:  FieldTickets,
			want:   "Two tickets point to the same category.",
		},
		{
			name:   "tag missing from name",
			mutate: func(s *State) { s.Tickets[1].Name = "Inscrição" },
			field:  FieldTickets,
			want:   `Ticket "Inscrição" must end with the category tag MX3.`,
		},
		{
			name: "registration window",
			mutate: func(s *State) {
				s.Padel.RegistrationOpensAt = "2026-10-10T10:00"
				s.Padel.RegistrationClosesAt = "2026-10-10T10:00"
			},
			field: FieldPadel,
			want:  "Registration must close after it opens.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validPadelState()
			tt.mutate(&s)

			issues := CollectFormErrors(s, testCatalog(), ready, englishPolicy())

			if tt.want == "" {
				assert.Empty(t, issues)
				return
			}
			require.Len(t, issues, 1)
			assert.Equal(t, Issue{Field: tt.field, Message: tt.want}, issues[0])
		})
	}
}

func TestValidationError(t *testing.T) {
	assert.NoError(t, ValidationError("Op", nil))

	err := ValidationError("EventService.Create", []Issue{
		{Field: FieldTitle, Message: "a"},
		{Field: FieldTickets, Message: "b"},
	})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	assert.Equal(t, map[string]string{"title": "a", "tickets": "b"}, ve.Fields())
}

func TestCollectFormErrors_EndDate(t *testing.T) {
	s := validState()
	s.EndsAt = "amanhã"

	issues := CollectFormErrors(s, testCatalog(), ready, englishPolicy())
	require.Len(t, issues, 1)
	assert.Equal(t, Issue{Field: FieldEndsAt, Message: "The end date is not valid."}, issues[0])

	s.EndsAt = "2026-11-01T23:00"
	assert.Empty(t, CollectFormErrors(s, testCatalog(), ready, englishPolicy()))
}
