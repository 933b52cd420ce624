package eventform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/courtside/internal/domain"
)

func TestForm_PaidPadelFollowsSelection(t *testing.T) {
	f := New(testCatalog(), DefaultPolicy())
	f.SetPreset(domain.EventPresetPadel)

	assert.True(t, f.ToggleCategory(1))
	assert.True(t, f.ToggleCategory(2))
	require.NoError(t, f.UpdateTicket(0, TicketPatch{Price: strPtr("30")}))
	assert.True(t, f.ToggleCategory(3))

	s := f.State()
	require.Len(t, s.Tickets, 3)
	assert.Equal(t, []int64{1, 2, 3}, categoryIDs(s.Tickets))
	assert.Equal(t, "30", s.Tickets[2].Price, "synthesized from the first row")
	assert.Len(t, s.CategoryConfigs, 3)

	assert.False(t, f.ToggleCategory(1))
	s = f.State()
	assert.Equal(t, []int64{2, 3}, categoryIDs(s.Tickets))
	assert.NotContains(t, s.CategoryConfigs, int64(1))

	assert.ErrorIs(t, f.AddTicket(), ErrTicketRowsLocked)
	assert.ErrorIs(t, f.RemoveTicket(0), ErrTicketRowsLocked)
	assert.ErrorIs(t, f.UpdateTicket(0, TicketPatch{PublicAccess: boolPtr(false)}), ErrTicketFieldLocked)
	assert.ErrorIs(t, f.UpdateTicket(9, TicketPatch{}), ErrTicketIndex)

	require.NoError(t, f.UpdateTicket(0, TicketPatch{Name: strPtr("Dupla")}))
	assert.Equal(t, "Dupla · MX3", f.State().Tickets[0].Name)
}

func TestForm_ModeSwitchKeepsTemplate(t *testing.T) {
	f := New(testCatalog(), DefaultPolicy())
	require.NoError(t, f.UpdateTicket(0, TicketPatch{Name: strPtr("Geral"), Price: strPtr("15")}))
	require.NoError(t, f.AddTicket())
	require.NoError(t, f.RemoveTicket(1))

	f.ToggleCategory(1)
	f.SetPreset(domain.EventPresetPadel)

	s := f.State()
	require.Len(t, s.Tickets, 1)
	assert.Equal(t, "Geral · F4", s.Tickets[0].Name)
	assert.Equal(t, "15", s.Tickets[0].Price)

	f.SetFree(true)
	assert.ErrorIs(t, f.UpdateTicket(0, TicketPatch{}), ErrTicketRowsLocked)
	assert.Len(t, f.Rows(), 1)
}

func TestForm_CategoryConfig(t *testing.T) {
	f := New(testCatalog(), DefaultPolicy())
	f.SetPreset(domain.EventPresetPadel)
	f.SetFree(true)
	f.ToggleCategory(1)
	f.ToggleCategory(2)

	f.SetCategoryConfig(1, ConfigPatch{CapacityTeams: strPtr("16")})
	f.SetCategoryConfig(99, ConfigPatch{CapacityTeams: strPtr("4")})
	f.ApplyCapacityToAll()
	f.SetTournamentFormat("AMERICANO")
	f.ApplyFormatToAll()
	f.SetCategoryConfig(2, ConfigPatch{Format: strPtr("")})

	s := f.State()
	assert.Len(t, s.CategoryConfigs, 2)
	assert.Equal(t, "16", s.CategoryConfigs[2].CapacityTeams)
	assert.Equal(t, "AMERICANO", *s.CategoryConfigs[1].Format)
	assert.Nil(t, s.CategoryConfigs[2].Format)

	payload := f.Payload()
	require.Len(t, payload.Tickets, 2)
	assert.Equal(t, 16, *payload.Tickets[1].TotalQuantity)
}

func TestForm_ClearsErrorsReactively(t *testing.T) {
	f := New(testCatalog(), DefaultPolicy())
	f.Validate()

	errs := f.Errors()
	require.Contains(t, errs, FieldTitle)
	require.Contains(t, errs, FieldStartsAt)

	f.SetTitle("Summer Party")
	errs = f.Errors()
	assert.NotContains(t, errs, FieldTitle)
	assert.Contains(t, errs, FieldStartsAt)

	// Edits never add errors.
	f.SetTitle("")
	assert.NotContains(t, f.Errors(), FieldTitle)
}

func TestForm_ApplyReadiness(t *testing.T) {
	f := New(testCatalog(), DefaultPolicy())
	f.ApplyReadiness(domain.GatewayReadiness{PaymentsReady: false, EmailVerified: true, OnboardingURL: "https://connect.example/onboard"})

	assert.True(t, f.State().IsFree)
	require.NotNil(t, f.Banner())
	assert.Equal(t, "https://connect.example/onboard", f.Banner().OnboardingURL)

	f.DismissBanner()
	assert.Nil(t, f.Banner())

	f.ApplyReadiness(domain.GatewayReadiness{PaymentsReady: true, EmailVerified: true})
	assert.Nil(t, f.Banner())
	assert.True(t, f.State().IsFree, "readiness never switches back to paid")
}

func TestForm_HydrateOnce(t *testing.T) {
	f := New(testCatalog(), DefaultPolicy())
	draft := validState()

	assert.True(t, f.Hydrate(draft))
	assert.Equal(t, "Summer Party", f.State().Title)
	assert.True(t, f.Hydrated())

	other := validState()
	other.Title = "Other"
	assert.False(t, f.Hydrate(other))
	assert.Equal(t, "Summer Party", f.Snapshot().Title)
}

func TestForm_ConfirmLocation(t *testing.T) {
	f := New(testCatalog(), DefaultPolicy())
	f.SetLocationMode(LocationSearch)
	f.ConfirmLocation("place-1", "Clube Central", "Lisboa", "Rua A, 1")

	s := f.State()
	assert.Equal(t, "place-1", s.LocationProviderID)
	assert.Equal(t, "Lisboa", s.LocationCity)

	f.SetAddress("Rua B")
	assert.Empty(t, f.State().LocationProviderID)
}

func strPtr(v string) *string { return &v }
