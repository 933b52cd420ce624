package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/courtside/internal/domain"
	"github.com/DukeRupert/courtside/internal/eventform"
)

func TestDecode_NormalizesNumbers(t *testing.T) {
	data := []byte(`{
		"title": "Summer Party",
		"startsAt": "2026-07-01T20:00",
		"tickets": [
			{"name": "Geral", "price": 10, "totalQuantity": 100},
			{"name": "VIP", "price": "25,50", "totalQuantity": " 20.0 ", "publicAccess": false}
		],
		"freeTicket": {"capacity": 50},
		"categoryConfigs": {"3": {"capacityTeams": 8}, "x": {"capacityTeams": "1"}},
		"selectedCategoryIds": [3, 3, 1]
	}`)

	s, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, "Summer Party", s.Title)
	require.Len(t, s.Tickets, 2)
	assert.Equal(t, "10", s.Tickets[0].Price)
	assert.Equal(t, "100", s.Tickets[0].TotalQuantity)
	assert.Equal(t, "25,50", s.Tickets[1].Price)
	assert.Equal(t, "20", s.Tickets[1].TotalQuantity)
	assert.False(t, s.Tickets[1].IsPublic())

	assert.Equal(t, "50", s.FreeTicket.Capacity)
	assert.True(t, s.FreeTicket.PublicAccess)
	assert.Equal(t, eventform.Selection{3, 1}, s.Selection)
	assert.Equal(t, eventform.CategoryConfigs{3: {CapacityTeams: "8"}}, s.CategoryConfigs)

	// Fields absent from the blob keep their defaults.
	assert.Equal(t, domain.EventPresetDefault, s.Preset)
	assert.Equal(t, eventform.LocationManual, s.LocationMode)
	assert.Equal(t, eventform.ClubOwn, s.Padel.ClubMode)
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"not json", "summer party"},
		{"array", `[{"title": "x"}]`},
		{"truncated", `{"title": "Summer`},
		{"wrong type", `{"title": {"nested": true}}`},
		{"bad quantity type", `{"tickets": [{"totalQuantity": [1]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestNormalizeQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12", "12"},
		{" 12 ", "12"},
		{"12.0", "12"},
		{"12,0", "12"},
		{"2.5", "2.5"},
		{"abc", "abc"},
		{"", ""},
		{"1e30", "1e30"},
		{"-1e30", "-1e30"},
		{"1e3", "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeQuantity(tt.in))
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	format := "AMERICANO"
	s := eventform.DefaultState()
	s.Title = "Open de Verão"
	s.Preset = domain.EventPresetPadel
	s.Selection = eventform.Selection{2, 1}
	s.CategoryConfigs = eventform.CategoryConfigs{1: {CapacityTeams: "8", Format: &format}, 2: {}}
	s.Padel.CourtIDs = []int64{4, 5}

	data, err := Encode(s)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}
