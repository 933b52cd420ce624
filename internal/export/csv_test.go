package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/courtside/internal/domain"
)

func TestWriteSalesCSV(t *testing.T) {
	sales := []domain.SaleRecord{
		{
			ID:             uuid.New(),
			EventTitle:     "Open de Verão, 2ª edição",
			TicketTypeName: "Inscrição · F4",
			BuyerEmail:     "ana@example.com",
			Quantity:       2,
			GrossCents:     5000,
			FeeCents:       245,
			CreatedAt:      time.Date(2026, 7, 1, 18, 30, 0, 0, time.UTC),
		},
		{
			ID:             uuid.New(),
			EventTitle:     "=HYPERLINK(\"x\")",
			TicketTypeName: "Geral",
			BuyerEmail:     "bob@example.com",
			Quantity:       1,
			GrossCents:     1000,
			CreatedAt:      time.Date(2026, 7, 2, 9, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSalesCSV(&buf, sales, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, SalesHeader, records[0])
	assert.Equal(t, []string{
		"2026-07-01T18:30:00Z",
		"Open de Verão, 2ª edição",
		"Inscrição · F4",
		"ana@example.com",
		"2",
		"50.00",
		"2.45",
		"47.55",
	}, records[1])
	assert.Equal(t, `'=HYPERLINK("x")`, records[2][1])
}

func TestWriteSalesCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSalesCSV(&buf, nil, time.UTC))
	assert.Equal(t, "Date,Event,Ticket,Buyer,Quantity,Gross,Fees,Net\n", buf.String())
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{1234, "12.34"},
		{-250, "-2.50"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCents(tt.cents))
		})
	}
}

func TestSalesFilename(t *testing.T) {
	now := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "sales-acme-30d-2026-10-17.csv", SalesFilename("acme", 30, now))
	assert.Equal(t, "sales-acme-all-2026-10-17.csv", SalesFilename("acme", 0, now))
}
