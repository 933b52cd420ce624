package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/courtside/internal/domain"
	"github.com/DukeRupert/courtside/internal/repository"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	since := now.AddDate(0, 0, -30)
	first, second := uuid.New(), uuid.New()

	summary := summarize([]repository.SummarizeSalesByEventRow{
		{EventID: first, EventTitle: "Open", TicketsSold: 10, GrossCents: 20000, FeeCents: 1000},
		{EventID: second, EventTitle: "Party", TicketsSold: 4, GrossCents: 4000, FeeCents: 250},
	}, &since, now)

	assert.Equal(t, int64(14), summary.TicketsSold)
	assert.Equal(t, int64(24000), summary.GrossCents)
	assert.Equal(t, int64(1250), summary.FeeCents)
	assert.Equal(t, int64(22750), summary.NetCents)
	assert.Equal(t, &since, summary.From)
	assert.Equal(t, now, summary.To)
	require.Len(t, summary.Events, 2)
	assert.Equal(t, int64(19000), summary.Events[0].NetCents)
	assert.Equal(t, second, summary.Events[1].EventID)
}

func TestSummarize_Empty(t *testing.T) {
	summary := summarize(nil, nil, time.Now())

	assert.NotNil(t, summary.Events)
	assert.Empty(t, summary.Events)
	assert.Zero(t, summary.NetCents)
	assert.Nil(t, summary.From)
}

func TestSinceDays(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, sinceDays(now, 0))
	assert.Nil(t, sinceDays(now, -5))

	since := sinceDays(now, 7)
	require.NotNil(t, since)
	assert.Equal(t, time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC), *since)
}

func TestValidateRangeDays(t *testing.T) {
	tests := []struct {
		days    int
		wantErr bool
	}{
		{0, false},
		{7, false},
		{366, false},
		{-1, true},
		{367, true},
	}
	for _, tt := range tests {
		err := validateRangeDays("op", tt.days)
		if tt.wantErr {
			assert.Equal(t, domain.EINVALID, domain.ErrorCode(err), "days=%d", tt.days)
		} else {
			assert.NoError(t, err, "days=%d", tt.days)
		}
	}
}
