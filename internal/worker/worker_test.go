package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/courtside/internal/repository"
)

func TestConfig_Validate(t *testing.T) {
	valid := DefaultConfig()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid default config", mutate: func(*Config) {}},
		{name: "concurrency too low", mutate: func(c *Config) { c.Concurrency = 0 }, wantErr: true},
		{name: "concurrency too high", mutate: func(c *Config) { c.Concurrency = 101 }, wantErr: true},
		{name: "poll interval too short", mutate: func(c *Config) { c.PollInterval = 500 * time.Millisecond }, wantErr: true},
		{name: "stale threshold too short", mutate: func(c *Config) { c.StaleJobThreshold = 30 * time.Second }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{Concurrency: 4}.WithDefaults()

	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, DefaultConfig().PollInterval, cfg.PollInterval)
	assert.NoError(t, cfg.Validate())
}

func TestIsPermanent(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"permanent error", NewPermanentError(context.Canceled), true},
		{"wrapped permanent error", errors.Join(errors.New("ctx"), NewPermanentError(io.EOF)), true},
		{"regular error", context.Canceled, false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPermanent(tt.err))
		})
	}
}

func TestNewEnqueueParams(t *testing.T) {
	exportID := uuid.New()
	orgID := uuid.New()

	params, err := NewEnqueueParams(JobTypeExportSalesCSV,
		ExportSalesCSVPayload{ExportID: exportID, OrganizationID: orgID},
		WithPriority(PriorityHigh), WithMaxAttempts(5), WithDelay(time.Minute))
	require.NoError(t, err)

	assert.Equal(t, JobTypeExportSalesCSV, params.JobType)
	assert.Equal(t, int32(PriorityHigh), params.Priority)
	assert.Equal(t, int32(5), params.MaxAttempts)
	assert.WithinDuration(t, time.Now().Add(time.Minute), params.ScheduledAt, 5*time.Second)

	var payload ExportSalesCSVPayload
	require.NoError(t, json.Unmarshal(params.Payload, &payload))
	assert.Equal(t, exportID, payload.ExportID)
	assert.Equal(t, orgID, payload.OrganizationID)

	_, err = NewEnqueueParams(JobTypeProcessCoverImage, make(chan int))
	assert.Error(t, err)
}

func TestWillRetry(t *testing.T) {
	assert.True(t, willRetry(repository.Job{Attempts: 0, MaxAttempts: 3}))
	assert.True(t, willRetry(repository.Job{Attempts: 1, MaxAttempts: 3}))
	assert.False(t, willRetry(repository.Job{Attempts: 2, MaxAttempts: 3}))
}

type recordingHandler struct {
	jobType string
	got     []byte
	err     error
}

func (h *recordingHandler) Type() string { return h.jobType }

func (h *recordingHandler) Handle(ctx context.Context, payload []byte) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("missing job deadline")
	}
	h.got = payload
	return h.err
}

func TestWorker_ExecuteJob(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w, err := New(nil, nil, Config{}, logger)
	require.NoError(t, err)

	h := &recordingHandler{jobType: JobTypeProcessCoverImage}
	w.Register(h)
	w.Register(&recordingHandler{jobType: JobTypeExportSalesCSV})
	assert.Equal(t, []string{JobTypeExportSalesCSV, JobTypeProcessCoverImage}, w.JobTypes())

	err = w.executeJob(context.Background(), repository.Job{JobType: JobTypeProcessCoverImage, Payload: []byte(`{"a":1}`)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(h.got))

	err = w.executeJob(context.Background(), repository.Job{JobType: "unknown"})
	assert.True(t, IsPermanent(err))
}
