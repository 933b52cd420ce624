package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/DukeRupert/courtside/internal/repository"
)

// Job type constants - these must match the JobHandler.Type() values
const (
	JobTypeProcessCoverImage = "process_cover_image"
	JobTypeExportSalesCSV    = "export_sales_csv"
)

// Priority constants for job scheduling
const (
	PriorityLow    = 0
	PriorityNormal = 10
	PriorityHigh   = 20
)

// ProcessCoverImagePayload is the payload for cover thumbnail jobs.
type ProcessCoverImagePayload struct {
	CoverID        uuid.UUID `json:"cover_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
}

// ExportSalesCSVPayload is the payload for finance export jobs.
type ExportSalesCSVPayload struct {
	ExportID       uuid.UUID `json:"export_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
}

// EnqueueOption is a functional option for customizing job enqueue parameters.
type EnqueueOption func(*repository.EnqueueJobParams)

// WithPriority sets the job priority.
func WithPriority(priority int32) EnqueueOption {
	return func(p *repository.EnqueueJobParams) {
		p.Priority = priority
	}
}

// WithMaxAttempts sets the maximum number of retry attempts.
func WithMaxAttempts(attempts int32) EnqueueOption {
	return func(p *repository.EnqueueJobParams) {
		p.MaxAttempts = attempts
	}
}

// WithDelay schedules the job to run after a delay.
func WithDelay(delay time.Duration) EnqueueOption {
	return func(p *repository.EnqueueJobParams) {
		p.ScheduledAt = time.Now().Add(delay)
	}
}

// NewEnqueueParams builds the insert parameters for a job. It is split from
// EnqueueJob so callers can inspect what would be queued.
func NewEnqueueParams(jobType string, payload interface{}, opts ...EnqueueOption) (repository.EnqueueJobParams, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return repository.EnqueueJobParams{}, fmt.Errorf("marshal payload: %w", err)
	}

	params := repository.EnqueueJobParams{
		JobType:     jobType,
		Payload:     payloadJSON,
		Priority:    PriorityNormal,
		MaxAttempts: 3,
		ScheduledAt: time.Now(),
	}
	for _, opt := range opts {
		opt(&params)
	}
	return params, nil
}

// EnqueueJob is a generic helper for enqueuing jobs with custom options.
func EnqueueJob(
	ctx context.Context,
	queries *repository.Queries,
	jobType string,
	payload interface{},
	opts ...EnqueueOption,
) (repository.Job, error) {
	params, err := NewEnqueueParams(jobType, payload, opts...)
	if err != nil {
		return repository.Job{}, err
	}

	job, err := queries.EnqueueJob(ctx, params)
	if err != nil {
		return repository.Job{}, fmt.Errorf("enqueue job: %w", err)
	}

	return job, nil
}

// EnqueueProcessCoverImage enqueues thumbnail generation for an uploaded cover.
func EnqueueProcessCoverImage(
	ctx context.Context,
	queries *repository.Queries,
	coverID uuid.UUID,
	orgID uuid.UUID,
	opts ...EnqueueOption,
) (repository.Job, error) {
	payload := ProcessCoverImagePayload{
		CoverID:        coverID,
		OrganizationID: orgID,
	}

	return EnqueueJob(ctx, queries, JobTypeProcessCoverImage, payload, opts...)
}

// EnqueueExportSalesCSV enqueues the CSV rendering of a finance export.
// Exports are user-initiated, so they run ahead of cover processing.
func EnqueueExportSalesCSV(
	ctx context.Context,
	queries *repository.Queries,
	exportID uuid.UUID,
	orgID uuid.UUID,
	opts ...EnqueueOption,
) (repository.Job, error) {
	payload := ExportSalesCSVPayload{
		ExportID:       exportID,
		OrganizationID: orgID,
	}

	opts = append([]EnqueueOption{WithPriority(PriorityHigh)}, opts...)
	return EnqueueJob(ctx, queries, JobTypeExportSalesCSV, payload, opts...)
}
