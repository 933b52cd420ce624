package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/DukeRupert/courtside/internal/worker"
)

// CoverProcessor is the part of the cover service the job needs.
type CoverProcessor interface {
	ProcessThumbnail(ctx context.Context, coverID uuid.UUID) error
}

// ProcessCoverImageHandler generates the thumbnail of an uploaded cover.
type ProcessCoverImageHandler struct {
	covers CoverProcessor
	logger *slog.Logger
}

// NewProcessCoverImageHandler creates a new handler for cover thumbnail jobs.
func NewProcessCoverImageHandler(covers CoverProcessor, logger *slog.Logger) *ProcessCoverImageHandler {
	return &ProcessCoverImageHandler{covers: covers, logger: logger}
}

// Type returns the job type identifier.
func (h *ProcessCoverImageHandler) Type() string {
	return worker.JobTypeProcessCoverImage
}

// Handle executes the thumbnail job.
func (h *ProcessCoverImageHandler) Handle(ctx context.Context, payload []byte) error {
	var p worker.ProcessCoverImagePayload
	if err := decode(payload, &p); err != nil {
		return err
	}
	if p.CoverID == uuid.Nil {
		return worker.NewPermanentError(errors.New("payload without cover_id"))
	}

	h.logger.Info("processing cover image", "cover_id", p.CoverID, "organization_id", p.OrganizationID)

	if err := h.covers.ProcessThumbnail(ctx, p.CoverID); err != nil {
		return classify(err)
	}
	return nil
}
