package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/DukeRupert/courtside/internal/worker"
)

// ExportRunner is the part of the finance service the job needs.
type ExportRunner interface {
	RunExport(ctx context.Context, exportID uuid.UUID) error
}

// ExportSalesCSVHandler renders queued finance exports.
type ExportSalesCSVHandler struct {
	finance ExportRunner
	logger  *slog.Logger
}

// NewExportSalesCSVHandler creates a new handler for sales export jobs.
func NewExportSalesCSVHandler(finance ExportRunner, logger *slog.Logger) *ExportSalesCSVHandler {
	return &ExportSalesCSVHandler{finance: finance, logger: logger}
}

// Type returns the job type identifier.
func (h *ExportSalesCSVHandler) Type() string {
	return worker.JobTypeExportSalesCSV
}

// Handle executes the export job.
func (h *ExportSalesCSVHandler) Handle(ctx context.Context, payload []byte) error {
	var p worker.ExportSalesCSVPayload
	if err := decode(payload, &p); err != nil {
		return err
	}
	if p.ExportID == uuid.Nil {
		return worker.NewPermanentError(errors.New("payload without export_id"))
	}

	h.logger.Info("rendering sales export", "export_id", p.ExportID, "organization_id", p.OrganizationID)

	if err := h.finance.RunExport(ctx, p.ExportID); err != nil {
		return classify(err)
	}
	return nil
}
