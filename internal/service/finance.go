package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/DukeRupert/courtside/internal/domain"
	"github.com/DukeRupert/courtside/internal/export"
	"github.com/DukeRupert/courtside/internal/metrics"
	"github.com/DukeRupert/courtside/internal/repository"
	"github.com/DukeRupert/courtside/internal/storage"
	"github.com/DukeRupert/courtside/internal/worker"
)

const exportURLExpiry = 15 * time.Minute

// FinanceService defines the interface for sales reporting.
type FinanceService interface {
	// Summary aggregates sales over the last rangeDays days (0 for all time).
	Summary(ctx context.Context, orgID uuid.UUID, rangeDays int) (*domain.FinanceSummary, error)

	// WriteSalesCSV streams the sales export to w.
	WriteSalesCSV(ctx context.Context, w io.Writer, orgID uuid.UUID, rangeDays int) error

	// RequestExport queues a CSV export rendered by the worker.
	RequestExport(ctx context.Context, orgID uuid.UUID, rangeDays int) (*domain.FinanceExport, error)

	// GetExport returns an export with a download URL once it has completed.
	GetExport(ctx context.Context, id, orgID uuid.UUID) (*domain.FinanceExport, error)

	// ListExports returns the most recent exports.
	ListExports(ctx context.Context, orgID uuid.UUID) ([]domain.FinanceExport, error)

	// RunExport renders a queued export into storage. It is called by the
	// export_sales_csv job.
	RunExport(ctx context.Context, exportID uuid.UUID) error
}

type financeService struct {
	queries  *repository.Queries
	storage  storage.Storage
	location *time.Location
	now      func() time.Time
	logger   *slog.Logger
}

// NewFinanceService creates a new FinanceService. Dates in exports are
// written in loc.
func NewFinanceService(queries *repository.Queries, store storage.Storage, loc *time.Location, logger *slog.Logger) FinanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &financeService{
		queries:  queries,
		storage:  store,
		location: loc,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *financeService) Summary(ctx context.Context, orgID uuid.UUID, rangeDays int) (*domain.FinanceSummary, error) {
	const op = "FinanceService.Summary"

	if err := validateRangeDays(op, rangeDays); err != nil {
		return nil, err
	}
	now := s.now()
	since := sinceDays(now, rangeDays)

	rows, err := s.queries.SummarizeSalesByEvent(ctx, repository.SummarizeSalesByEventParams{
		OrganizationID: orgID,
		Since:          toNullTime(since),
	})
	if err != nil {
		s.logger.Error("failed to summarize sales", "error", err, "op", op, "organization_id", orgID)
		return nil, domain.Internal(err, op, "Failed to load sales")
	}

	return summarize(rows, since, now), nil
}

// summarize totals per-event rows into a summary.
func summarize(rows []repository.SummarizeSalesByEventRow, since *time.Time, now time.Time) *domain.FinanceSummary {
	summary := &domain.FinanceSummary{
		From:   since,
		To:     now,
		Events: make([]domain.EventFinance, 0, len(rows)),
	}
	for _, r := range rows {
		summary.TicketsSold += r.TicketsSold
		summary.GrossCents += r.GrossCents
		summary.FeeCents += r.FeeCents
		summary.Events = append(summary.Events, domain.EventFinance{
			EventID:     r.EventID,
			EventTitle:  r.EventTitle,
			TicketsSold: r.TicketsSold,
			GrossCents:  r.GrossCents,
			FeeCents:    r.FeeCents,
			NetCents:    r.GrossCents - r.FeeCents,
		})
	}
	summary.NetCents = summary.GrossCents - summary.FeeCents
	return summary
}

func (s *financeService) WriteSalesCSV(ctx context.Context, w io.Writer, orgID uuid.UUID, rangeDays int) error {
	const op = "FinanceService.WriteSalesCSV"

	if err := validateRangeDays(op, rangeDays); err != nil {
		return err
	}
	sales, err := s.listSales(ctx, orgID, rangeDays)
	if err != nil {
		metrics.FinanceExports.WithLabelValues("stream", "error").Inc()
		return domain.Internal(err, op, "Failed to load sales")
	}
	if err := export.WriteSalesCSV(w, sales, s.location); err != nil {
		metrics.FinanceExports.WithLabelValues("stream", "error").Inc()
		return domain.Internal(err, op, "Failed to write export")
	}
	metrics.FinanceExports.WithLabelValues("stream", "ok").Inc()
	return nil
}

func (s *financeService) RequestExport(ctx context.Context, orgID uuid.UUID, rangeDays int) (*domain.FinanceExport, error) {
	const op = "FinanceService.RequestExport"

	if err := validateRangeDays(op, rangeDays); err != nil {
		return nil, err
	}

	row, err := s.queries.CreateFinanceExport(ctx, repository.CreateFinanceExportParams{
		OrganizationID: orgID,
		RangeDays:      int32(rangeDays),
	})
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to create export")
	}

	if _, err := worker.EnqueueExportSalesCSV(ctx, s.queries, row.ID, orgID); err != nil {
		s.logger.Error("failed to enqueue export", "error", err, "op", op, "export_id", row.ID)
		_ = s.queries.MarkFinanceExportFailed(ctx, repository.MarkFinanceExportFailedParams{
			ID:           row.ID,
			ErrorMessage: toNullString("could not be queued"),
		})
		return nil, domain.Internal(err, op, "Failed to queue export")
	}

	exp := repoExportToDomain(row)
	s.logger.Info("finance export requested", "export_id", exp.ID, "organization_id", orgID, "range_days", rangeDays)
	return &exp, nil
}

func (s *financeService) GetExport(ctx context.Context, id, orgID uuid.UUID) (*domain.FinanceExport, error) {
	const op = "FinanceService.GetExport"

	row, err := s.queries.GetFinanceExportByIDAndOrg(ctx, repository.GetFinanceExportByIDAndOrgParams{
		ID:             id,
		OrganizationID: orgID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "export", id.String())
		}
		return nil, domain.Internal(err, op, "Failed to retrieve export")
	}

	exp := repoExportToDomain(row)
	if exp.Status == domain.ExportStatusCompleted && exp.StorageKey != "" {
		url, err := s.storage.URL(ctx, exp.StorageKey, exportURLExpiry)
		if err != nil {
			return nil, domain.Internal(err, op, "Failed to create download link")
		}
		exp.DownloadURL = url
	}
	return &exp, nil
}

func (s *financeService) ListExports(ctx context.Context, orgID uuid.UUID) ([]domain.FinanceExport, error) {
	const op = "FinanceService.ListExports"

	rows, err := s.queries.ListFinanceExports(ctx, repository.ListFinanceExportsParams{
		OrganizationID: orgID,
		Limit:          20,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to list exports")
	}

	exports := make([]domain.FinanceExport, 0, len(rows))
	for _, r := range rows {
		exports = append(exports, repoExportToDomain(r))
	}
	return exports, nil
}

func (s *financeService) RunExport(ctx context.Context, exportID uuid.UUID) error {
	const op = "FinanceService.RunExport"

	row, err := s.queries.GetFinanceExport(ctx, exportID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFound(op, "export", exportID.String())
		}
		return domain.Internal(err, op, "Failed to retrieve export")
	}
	if domain.ExportStatus(row.Status) == domain.ExportStatusCompleted {
		return nil
	}

	key, err := s.renderExport(ctx, row)
	if err != nil {
		metrics.FinanceExports.WithLabelValues("job", "error").Inc()
		if markErr := s.queries.MarkFinanceExportFailed(ctx, repository.MarkFinanceExportFailedParams{
			ID:           row.ID,
			ErrorMessage: toNullString(err.Error()),
		}); markErr != nil {
			s.logger.Error("failed to mark export failed", "error", markErr, "op", op, "export_id", row.ID)
		}
		return domain.Internal(err, op, "Failed to render export")
	}

	if err := s.queries.MarkFinanceExportCompleted(ctx, repository.MarkFinanceExportCompletedParams{
		ID:         row.ID,
		StorageKey: sql.NullString{String: key, Valid: true},
	}); err != nil {
		return domain.Internal(err, op, "Failed to complete export")
	}

	metrics.FinanceExports.WithLabelValues("job", "ok").Inc()
	s.logger.Info("finance export completed", "export_id", row.ID, "key", key)
	return nil
}

func (s *financeService) renderExport(ctx context.Context, row repository.FinanceExport) (string, error) {
	sales, err := s.listSales(ctx, row.OrganizationID, int(row.RangeDays))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := export.WriteSalesCSV(&buf, sales, s.location); err != nil {
		return "", err
	}

	slug := row.OrganizationID.String()
	if org, err := s.queries.GetOrganizationByID(ctx, row.OrganizationID); err == nil {
		slug = org.Slug
	}

	key := storage.ExportKey(row.OrganizationID, row.ID)
	if err := s.storage.Put(ctx, key, &buf, storage.PutOptions{
		ContentType:  "text/csv; charset=utf-8",
		Overwrite:    true,
		DownloadName: export.SalesFilename(slug, int(row.RangeDays), s.now().In(s.location)),
	}); err != nil {
		return "", err
	}
	return key, nil
}

func (s *financeService) listSales(ctx context.Context, orgID uuid.UUID, rangeDays int) ([]domain.SaleRecord, error) {
	rows, err := s.queries.ListSalesByOrganization(ctx, repository.ListSalesByOrganizationParams{
		OrganizationID: orgID,
		Since:          toNullTime(sinceDays(s.now(), rangeDays)),
	})
	if err != nil {
		return nil, err
	}

	sales := make([]domain.SaleRecord, 0, len(rows))
	for _, r := range rows {
		sales = append(sales, domain.SaleRecord{
			ID:             r.ID,
			EventID:        r.EventID,
			EventTitle:     r.EventTitle,
			TicketTypeName: r.TicketTypeName,
			BuyerEmail:     r.BuyerEmail,
			Quantity:       r.Quantity,
			GrossCents:     r.GrossCents,
			FeeCents:       r.FeeCents,
			CreatedAt:      r.CreatedAt,
		})
	}
	return sales, nil
}

func sinceDays(now time.Time, days int) *time.Time {
	if days <= 0 {
		return nil
	}
	t := now.AddDate(0, 0, -days)
	return &t
}

func validateRangeDays(op string, days int) error {
	if days < 0 || days > 366 {
		return domain.Invalid(op, "Range must be between 0 and 366 days")
	}
	return nil
}
