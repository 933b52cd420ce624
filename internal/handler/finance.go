package handler

import (
	"bytes"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/DukeRupert/courtside/internal/dashboard"
	"github.com/DukeRupert/courtside/internal/domain"
	"github.com/DukeRupert/courtside/internal/export"
	"github.com/DukeRupert/courtside/internal/service"
)

// FinanceHandler serves sales summaries and CSV exports.
type FinanceHandler struct {
	finance service.FinanceService
	logger  *slog.Logger
}

// NewFinanceHandler creates a new FinanceHandler.
func NewFinanceHandler(finance service.FinanceService, logger *slog.Logger) *FinanceHandler {
	return &FinanceHandler{finance: finance, logger: logger}
}

// RegisterRoutes registers finance routes.
func (h *FinanceHandler) RegisterRoutes(mux *http.ServeMux, org func(http.Handler) http.Handler) {
	mux.Handle("GET /api/organizations/{orgID}/finance", org(http.HandlerFunc(h.Summary)))
	mux.Handle("GET /api/organizations/{orgID}/finance/export.csv", org(http.HandlerFunc(h.ExportCSV)))
	mux.Handle("POST /api/organizations/{orgID}/finance/exports", org(http.HandlerFunc(h.RequestExport)))
	mux.Handle("GET /api/organizations/{orgID}/finance/exports", org(http.HandlerFunc(h.ListExports)))
	mux.Handle("GET /api/organizations/{orgID}/finance/exports/{exportID}", org(http.HandlerFunc(h.GetExport)))
}

// rangeDays reads the dashboard range parameter (7d, 30d, 90d, all). It
// defaults to 30 days.
func rangeDays(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("range")
	if raw == "" {
		return dashboard.Range30Days.Days(), nil
	}
	rng, ok := dashboard.ParseRange(raw)
	if !ok {
		return 0, domain.Invalid("handler.rangeDays", "Unknown range: "+raw)
	}
	return rng.Days(), nil
}

// Summary returns totals per event for the range.
func (h *FinanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	org, err := organization(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	days, err := rangeDays(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	summary, err := h.finance.Summary(r.Context(), org.ID, days)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

// ExportCSV streams the sales export as a download. The CSV is buffered so
// that a failure can still be reported as a JSON error.
func (h *FinanceHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	org, err := organization(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	days, err := rangeDays(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	var buf bytes.Buffer
	if err := h.finance.WriteSalesCSV(r.Context(), &buf, org.ID, days); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	filename := export.SalesFilename(org.Slug, days, time.Now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// RequestExport queues a background export.
func (h *FinanceHandler) RequestExport(w http.ResponseWriter, r *http.Request) {
	org, err := organization(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	days, err := rangeDays(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	exp, err := h.finance.RequestExport(r.Context(), org.ID, days)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusAccepted, toExportResponse(*exp))
}

// ListExports returns the recent exports.
func (h *FinanceHandler) ListExports(w http.ResponseWriter, r *http.Request) {
	org, err := organization(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	exports, err := h.finance.ListExports(r.Context(), org.ID)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	resp := make([]exportResponse, 0, len(exports))
	for _, e := range exports {
		resp = append(resp, toExportResponse(e))
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"exports": resp})
}

// GetExport returns an export; completed exports carry a download URL.
func (h *FinanceHandler) GetExport(w http.ResponseWriter, r *http.Request) {
	org, err := organization(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	exportID, err := pathUUID(r, "exportID")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	exp, err := h.finance.GetExport(r.Context(), exportID, org.ID)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, toExportResponse(*exp))
}
