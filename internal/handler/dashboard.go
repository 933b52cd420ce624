package handler

import (
	"log/slog"
	"net/http"

	"github.com/DukeRupert/courtside/internal/dashboard"
	"github.com/DukeRupert/courtside/internal/domain"
	"github.com/DukeRupert/courtside/internal/service"
)

// DashboardHandler resolves the dashboard view and stores its preferences.
type DashboardHandler struct {
	dashboards service.DashboardService
	logger     *slog.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboards service.DashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards, logger: logger}
}

// RegisterRoutes registers dashboard routes.
func (h *DashboardHandler) RegisterRoutes(mux *http.ServeMux, org func(http.Handler) http.Handler) {
	mux.Handle("GET /api/organizations/{orgID}/dashboard", org(http.HandlerFunc(h.Show)))
	mux.Handle("PUT /api/organizations/{orgID}/dashboard/preferences", org(http.HandlerFunc(h.SavePreferences)))
	mux.Handle("PUT /api/organizations/{orgID}/dashboard/checklist", org(http.HandlerFunc(h.SaveChecklist)))
}

type filtersResponse struct {
	Tab     dashboard.Tab   `json:"tab"`
	Section string          `json:"section"`
	Status  string          `json:"status"`
	Range   dashboard.Range `json:"range"`
	Search  string          `json:"q"`
	Sort    dashboard.Sort  `json:"sort"`
	Page    int             `json:"page"`
	// Query is the canonical query string, defaults omitted.
	Query string `json:"query"`
}

type dashboardResponse struct {
	Filters   filtersResponse         `json:"filters"`
	Checklist dashboard.Checklist     `json:"checklist"`
	Readiness domain.GatewayReadiness `json:"readiness"`
	Modules   []domain.Module         `json:"modules"`
}

// Show resolves the dashboard for the current query string.
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	org, err := organization(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	view, err := h.dashboards.Resolve(r.Context(), org.ID, r.URL.Query())
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	f := view.Filters
	modules := view.Modules
	if modules == nil {
		modules = []domain.Module{}
	}
	WriteJSON(w, http.StatusOK, dashboardResponse{
		Filters: filtersResponse{
			Tab:     f.Tab,
			Section: f.Section,
			Status:  f.Status,
			Range:   f.Range,
			Search:  f.Search,
			Sort:    f.Sort,
			Page:    f.Page,
			Query:   f.Query().Encode(),
		},
		Checklist: view.Checklist,
		Readiness: view.Readiness,
		Modules:   modules,
	})
}

// SavePreferences stores the sticky filters.
func (h *DashboardHandler) SavePreferences(w http.ResponseWriter, r *http.Request) {
	org, err := organization(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	var prefs dashboard.Preferences
	if err := decodeJSON(w, r, &prefs); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	if err := h.dashboards.SavePreferences(r.Context(), org.ID, prefs); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SaveChecklist stores the onboarding checklist flags.
func (h *DashboardHandler) SaveChecklist(w http.ResponseWriter, r *http.Request) {
	org, err := organization(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	var checklist dashboard.Checklist
	if err := decodeJSON(w, r, &checklist); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	if err := h.dashboards.SaveChecklist(r.Context(), org.ID, checklist); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
