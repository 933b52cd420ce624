package handler

import (
	"log/slog"
	"net/http"

	"github.com/DukeRupert/courtside/internal/service"
)

// PadelHandler serves the tournament catalog used by the wizard.
type PadelHandler struct {
	padel  service.PadelService
	logger *slog.Logger
}

// NewPadelHandler creates a new PadelHandler.
func NewPadelHandler(padel service.PadelService, logger *slog.Logger) *PadelHandler {
	return &PadelHandler{padel: padel, logger: logger}
}

// RegisterRoutes registers padel routes.
func (h *PadelHandler) RegisterRoutes(mux *http.ServeMux, org func(http.Handler) http.Handler) {
	mux.Handle("GET /api/organizations/{orgID}/padel/catalog", org(http.HandlerFunc(h.Catalog)))
}

// Catalog returns clubs, courts, staff, categories and formats.
func (h *PadelHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	org, err := organization(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	catalog, err := h.padel.Catalog(r.Context(), org.ID)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, catalog)
}
