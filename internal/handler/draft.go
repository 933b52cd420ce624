package handler

import (
	"log/slog"
	"net/http"

	"github.com/DukeRupert/courtside/internal/eventform"
	"github.com/DukeRupert/courtside/internal/service"
)

// DraftHandler stores in-progress forms server-side.
type DraftHandler struct {
	drafts service.DraftService
	logger *slog.Logger
}

// NewDraftHandler creates a new DraftHandler.
func NewDraftHandler(drafts service.DraftService, logger *slog.Logger) *DraftHandler {
	return &DraftHandler{drafts: drafts, logger: logger}
}

// RegisterRoutes registers draft routes.
func (h *DraftHandler) RegisterRoutes(mux *http.ServeMux, org func(http.Handler) http.Handler) {
	mux.Handle("GET /api/organizations/{orgID}/drafts/{key}", org(http.HandlerFunc(h.Show)))
	mux.Handle("PUT /api/organizations/{orgID}/drafts/{key}", org(http.HandlerFunc(h.Save)))
	mux.Handle("DELETE /api/organizations/{orgID}/drafts/{key}", org(http.HandlerFunc(h.Discard)))
}

type draftResponse struct {
	// Restored is false when the state is the default form.
	Restored bool            `json:"restored"`
	State    eventform.State `json:"state"`
}

// Show restores a draft. A missing or unreadable draft returns the default
// form with restored=false rather than an error.
func (h *DraftHandler) Show(w http.ResponseWriter, r *http.Request) {
	org, err := organization(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	st, ok, err := h.drafts.Restore(r.Context(), org.ID, r.PathValue("key"))
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, draftResponse{Restored: ok, State: st})
}

// Save stores the submitted form state.
func (h *DraftHandler) Save(w http.ResponseWriter, r *http.Request) {
	org, err := organization(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	var st eventform.State
	if err := decodeJSON(w, r, &st); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	if err := h.drafts.Save(r.Context(), org.ID, r.PathValue("key"), st); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Discard deletes the draft.
func (h *DraftHandler) Discard(w http.ResponseWriter, r *http.Request) {
	org, err := organization(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	if err := h.drafts.Discard(r.Context(), org.ID, r.PathValue("key")); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
