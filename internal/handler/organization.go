package handler

import (
	"log/slog"
	"net/http"

	"github.com/DukeRupert/courtside/internal/domain"
	"github.com/DukeRupert/courtside/internal/service"
)

// OrganizationHandler serves organization settings: modules and the payment
// account used for payouts.
type OrganizationHandler struct {
	orgs   service.OrganizationService
	logger *slog.Logger
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(orgs service.OrganizationService, logger *slog.Logger) *OrganizationHandler {
	return &OrganizationHandler{orgs: orgs, logger: logger}
}

// RegisterRoutes registers settings and payout routes.
func (h *OrganizationHandler) RegisterRoutes(mux *http.ServeMux, org func(http.Handler) http.Handler) {
	mux.Handle("GET /api/organizations/{orgID}", org(http.HandlerFunc(h.Show)))
	mux.Handle("PUT /api/organizations/{orgID}/modules", org(http.HandlerFunc(h.UpdateModules)))
	mux.Handle("GET /api/organizations/{orgID}/payouts", org(http.HandlerFunc(h.Payouts)))
	mux.Handle("POST /api/organizations/{orgID}/payouts/link", org(http.HandlerFunc(h.PayoutsLink)))
}

// Show returns the organization with its gateway readiness.
func (h *OrganizationHandler) Show(w http.ResponseWriter, r *http.Request) {
	org, err := organization(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, toOrganizationResponse(org))
}

type updateModulesRequest struct {
	Modules []domain.Module `json:"modules"`
}

// UpdateModules replaces the enabled modules.
func (h *OrganizationHandler) UpdateModules(w http.ResponseWriter, r *http.Request) {
	org, err := organization(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	var req updateModulesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	updated, err := h.orgs.UpdateModules(r.Context(), org.ID, req.Modules)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, toOrganizationResponse(updated))
}

// Payouts refreshes the payment account status from Stripe and returns the
// organization. A Stripe failure falls back to the cached status.
func (h *OrganizationHandler) Payouts(w http.ResponseWriter, r *http.Request) {
	org, err := organization(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	if org.StripeAccountID != "" {
		refreshed, err := h.orgs.RefreshPaymentStatus(r.Context(), org.ID)
		if err != nil {
			h.logger.Warn("using cached payment status", "error", err, "organization_id", org.ID)
		} else {
			org = refreshed
		}
	}

	resp := toOrganizationResponse(org)
	if !resp.Readiness.PaymentsReady {
		readiness, err := h.orgs.Readiness(r.Context(), org.ID)
		if err != nil {
			ErrorResponse(w, r, h.logger, err)
			return
		}
		resp.Readiness = readiness
	}
	WriteJSON(w, http.StatusOK, resp)
}

type linkResponse struct {
	URL string `json:"url"`
	// Kind is "onboarding" until the account can take payments, then
	// "dashboard".
	Kind string `json:"kind"`
}

// PayoutsLink returns where the organizer should go next: Stripe onboarding
// while the account is incomplete, the Express dashboard afterwards.
func (h *OrganizationHandler) PayoutsLink(w http.ResponseWriter, r *http.Request) {
	org, err := organization(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	if org.Readiness().PaymentsReady {
		url, err := h.orgs.PayoutsLink(r.Context(), org.ID)
		if err != nil {
			ErrorResponse(w, r, h.logger, err)
			return
		}
		WriteJSON(w, http.StatusOK, linkResponse{URL: url, Kind: "dashboard"})
		return
	}

	url, err := h.orgs.OnboardingLink(r.Context(), org.ID)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, linkResponse{URL: url, Kind: "onboarding"})
}
