package handler

// This file implements the Stripe webhook handler for connected account
// events.
//
// Route:
//   - POST /webhooks/stripe -> HandleStripeWebhook
//
// This route is PUBLIC (no organization middleware) because Stripe calls it
// directly. Authentication is via the Stripe webhook signature verification.

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/DukeRupert/courtside/internal/billing"
	"github.com/DukeRupert/courtside/internal/domain"
	"github.com/DukeRupert/courtside/internal/metrics"
	"github.com/DukeRupert/courtside/internal/service"
)

// WebhookHandler handles incoming webhook events from Stripe.
type WebhookHandler struct {
	billing billing.Service
	orgs    service.OrganizationService
	logger  *slog.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
// billingService may be nil when Stripe is not configured.
func NewWebhookHandler(billingService billing.Service, orgs service.OrganizationService, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		billing: billingService,
		orgs:    orgs,
		logger:  logger,
	}
}

// RegisterRoutes registers webhook routes on the provided mux.
func (h *WebhookHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /webhooks/stripe", h.HandleStripeWebhook)
}

// HandleStripeWebhook processes incoming Stripe webhook events.
func (h *WebhookHandler) HandleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	if h.billing == nil {
		h.logger.Warn("stripe webhook received but billing is not configured")
		w.WriteHeader(http.StatusOK)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 65536))
	if err != nil {
		h.logger.Error("failed to read webhook body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	event, err := h.billing.VerifyWebhookSignature(body, r.Header.Get("Stripe-Signature"))
	if err != nil {
		h.logger.Warn("webhook signature verification failed", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	h.logger.Info("stripe webhook received", "type", event.Type, "id", event.ID)
	metrics.StripeWebhooks.WithLabelValues(string(event.Type)).Inc()

	switch string(event.Type) {
	case billing.EventAccountUpdated:
		status, err := billing.ParseAccountEvent(event)
		if err != nil {
			h.logger.Error("failed to parse account event", "error", err, "id", event.ID)
			break
		}
		if err := h.orgs.HandleAccountUpdated(r.Context(), status); err != nil {
			h.logger.Error("failed to store account status", "error", err, "account_id", status.AccountID)
			// Ask Stripe to redeliver only when storage failed.
			if domain.ErrorCode(err) == domain.EINTERNAL {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
		}
	default:
		h.logger.Debug("unhandled webhook event type", "type", event.Type)
	}

	w.WriteHeader(http.StatusOK)
}
