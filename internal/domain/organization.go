package domain

import (
	"time"

	"github.com/google/uuid"
)

// Module is a product area an organization can switch on or off.
type Module string

const (
	ModuleTickets    Module = "tickets"
	ModulePadel      Module = "padel"
	ModuleBookings   Module = "bookings"
	ModulePromotions Module = "promotions"
	ModuleFinance    Module = "finance"
)

// AllModules lists every known module in display order.
var AllModules = []Module{ModuleTickets, ModulePadel, ModuleBookings, ModulePromotions, ModuleFinance}

// IsValid returns true if the module is known.
func (m Module) IsValid() bool {
	for _, known := range AllModules {
		if known == m {
			return true
		}
	}
	return false
}

// Organization is a tenant of the platform.
type Organization struct {
	ID                  uuid.UUID
	Slug                string
	Name                string
	OfficialEmail       string
	EmailVerified       bool
	StripeAccountID     string
	ChargesEnabled      bool
	PayoutsEnabled      bool
	StripeStatusChecked *time.Time
	Modules             []Module
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// HasModule returns true when the module is enabled.
func (o *Organization) HasModule(m Module) bool {
	for _, enabled := range o.Modules {
		if enabled == m {
			return true
		}
	}
	return false
}

// GatewayReadiness reports whether an organization may sell paid tickets.
type GatewayReadiness struct {
	PaymentsReady bool   `json:"paymentsReady"`
	EmailVerified bool   `json:"emailVerified"`
	OnboardingURL string `json:"onboardingUrl,omitempty"`
}

// Ready returns true when both the payment account and the official email are verified.
func (g GatewayReadiness) Ready() bool {
	return g.PaymentsReady && g.EmailVerified
}

// Readiness derives the gateway readiness from cached organization state.
func (o *Organization) Readiness() GatewayReadiness {
	return GatewayReadiness{
		PaymentsReady: o.StripeAccountID != "" && o.ChargesEnabled && o.PayoutsEnabled,
		EmailVerified: o.EmailVerified,
	}
}
