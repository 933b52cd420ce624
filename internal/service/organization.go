package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/DukeRupert/courtside/internal/billing"
	"github.com/DukeRupert/courtside/internal/domain"
	"github.com/DukeRupert/courtside/internal/repository"
)

// OrganizationConfig holds the settings of the payment onboarding flow.
type OrganizationConfig struct {
	// BaseURL is the public URL of the dashboard, used for Stripe redirects.
	BaseURL string

	// AccountCountry is the ISO country of newly created connected accounts.
	AccountCountry string
}

// OrganizationService defines the interface for tenant and gateway operations.
type OrganizationService interface {
	// Get returns an organization by ID.
	Get(ctx context.Context, id uuid.UUID) (*domain.Organization, error)

	// GetBySlug returns an organization by its URL slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Organization, error)

	// Readiness reports whether the organization may sell paid tickets. When it
	// may not, the result carries an onboarding link when one can be created.
	Readiness(ctx context.Context, orgID uuid.UUID) (domain.GatewayReadiness, error)

	// OnboardingLink returns a Stripe onboarding URL, creating the connected
	// account on first use.
	OnboardingLink(ctx context.Context, orgID uuid.UUID) (string, error)

	// PayoutsLink returns a login link to the Stripe Express dashboard.
	PayoutsLink(ctx context.Context, orgID uuid.UUID) (string, error)

	// RefreshPaymentStatus pulls the connected account status from Stripe.
	RefreshPaymentStatus(ctx context.Context, orgID uuid.UUID) (*domain.Organization, error)

	// UpdateModules replaces the set of enabled modules.
	UpdateModules(ctx context.Context, orgID uuid.UUID, modules []domain.Module) (*domain.Organization, error)

	// HandleAccountUpdated stores the status carried by an account.updated webhook.
	HandleAccountUpdated(ctx context.Context, status billing.AccountStatus) error
}

type organizationService struct {
	queries *repository.Queries
	billing billing.Service
	config  OrganizationConfig
	logger  *slog.Logger
}

// NewOrganizationService creates a new OrganizationService. billingSvc may be
// nil when payments are not configured; readiness then relies on cached state.
func NewOrganizationService(queries *repository.Queries, billingSvc billing.Service, config OrganizationConfig, logger *slog.Logger) OrganizationService {
	if config.AccountCountry == "" {
		config.AccountCountry = "PT"
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	return &organizationService{
		queries: queries,
		billing: billingSvc,
		config:  config,
		logger:  logger,
	}
}

func (s *organizationService) Get(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	const op = "OrganizationService.Get"

	row, err := s.queries.GetOrganizationByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "organization", id.String())
		}
		s.logger.Error("failed to get organization", "error", err, "op", op, "organization_id", id)
		return nil, domain.Internal(err, op, "Failed to retrieve organization")
	}

	org := repoOrganizationToDomain(row)
	return &org, nil
}

func (s *organizationService) GetBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	const op = "OrganizationService.GetBySlug"

	row, err := s.queries.GetOrganizationBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "organization", slug)
		}
		return nil, domain.Internal(err, op, "Failed to retrieve organization")
	}

	org := repoOrganizationToDomain(row)
	return &org, nil
}

func (s *organizationService) Readiness(ctx context.Context, orgID uuid.UUID) (domain.GatewayReadiness, error) {
	const op = "OrganizationService.Readiness"

	org, err := s.Get(ctx, orgID)
	if err != nil {
		return domain.GatewayReadiness{}, err
	}

	readiness := org.Readiness()
	if readiness.PaymentsReady || s.billing == nil {
		return readiness, nil
	}

	// The form still works without the link, so a Stripe outage only costs
	// the banner its call to action.
	link, err := s.onboardingLink(ctx, org)
	if err != nil {
		s.logger.Warn("failed to create onboarding link", "error", err, "op", op, "organization_id", orgID)
		return readiness, nil
	}
	readiness.OnboardingURL = link
	return readiness, nil
}

func (s *organizationService) OnboardingLink(ctx context.Context, orgID uuid.UUID) (string, error) {
	org, err := s.Get(ctx, orgID)
	if err != nil {
		return "", err
	}
	return s.onboardingLink(ctx, org)
}

func (s *organizationService) onboardingLink(ctx context.Context, org *domain.Organization) (string, error) {
	const op = "OrganizationService.OnboardingLink"

	if s.billing == nil {
		return "", domain.Unavailable(nil, op, "Payments are not configured")
	}

	accountID := org.StripeAccountID
	if accountID == "" {
		id, err := s.billing.CreateAccount(org.OfficialEmail, s.config.AccountCountry)
		if err != nil {
			return "", domain.Unavailable(err, op, "Could not create the payment account")
		}
		if err := s.queries.UpdateOrganizationStripeAccount(ctx, repository.UpdateOrganizationStripeAccountParams{
			ID:              org.ID,
			StripeAccountID: sql.NullString{String: id, Valid: true},
		}); err != nil {
			return "", domain.Internal(err, op, "Failed to save payment account")
		}
		s.logger.Info("connected account created", "organization_id", org.ID, "account_id", id)
		accountID = id
	}

	returnURL := s.config.BaseURL + "/dashboard?tab=settings&section=payments"
	link, err := s.billing.CreateOnboardingLink(accountID, returnURL+"&onboarding=refresh", returnURL)
	if err != nil {
		return "", domain.Unavailable(err, op, "Could not start payment onboarding")
	}
	return link, nil
}

func (s *organizationService) PayoutsLink(ctx context.Context, orgID uuid.UUID) (string, error) {
	const op = "OrganizationService.PayoutsLink"

	org, err := s.Get(ctx, orgID)
	if err != nil {
		return "", err
	}
	if s.billing == nil {
		return "", domain.Unavailable(nil, op, "Payments are not configured")
	}
	if org.StripeAccountID == "" {
		return "", domain.Payment(op, "Connect a payment account before opening payouts")
	}

	link, err := s.billing.CreateDashboardLink(org.StripeAccountID)
	if err != nil {
		return "", domain.Unavailable(err, op, "Could not open the payouts dashboard")
	}
	return link, nil
}

func (s *organizationService) RefreshPaymentStatus(ctx context.Context, orgID uuid.UUID) (*domain.Organization, error) {
	const op = "OrganizationService.RefreshPaymentStatus"

	org, err := s.Get(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if s.billing == nil || org.StripeAccountID == "" {
		return org, nil
	}

	status, err := s.billing.GetAccountStatus(org.StripeAccountID)
	if err != nil {
		return nil, domain.Unavailable(err, op, "Could not reach the payment provider")
	}
	if err := s.HandleAccountUpdated(ctx, status); err != nil {
		return nil, err
	}
	return s.Get(ctx, orgID)
}

func (s *organizationService) UpdateModules(ctx context.Context, orgID uuid.UUID, modules []domain.Module) (*domain.Organization, error) {
	const op = "OrganizationService.UpdateModules"

	normalized, err := normalizeModules(op, modules)
	if err != nil {
		return nil, err
	}

	row, err := s.queries.UpdateOrganizationModules(ctx, repository.UpdateOrganizationModulesParams{
		ID:      orgID,
		Modules: normalized,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "organization", orgID.String())
		}
		s.logger.Error("failed to update modules", "error", err, "op", op, "organization_id", orgID)
		return nil, domain.Internal(err, op, "Failed to update modules")
	}

	org := repoOrganizationToDomain(row)
	s.logger.Info("organization modules updated", "organization_id", orgID, "modules", normalized)
	return &org, nil
}

func (s *organizationService) HandleAccountUpdated(ctx context.Context, status billing.AccountStatus) error {
	const op = "OrganizationService.HandleAccountUpdated"

	if status.AccountID == "" {
		return domain.Invalid(op, "Account update without an account id")
	}

	n, err := s.queries.UpdateOrganizationStripeStatus(ctx, repository.UpdateOrganizationStripeStatusParams{
		StripeAccountID: status.AccountID,
		ChargesEnabled:  status.ChargesEnabled,
		PayoutsEnabled:  status.PayoutsEnabled,
	})
	if err != nil {
		return domain.Internal(err, op, "Failed to update payment status")
	}
	if n == 0 {
		// Accounts created outside this platform are not ours to track.
		s.logger.Warn("account update for unknown account", "op", op, "account_id", status.AccountID)
		return nil
	}

	s.logger.Info("payment status updated",
		"account_id", status.AccountID,
		"charges_enabled", status.ChargesEnabled,
		"payouts_enabled", status.PayoutsEnabled,
	)
	return nil
}

// normalizeModules validates modules and returns them deduplicated in
// display order.
func normalizeModules(op string, modules []domain.Module) ([]string, error) {
	enabled := make(map[domain.Module]bool, len(modules))
	for _, m := range modules {
		m = domain.Module(strings.ToLower(strings.TrimSpace(string(m))))
		if !m.IsValid() {
			return nil, domain.Invalid(op, "Unknown module: "+string(m))
		}
		enabled[m] = true
	}

	out := make([]string, 0, len(enabled))
	for _, m := range domain.AllModules {
		if enabled[m] {
			out = append(out, string(m))
		}
	}
	return out, nil
}
