package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/DukeRupert/courtside/internal/dashboard"
	"github.com/DukeRupert/courtside/internal/domain"
	"github.com/DukeRupert/courtside/internal/repository"
)

// DashboardView is the resolved dashboard state of an organization.
type DashboardView struct {
	Filters   dashboard.Filters
	Checklist dashboard.Checklist
	Readiness domain.GatewayReadiness
	Modules   []domain.Module
}

// DashboardService defines the interface for dashboard filters and flags.
type DashboardService interface {
	// Resolve combines the query string with stored preferences.
	Resolve(ctx context.Context, orgID uuid.UUID, q url.Values) (*DashboardView, error)

	// SavePreferences stores the sticky part of the filters.
	SavePreferences(ctx context.Context, orgID uuid.UUID, prefs dashboard.Preferences) error

	// SaveChecklist stores the onboarding checklist flags.
	SaveChecklist(ctx context.Context, orgID uuid.UUID, checklist dashboard.Checklist) error
}

type dashboardService struct {
	queries *repository.Queries
	orgs    OrganizationService
	logger  *slog.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(queries *repository.Queries, orgs OrganizationService, logger *slog.Logger) DashboardService {
	return &dashboardService{
		queries: queries,
		orgs:    orgs,
		logger:  logger,
	}
}

func (s *dashboardService) Resolve(ctx context.Context, orgID uuid.UUID, q url.Values) (*DashboardView, error) {
	const op = "DashboardService.Resolve"

	org, err := s.orgs.Get(ctx, orgID)
	if err != nil {
		return nil, err
	}

	var prefs dashboard.Preferences
	var checklist dashboard.Checklist
	row, err := s.queries.GetDashboardPreference(ctx, orgID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		// Preferences are a convenience; the URL alone still renders a view.
		s.logger.Warn("failed to load dashboard preferences", "error", err, "op", op, "organization_id", orgID)
	default:
		prefs = dashboard.ParsePreferences(fromNullRawMessage(row.Filters))
		checklist = dashboard.ParseChecklist(fromNullRawMessage(row.Checklist))
	}

	readiness := org.Readiness()
	if readiness.EmailVerified {
		checklist.Complete("verify_email")
	}
	if readiness.PaymentsReady {
		checklist.Complete("connect_payments")
	}

	return &DashboardView{
		Filters:   dashboard.FromQuery(q, prefs),
		Checklist: checklist,
		Readiness: readiness,
		Modules:   org.Modules,
	}, nil
}

func (s *dashboardService) SavePreferences(ctx context.Context, orgID uuid.UUID, prefs dashboard.Preferences) error {
	const op = "DashboardService.SavePreferences"

	data, err := json.Marshal(prefs)
	if err != nil {
		return domain.Internal(err, op, "Failed to encode preferences")
	}
	// Round-trip through the parser so only valid values are stored.
	clean, _ := json.Marshal(dashboard.ParsePreferences(data))

	if err := s.queries.UpsertDashboardFilters(ctx, repository.UpsertDashboardFiltersParams{
		OrganizationID: orgID,
		Filters:        pqtype.NullRawMessage{RawMessage: clean, Valid: true},
	}); err != nil {
		s.logger.Error("failed to save preferences", "error", err, "op", op, "organization_id", orgID)
		return domain.Internal(err, op, "Failed to save preferences")
	}
	return nil
}

func (s *dashboardService) SaveChecklist(ctx context.Context, orgID uuid.UUID, checklist dashboard.Checklist) error {
	const op = "DashboardService.SaveChecklist"

	data, err := json.Marshal(checklist)
	if err != nil {
		return domain.Internal(err, op, "Failed to encode checklist")
	}
	clean, _ := json.Marshal(dashboard.ParseChecklist(data))

	if err := s.queries.UpsertDashboardChecklist(ctx, repository.UpsertDashboardChecklistParams{
		OrganizationID: orgID,
		Checklist:      pqtype.NullRawMessage{RawMessage: clean, Valid: true},
	}); err != nil {
		s.logger.Error("failed to save checklist", "error", err, "op", op, "organization_id", orgID)
		return domain.Internal(err, op, "Failed to save checklist")
	}
	return nil
}
