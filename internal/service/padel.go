package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/DukeRupert/courtside/internal/domain"
	"github.com/DukeRupert/courtside/internal/eventform"
	"github.com/DukeRupert/courtside/internal/repository"
)

// PadelService defines the interface for tournament catalog lookups.
type PadelService interface {
	// Catalog returns the clubs, courts, staff and categories of an organization.
	Catalog(ctx context.Context, orgID uuid.UUID) (*domain.PadelCatalog, error)

	// Categories returns the categories with the given IDs keyed for tag
	// computation. Unknown IDs are omitted.
	Categories(ctx context.Context, orgID uuid.UUID, ids []int64) (eventform.Catalog, error)

	// StaffCount returns the number of staff members attached to a club.
	StaffCount(ctx context.Context, clubID int64) (int, error)
}

type padelService struct {
	queries *repository.Queries
	logger  *slog.Logger
}

// NewPadelService creates a new PadelService.
func NewPadelService(queries *repository.Queries, logger *slog.Logger) PadelService {
	return &padelService{
		queries: queries,
		logger:  logger,
	}
}

func (s *padelService) Catalog(ctx context.Context, orgID uuid.UUID) (*domain.PadelCatalog, error) {
	const op = "PadelService.Catalog"

	clubs, err := s.queries.ListPadelClubs(ctx, orgID)
	if err != nil {
		s.logger.Error("failed to list clubs", "error", err, "op", op, "organization_id", orgID)
		return nil, domain.Internal(err, op, "Failed to load clubs")
	}
	courts, err := s.queries.ListPadelCourtsByOrganization(ctx, orgID)
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to load courts")
	}
	staff, err := s.queries.ListPadelStaffByOrganization(ctx, orgID)
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to load staff")
	}
	categories, err := s.queries.ListPadelCategories(ctx, orgID)
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to load categories")
	}

	catalog := &domain.PadelCatalog{
		Clubs:      make([]domain.PadelClub, 0, len(clubs)),
		Courts:     make([]domain.PadelCourt, 0, len(courts)),
		Staff:      make([]domain.PadelStaff, 0, len(staff)),
		Categories: make([]domain.PadelCategory, 0, len(categories)),
		Formats:    domain.TournamentFormats,
	}
	for _, c := range clubs {
		catalog.Clubs = append(catalog.Clubs, domain.PadelClub{
			ID:             c.ID,
			OrganizationID: c.OrganizationID,
			Name:           c.Name,
			City:           c.City,
			Partner:        c.Partner,
		})
	}
	for _, c := range courts {
		catalog.Courts = append(catalog.Courts, domain.PadelCourt{ID: c.ID, ClubID: c.ClubID, Name: c.Name, Indoor: c.Indoor})
	}
	for _, m := range staff {
		catalog.Staff = append(catalog.Staff, domain.PadelStaff{ID: m.ID, ClubID: m.ClubID, Name: m.Name, Role: m.Role})
	}
	for _, c := range categories {
		catalog.Categories = append(catalog.Categories, repoPadelCategoryToDomain(c))
	}
	return catalog, nil
}

func (s *padelService) Categories(ctx context.Context, orgID uuid.UUID, ids []int64) (eventform.Catalog, error) {
	const op = "PadelService.Categories"

	if len(ids) == 0 {
		return eventform.Catalog{}, nil
	}

	rows, err := s.queries.ListPadelCategoriesByIDs(ctx, repository.ListPadelCategoriesByIDsParams{
		OrganizationID: orgID,
		IDs:            ids,
	})
	if err != nil {
		s.logger.Error("failed to load categories", "error", err, "op", op, "organization_id", orgID)
		return nil, domain.Internal(err, op, "Failed to load categories")
	}

	categories := make([]domain.PadelCategory, 0, len(rows))
	for _, r := range rows {
		categories = append(categories, repoPadelCategoryToDomain(r))
	}
	return eventform.NewCatalog(categories), nil
}

func (s *padelService) StaffCount(ctx context.Context, clubID int64) (int, error) {
	const op = "PadelService.StaffCount"

	n, err := s.queries.CountPadelStaffByClub(ctx, clubID)
	if err != nil {
		return 0, domain.Internal(err, op, "Failed to count staff")
	}
	return int(n), nil
}
