package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/DukeRupert/courtside/internal/domain"
	"github.com/DukeRupert/courtside/internal/draft"
	"github.com/DukeRupert/courtside/internal/eventform"
	"github.com/DukeRupert/courtside/internal/metrics"
	"github.com/DukeRupert/courtside/internal/repository"
)

// CreateEventRequest is a submission of the creation form.
type CreateEventRequest struct {
	OrganizationID uuid.UUID
	// DraftKey names the draft discarded on success. Empty means the default.
	DraftKey string
	State    eventform.State
}

// EventPreview is the server-side evaluation of a form state.
type EventPreview struct {
	State     eventform.State          `json:"state"`
	Rows      []eventform.TicketRow    `json:"rows"`
	Payload   eventform.EventPayload   `json:"payload"`
	Issues    []eventform.Issue        `json:"issues"`
	Readiness domain.GatewayReadiness  `json:"readiness"`
	Banner    *eventform.GatewayBanner `json:"banner,omitempty"`
}

// EventDetail is an event with its ticket types.
type EventDetail struct {
	Event       domain.Event
	TicketTypes []domain.TicketType
}

// EventService defines the interface for event creation and listing.
type EventService interface {
	// Validate returns the issues of a form state, in display order.
	Validate(ctx context.Context, orgID uuid.UUID, s eventform.State) ([]eventform.Issue, error)

	// Preview reconciles a form state the way the wizard does, including the
	// switch to free mode when the gateway is not ready.
	Preview(ctx context.Context, orgID uuid.UUID, s eventform.State) (*EventPreview, error)

	// Create validates and persists an event with its ticket types, then
	// discards the organization's draft. A second submission for the same
	// organization and draft while one is in flight fails with ECONFLICT.
	Create(ctx context.Context, req CreateEventRequest) (*EventDetail, error)

	// Get returns an event with its ticket types, verifying ownership.
	Get(ctx context.Context, id, orgID uuid.UUID) (*EventDetail, error)

	// List returns a page of events with sales statistics.
	List(ctx context.Context, params domain.ListEventsParams) (*domain.ListEventsResult, error)
}

type eventService struct {
	db      *sql.DB
	queries *repository.Queries
	orgs    OrganizationService
	padel   PadelService
	drafts  *draft.PostgresStore
	policy  eventform.Policy
	guard   *submissionGuard
	logger  *slog.Logger
}

// NewEventService creates a new EventService.
func NewEventService(
	db *sql.DB,
	queries *repository.Queries,
	orgs OrganizationService,
	padel PadelService,
	policy eventform.Policy,
	logger *slog.Logger,
) EventService {
	return &eventService{
		db:      db,
		queries: queries,
		orgs:    orgs,
		padel:   padel,
		drafts:  draft.NewPostgresStore(queries),
		policy:  policy,
		guard:   newSubmissionGuard(),
		logger:  logger,
	}
}

func (s *eventService) Validate(ctx context.Context, orgID uuid.UUID, st eventform.State) ([]eventform.Issue, error) {
	f, readiness, err := s.loadForm(ctx, orgID, st)
	if err != nil {
		return nil, err
	}
	issues := eventform.CollectFormErrors(f.State(), f.Catalog(), readiness, s.policy)
	if issues == nil {
		issues = []eventform.Issue{}
	}
	return issues, nil
}

func (s *eventService) Preview(ctx context.Context, orgID uuid.UUID, st eventform.State) (*EventPreview, error) {
	f, readiness, err := s.loadForm(ctx, orgID, st)
	if err != nil {
		return nil, err
	}
	f.ApplyReadiness(readiness)

	issues := f.Validate()
	if issues == nil {
		issues = []eventform.Issue{}
	}
	return &EventPreview{
		State:     f.State(),
		Rows:      f.Rows(),
		Payload:   f.Payload(),
		Issues:    issues,
		Readiness: readiness,
		Banner:    f.Banner(),
	}, nil
}

func (s *eventService) Create(ctx context.Context, req CreateEventRequest) (*EventDetail, error) {
	const op = "EventService.Create"

	key := draft.OrganizationKey(req.OrganizationID, req.DraftKey)
	if !s.guard.acquire(key.String()) {
		metrics.SubmissionConflicts.Inc()
		return nil, domain.Conflict(op, "This event is already being created. Wait for the current submission to finish.")
	}
	defer s.guard.release(key.String())

	f, readiness, err := s.loadForm(ctx, req.OrganizationID, req.State)
	if err != nil {
		return nil, err
	}
	st := f.State()
	payload := eventform.BuildPayload(st, f.Catalog(), s.policy)

	if !readiness.Ready() && !payload.IsFree && hasPaidTickets(payload.Tickets) {
		return nil, paymentRequired(op, readiness)
	}

	issues := eventform.CollectFormErrors(st, f.Catalog(), readiness, s.policy)
	if len(issues) > 0 {
		for _, issue := range issues {
			metrics.ValidationIssues.WithLabelValues(string(issue.Field)).Inc()
		}
		return nil, eventform.ValidationError(op, issues)
	}

	params, err := toCreateEventParams(op, req.OrganizationID, payload, s.policy)
	if err != nil {
		return nil, err
	}

	detail, err := s.persist(ctx, params, key)
	if err != nil {
		s.logger.Error("failed to create event", "error", err, "op", op, "organization_id", req.OrganizationID)
		return nil, domain.Internal(err, op, "Failed to create event")
	}

	pricing := "paid"
	if params.IsFree {
		pricing = "free"
	}
	metrics.EventsCreated.WithLabelValues(string(params.Preset), pricing).Inc()
	metrics.TicketTypesCreated.Add(float64(len(detail.TicketTypes)))

	s.logger.Info("event created",
		"event_id", detail.Event.ID,
		"organization_id", req.OrganizationID,
		"preset", params.Preset,
		"ticket_types", len(detail.TicketTypes),
	)
	return detail, nil
}

// persist writes the event, its ticket types and the draft removal in one
// transaction.
func (s *eventService) persist(ctx context.Context, params domain.CreateEventParams, key draft.Key) (*EventDetail, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	row, err := qtx.CreateEvent(ctx, repository.CreateEventParams{
		OrganizationID: params.OrganizationID,
		Title:          params.Title,
		Description:    params.Description,
		StartsAt:       params.StartsAt,
		EndsAt:         toNullTime(params.EndsAt),
		LocationName:   params.LocationName,
		LocationCity:   params.LocationCity,
		Address:        params.Address,
		LocationTbd:    params.LocationTBD,
		CoverUrl:       params.CoverURL,
		Preset:         string(params.Preset),
		IsFree:         params.IsFree,
		AccessPolicy:   params.AccessPolicy,
		Padel:          toNullRawMessage(params.Padel),
	})
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	detail := &EventDetail{
		Event:       repoEventToDomain(row),
		TicketTypes: make([]domain.TicketType, 0, len(params.TicketTypes)),
	}
	for i, t := range params.TicketTypes {
		tt, err := qtx.CreateTicketType(ctx, repository.CreateTicketTypeParams{
			EventID:           row.ID,
			Name:              t.Name,
			PriceCents:        t.PriceCents,
			TotalQuantity:     toNullInt32(t.TotalQuantity),
			PublicAccess:      t.PublicAccess,
			ParticipantAccess: t.ParticipantAccess,
			PadelCategoryID:   toNullInt64(t.PadelCategoryID),
			Position:          int32(i),
		})
		if err != nil {
			return nil, fmt.Errorf("insert ticket type %d: %w", i, err)
		}
		detail.TicketTypes = append(detail.TicketTypes, repoTicketTypeToDomain(tt))
	}
	detail.Event.TicketTypeCount = len(detail.TicketTypes)

	if err := draft.NewManager(s.drafts.WithQueries(qtx), s.logger).Discard(ctx, key); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return detail, nil
}

func (s *eventService) Get(ctx context.Context, id, orgID uuid.UUID) (*EventDetail, error) {
	const op = "EventService.Get"

	row, err := s.queries.GetEventByIDAndOrg(ctx, repository.GetEventByIDAndOrgParams{
		ID:             id,
		OrganizationID: orgID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "event", id.String())
		}
		return nil, domain.Internal(err, op, "Failed to retrieve event")
	}

	rows, err := s.queries.ListTicketTypesByEvent(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to retrieve ticket types")
	}

	detail := &EventDetail{Event: repoEventToDomain(row), TicketTypes: make([]domain.TicketType, 0, len(rows))}
	for _, tt := range rows {
		detail.TicketTypes = append(detail.TicketTypes, repoTicketTypeToDomain(tt))
	}
	detail.Event.TicketTypeCount = len(detail.TicketTypes)
	return detail, nil
}

func (s *eventService) List(ctx context.Context, params domain.ListEventsParams) (*domain.ListEventsResult, error) {
	const op = "EventService.List"

	if params.Limit <= 0 || params.Limit > 100 {
		params.Limit = 20
	}
	if params.Offset < 0 {
		params.Offset = 0
	}
	if params.Status != "" && !domain.EventStatus(params.Status).IsValid() {
		return nil, domain.Invalid(op, "Unknown event status: "+params.Status)
	}

	rows, err := s.queries.ListEventsWithStats(ctx, repository.ListEventsWithStatsParams{
		OrganizationID: params.OrganizationID,
		Status:         params.Status,
		Search:         strings.TrimSpace(params.Search),
		Limit:          params.Limit,
		Offset:         params.Offset,
		Sort:           params.Sort,
	})
	if err != nil {
		s.logger.Error("failed to list events", "error", err, "op", op, "organization_id", params.OrganizationID)
		return nil, domain.Internal(err, op, "Failed to list events")
	}

	total, err := s.queries.CountEvents(ctx, repository.CountEventsParams{
		OrganizationID: params.OrganizationID,
		Status:         params.Status,
		Search:         strings.TrimSpace(params.Search),
	})
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to count events")
	}

	result := &domain.ListEventsResult{
		Events: make([]domain.Event, 0, len(rows)),
		Total:  total,
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	for _, r := range rows {
		e := repoEventToDomain(r.Event)
		e.TicketTypeCount = int(r.TicketTypeCount)
		e.TicketsSold = r.TicketsSold
		e.GrossCents = r.GrossCents
		result.Events = append(result.Events, e)
	}
	return result, nil
}

// loadForm builds a reconciled form for st with the organization's catalog
// and readiness. Staff availability is always taken from the database.
func (s *eventService) loadForm(ctx context.Context, orgID uuid.UUID, st eventform.State) (*eventform.Form, domain.GatewayReadiness, error) {
	readiness, err := s.orgs.Readiness(ctx, orgID)
	if err != nil {
		return nil, domain.GatewayReadiness{}, err
	}

	cat, err := s.padel.Categories(ctx, orgID, referencedCategories(st))
	if err != nil {
		return nil, domain.GatewayReadiness{}, err
	}

	st.Padel.AvailableStaff = 0
	if st.IsPadel() && st.Padel.ClubMode == eventform.ClubPartner && st.Padel.ClubID != nil {
		n, err := s.padel.StaffCount(ctx, *st.Padel.ClubID)
		if err != nil {
			return nil, domain.GatewayReadiness{}, err
		}
		st.Padel.AvailableStaff = n
	}

	return eventform.NewFromState(st, cat, s.policy), readiness, nil
}

// referencedCategories returns every category id the state points at.
func referencedCategories(st eventform.State) []int64 {
	ids := append([]int64{}, st.Selection...)
	for _, row := range st.Tickets {
		if row.PadelCategoryID != nil {
			ids = append(ids, *row.PadelCategoryID)
		}
	}
	return eventform.Selection(ids).Normalize()
}

func hasPaidTickets(tickets []eventform.TicketPayload) bool {
	for _, t := range tickets {
		if t.Price > 0 {
			return true
		}
	}
	return false
}

func paymentRequired(op string, r domain.GatewayReadiness) error {
	msg := "Connect your payment account and verify the official email before selling paid tickets."
	if !r.EmailVerified && r.PaymentsReady {
		msg = "Verify the official email before selling paid tickets."
	}
	if r.OnboardingURL != "" {
		msg += " Finish onboarding at " + r.OnboardingURL
	}
	return domain.Payment(op, msg)
}

// toCreateEventParams converts a validated payload to persistence parameters.
func toCreateEventParams(op string, orgID uuid.UUID, payload eventform.EventPayload, p eventform.Policy) (domain.CreateEventParams, error) {
	startsAt, ok := p.ParseDateTime(payload.StartsAt)
	if !ok {
		return domain.CreateEventParams{}, domain.Invalid(op, "The start date is not valid")
	}

	params := domain.CreateEventParams{
		OrganizationID: orgID,
		Title:          payload.Title,
		Description:    payload.Description,
		StartsAt:       startsAt,
		LocationName:   payload.Location.Name,
		LocationCity:   payload.Location.City,
		Address:        payload.Location.Address,
		LocationTBD:    payload.Location.TBD,
		CoverURL:       payload.CoverURL,
		Preset:         payload.Preset,
		IsFree:         payload.IsFree,
		TicketTypes:    make([]domain.CreateTicketTypeParams, 0, len(payload.Tickets)),
	}

	if payload.EndsAt != "" {
		endsAt, ok := p.ParseDateTime(payload.EndsAt)
		if !ok {
			return domain.CreateEventParams{}, domain.Invalid(op, "The end date is not valid")
		}
		params.EndsAt = &endsAt
	}

	access, err := json.Marshal(payload.AccessPolicy)
	if err != nil {
		return domain.CreateEventParams{}, domain.Internal(err, op, "failed to encode access policy")
	}
	params.AccessPolicy = access

	if payload.Padel != nil {
		padel, err := json.Marshal(payload.Padel)
		if err != nil {
			return domain.CreateEventParams{}, domain.Internal(err, op, "failed to encode tournament settings")
		}
		params.Padel = padel
	}

	for _, t := range payload.Tickets {
		cents, ok := toCents(t.Price)
		if !ok {
			return domain.CreateEventParams{}, domain.Invalid(op, "Ticket price is out of range")
		}
		tt := domain.CreateTicketTypeParams{
			Name:              t.Name,
			PriceCents:        cents,
			PublicAccess:      t.PublicAccess,
			ParticipantAccess: t.ParticipantAccess,
			PadelCategoryID:   t.PadelCategoryID,
		}
		if t.TotalQuantity != nil {
			if *t.TotalQuantity > math.MaxInt32 {
				return domain.CreateEventParams{}, domain.Invalid(op, "Ticket capacity is too large")
			}
			q := int32(*t.TotalQuantity)
			tt.TotalQuantity = &q
		}
		params.TicketTypes = append(params.TicketTypes, tt)
	}
	return params, nil
}

// toCents converts a price to cents. It reports false for negative,
// non-finite or out-of-range prices.
func toCents(price float64) (int64, bool) {
	if math.IsNaN(price) || price < 0 || price > eventform.MaxTicketPrice {
		return 0, false
	}
	return int64(math.Round(price * 100)), true
}

// submissionGuard rejects concurrent submissions for the same key.
type submissionGuard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func newSubmissionGuard() *submissionGuard {
	return &submissionGuard{inFlight: make(map[string]struct{})}
}

func (g *submissionGuard) acquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inFlight[key]; busy {
		return false
	}
	g.inFlight[key] = struct{}{}
	return true
}

func (g *submissionGuard) release(key string) {
	g.mu.Lock()
	delete(g.inFlight, key)
	g.mu.Unlock()
}
