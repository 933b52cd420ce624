package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/DukeRupert/courtside/internal/billing"
	"github.com/DukeRupert/courtside/internal/domain"
	"github.com/DukeRupert/courtside/internal/draft"
	"github.com/DukeRupert/courtside/internal/eventform"
)

// fakeOrgs implements OrganizationService with a fixed readiness.
type fakeOrgs struct {
	readiness domain.GatewayReadiness
	err       error
}

func (f *fakeOrgs) Get(context.Context, uuid.UUID) (*domain.Organization, error) {
	return &domain.Organization{}, f.err
}
func (f *fakeOrgs) GetBySlug(context.Context, string) (*domain.Organization, error) {
	return &domain.Organization{}, f.err
}
func (f *fakeOrgs) Readiness(context.Context, uuid.UUID) (domain.GatewayReadiness, error) {
	return f.readiness, f.err
}
func (f *fakeOrgs) OnboardingLink(context.Context, uuid.UUID) (string, error) { return "", f.err }
func (f *fakeOrgs) PayoutsLink(context.Context, uuid.UUID) (string, error)    { return "", f.err }
func (f *fakeOrgs) RefreshPaymentStatus(context.Context, uuid.UUID) (*domain.Organization, error) {
	return nil, f.err
}
func (f *fakeOrgs) UpdateModules(context.Context, uuid.UUID, []domain.Module) (*domain.Organization, error) {
	return nil, f.err
}
func (f *fakeOrgs) HandleAccountUpdated(context.Context, billing.AccountStatus) error { return f.err }

// fakePadel implements PadelService over an in-memory category list.
type fakePadel struct {
	categories []domain.PadelCategory
	staff      map[int64]int
}

func (f *fakePadel) Catalog(context.Context, uuid.UUID) (*domain.PadelCatalog, error) {
	return &domain.PadelCatalog{Categories: f.categories}, nil
}

func (f *fakePadel) Categories(_ context.Context, _ uuid.UUID, ids []int64) (eventform.Catalog, error) {
	var out []domain.PadelCategory
	for _, c := range f.categories {
		for _, id := range ids {
			if c.ID == id {
				out = append(out, c)
			}
		}
	}
	return eventform.NewCatalog(out), nil
}

func (f *fakePadel) StaffCount(_ context.Context, clubID int64) (int, error) {
	return f.staff[clubID], nil
}

var readyGateway = domain.GatewayReadiness{PaymentsReady: true, EmailVerified: true}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func englishPolicy() eventform.Policy {
	p := eventform.DefaultPolicy()
	p.Language = language.English
	return p
}

func newTestEventService(readiness domain.GatewayReadiness) *eventService {
	return &eventService{
		orgs: &fakeOrgs{readiness: readiness},
		padel: &fakePadel{
			categories: []domain.PadelCategory{
				{ID: 1, Label: "Feminino 4", GenderRestriction: domain.GenderFemale, MinLevel: "4"},
				{ID: 2, Label: "Categoria 3"},
			},
			staff: map[int64]int{10: 2},
		},
		policy: englishPolicy(),
		guard:  newSubmissionGuard(),
		logger: testLogger(),
	}
}

func paidState() eventform.State {
	s := eventform.DefaultState()
	s.Title = "Summer Party"
	s.StartsAt = "2026-11-01T20:00"
	s.LocationName = "Clube Central"
	s.LocationCity = "Lisboa"
	s.Tickets = []eventform.TicketRow{{Name: "Geral", Price: "10"}}
	return s
}

func TestEventService_Validate(t *testing.T) {
	ctx := context.Background()

	issues, err := newTestEventService(readyGateway).Validate(ctx, uuid.New(), paidState())
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.NotNil(t, issues, "empty list, not null, in JSON")

	issues, err = newTestEventService(domain.GatewayReadiness{EmailVerified: true}).Validate(ctx, uuid.New(), paidState())
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, eventform.FieldTickets, issues[0].Field)
}

func TestEventService_ValidatePartnerStaffFromDatabase(t *testing.T) {
	s := paidState()
	s.Preset = domain.EventPresetPadel
	s.IsFree = true
	s.Selection = eventform.Selection{1}
	clubID := int64(10)
	s.Padel = eventform.PadelSettings{ClubID: &clubID, ClubMode: eventform.ClubPartner, CourtIDs: []int64{1}}
	// A client cannot hide staff by sending its own count.
	s.Padel.AvailableStaff = 0

	issues, err := newTestEventService(readyGateway).Validate(context.Background(), uuid.New(), s)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "Choose the staff working at the partner club.", issues[0].Message)
}

func TestEventService_PreviewForcesFreeWhenNotReady(t *testing.T) {
	svc := newTestEventService(domain.GatewayReadiness{OnboardingURL: "https://connect.example/onboard"})

	preview, err := svc.Preview(context.Background(), uuid.New(), paidState())
	require.NoError(t, err)

	assert.True(t, preview.State.IsFree)
	assert.True(t, preview.Payload.IsFree)
	require.NotNil(t, preview.Banner)
	assert.Equal(t, "https://connect.example/onboard", preview.Banner.OnboardingURL)
	assert.Empty(t, preview.Issues)
	require.Len(t, preview.Payload.Tickets, 1)
	assert.Zero(t, preview.Payload.Tickets[0].Price)
}

func TestEventService_PreviewTagsPadelTickets(t *testing.T) {
	s := paidState()
	s.Preset = domain.EventPresetPadel
	s.Selection = eventform.Selection{2, 1}

	preview, err := newTestEventService(readyGateway).Preview(context.Background(), uuid.New(), s)
	require.NoError(t, err)

	require.Len(t, preview.Payload.Tickets, 2)
	assert.Equal(t, "Geral · MX3", preview.Payload.Tickets[0].Name)
	assert.Equal(t, "Geral · F4", preview.Payload.Tickets[1].Name)
	require.NotNil(t, preview.Payload.Padel)
	assert.Equal(t, int64(2), *preview.Payload.Padel.DefaultCategoryID)
}

func TestEventService_CreateRejectsConcurrentSubmission(t *testing.T) {
	svc := newTestEventService(readyGateway)
	orgID := uuid.New()

	key := draft.OrganizationKey(orgID, "").String()
	require.True(t, svc.guard.acquire(key))

	_, err := svc.Create(context.Background(), CreateEventRequest{OrganizationID: orgID, State: paidState()})
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))

	svc.guard.release(key)
	assert.True(t, svc.guard.acquire(key), "released after the first submission")
}

func TestEventService_CreatePaymentRequired(t *testing.T) {
	svc := newTestEventService(domain.GatewayReadiness{EmailVerified: true, OnboardingURL: "https://connect.example/x"})

	_, err := svc.Create(context.Background(), CreateEventRequest{OrganizationID: uuid.New(), State: paidState()})

	assert.Equal(t, domain.EPAYMENT, domain.ErrorCode(err))
	assert.Contains(t, domain.ErrorMessage(err), "https://connect.example/x")
}

func TestEventService_CreateValidationError(t *testing.T) {
	svc := newTestEventService(readyGateway)

	_, err := svc.Create(context.Background(), CreateEventRequest{OrganizationID: uuid.New(), State: eventform.DefaultState()})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "title", ve.Issues[0].Field)
	assert.Equal(t, "EventService.Create", ve.Op)
}

func TestEventService_ReadinessErrorPropagates(t *testing.T) {
	svc := newTestEventService(readyGateway)
	svc.orgs = &fakeOrgs{err: domain.NotFound("test", "organization", "x")}

	_, err := svc.Validate(context.Background(), uuid.New(), paidState())
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestToCreateEventParams(t *testing.T) {
	orgID := uuid.New()
	capacity := 16
	categoryID := int64(2)
	payload := eventform.EventPayload{
		Title:    "Open",
		StartsAt: "2026-11-01T09:00:00Z",
		EndsAt:   "2026-11-01T20:00:00Z",
		Location: eventform.LocationPayload{Name: "Clube", City: "Lisboa"},
		Preset:   domain.EventPresetPadel,
		Tickets: []eventform.TicketPayload{
			{Name: "Dupla · MX3", Price: 19.99, TotalQuantity: &capacity, PublicAccess: true, ParticipantAccess: true, PadelCategoryID: &categoryID},
			{Name: "Plateia", Price: 0.1 + 0.2},
		},
		AccessPolicy: eventform.AccessPolicy{Mode: eventform.AccessPublic, PublicTicketCount: 1},
		Padel:        &eventform.PadelPayload{ClubMode: eventform.ClubOwn, Categories: []eventform.PadelCategoryPayload{{CategoryID: 2}}},
	}

	params, err := toCreateEventParams("op", orgID, payload, eventform.DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, orgID, params.OrganizationID)
	assert.Equal(t, 9, params.StartsAt.Hour())
	require.NotNil(t, params.EndsAt)
	require.Len(t, params.TicketTypes, 2)
	assert.Equal(t, int64(1999), params.TicketTypes[0].PriceCents)
	assert.Equal(t, int32(16), *params.TicketTypes[0].TotalQuantity)
	assert.Equal(t, &categoryID, params.TicketTypes[0].PadelCategoryID)
	assert.Equal(t, int64(30), params.TicketTypes[1].PriceCents)
	assert.Nil(t, params.TicketTypes[1].TotalQuantity)
	assert.JSONEq(t, `{"mode":"PUBLIC","publicTicketCount":1}`, string(params.AccessPolicy))

	var padel map[string]interface{}
	require.NoError(t, json.Unmarshal(params.Padel, &padel))
	assert.Equal(t, "own", padel["clubMode"])

	payload.Padel = nil
	payload.EndsAt = ""
	params, err = toCreateEventParams("op", orgID, payload, eventform.DefaultPolicy())
	require.NoError(t, err)
	assert.Nil(t, params.Padel)
	assert.Nil(t, params.EndsAt)

	payload.StartsAt = "soon"
	_, err = toCreateEventParams("op", orgID, payload, eventform.DefaultPolicy())
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestToCreateEventParams_PriceOutOfRange(t *testing.T) {
	for _, price := range []float64{math.NaN(), math.Inf(1), 1e300, -1} {
		payload := eventform.EventPayload{
			Title:    "Open",
			StartsAt: "2026-11-01T09:00:00Z",
			Tickets:  []eventform.TicketPayload{{Name: "Geral", Price: price}},
		}

		_, err := toCreateEventParams("op", uuid.New(), payload, eventform.DefaultPolicy())
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err), "price %v", price)
	}

	cents, ok := toCents(eventform.MaxTicketPrice)
	assert.True(t, ok)
	assert.Equal(t, int64(100_000_000), cents)
}

func TestReferencedCategories(t *testing.T) {
	s := eventform.DefaultState()
	s.Selection = eventform.Selection{3, 1}
	id := int64(7)
	dup := int64(1)
	s.Tickets = []eventform.TicketRow{{PadelCategoryID: &id}, {PadelCategoryID: &dup}, {}}

	assert.Equal(t, []int64{3, 1, 7}, []int64(referencedCategories(s)))
}

func TestPaymentRequired(t *testing.T) {
	err := paymentRequired("op", domain.GatewayReadiness{PaymentsReady: true})
	assert.Equal(t, domain.EPAYMENT, domain.ErrorCode(err))
	assert.Equal(t, "Verify the official email before selling paid tickets.", domain.ErrorMessage(err))

	var de *domain.Error
	assert.True(t, errors.As(err, &de))
}
