package handler

import (
	"log/slog"
	"net/http"

	"github.com/DukeRupert/courtside/internal/dashboard"
	"github.com/DukeRupert/courtside/internal/domain"
	"github.com/DukeRupert/courtside/internal/eventform"
	"github.com/DukeRupert/courtside/internal/service"
)

// EventHandler serves the event creation wizard and the events table.
type EventHandler struct {
	events service.EventService
	logger *slog.Logger
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(events service.EventService, logger *slog.Logger) *EventHandler {
	return &EventHandler{events: events, logger: logger}
}

// RegisterRoutes registers event routes. org resolves {orgID} into the
// request context.
func (h *EventHandler) RegisterRoutes(mux *http.ServeMux, org func(http.Handler) http.Handler) {
	mux.Handle("POST /api/organizations/{orgID}/events/validate", org(http.HandlerFunc(h.Validate)))
	mux.Handle("POST /api/organizations/{orgID}/events/preview", org(http.HandlerFunc(h.Preview)))
	mux.Handle("POST /api/organizations/{orgID}/events/create", org(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/organizations/{orgID}/events", org(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/organizations/{orgID}/events/{eventID}", org(http.HandlerFunc(h.Get)))
}

type createEventRequest struct {
	// Draft names the draft discarded once the event exists.
	Draft string          `json:"draft"`
	State eventform.State `json:"state"`
}

type validateResponse struct {
	Valid  bool              `json:"valid"`
	Issues []eventform.Issue `json:"issues"`
}

// Validate returns the issues of a submitted form state.
func (h *EventHandler) Validate(w http.ResponseWriter, r *http.Request) {
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

	issues, err := h.events.Validate(r.Context(), org.ID, st)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, validateResponse{Valid: len(issues) == 0, Issues: issues})
}

// Preview returns the reconciled form, its ticket rows and the payload that
// would be submitted.
func (h *EventHandler) Preview(w http.ResponseWriter, r *http.Request) {
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

	preview, err := h.events.Preview(r.Context(), org.ID, st)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, preview)
}

// Create submits the form.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	org, err := organization(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	var req createEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	detail, err := h.events.Create(r.Context(), service.CreateEventRequest{
		OrganizationID: org.ID,
		DraftKey:       req.Draft,
		State:          req.State,
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusCreated, toEventDetailResponse(detail))
}

type listEventsResponse struct {
	Events  []eventResponse `json:"events"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	Pages   int             `json:"pages"`
	HasMore bool            `json:"hasMore"`
}

// List returns a page of the events table. Filters use the dashboard query
// parameters (status, q, sort, page).
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	org, err := organization(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	f := dashboard.FromQuery(r.URL.Query(), dashboard.Preferences{})
	if f.Page == 0 {
		f.Page = 1
	}

	result, err := h.events.List(r.Context(), domain.ListEventsParams{
		OrganizationID: org.ID,
		Status:         f.Status,
		Search:         f.Search,
		Sort:           string(f.Sort),
		Limit:          dashboard.DefaultPerPage,
		Offset:         int32(f.Offset(dashboard.DefaultPerPage)),
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	resp := listEventsResponse{
		Events:  make([]eventResponse, 0, len(result.Events)),
		Total:   result.Total,
		Page:    f.Page,
		Pages:   result.TotalPages(),
		HasMore: result.HasMore(),
	}
	for _, e := range result.Events {
		resp.Events = append(resp.Events, toEventResponse(e))
	}
	WriteJSON(w, http.StatusOK, resp)
}

// Get returns one event with its ticket types.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	org, err := organization(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	eventID, err := pathUUID(r, "eventID")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	detail, err := h.events.Get(r.Context(), eventID, org.ID)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, toEventDetailResponse(detail))
}
