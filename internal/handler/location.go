package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/DukeRupert/courtside/internal/domain"
	"github.com/DukeRupert/courtside/internal/geocode"
)

// LocationHandler proxies address lookups to the geocoder so the provider key
// never reaches the browser.
type LocationHandler struct {
	provider geocode.Provider
	logger   *slog.Logger
}

// NewLocationHandler creates a new LocationHandler. provider may be nil when
// no geocoder is configured; lookups then fail with 502.
func NewLocationHandler(provider geocode.Provider, logger *slog.Logger) *LocationHandler {
	return &LocationHandler{provider: provider, logger: logger}
}

// RegisterRoutes registers location routes. limit throttles callers by IP.
func (h *LocationHandler) RegisterRoutes(mux *http.ServeMux, limit func(http.Handler) http.Handler) {
	mux.Handle("GET /api/locations/search", limit(http.HandlerFunc(h.Search)))
	mux.Handle("GET /api/locations/{providerID}", limit(http.HandlerFunc(h.Details)))
}

type searchResponse struct {
	Query       string               `json:"query"`
	Suggestions []geocode.Suggestion `json:"suggestions"`
}

// Search returns suggestions for the "q" parameter. Queries shorter than the
// minimum return no suggestions without calling the provider.
func (h *LocationHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	resp := searchResponse{Query: q, Suggestions: []geocode.Suggestion{}}
	if len([]rune(q)) < geocode.MinQueryLength {
		WriteJSON(w, http.StatusOK, resp)
		return
	}
	if h.provider == nil {
		ErrorResponse(w, r, h.logger, errGeocoderDisabled("LocationHandler.Search"))
		return
	}

	suggestions, err := h.provider.Autocomplete(r.Context(), q)
	if err != nil {
		ErrorResponse(w, r, h.logger, mapGeocodeError("LocationHandler.Search", err))
		return
	}
	resp.Suggestions = suggestions
	WriteJSON(w, http.StatusOK, resp)
}

// Details resolves a suggestion into a full address.
func (h *LocationHandler) Details(w http.ResponseWriter, r *http.Request) {
	if h.provider == nil {
		ErrorResponse(w, r, h.logger, errGeocoderDisabled("LocationHandler.Details"))
		return
	}

	place, err := h.provider.Details(r.Context(), r.PathValue("providerID"))
	if err != nil {
		ErrorResponse(w, r, h.logger, mapGeocodeError("LocationHandler.Details", err))
		return
	}
	WriteJSON(w, http.StatusOK, place)
}

func errGeocoderDisabled(op string) error {
	return domain.Unavailable(errors.New("geocoder not configured"), op, "Address search is not available")
}

func mapGeocodeError(op string, err error) error {
	switch {
	case errors.Is(err, geocode.ErrInvalidQuery):
		return domain.Invalid(op, "Type at least 3 characters")
	case errors.Is(err, geocode.ErrNotFound):
		return domain.NotFound(op, "place", "")
	case errors.Is(err, geocode.ErrRateLimit):
		return domain.RateLimit(op)
	default:
		return domain.Unavailable(err, op, "Address search is temporarily unavailable")
	}
}
