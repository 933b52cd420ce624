// Package mock provides an in-memory geocode.Provider for tests and local
// development.
package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/DukeRupert/courtside/internal/geocode"
)

// Provider is a mock geocoder.
type Provider struct {
	mu sync.Mutex

	// Places is searched by Autocomplete and Details when no func is set.
	Places []geocode.Place

	// Optional hooks overriding the default behavior.
	AutocompleteFunc func(ctx context.Context, query string) ([]geocode.Suggestion, error)
	DetailsFunc      func(ctx context.Context, providerID string) (*geocode.Place, error)

	// Call tracking for testing
	AutocompleteCalls []string
	DetailsCalls      []string
}

// New creates a mock provider seeded with places.
func New(places ...geocode.Place) *Provider {
	return &Provider{Places: places}
}

// Autocomplete matches the query against place names, addresses and cities.
func (p *Provider) Autocomplete(ctx context.Context, query string) ([]geocode.Suggestion, error) {
	p.mu.Lock()
	p.AutocompleteCalls = append(p.AutocompleteCalls, query)
	fn := p.AutocompleteFunc
	places := p.Places
	p.mu.Unlock()

	if fn != nil {
		return fn(ctx, query)
	}

	q := strings.ToLower(strings.TrimSpace(query))
	out := []geocode.Suggestion{}
	for _, place := range places {
		haystack := strings.ToLower(place.Name + " " + place.Address + " " + place.City)
		if strings.Contains(haystack, q) {
			out = append(out, geocode.Suggestion{
				ProviderID: place.ProviderID,
				Label:      place.Name,
				Secondary:  place.Address + ", " + place.City,
			})
		}
	}
	return out, nil
}

// Details returns the seeded place with the given id.
func (p *Provider) Details(ctx context.Context, providerID string) (*geocode.Place, error) {
	p.mu.Lock()
	p.DetailsCalls = append(p.DetailsCalls, providerID)
	fn := p.DetailsFunc
	places := p.Places
	p.mu.Unlock()

	if fn != nil {
		return fn(ctx, providerID)
	}

	for _, place := range places {
		if place.ProviderID == providerID {
			found := place
			return &found, nil
		}
	}
	return nil, geocode.WrapError("details", geocode.ErrNotFound)
}

// Calls returns copies of the recorded calls.
func (p *Provider) Calls() (autocomplete, details []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.AutocompleteCalls...), append([]string(nil), p.DetailsCalls...)
}
