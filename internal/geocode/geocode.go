// Package geocode resolves venue addresses through an external geocoding
// provider.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Provider looks up address suggestions and place details.
type Provider interface {
	// Autocomplete returns suggestions for a partial address.
	Autocomplete(ctx context.Context, query string) ([]Suggestion, error)

	// Details resolves a suggestion into a full place.
	Details(ctx context.Context, providerID string) (*Place, error)
}

// Suggestion is one autocomplete candidate.
type Suggestion struct {
	ProviderID string `json:"id"`
	Label      string `json:"label"`
	Secondary  string `json:"secondary,omitempty"`
}

// Place is a resolved address.
type Place struct {
	ProviderID string  `json:"id"`
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	City       string  `json:"city"`
	Region     string  `json:"region,omitempty"`
	Country    string  `json:"country,omitempty"`
	PostalCode string  `json:"postalCode,omitempty"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
}

// Config contains configuration for the HTTP provider.
type Config struct {
	BaseURL        string
	APIKey         string
	Language       string
	MaxRetries     int
	RetryBaseDelay time.Duration
	RequestTimeout time.Duration
}

// MinQueryLength is the shortest query sent to the provider.
const MinQueryLength = 3

var (
	// ErrRateLimit indicates the provider rate limit has been exceeded.
	ErrRateLimit = errors.New("geocoder rate limit exceeded")

	// ErrTimeout indicates the request timed out.
	ErrTimeout = errors.New("geocoder request timed out")

	// ErrUnavailable indicates the provider is temporarily unavailable.
	ErrUnavailable = errors.New("geocoder temporarily unavailable")

	// ErrUnauthorized indicates invalid provider credentials.
	ErrUnauthorized = errors.New("geocoder authentication failed")

	// ErrNotFound indicates the provider does not know the place.
	ErrNotFound = errors.New("place not found")

	// ErrInvalidQuery indicates the query was rejected before being sent.
	ErrInvalidQuery = errors.New("invalid location query")
)

// IsRetryable returns true if the error is transient.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRateLimit) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrUnavailable)
}

// WrapError adds the operation to a provider error.
func WrapError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("geocode %s: %w", operation, err)
}
