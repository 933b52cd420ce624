package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DukeRupert/courtside/internal/metrics"
)

// Client implements Provider against the geocoder HTTP API.
type Client struct {
	config Config
	client *http.Client
	logger *slog.Logger
}

// NewClient creates a geocoder client.
func NewClient(config Config, logger *slog.Logger) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("geocoder base URL is required")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("parse geocoder base URL: %w", err)
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	if config.MaxRetries == 0 {
		config.MaxRetries = 2
	}
	if config.RetryBaseDelay == 0 {
		config.RetryBaseDelay = 200 * time.Millisecond
	}
	if config.RequestTimeout == 0 {
		config.RequestTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		config: config,
		client: &http.Client{Timeout: config.RequestTimeout},
		logger: logger,
	}, nil
}

type autocompleteResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

type detailsResponse struct {
	Place Place `json:"place"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Autocomplete returns suggestions for query.
func (c *Client) Autocomplete(ctx context.Context, query string) ([]Suggestion, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinQueryLength {
		return nil, WrapError("autocomplete", ErrInvalidQuery)
	}

	params := url.Values{}
	params.Set("q", query)
	if c.config.Language != "" {
		params.Set("lang", c.config.Language)
	}

	var resp autocompleteResponse
	if err := c.get(ctx, "autocomplete", "/autocomplete?"+params.Encode(), &resp); err != nil {
		return nil, WrapError("autocomplete", err)
	}
	if resp.Suggestions == nil {
		resp.Suggestions = []Suggestion{}
	}
	return resp.Suggestions, nil
}

// Details resolves a provider id.
func (c *Client) Details(ctx context.Context, providerID string) (*Place, error) {
	providerID = strings.TrimSpace(providerID)
	if providerID == "" {
		return nil, WrapError("details", ErrInvalidQuery)
	}

	path := "/places/" + url.PathEscape(providerID)
	if c.config.Language != "" {
		path += "?lang=" + url.QueryEscape(c.config.Language)
	}

	var resp detailsResponse
	if err := c.get(ctx, "details", path, &resp); err != nil {
		return nil, WrapError("details", err)
	}
	if resp.Place.ProviderID == "" {
		resp.Place.ProviderID = providerID
	}
	return &resp.Place, nil
}

// get performs a GET with exponential backoff on transient errors.
func (c *Client) get(ctx context.Context, endpoint, path string, out interface{}) (err error) {
	defer func() {
		status := "ok"
		if err != nil {
			status = errorStatus(err)
		}
		metrics.GeocoderCalls.WithLabelValues(endpoint, status).Inc()
	}()

	var lastErr error

	for attempt := 1; attempt <= c.config.MaxRetries; attempt++ {
		err := c.do(ctx, path, out)
		if err == nil {
			return nil
		}
		lastErr = err

		if !IsRetryable(err) || attempt >= c.config.MaxRetries {
			break
		}

		delay := c.config.RetryBaseDelay * time.Duration(1<<(attempt-1))
		c.logger.Info("Retrying geocoder request", "attempt", attempt, "delay", delay, "error", err)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return lastErr
}

func (c *Client) do(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return mapHTTPError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

func errorStatus(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrRateLimit):
		return "rate_limited"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}

func mapHTTPError(statusCode int, body []byte) error {
	var errResp errorResponse
	_ = json.Unmarshal(body, &errResp)

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimit
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return ErrTimeout
	case http.StatusServiceUnavailable, http.StatusBadGateway:
		return ErrUnavailable
	default:
		return fmt.Errorf("geocoder error (status %d): %s", statusCode, errResp.Error.Message)
	}
}
