package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{
		BaseURL:        srv.URL + "/",
		APIKey:         "test-key",
		Language:       "pt",
		RetryBaseDelay: time.Millisecond,
	}, nil)
	require.NoError(t, err)
	return c
}

func TestClient_Autocomplete(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/autocomplete", r.URL.Path)
		assert.Equal(t, "rua augusta", r.URL.Query().Get("q"))
		assert.Equal(t, "pt", r.URL.Query().Get("lang"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"suggestions": []map[string]string{
				{"id": "p1", "label": "Rua Augusta", "secondary": "Lisboa"},
			},
		})
	})

	got, err := c.Autocomplete(context.Background(), "  rua augusta ")

	require.NoError(t, err)
	assert.Equal(t, []Suggestion{{ProviderID: "p1", Label: "Rua Augusta", Secondary: "Lisboa"}}, got)
}

func TestClient_AutocompleteShortQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := c.Autocomplete(context.Background(), "ru")

	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestClient_Details(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/places/abc 1", r.URL.Path)
		_, _ = w.Write([]byte(`{"place":{"name":"Clube Central","address":"Rua A, 1","city":"Lisboa","lat":38.7,"lng":-9.1}}`))
	})

	place, err := c.Details(context.Background(), "abc 1")

	require.NoError(t, err)
	assert.Equal(t, "abc 1", place.ProviderID)
	assert.Equal(t, "Lisboa", place.City)
	assert.InDelta(t, 38.7, place.Lat, 0.001)
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimit},
		{"unavailable", http.StatusServiceUnavailable, ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := c.Details(context.Background(), "x")

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_RetriesTransientErrors(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"suggestions":[]}`))
	})

	got, err := c.Autocomplete(context.Background(), "lisboa")

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(Config{}, nil)
	assert.Error(t, err)
}
