package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// =============================================================================
// Security Headers Middleware Tests
// =============================================================================

func TestSecurityHeadersMiddleware(t *testing.T) {
	for _, secure := range []bool{false, true} {
		rec := httptest.NewRecorder()
		NewSecurityHeadersMiddleware(secure).Handler(okHandler()).
			ServeHTTP(rec, httptest.NewRequest("GET", "/api/organizations/x/events", nil))

		want := map[string]string{
			"X-Frame-Options":         "DENY",
			"X-Content-Type-Options":  "nosniff",
			"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
			"Cache-Control":           "no-store",
		}
		for header, value := range want {
			if got := rec.Header().Get(header); got != value {
				t.Errorf("secure=%v %s = %q, want %q", secure, header, got, value)
			}
		}

		hsts := rec.Header().Get("Strict-Transport-Security")
		if secure && hsts == "" {
			t.Error("HSTS should be set in production")
		}
		if !secure && hsts != "" {
			t.Error("HSTS should not be set in development")
		}
	}
}

func TestSecurityHeadersMiddleware_KeepsCacheControl(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	rec := httptest.NewRecorder()
	rec.Header().Set("Cache-Control", "private, max-age=60")

	NewSecurityHeadersMiddleware(false).Handler(next).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if got := rec.Header().Get("Cache-Control"); got != "private, max-age=60" {
		t.Errorf("Cache-Control = %q", got)
	}
}
