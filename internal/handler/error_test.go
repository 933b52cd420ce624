package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/courtside/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) JSONError {
	t.Helper()
	var body JSONError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorCodeToHTTPStatus(t *testing.T) {
	tests := map[string]int{
		domain.EINVALID:     http.StatusBadRequest,
		domain.EPAYMENT:     http.StatusPaymentRequired,
		domain.ENOTFOUND:    http.StatusNotFound,
		domain.ECONFLICT:    http.StatusConflict,
		domain.ETOOLARGE:    http.StatusRequestEntityTooLarge,
		domain.ERATELIMIT:   http.StatusTooManyRequests,
		domain.EUNAVAILABLE: http.StatusBadGateway,
		domain.EINTERNAL:    http.StatusInternalServerError,
		"something_else":    http.StatusInternalServerError,
	}
	for code, want := range tests {
		assert.Equal(t, want, ErrorCodeToHTTPStatus(code), code)
	}
}

func TestErrorResponse_ValidationKeepsFieldOrder(t *testing.T) {
	ve := &domain.ValidationError{Op: "EventService.Create", Issues: []domain.FieldIssue{
		{Field: "title", Message: "Enter the event title."},
		{Field: "startsAt", Message: "Choose the start date and time."},
		{Field: "tickets", Message: "Add at least one ticket."},
	}}

	rec := httptest.NewRecorder()
	ErrorResponse(rec, httptest.NewRequest("POST", "/api/x", nil), discardLogger(), ve)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotContains(t, rec.Body.String(), "EventService")

	body := decodeError(t, rec)
	assert.Equal(t, domain.EINVALID, body.Error.Code)
	require.Len(t, body.Error.Fields, 3)
	assert.Equal(t, "title", body.Error.Fields[0].Field)
	assert.Equal(t, "tickets", body.Error.Fields[2].Field)
}

func TestErrorResponse_InternalErrorHidesDetails(t *testing.T) {
	err := domain.Internal(errors.New("pq: relation \"events\" does not exist"), "EventService.Create", "Failed to create event")

	rec := httptest.NewRecorder()
	ErrorResponse(rec, httptest.NewRequest("POST", "/api/x", nil), discardLogger(), err)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pq:")
	assert.NotContains(t, rec.Body.String(), "EventService")

	body := decodeError(t, rec)
	assert.Equal(t, domain.GenericErrorMessage, body.Error.Message)
	assert.Empty(t, body.Error.Fields)
}

func TestErrorResponse_PaymentRequired(t *testing.T) {
	err := domain.Payment("EventService.Create", "Connect your payment account.")

	rec := httptest.NewRecorder()
	ErrorResponse(rec, httptest.NewRequest("POST", "/api/x", nil), discardLogger(), err)

	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, domain.EPAYMENT, body.Error.Code)
	assert.Equal(t, "Connect your payment account.", body.Error.Message)
}

func TestErrorResponse_UnwrappedErrorReturnsGeneric(t *testing.T) {
	rec := httptest.NewRecorder()
	ErrorResponse(rec, httptest.NewRequest("GET", "/api/x", nil), discardLogger(), errors.New("raw failure"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "raw failure")
}
