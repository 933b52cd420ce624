// Package handler contains the HTTP handlers of the Courtside API.
//
// Every route under /api/organizations/{orgID} is wrapped by the organization
// middleware, so handlers read the tenant from the request context instead of
// parsing the path themselves.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/DukeRupert/courtside/internal/domain"
	"github.com/DukeRupert/courtside/internal/tenant"
)

// maxJSONBody bounds request bodies. A form state with every category
// selected is well below it.
const maxJSONBody = 1 << 20

// decodeJSON reads a JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	const op = "handler.decodeJSON"

	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return domain.Errorf(domain.ETOOLARGE, op, "Request body is too large")
		case errors.Is(err, io.EOF):
			return domain.Invalid(op, "Request body is empty")
		default:
			return domain.Invalid(op, "Request body is not valid JSON")
		}
	}
	return nil
}

// organization returns the tenant resolved by the organization middleware.
func organization(r *http.Request) (*domain.Organization, error) {
	org := tenant.FromRequest(r)
	if org == nil {
		return nil, domain.NotFound("handler.organization", "organization", r.PathValue("orgID"))
	}
	return org, nil
}

// pathUUID parses a UUID path parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.Invalid("handler.pathUUID", "Invalid "+name)
	}
	return id, nil
}
