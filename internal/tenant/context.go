// Package tenant carries the organization a request acts on.
//
// This package is imported by both middleware and handler packages without
// causing import cycles.
package tenant

import (
	"context"
	"net/http"

	"github.com/DukeRupert/courtside/internal/domain"
)

type contextKey string

const organizationContextKey contextKey = "organization"

// GetOrganization retrieves the resolved organization from the context.
//
// Returns nil if no organization was resolved.
func GetOrganization(ctx context.Context) *domain.Organization {
	org, ok := ctx.Value(organizationContextKey).(*domain.Organization)
	if !ok {
		return nil
	}
	return org
}

// FromRequest is a convenience wrapper around GetOrganization.
func FromRequest(r *http.Request) *domain.Organization {
	return GetOrganization(r.Context())
}

// WithOrganization stores an organization in the context. It is called by the
// organization middleware after the path parameter has been resolved.
func WithOrganization(ctx context.Context, org *domain.Organization) context.Context {
	return context.WithValue(ctx, organizationContextKey, org)
}
