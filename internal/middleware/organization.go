package middleware

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/DukeRupert/courtside/internal/domain"
	"github.com/DukeRupert/courtside/internal/handler"
	"github.com/DukeRupert/courtside/internal/service"
	"github.com/DukeRupert/courtside/internal/tenant"
)

// OrganizationMiddleware resolves the {orgID} path segment into the tenant
// for the request. The segment may be the organization's UUID or its slug.
type OrganizationMiddleware struct {
	orgs   service.OrganizationService
	logger *slog.Logger
}

// NewOrganizationMiddleware creates a new organization middleware.
func NewOrganizationMiddleware(orgs service.OrganizationService, logger *slog.Logger) *OrganizationMiddleware {
	return &OrganizationMiddleware{orgs: orgs, logger: logger}
}

// Resolve loads the organization and stores it in the request context.
// Unknown organizations are answered with 404 before the handler runs.
func (m *OrganizationMiddleware) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ref := r.PathValue("orgID")
		if ref == "" {
			handler.ErrorResponse(w, r, m.logger, domain.NotFound("OrganizationMiddleware.Resolve", "organization", ""))
			return
		}

		var (
			org *domain.Organization
			err error
		)
		if id, parseErr := uuid.Parse(ref); parseErr == nil {
			org, err = m.orgs.Get(r.Context(), id)
		} else {
			org, err = m.orgs.GetBySlug(r.Context(), ref)
		}
		if err != nil {
			handler.ErrorResponse(w, r, m.logger, err)
			return
		}

		recordOrganization(r.Context(), org.ID.String())
		next.ServeHTTP(w, r.WithContext(tenant.WithOrganization(r.Context(), org)))
	})
}

// Stack applies middlewares so that the first one is the outermost.
func Stack(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
