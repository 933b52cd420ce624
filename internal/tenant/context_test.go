package tenant

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/courtside/internal/domain"
)

func TestOrganizationContext(t *testing.T) {
	assert.Nil(t, GetOrganization(context.Background()))

	org := &domain.Organization{ID: uuid.New(), Slug: "clube"}
	req := httptest.NewRequest("GET", "/", nil)
	req = req.WithContext(WithOrganization(req.Context(), org))

	got := FromRequest(req)
	require.NotNil(t, got)
	assert.Equal(t, org.ID, got.ID)
}
