package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/courtside/internal/domain"
	"github.com/DukeRupert/courtside/internal/draft"
	"github.com/DukeRupert/courtside/internal/eventform"
)

func TestDraftService_SaveRestoreDiscard(t *testing.T) {
	ctx := context.Background()
	svc := NewDraftServiceWithStore(draft.NewMemoryStore(), testLogger())
	orgID := uuid.New()

	st, ok, err := svc.Restore(ctx, orgID, "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, eventform.DefaultState().Preset, st.Preset)

	saved := paidState()
	require.NoError(t, svc.Save(ctx, orgID, "", saved))

	st, ok, err = svc.Restore(ctx, orgID, "")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Summer Party", st.Title)
	require.Len(t, st.Tickets, 1)
	assert.Equal(t, "10", st.Tickets[0].Price)

	// Drafts are scoped to the organization.
	_, ok, err = svc.Restore(ctx, uuid.New(), "")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, svc.Discard(ctx, orgID, ""))
	require.NoError(t, svc.Discard(ctx, orgID, ""))

	_, ok, err = svc.Restore(ctx, orgID, "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDraftService_InvalidName(t *testing.T) {
	svc := NewDraftServiceWithStore(draft.NewMemoryStore(), testLogger())

	err := svc.Save(context.Background(), uuid.New(), strings.Repeat("x", 65), eventform.DefaultState())
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}
