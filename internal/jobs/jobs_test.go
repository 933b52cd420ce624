package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/courtside/internal/domain"
	"github.com/DukeRupert/courtside/internal/worker"
)

type stubCovers struct {
	got uuid.UUID
	err error
}

func (s *stubCovers) ProcessThumbnail(_ context.Context, id uuid.UUID) error {
	s.got = id
	return s.err
}

type stubExports struct {
	got uuid.UUID
	err error
}

func (s *stubExports) RunExport(_ context.Context, id uuid.UUID) error {
	s.got = id
	return s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProcessCoverImageHandler(t *testing.T) {
	coverID := uuid.New()
	payload := []byte(`{"cover_id":"` + coverID.String() + `","organization_id":"` + uuid.NewString() + `"}`)

	tests := []struct {
		name          string
		payload       []byte
		serviceErr    error
		wantErr       bool
		wantPermanent bool
	}{
		{name: "success", payload: payload},
		{name: "malformed payload", payload: []byte(`{`), wantErr: true, wantPermanent: true},
		{name: "missing cover id", payload: []byte(`{}`), wantErr: true, wantPermanent: true},
		{name: "cover deleted", payload: payload, serviceErr: domain.NotFound("op", "cover", coverID.String()), wantErr: true, wantPermanent: true},
		{name: "undecodable image", payload: payload, serviceErr: domain.Invalid("op", "bad image"), wantErr: true, wantPermanent: true},
		{name: "storage outage retries", payload: payload, serviceErr: domain.Internal(errors.New("timeout"), "op", "x"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			covers := &stubCovers{err: tt.serviceErr}
			h := NewProcessCoverImageHandler(covers, discardLogger())
			assert.Equal(t, worker.JobTypeProcessCoverImage, h.Type())

			err := h.Handle(context.Background(), tt.payload)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, coverID, covers.got)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantPermanent, worker.IsPermanent(err))
		})
	}
}

func TestExportSalesCSVHandler(t *testing.T) {
	exportID := uuid.New()
	params, err := worker.NewEnqueueParams(worker.JobTypeExportSalesCSV, worker.ExportSalesCSVPayload{
		ExportID:       exportID,
		OrganizationID: uuid.New(),
	})
	require.NoError(t, err)

	exports := &stubExports{}
	h := NewExportSalesCSVHandler(exports, discardLogger())
	require.NoError(t, h.Handle(context.Background(), params.Payload))
	assert.Equal(t, exportID, exports.got)

	exports.err = domain.NotFound("op", "export", exportID.String())
	err = h.Handle(context.Background(), params.Payload)
	assert.True(t, worker.IsPermanent(err))

	exports.err = errors.New("connection reset")
	err = h.Handle(context.Background(), params.Payload)
	require.Error(t, err)
	assert.False(t, worker.IsPermanent(err))
}
