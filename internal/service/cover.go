package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/DukeRupert/courtside/internal/domain"
	"github.com/DukeRupert/courtside/internal/repository"
	"github.com/DukeRupert/courtside/internal/storage"
	"github.com/DukeRupert/courtside/internal/worker"
)

// coverURLExpiry is used when the storage backend has no public URL.
const coverURLExpiry = 24 * time.Hour

// UploadCoverParams describes an uploaded cover file.
type UploadCoverParams struct {
	OrganizationID uuid.UUID
	Filename       string
	Size           int64
	File           io.Reader
}

// CoverService defines the interface for event cover images.
type CoverService interface {
	// Upload validates and stores a cover, then queues thumbnail generation.
	Upload(ctx context.Context, params UploadCoverParams) (*domain.CoverImage, error)

	// GetByID returns a cover with its URLs, verifying organization ownership.
	GetByID(ctx context.Context, id, orgID uuid.UUID) (*domain.CoverImage, error)

	// ProcessThumbnail generates and stores the thumbnail of an uploaded cover.
	// It is called by the process_cover_image job.
	ProcessThumbnail(ctx context.Context, id uuid.UUID) error
}

type coverService struct {
	queries   *repository.Queries
	storage   storage.Storage
	processor ThumbnailProcessor
	logger    *slog.Logger
}

// NewCoverService creates a new CoverService.
func NewCoverService(queries *repository.Queries, store storage.Storage, processor ThumbnailProcessor, logger *slog.Logger) CoverService {
	if processor == nil {
		processor = NewImagingProcessor()
	}
	return &coverService{
		queries:   queries,
		storage:   store,
		processor: processor,
		logger:    logger,
	}
}

func (s *coverService) Upload(ctx context.Context, params UploadCoverParams) (*domain.CoverImage, error) {
	const op = "CoverService.Upload"

	if err := domain.ValidateCoverSize(params.Size); err != nil {
		return nil, err
	}

	// The declared size can lie; read one byte past the limit to find out.
	data, err := io.ReadAll(io.LimitReader(params.File, domain.MaxCoverSize+1))
	if err != nil {
		return nil, domain.Internal(err, op, "failed to read cover")
	}
	if err := domain.ValidateCoverSize(int64(len(data))); err != nil {
		return nil, err
	}

	contentType, err := sniffCoverType(op, data)
	if err != nil {
		return nil, err
	}

	width, height, err := s.processor.Dimensions(bytes.NewReader(data))
	if err != nil {
		return nil, domain.Invalid(op, "The file is not a readable image")
	}

	coverID := uuid.New()
	key := storage.CoverKey(params.OrganizationID, coverID, storage.ExtensionForContentType(contentType))

	if err := s.storage.Put(ctx, key, bytes.NewReader(data), storage.PutOptions{
		ContentType: contentType,
		MaxSize:     domain.MaxCoverSize,
		Public:      true,
	}); err != nil {
		s.logger.Error("failed to store cover", "error", err, "op", op, "key", key)
		return nil, domain.Internal(err, op, "failed to store cover")
	}

	row, err := s.queries.CreateCoverImage(ctx, repository.CreateCoverImageParams{
		ID:               coverID,
		OrganizationID:   params.OrganizationID,
		StorageKey:       key,
		OriginalFilename: params.Filename,
		ContentType:      contentType,
		SizeBytes:        int64(len(data)),
		Width:            sql.NullInt32{Int32: int32(width), Valid: true},
		Height:           sql.NullInt32{Int32: int32(height), Valid: true},
	})
	if err != nil {
		_ = s.storage.Delete(ctx, key)
		s.logger.Error("failed to create cover record", "error", err, "op", op)
		return nil, domain.Internal(err, op, "failed to save cover")
	}

	// A missing thumbnail only degrades the events table, so the upload stands.
	if _, err := worker.EnqueueProcessCoverImage(ctx, s.queries, coverID, params.OrganizationID); err != nil {
		s.logger.Error("failed to enqueue cover processing", "error", err, "op", op, "cover_id", coverID)
	}

	cover := repoCoverToDomain(row)
	s.populateURLs(ctx, &cover)

	s.logger.Info("cover uploaded",
		"cover_id", cover.ID,
		"organization_id", cover.OrganizationID,
		"content_type", contentType,
		"size", cover.SizeBytes,
	)
	return &cover, nil
}

func (s *coverService) GetByID(ctx context.Context, id, orgID uuid.UUID) (*domain.CoverImage, error) {
	const op = "CoverService.GetByID"

	row, err := s.queries.GetCoverImage(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "cover", id.String())
		}
		return nil, domain.Internal(err, op, "failed to fetch cover")
	}
	if row.OrganizationID != orgID {
		return nil, domain.NotFound(op, "cover", id.String())
	}

	cover := repoCoverToDomain(row)
	s.populateURLs(ctx, &cover)
	return &cover, nil
}

func (s *coverService) ProcessThumbnail(ctx context.Context, id uuid.UUID) error {
	const op = "CoverService.ProcessThumbnail"

	row, err := s.queries.GetCoverImage(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFound(op, "cover", id.String())
		}
		return domain.Internal(err, op, "failed to fetch cover")
	}
	if row.ThumbnailKey.Valid {
		return nil
	}

	body, _, err := s.storage.Get(ctx, row.StorageKey)
	if err != nil {
		if storage.IsNotFound(err) {
			return domain.NotFound(op, "cover object", row.StorageKey)
		}
		return domain.Internal(err, op, "failed to read cover")
	}
	defer body.Close()

	thumb, _, _, err := s.processor.GenerateThumbnail(body, domain.CoverThumbnailWidth, domain.CoverThumbnailHeight)
	if err != nil {
		return domain.Invalid(op, fmt.Sprintf("cover cannot be decoded: %v", err))
	}

	thumbKey := storage.CoverThumbnailKey(row.OrganizationID, row.ID)
	if err := s.storage.Put(ctx, thumbKey, bytes.NewReader(thumb), storage.PutOptions{
		ContentType: "image/jpeg",
		Overwrite:   true,
		Public:      true,
	}); err != nil {
		return domain.Internal(err, op, "failed to store thumbnail")
	}

	if err := s.queries.UpdateCoverThumbnail(ctx, repository.UpdateCoverThumbnailParams{
		ID:           row.ID,
		ThumbnailKey: sql.NullString{String: thumbKey, Valid: true},
	}); err != nil {
		return domain.Internal(err, op, "failed to record thumbnail")
	}

	s.logger.Info("cover thumbnail generated", "cover_id", row.ID, "key", thumbKey, "bytes", len(thumb))
	return nil
}

func (s *coverService) populateURLs(ctx context.Context, cover *domain.CoverImage) {
	if url, err := s.storage.URL(ctx, cover.StorageKey, 0); err == nil {
		cover.URL = url
	} else if url, err := s.storage.URL(ctx, cover.StorageKey, coverURLExpiry); err == nil {
		cover.URL = url
	}
	if cover.ThumbnailKey != "" {
		if url, err := s.storage.URL(ctx, cover.ThumbnailKey, 0); err == nil {
			cover.ThumbnailURL = url
		}
	}
}

// sniffCoverType detects the content type from the first 512 bytes and
// rejects anything that is not a supported cover format.
func sniffCoverType(op string, data []byte) (string, error) {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	contentType := http.DetectContentType(head)
	if !domain.IsValidCoverContentType(contentType) {
		return "", domain.Invalid(op, fmt.Sprintf("Unsupported image type: %s. Use JPEG, PNG or WebP.", contentType))
	}
	return contentType, nil
}
