package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

const coverImageColumns = `id, organization_id, storage_key, thumbnail_key, original_filename, content_type, size_bytes, width, height, created_at`

func scanCoverImage(row interface{ Scan(...interface{}) error }) (CoverImage, error) {
	var i CoverImage
	err := row.Scan(
		&i.ID,
		&i.OrganizationID,
		&i.StorageKey,
		&i.ThumbnailKey,
		&i.OriginalFilename,
		&i.ContentType,
		&i.SizeBytes,
		&i.Width,
		&i.Height,
		&i.CreatedAt,
	)
	return i, err
}

const createCoverImage = `-- name: CreateCoverImage :one
INSERT INTO cover_images (id, organization_id, storage_key, original_filename, content_type, size_bytes, width, height)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + coverImageColumns + `
`

type CreateCoverImageParams struct {
	ID               uuid.UUID
	OrganizationID   uuid.UUID
	StorageKey       string
	OriginalFilename string
	ContentType      string
	SizeBytes        int64
	Width            sql.NullInt32
	Height           sql.NullInt32
}

func (q *Queries) CreateCoverImage(ctx context.Context, arg CreateCoverImageParams) (CoverImage, error) {
	row := q.db.QueryRowContext(ctx, createCoverImage,
		arg.ID,
		arg.OrganizationID,
		arg.StorageKey,
		arg.OriginalFilename,
		arg.ContentType,
		arg.SizeBytes,
		arg.Width,
		arg.Height,
	)
	return scanCoverImage(row)
}

const getCoverImage = `-- name: GetCoverImage :one
SELECT ` + coverImageColumns + ` FROM cover_images WHERE id = $1
`

func (q *Queries) GetCoverImage(ctx context.Context, id uuid.UUID) (CoverImage, error) {
	return scanCoverImage(q.db.QueryRowContext(ctx, getCoverImage, id))
}

const updateCoverThumbnail = `-- name: UpdateCoverThumbnail :exec
UPDATE cover_images SET thumbnail_key = $2 WHERE id = $1
`

type UpdateCoverThumbnailParams struct {
	ID           uuid.UUID
	ThumbnailKey sql.NullString
}

func (q *Queries) UpdateCoverThumbnail(ctx context.Context, arg UpdateCoverThumbnailParams) error {
	_, err := q.db.ExecContext(ctx, updateCoverThumbnail, arg.ID, arg.ThumbnailKey)
	return err
}
