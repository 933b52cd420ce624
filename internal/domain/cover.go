package domain

import (
	"time"

	"github.com/google/uuid"
)

// SupportedCoverTypes maps MIME types accepted for event covers to display names.
var SupportedCoverTypes = map[string]string{
	"image/jpeg": "JPEG",
	"image/png":  "PNG",
	"image/webp": "WebP",
}

const (
	// MaxCoverSize is the maximum upload size for a cover image (10MB).
	MaxCoverSize = 10 * 1024 * 1024

	// CoverThumbnailWidth and CoverThumbnailHeight bound generated thumbnails.
	CoverThumbnailWidth  = 640
	CoverThumbnailHeight = 360

	// ThumbnailJPEGQuality is the JPEG quality for thumbnail generation (0-100).
	ThumbnailJPEGQuality = 85
)

// CoverImage is an uploaded event cover.
type CoverImage struct {
	ID               uuid.UUID
	OrganizationID   uuid.UUID
	StorageKey       string
	ThumbnailKey     string // empty until the thumbnail job finishes
	OriginalFilename string
	ContentType      string
	SizeBytes        int64
	Width            int32
	Height           int32
	CreatedAt        time.Time

	// Computed
	URL          string
	ThumbnailURL string
}

// IsValidCoverContentType checks if the content type is supported.
func IsValidCoverContentType(contentType string) bool {
	_, ok := SupportedCoverTypes[contentType]
	return ok
}

// ValidateCoverSize checks if the file size is within limits.
func ValidateCoverSize(size int64) error {
	if size > MaxCoverSize {
		return Errorf(ETOOLARGE, "cover.validate", "Cover image exceeds the %.0fMB limit", float64(MaxCoverSize)/(1024*1024))
	}
	if size == 0 {
		return Invalid("cover.validate", "Cover image is empty")
	}
	return nil
}
