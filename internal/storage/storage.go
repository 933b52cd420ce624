// Package storage stores event cover images, their thumbnails and finance
// CSV exports.
//
// Two backends implement Storage: LocalStorage writes below a directory and is
// used in development and by tests, R2Storage talks to Cloudflare R2 (or any
// S3-compatible endpoint) in production.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Storage is an object store addressed by slash-separated keys.
type Storage interface {
	// Put stores data at key. Without opts.Overwrite an existing key yields
	// ErrKeyExists.
	Put(ctx context.Context, key string, data io.Reader, opts PutOptions) error

	// Get returns the object body (caller must close) and its metadata, or
	// ErrNotFound.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// URL returns a link to key. A zero expires asks for a permanent public
	// URL when the backend has one; otherwise the link is presigned.
	URL(ctx context.Context, key string, expires time.Duration) (string, error)

	Exists(ctx context.Context, key string) (bool, error)
}

// PutOptions configures Put.
type PutOptions struct {
	// ContentType is detected from the key when empty.
	ContentType string

	// MaxSize rejects larger bodies with ErrTooLarge. Zero means no limit.
	MaxSize int64

	Overwrite bool

	// Public marks the object world-readable (public-read ACL on R2).
	Public bool

	// DownloadName sets a Content-Disposition attachment filename.
	DownloadName string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
	ETag         string
}

// LocalConfig configures LocalStorage.
type LocalConfig struct {
	BasePath string // e.g. "./storage"
	BaseURL  string // e.g. "http://localhost:8080/files"
}

// R2Config configures R2Storage.
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string

	// PublicURL is the bucket's public domain. Without it every URL is presigned.
	PublicURL string

	// Region defaults to "auto".
	Region string

	// Endpoint overrides the R2 endpoint derived from AccountID, for other
	// S3-compatible stores.
	Endpoint string
}

const (
	ProviderLocal = "local"
	ProviderR2    = "r2"
)

// Config selects and configures a backend.
type Config struct {
	Provider string
	Local    LocalConfig
	R2       R2Config
}

// New returns the backend named by cfg.Provider.
func New(cfg Config, logger *slog.Logger) (Storage, error) {
	switch cfg.Provider {
	case ProviderLocal, "":
		return NewLocalStorage(cfg.Local, logger)
	case ProviderR2:
		return NewR2Storage(cfg.R2, logger)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}

// =============================================================================
// Keys
// =============================================================================

// CoverKey returns the key of an uploaded cover.
// Format: organizations/{orgID}/covers/{coverID}{ext}
func CoverKey(orgID, coverID uuid.UUID, ext string) string {
	return fmt.Sprintf("organizations/%s/covers/%s%s", orgID, coverID, ext)
}

// CoverThumbnailKey returns the key of a cover thumbnail. Thumbnails are
// always JPEG.
func CoverThumbnailKey(orgID, coverID uuid.UUID) string {
	return fmt.Sprintf("organizations/%s/covers/thumbnails/%s.jpg", orgID, coverID)
}

// ExportKey returns the key of a finance CSV export.
func ExportKey(orgID, exportID uuid.UUID) string {
	return fmt.Sprintf("organizations/%s/exports/%s.csv", orgID, exportID)
}
