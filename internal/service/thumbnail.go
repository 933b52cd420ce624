// Package service contains the business logic of the Courtside backend.
//
// Every service is an interface with an unexported implementation that talks
// to the repository layer and returns *domain.Error values.
//
// This file implements thumbnail generation for event covers.
package service

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // registers the WebP decoder for image.Decode

	"github.com/DukeRupert/courtside/internal/domain"
)

// ThumbnailProcessor handles thumbnail generation from images.
type ThumbnailProcessor interface {
	// GenerateThumbnail creates a JPEG thumbnail that fits within
	// maxWidth x maxHeight. It also returns the original dimensions.
	GenerateThumbnail(data io.Reader, maxWidth, maxHeight int) ([]byte, int, int, error)

	// Dimensions reads the image header and returns width and height without
	// decoding the pixels.
	Dimensions(data io.Reader) (int, int, error)
}

// imagingProcessor implements ThumbnailProcessor using the imaging library.
type imagingProcessor struct {
	quality int
}

// NewImagingProcessor creates a new thumbnail processor using the imaging library.
func NewImagingProcessor() ThumbnailProcessor {
	return &imagingProcessor{quality: domain.ThumbnailJPEGQuality}
}

// GenerateThumbnail creates a thumbnail from the provided image data.
//
// Covers are cropped to the thumbnail aspect ratio when both bounds are set,
// so every card in the events table has the same shape. With one bound at
// zero the image is scaled preserving its aspect ratio.
func (p *imagingProcessor) GenerateThumbnail(data io.Reader, maxWidth, maxHeight int) ([]byte, int, int, error) {
	img, _, err := image.Decode(data)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	originalWidth := bounds.Dx()
	originalHeight := bounds.Dy()

	var thumbnail image.Image
	switch {
	case maxWidth > 0 && maxHeight > 0 && (originalWidth > maxWidth || originalHeight > maxHeight):
		thumbnail = imaging.Fill(img, maxWidth, maxHeight, imaging.Center, imaging.Lanczos)
	case maxWidth > 0 && maxHeight > 0:
		thumbnail = img
	default:
		thumbnail = imaging.Resize(img, maxWidth, maxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumbnail, imaging.JPEG, imaging.JPEGQuality(p.quality)); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return buf.Bytes(), originalWidth, originalHeight, nil
}

// Dimensions returns the width and height recorded in the image header.
func (p *imagingProcessor) Dimensions(data io.Reader) (int, int, error) {
	cfg, _, err := image.DecodeConfig(data)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read image header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
