package extract

import (
	"context"
	"fmt"

	"hia/internal/domain"
)

// ImageStrategy extracts text from image bytes. Two interchangeable
// implementations exist: the local OCR engine and the vision-model path.
// Which one is active is configuration, not code.
type ImageStrategy interface {
	ExtractImage(ctx context.Context, imageBytes []byte, contentType string) (string, error)
}

// Adapter converts a report artifact into a normalized text blob.
// It implements port.TextExtractor.
type Adapter struct {
	image ImageStrategy
}

// NewAdapter creates an Adapter using the given image strategy.
func NewAdapter(image ImageStrategy) *Adapter {
	return &Adapter{image: image}
}

// Extract dispatches on media type. PDFs are parsed locally; images go
// through the configured strategy.
func (a *Adapter) Extract(ctx context.Context, fileBytes []byte, contentType string) (string, error) {
	switch {
	case contentType == "application/pdf":
		return extractPDF(fileBytes)
	case domain.ImageContentTypes[contentType]:
		return a.image.ExtractImage(ctx, fileBytes, contentType)
	default:
		return "", newError(KindUnsupportedMedia, fmt.Errorf("unsupported content type: %s", contentType))
	}
}
