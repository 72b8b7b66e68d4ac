package extract

import (
	"context"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// OCREngine extracts image text with a local tesseract engine. Bounding-box
// and positional data are discarded; only the concatenated text matters.
type OCREngine struct{}

// NewOCREngine creates the local OCR strategy.
func NewOCREngine() *OCREngine {
	return &OCREngine{}
}

func (o *OCREngine) ExtractImage(ctx context.Context, imageBytes []byte, contentType string) (string, error) {
	client := gosseract.NewClient()
	defer func() { _ = client.Close() }()

	if err := client.SetImageFromBytes(imageBytes); err != nil {
		return "", newError(KindOCRFailure, err)
	}
	text, err := client.Text()
	if err != nil {
		return "", newError(KindOCRFailure, err)
	}
	return strings.TrimSpace(text), nil
}
