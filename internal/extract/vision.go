package extract

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"

	"hia/internal/llm"
	"hia/internal/port"
)

const visionSystemPrompt = "You are a precise OCR system. Extract ALL text from images accurately, " +
	"preserving numbers, units, and formatting. Output ONLY the extracted text."

const visionUserPrompt = "Extract all text from this medical report image. Include ALL values, " +
	"test names, reference ranges, and any other text visible in the image. " +
	"Output ONLY the extracted text, nothing else."

// VisionExtractor extracts image text through a vision-capable model.
// If the primary model fails, it retries exactly once against a secondary
// model before surfacing failure: a failure here may be systematic to the
// primary model rather than transient, so this is model fallback rather than
// the gateway's general retry loop.
type VisionExtractor struct {
	completer     port.ChatCompleter
	primaryModel  string
	fallbackModel string
}

// NewVisionExtractor creates the vision-model strategy. fallbackModel may be
// empty to disable the fallback attempt.
func NewVisionExtractor(completer port.ChatCompleter, primaryModel, fallbackModel string) *VisionExtractor {
	return &VisionExtractor{
		completer:     completer,
		primaryModel:  primaryModel,
		fallbackModel: fallbackModel,
	}
}

func (v *VisionExtractor) ExtractImage(ctx context.Context, imageBytes []byte, contentType string) (string, error) {
	messages := buildVisionMessages(imageBytes, contentType)

	text, primaryErr := v.completer.Complete(ctx, v.primaryModel, messages)
	if primaryErr == nil {
		return strings.TrimSpace(text), nil
	}
	log.Printf("extract.VisionExtractor: %s failed: %v", v.primaryModel, primaryErr)

	if v.fallbackModel == "" {
		return "", classifyVisionError(primaryErr)
	}

	text, fallbackErr := v.completer.Complete(ctx, v.fallbackModel, messages)
	if fallbackErr == nil {
		return strings.TrimSpace(text), nil
	}
	log.Printf("extract.VisionExtractor: fallback %s failed: %v", v.fallbackModel, fallbackErr)

	// Prefer the rate-limited classification so the caller can advise waiting.
	if isRateLimited(primaryErr) || isRateLimited(fallbackErr) {
		return "", newError(KindRateLimited, fallbackErr)
	}
	return "", newError(KindVisionFailure, fallbackErr)
}

func buildVisionMessages(imageBytes []byte, contentType string) []port.Message {
	encoded := base64.StdEncoding.EncodeToString(imageBytes)
	dataURI := fmt.Sprintf("data:%s;base64,%s", contentType, encoded)

	return []port.Message{
		port.TextMessage("system", visionSystemPrompt),
		{
			Role: "user",
			Content: []port.ContentPart{
				{Type: "image_url", ImageURL: &port.ImageURL{URL: dataURI}},
				{Type: "text", Text: visionUserPrompt},
			},
		},
	}
}

func classifyVisionError(err error) *Error {
	if isRateLimited(err) {
		return newError(KindRateLimited, err)
	}
	return newError(KindVisionFailure, err)
}

func isRateLimited(err error) bool {
	var rlErr *llm.RateLimitError
	return errors.As(err, &rlErr)
}
