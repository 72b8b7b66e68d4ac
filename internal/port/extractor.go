package port

import "context"

// TextExtractor converts a report artifact (image or PDF bytes) into a single
// normalized text blob. An empty result with a nil error means the artifact
// genuinely contained no text; failures are reported as *extract.Error.
type TextExtractor interface {
	Extract(ctx context.Context, fileBytes []byte, contentType string) (string, error)
}
