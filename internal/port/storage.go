package port

import (
	"context"
	"io"
)

// ObjectStorage abstracts blob storage for application documents.
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) error
	PresignGet(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
