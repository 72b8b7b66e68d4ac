package extract

import "fmt"

// Kind classifies an extraction failure.
type Kind string

const (
	KindMalformedDocument Kind = "malformed_document"
	KindOCRFailure        Kind = "ocr_failure"
	KindVisionFailure     Kind = "vision_failure"
	KindRateLimited       Kind = "rate_limited"
	KindUnsupportedMedia  Kind = "unsupported_media"
)

// Error is an extraction failure tagged with its kind. Extraction failure is
// distinguished from an empty result: an empty string with a nil error means
// the artifact contained no text.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("extraction failed (%s)", e.Kind)
	}
	return fmt.Sprintf("extraction failed (%s): %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}
