package extract_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hia/internal/extract"
)

// stubImageStrategy records the last call and returns a fixed result.
type stubImageStrategy struct {
	called      bool
	contentType string
	text        string
	err         error
}

func (s *stubImageStrategy) ExtractImage(_ context.Context, _ []byte, contentType string) (string, error) {
	s.called = true
	s.contentType = contentType
	return s.text, s.err
}

func TestAdapter_ImageDispatchedToStrategy(t *testing.T) {
	stub := &stubImageStrategy{text: "Glucose: 88 mg/dL"}
	a := extract.NewAdapter(stub)

	text, err := a.Extract(context.Background(), []byte{0x89}, "image/png")

	require.NoError(t, err)
	assert.Equal(t, "Glucose: 88 mg/dL", text)
	assert.True(t, stub.called)
	assert.Equal(t, "image/png", stub.contentType)
}

func TestAdapter_UnsupportedContentType(t *testing.T) {
	stub := &stubImageStrategy{}
	a := extract.NewAdapter(stub)

	_, err := a.Extract(context.Background(), []byte("hello"), "text/plain")

	var extErr *extract.Error
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, extract.KindUnsupportedMedia, extErr.Kind)
	assert.False(t, stub.called)
}

func TestAdapter_MalformedPDF(t *testing.T) {
	stub := &stubImageStrategy{}
	a := extract.NewAdapter(stub)

	_, err := a.Extract(context.Background(), []byte("not a pdf at all"), "application/pdf")

	var extErr *extract.Error
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, extract.KindMalformedDocument, extErr.Kind)
	assert.False(t, stub.called)
}
