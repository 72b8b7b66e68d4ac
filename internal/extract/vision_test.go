package extract_test

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hia/internal/extract"
	"hia/internal/llm"
	"hia/internal/port"
	"hia/mocks"
)

const (
	primaryModel  = "test/vision-primary"
	fallbackModel = "test/vision-fallback"
)

func TestVisionExtractor_PrimarySucceeds(t *testing.T) {
	completer := new(mocks.MockChatCompleter)
	v := extract.NewVisionExtractor(completer, primaryModel, fallbackModel)

	completer.On("Complete", mock.Anything, primaryModel, mock.Anything).
		Return("  Glucose: 88 mg/dL  ", nil)

	text, err := v.ExtractImage(context.Background(), []byte{0x89, 0x50}, "image/png")

	require.NoError(t, err)
	assert.Equal(t, "Glucose: 88 mg/dL", text)
	completer.AssertNumberOfCalls(t, "Complete", 1)
}

func TestVisionExtractor_FallbackAfterPrimaryFailure(t *testing.T) {
	completer := new(mocks.MockChatCompleter)
	v := extract.NewVisionExtractor(completer, primaryModel, fallbackModel)

	completer.On("Complete", mock.Anything, primaryModel, mock.Anything).
		Return("", &llm.APIError{Model: primaryModel, Status: 500, Body: "oops"})
	completer.On("Complete", mock.Anything, fallbackModel, mock.Anything).
		Return("Glucose: 88 mg/dL", nil)

	text, err := v.ExtractImage(context.Background(), []byte{0x89, 0x50}, "image/png")

	require.NoError(t, err)
	assert.Equal(t, "Glucose: 88 mg/dL", text)
	completer.AssertNumberOfCalls(t, "Complete", 2)
}

func TestVisionExtractor_RateLimitClassificationPreferred(t *testing.T) {
	completer := new(mocks.MockChatCompleter)
	v := extract.NewVisionExtractor(completer, primaryModel, fallbackModel)

	completer.On("Complete", mock.Anything, primaryModel, mock.Anything).
		Return("", llm.NewRateLimitError(primaryModel, errors.New("429"), 30))
	completer.On("Complete", mock.Anything, fallbackModel, mock.Anything).
		Return("", &llm.APIError{Model: fallbackModel, Status: 500, Body: "oops"})

	_, err := v.ExtractImage(context.Background(), []byte{0x89, 0x50}, "image/png")

	var extErr *extract.Error
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, extract.KindRateLimited, extErr.Kind)
}

func TestVisionExtractor_BothFailVisionFailure(t *testing.T) {
	completer := new(mocks.MockChatCompleter)
	v := extract.NewVisionExtractor(completer, primaryModel, fallbackModel)

	completer.On("Complete", mock.Anything, primaryModel, mock.Anything).
		Return("", &llm.APIError{Model: primaryModel, Status: 500, Body: "a"})
	completer.On("Complete", mock.Anything, fallbackModel, mock.Anything).
		Return("", &llm.APIError{Model: fallbackModel, Status: 502, Body: "b"})

	_, err := v.ExtractImage(context.Background(), []byte{0x89, 0x50}, "image/png")

	var extErr *extract.Error
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, extract.KindVisionFailure, extErr.Kind)
	completer.AssertNumberOfCalls(t, "Complete", 2)
}

func TestVisionExtractor_NoFallbackConfigured(t *testing.T) {
	completer := new(mocks.MockChatCompleter)
	v := extract.NewVisionExtractor(completer, primaryModel, "")

	completer.On("Complete", mock.Anything, primaryModel, mock.Anything).
		Return("", llm.NewRateLimitError(primaryModel, errors.New("429"), 60))

	_, err := v.ExtractImage(context.Background(), []byte{0x89, 0x50}, "image/png")

	var extErr *extract.Error
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, extract.KindRateLimited, extErr.Kind)
	completer.AssertNumberOfCalls(t, "Complete", 1)
}

func TestVisionExtractor_MessageShape(t *testing.T) {
	completer := new(mocks.MockChatCompleter)
	v := extract.NewVisionExtractor(completer, primaryModel, "")

	imageBytes := []byte{0x01, 0x02, 0x03}
	var gotMessages []port.Message
	completer.On("Complete", mock.Anything, primaryModel, mock.Anything).
		Run(func(args mock.Arguments) {
			gotMessages = args.Get(2).([]port.Message)
		}).
		Return("text", nil)

	_, err := v.ExtractImage(context.Background(), imageBytes, "image/jpeg")
	require.NoError(t, err)

	require.Len(t, gotMessages, 2)
	assert.Equal(t, "system", gotMessages[0].Role)

	parts, ok := gotMessages[1].Content.([]port.ContentPart)
	require.True(t, ok)
	require.Len(t, parts, 2)
	assert.Equal(t, "image_url", parts[0].Type)
	wantURI := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(imageBytes)
	assert.Equal(t, wantURI, parts[0].ImageURL.URL)
	assert.Equal(t, "text", parts[1].Type)
	assert.NotEmpty(t, parts[1].Text)
}
