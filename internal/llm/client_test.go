package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hia/internal/config"
	"hia/internal/llm"
	"hia/internal/port"
)

func testLLMConfig() *config.LLMConfig {
	return &config.LLMConfig{
		APIKey:      "test-key",
		Temperature: 0.1,
		TimeoutSecs: 5,
		Referer:     "http://localhost:8080",
		Title:       "Health Insight Agent",
	}
}

func completionResponse(content string) string {
	return `{"choices":[{"message":{"content":` + mustJSON(content) + `},"finish_reason":"stop"}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestClient_Complete_Success(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "http://localhost:8080", r.Header.Get("HTTP-Referer"))
		assert.Equal(t, "Health Insight Agent", r.Header.Get("X-Title"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(completionResponse("• **Glucose**: 88 mg/dL - NORMAL")))
	}))
	defer server.Close()

	client := llm.NewClientWithEndpoint(testLLMConfig(), server.URL)
	reply, err := client.Complete(context.Background(), "test/model", []port.Message{
		port.TextMessage("system", "analyze"),
		port.TextMessage("user", "glucose 88"),
	})

	require.NoError(t, err)
	assert.Equal(t, "• **Glucose**: 88 mg/dL - NORMAL", reply)
	assert.Equal(t, "test/model", gotBody["model"])
	assert.InDelta(t, 0.1, gotBody["temperature"].(float64), 1e-9)
	assert.Len(t, gotBody["messages"], 2)
}

func TestClient_Complete_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit exceeded"}}`))
	}))
	defer server.Close()

	client := llm.NewClientWithEndpoint(testLLMConfig(), server.URL)
	_, err := client.Complete(context.Background(), "test/model", []port.Message{
		port.TextMessage("user", "hi"),
	})

	var rlErr *llm.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "test/model", rlErr.Model)
	assert.Equal(t, float64(30), rlErr.RetryAfter.Seconds())
	assert.True(t, llm.IsTransient(err))
}

func TestClient_Complete_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	client := llm.NewClientWithEndpoint(testLLMConfig(), server.URL)
	_, err := client.Complete(context.Background(), "test/model", []port.Message{
		port.TextMessage("user", "hi"),
	})

	var apiErr *llm.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.True(t, apiErr.Transient())
}

func TestClient_Complete_BadRequestNotTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid model"}}`))
	}))
	defer server.Close()

	client := llm.NewClientWithEndpoint(testLLMConfig(), server.URL)
	_, err := client.Complete(context.Background(), "bogus/model", []port.Message{
		port.TextMessage("user", "hi"),
	})

	var apiErr *llm.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.False(t, apiErr.Transient())
	assert.False(t, llm.IsTransient(err))
}

func TestClient_Complete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := llm.NewClientWithEndpoint(testLLMConfig(), server.URL)
	_, err := client.Complete(context.Background(), "test/model", []port.Message{
		port.TextMessage("user", "hi"),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 0, llm.ParseRetryAfterHeader(""))
	assert.Equal(t, 0, llm.ParseRetryAfterHeader("soon"))
	assert.Equal(t, 45, llm.ParseRetryAfterHeader("45"))
}
