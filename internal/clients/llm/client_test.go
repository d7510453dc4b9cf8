package llm

import (
	"context"
	"encoding/json"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("groq", server.URL, "key", "llama-3.3-70b-versatile")
	client.retryDelay = time.Millisecond
	return client
}

func Test_Complete_SendsChatRequest(t *testing.T) {

	var received chatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"ok\":true}"}}]}`))
	})

	resp, err := client.Complete(context.Background(), Prompt{
		Operation:  "test",
		System:     "be strict",
		User:       "score this",
		JSONObject: true,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, resp)
	assert.Equal(t, "llama-3.3-70b-versatile", received.Model)
	assert.Len(t, received.Messages, 2)
	assert.Equal(t, "system", received.Messages[0].Role)
	assert.Equal(t, "score this", received.Messages[1].Content)
	assert.InDelta(t, 0.3, received.Temperature, 0.0001)
	require.NotNil(t, received.ResponseFormat)
	assert.Equal(t, "json_object", received.ResponseFormat.Type)
}

func Test_Complete_RetriesServerErrors(t *testing.T) {

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"done"}}]}`))
	})

	resp, err := client.Complete(context.Background(), Prompt{User: "hi"})

	require.NoError(t, err)
	assert.Equal(t, "done", resp)
	assert.Equal(t, int32(3), calls.Load())
}

func Test_Complete_DoesNotRetryClientErrors(t *testing.T) {

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"bad"}}`))
	})

	_, err := client.Complete(context.Background(), Prompt{User: "hi"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func Test_Complete_WithoutKey(t *testing.T) {
	client := NewClient("perplexity", PerplexityURL, "", "sonar")
	_, err := client.Complete(context.Background(), Prompt{User: "hi"})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func Test_Complete_BreakerOpensAfterFailures(t *testing.T) {

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	client.SetCircuitBreaker(BreakerSettings{
		Enabled:          true,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		MinRequests:      2,
		FailureThreshold: 0.5,
	})

	for i := 0; i < 2; i++ {
		_, err := client.Complete(context.Background(), Prompt{User: "hi"})
		assert.Error(t, err)
	}

	_, err := client.Complete(context.Background(), Prompt{User: "hi"})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, "open", client.BreakerState())
}
