package openrouter_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"specdocs-backend/internal/openrouter"
)

func TestClient_RetryWithBackoff(t *testing.T) {
	client := openrouter.NewClient("https://api.test.com/v1/", "test-key")

	callCount := 0
	err := client.RetryWithBackoff(func() error {
		callCount++
		if callCount < 3 {
			return assert.AnError
		}
		return nil
	}, 3)

	assert.NoError(t, err)
	assert.Equal(t, 3, callCount)
}

func TestClient_RetryWithBackoff_Exhausted(t *testing.T) {
	client := openrouter.NewClient("https://api.test.com/v1/", "test-key")

	err := client.RetryWithBackoff(func() error {
		return assert.AnError
	}, 3)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed after 3 retries")
}

func TestClient_ChatCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openrouter.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "A spec for pets."}}]}`))
	}))
	defer server.Close()

	client := openrouter.NewClient(server.URL, "test-key")
	content, err := client.ChatCompletion("test-model", []openrouter.Message{
		{Role: "user", Content: "Summarize this spec."},
	})

	require.NoError(t, err)
	assert.Equal(t, "A spec for pets.", content)
}

func TestClient_ChatCompletion_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error": "upstream unavailable"}`))
	}))
	defer server.Close()

	client := openrouter.NewClient(server.URL, "test-key")
	_, err := client.ChatCompletion("test-model", nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}
