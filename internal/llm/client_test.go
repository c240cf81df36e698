package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mirageweb/mirage/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewClient tests client construction validation
func TestNewClient(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		client, err := NewClient(ClientConfig{
			BaseURL: "http://localhost:11434/",
			Model:   "llama3",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "llama3", client.Model())
	})

	t.Run("missing base URL", func(t *testing.T) {
		_, err := NewClient(ClientConfig{Model: "llama3"}, nil)
		assert.ErrorIs(t, err, domain.ErrBackendMissingBaseURL)
	})

	t.Run("missing model", func(t *testing.T) {
		_, err := NewClient(ClientConfig{BaseURL: "http://localhost:11434"}, nil)
		assert.ErrorIs(t, err, domain.ErrBackendMissingModel)
	})
}

// TestClient_Complete_Success tests a successful message-object response
func TestClient_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.False(t, req.Stream, "streaming must be disabled")
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponse{
			Model:   "test-model",
			Message: chatMessage{Role: "assistant", Content: "<html>generated</html>"},
			Done:    true,
		})
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{
		BaseURL: server.URL,
		Model:   "test-model",
	}, server.Client())
	require.NoError(t, err)

	resp, err := client.Complete(context.Background(), &domain.CompletionRequest{
		Messages: BuildMessages("https://example.com/", "/static/placeholder.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "<html>generated</html>", resp.Content)
	assert.Equal(t, "test-model", resp.Model)
}

// TestClient_Complete_TopLevelField tests the top-level response fallback
func TestClient_Complete_TopLevelField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"test-model","response":"<html>flat</html>","done":true}`))
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{BaseURL: server.URL, Model: "test-model"}, server.Client())
	require.NoError(t, err)

	resp, err := client.Complete(context.Background(), &domain.CompletionRequest{
		Messages: BuildMessages("https://example.com/", "/static/placeholder.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "<html>flat</html>", resp.Content)
}

// TestClient_Complete_HTTPError tests non-2xx handling
func TestClient_Complete_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("model is loading"))
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{BaseURL: server.URL, Model: "test-model"}, server.Client())
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), &domain.CompletionRequest{
		Messages: BuildMessages("https://example.com/", "/static/placeholder.png"),
	})
	require.Error(t, err)

	var be *domain.BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusServiceUnavailable, be.StatusCode)
	assert.Contains(t, be.Body, "model is loading")
}

// TestClient_Complete_EmptyContent tests the empty-payload failure
func TestClient_Complete_EmptyContent(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "blank message content", body: `{"model":"m","message":{"role":"assistant","content":""},"done":true}`},
		{name: "whitespace only", body: `{"model":"m","message":{"role":"assistant","content":"  \n "},"done":true}`},
		{name: "no content fields", body: `{"model":"m","done":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, err := NewClient(ClientConfig{BaseURL: server.URL, Model: "m"}, server.Client())
			require.NoError(t, err)

			_, err = client.Complete(context.Background(), &domain.CompletionRequest{
				Messages: BuildMessages("https://example.com/", "/static/placeholder.png"),
			})
			assert.ErrorIs(t, err, domain.ErrEmptyContent)
		})
	}
}

// TestClient_Complete_ErrorField tests a 2xx response carrying an error field
func TestClient_Complete_ErrorField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":"model not found"}`))
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{BaseURL: server.URL, Model: "m"}, server.Client())
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), &domain.CompletionRequest{
		Messages: BuildMessages("https://example.com/", "/static/placeholder.png"),
	})
	require.Error(t, err)

	var be *domain.BackendError
	require.ErrorAs(t, err, &be)
	assert.Contains(t, be.Body, "model not found")
}

// TestClient_Complete_APIKey tests bearer auth when a key is configured
func TestClient_Complete_APIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"m","message":{"content":"ok"},"done":true}`))
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "secret", Model: "m"}, server.Client())
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), &domain.CompletionRequest{
		Messages: BuildMessages("https://example.com/", "/static/placeholder.png"),
	})
	require.NoError(t, err)
}
