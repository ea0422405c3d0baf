package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/domain"
)

func completionResponse(content string) string {
	return `{"choices":[{"message":{"role":"assistant","content":"` + content + `"}}]}`
}

func TestChatCompletion_Success(t *testing.T) {
	var gotBody chatCompletionBody
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionResponse("Rotate your tomato beds.")))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "")
	reply, err := c.ChatCompletion(context.Background(), ChatRequest{
		Messages: []Message{
			{Role: "system", Content: "You are a farming assistant."},
			{Role: "user", Content: "What should I plant after tomatoes?"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Rotate your tomato beds.", reply)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, DefaultModel, gotBody.Model)
	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
}

func TestChatCompletion_MissingAPIKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "")
	_, err := c.ChatCompletion(context.Background(), ChatRequest{
		Messages: []Message{{Role: "user", Content: "hello"}},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotConfigured))
	assert.False(t, called, "no request should be sent without an API key")
}

func TestChatCompletion_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit exceeded"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "")
	_, err := c.ChatCompletion(context.Background(), ChatRequest{
		Messages: []Message{{Role: "user", Content: "hello"}},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAPI))
	assert.Contains(t, err.Error(), "rate limit exceeded")
}

func TestChatCompletion_NonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html><body>upstream unavailable</body></html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "")
	_, err := c.ChatCompletion(context.Background(), ChatRequest{
		Messages: []Message{{Role: "user", Content: "hello"}},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAPI))
	assert.Contains(t, err.Error(), http.StatusText(http.StatusBadGateway))
	assert.NotContains(t, err.Error(), "decode response")
}

func TestChatCompletion_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "")
	_, err := c.ChatCompletion(context.Background(), ChatRequest{
		Messages: []Message{{Role: "user", Content: "hello"}},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAPI))
}

func TestChatCompletion_ModelOverride(t *testing.T) {
	var gotBody chatCompletionBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(completionResponse("ok")))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "gpt-4o")
	_, err := c.ChatCompletion(context.Background(), ChatRequest{
		Messages: []Message{{Role: "user", Content: "hello"}},
		Model:    "gpt-4o-mini",
	})

	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", gotBody.Model, "request model overrides client default")
}

func TestAnalyzeImage_Success(t *testing.T) {
	imgPath := filepath.Join(t.TempDir(), "leaf.png")
	require.NoError(t, os.WriteFile(imgPath, []byte{0x89, 0x50, 0x4e, 0x47}, 0o600))

	var gotRaw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRaw))
		_, _ = w.Write([]byte(completionResponse("Looks like early blight.")))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "")
	reply, err := c.AnalyzeImage(context.Background(), ImageRequest{
		ImagePath: imgPath,
		Prompt:    "What disease is this?",
	})

	require.NoError(t, err)
	assert.Equal(t, "Looks like early blight.", reply)

	msgs := gotRaw["messages"].([]any)
	require.Len(t, msgs, 1)
	parts := msgs[0].(map[string]any)["content"].([]any)
	require.Len(t, parts, 2)
	imagePart := parts[1].(map[string]any)
	url := imagePart["image_url"].(map[string]any)["url"].(string)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
}

func TestAnalyzeImage_MissingFile(t *testing.T) {
	c := NewClient("http://localhost:0", "test-key", "")
	_, err := c.AnalyzeImage(context.Background(), ImageRequest{
		ImagePath: filepath.Join(t.TempDir(), "missing.jpg"),
		Prompt:    "describe",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read image")
}

func TestAnalyzeImage_MissingAPIKey(t *testing.T) {
	c := NewClient("http://localhost:0", "", "")
	_, err := c.AnalyzeImage(context.Background(), ImageRequest{
		ImagePath: "whatever.jpg",
		Prompt:    "describe",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotConfigured))
}
