package chat

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/domain"
)

const (
	// DefaultModel is used when a request does not name one
	DefaultModel = "gpt-4o-mini"

	defaultTimeout = 25 * time.Second
)

// Message is one turn of a chat conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a text completion request
type ChatRequest struct {
	Messages    []Message
	Model       string
	Temperature *float64
	MaxTokens   *int
}

// ImageRequest asks the provider to describe a local image
type ImageRequest struct {
	ImagePath string
	Prompt    string
	Model     string
}

// Client is a stateless wrapper over a chat-completion HTTP endpoint. It keeps
// no conversation state; every call carries the full message history.
type Client struct {
	endpoint string
	apiKey   string
	model    string
	httpc    *http.Client
}

// NewClient creates a client for the given endpoint. An empty apiKey is
// allowed at construction; calls fail with domain.ErrNotConfigured instead.
func NewClient(endpoint, apiKey, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		model:    model,
		httpc:    &http.Client{Timeout: defaultTimeout},
	}
}

type chatCompletionBody struct {
	Model       string    `json:"model"`
	Messages    []payload `json:"messages"`
	Temperature *float64  `json:"temperature,omitempty"`
	MaxTokens   *int      `json:"max_tokens,omitempty"`
}

// payload is a message whose content is either a string or a content-part list
type payload struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ChatCompletion sends the conversation and returns the assistant's reply
func (c *Client) ChatCompletion(ctx context.Context, req ChatRequest) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: assistant API key", domain.ErrNotConfigured)
	}

	model := req.Model
	if model == "" {
		model = c.model
	}
	body := chatCompletionBody{
		Model:       model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	for _, m := range req.Messages {
		body.Messages = append(body.Messages, payload{Role: m.Role, Content: m.Content})
	}

	return c.complete(ctx, body)
}

// AnalyzeImage reads a local image, embeds it as a base64 data URL and asks
// the provider to answer the prompt about it
func (c *Client) AnalyzeImage(ctx context.Context, req ImageRequest) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: assistant API key", domain.ErrNotConfigured)
	}

	data, err := os.ReadFile(req.ImagePath)
	if err != nil {
		return "", fmt.Errorf("read image %s: %w", req.ImagePath, err)
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s",
		imageMIMEType(req.ImagePath), base64.StdEncoding.EncodeToString(data))

	model := req.Model
	if model == "" {
		model = c.model
	}
	body := chatCompletionBody{
		Model: model,
		Messages: []payload{{
			Role: "user",
			Content: []map[string]any{
				{"type": "text", "text": req.Prompt},
				{"type": "image_url", "image_url": map[string]string{"url": dataURL}},
			},
		}},
	}

	return c.complete(ctx, body)
}

func (c *Client) complete(ctx context.Context, body chatCompletionBody) (string, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint+"/v1/chat/completions", bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrAPI, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", domain.ErrAPI, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Error bodies are not always JSON; a proxy may hand back HTML.
		msg := http.StatusText(resp.StatusCode)
		var failure chatCompletionResponse
		if err := json.Unmarshal(raw, &failure); err == nil &&
			failure.Error != nil && failure.Error.Message != "" {
			msg = failure.Error.Message
		}
		return "", fmt.Errorf("%w: %s", domain.ErrAPI, msg)
	}

	var out chatCompletionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", domain.ErrAPI, err)
	}

	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", domain.ErrAPI)
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

func imageMIMEType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
