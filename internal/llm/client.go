package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mirageweb/mirage/internal/domain"
)

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  *modelOptions `json:"options,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type modelOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// chatResponse accepts both answer shapes the backend may produce: a
// message object with textual content, or a top-level response field.
type chatResponse struct {
	Model    string      `json:"model"`
	Message  chatMessage `json:"message"`
	Response string      `json:"response"`
	Done     bool        `json:"done"`
	Error    string      `json:"error,omitempty"`
}

// Client talks to the generative backend over its chat endpoint.
// Streaming is always disabled; the exchange is one request, one response.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
}

// ClientConfig contains backend client settings
type ClientConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// NewClient creates a backend client
func NewClient(cfg ClientConfig, httpClient *http.Client) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, domain.ErrBackendMissingBaseURL
	}
	if cfg.Model == "" {
		return nil, domain.ErrBackendMissingModel
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}, nil
}

// Ensure Client implements domain.Backend
var _ domain.Backend = (*Client)(nil)

func (c *Client) Name() string {
	return "chat"
}

// Model returns the configured model identifier
func (c *Client) Model() string {
	return c.model
}

// Complete sends a non-streaming completion request. Non-2xx responses
// surface as *domain.BackendError; a blank payload as ErrEmptyContent.
func (c *Client) Complete(ctx context.Context, req *domain.CompletionRequest) (*domain.CompletionResponse, error) {
	messages := make([]chatMessage, len(req.Messages))
	for i, msg := range req.Messages {
		messages[i] = chatMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}

	temp := c.temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}

	chatReq := chatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
	}
	if maxTokens > 0 || temp > 0 {
		chatReq.Options = &modelOptions{
			Temperature: temp,
			NumPredict:  maxTokens,
		}
	}

	body, err := json.Marshal(chatReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/api/chat"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, domain.NewBackendError(0, fmt.Sprintf("request failed: %v", err), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewBackendError(resp.StatusCode, string(respBody), nil)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if chatResp.Error != "" {
		return nil, domain.NewBackendError(resp.StatusCode, chatResp.Error, nil)
	}

	content := chatResp.Message.Content
	if content == "" {
		content = chatResp.Response
	}
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrEmptyContent
	}

	model := chatResp.Model
	if model == "" {
		model = c.model
	}

	return &domain.CompletionResponse{
		Content: content,
		Model:   model,
	}, nil
}

func (c *Client) Close() error {
	return nil
}
