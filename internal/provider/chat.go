package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cotbench/internal/retry"
)

// DefaultBaseURL is the chat-completions API used when no base URL is configured.
const DefaultBaseURL = "https://api.openai.com/v1"

// HTTPDoer abstracts HTTP clients used by the chat client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ChatClient calls an OpenAI-compatible /chat/completions endpoint.
type ChatClient struct {
	APIKey  string
	BaseURL string
	Client  HTTPDoer
}

// NewChatClient constructs a chat client with explicit settings.
func NewChatClient(apiKey, baseURL string, timeout time.Duration, client HTTPDoer) (*ChatClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingCredential
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &ChatClient{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  client,
	}, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// StatusError reports a non-2xx response from the API.
type StatusError struct {
	Code int
	Body string
}

// Error returns the status code and response body.
func (e *StatusError) Error() string {
	return fmt.Sprintf("chat completions error (%d): %s", e.Code, e.Body)
}

// Retryable reports whether the status is worth retrying.
func (e *StatusError) Retryable() bool {
	return e.Code == http.StatusTooManyRequests || e.Code == http.StatusRequestTimeout || e.Code >= 500
}

// Complete sends a single user message and returns the first choice's content.
func (c *ChatClient) Complete(ctx context.Context, model, content string, temperature float64) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: content}},
		Temperature: temperature,
	})
	if err != nil {
		return "", retry.Permanent(fmt.Errorf("marshal request: %w", err))
	}

	endpoint := c.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", retry.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		if statusErr.Retryable() {
			return "", statusErr
		}
		return "", retry.Permanent(statusErr)
	}

	var decoded chatResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("chat completions returned no choices")
	}
	return decoded.Choices[0].Message.Content, nil
}
