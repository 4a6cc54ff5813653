// Package client submits composed prompts to a running completion proxy.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/BerylCAtieno/exam-helper-api/internal/composer"
	"github.com/BerylCAtieno/exam-helper-api/internal/models"
)

// NoResponse is shown when the proxy answers without any output text.
const NoResponse = "No response"

// ErrBackendUnconfigured is returned when no proxy URL is set.
var ErrBackendUnconfigured = errors.New("Backend URL not configured.")

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Ask validates the input, composes the prompt and submits it. Nothing is
// sent when the input is empty or the backend is unset.
func (c *Client) Ask(ctx context.Context, question string, files []models.FileExcerpt) (string, error) {
	if strings.TrimSpace(question) == "" && len(files) == 0 {
		return "", composer.ErrInvalidInput
	}
	if c.baseURL == "" {
		return "", ErrBackendUnconfigured
	}

	prompt, err := composer.Compose(question, files)
	if err != nil {
		return "", err
	}

	return c.Submit(ctx, prompt)
}

// Submit posts prompt to /api/gpt and returns the output text.
func (c *Client) Submit(ctx context.Context, prompt string) (string, error) {
	if c.baseURL == "" {
		return "", ErrBackendUnconfigured
	}

	jsonData, err := json.Marshal(models.PromptRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/gpt", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("Backend error %d", resp.StatusCode)
	}

	var result models.CompletionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if result.OutputText == "" {
		return NoResponse, nil
	}
	return result.OutputText, nil
}
