package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/BerylCAtieno/exam-helper-api/internal/models"
	"github.com/BerylCAtieno/exam-helper-api/internal/utils"
)

type geminiRESTCompleter struct {
	baseURL string
	apiKey  string
	model   string
	logger  *utils.Logger
	client  *http.Client
}

type GenerateContentRequest struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text"`
}

type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

type Candidate struct {
	Content Content `json:"content"`
}

// NewGeminiRESTCompleter talks to the generateContent endpoint under baseURL.
// timeout bounds the whole exchange, including reading the body.
func NewGeminiRESTCompleter(baseURL, apiKey, model string, timeout time.Duration, logger *utils.Logger) Completer {
	return &geminiRESTCompleter{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		logger:  logger,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewRequest builds the request body for prompt.
func NewRequest(prompt string) GenerateContentRequest {
	return GenerateContentRequest{
		Contents: []Content{
			{
				Role: "user",
				Parts: []Part{
					{Text: SystemPrompt},
					{Text: prompt},
				},
			},
		},
		GenerationConfig: GenerationConfig{
			Temperature:     Temperature,
			TopK:            TopK,
			TopP:            TopP,
			MaxOutputTokens: MaxOutputTokens,
		},
	}
}

func (c *geminiRESTCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	jsonData, err := json.Marshal(NewRequest(prompt))
	if err != nil {
		return "", &TransportError{Op: "failed to marshal request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", &TransportError{Op: "failed to create request", Err: redactURL(err)}
	}

	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return "", &TransportError{Op: "failed to send request", Err: redactURL(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Op: "failed to read response", Err: redactURL(err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("Gemini API error", "status", resp.StatusCode, "body", string(body))
		return "", &UpstreamError{StatusCode: resp.StatusCode, Status: statusText(resp.StatusCode, resp.Status)}
	}

	var geminiResp GenerateContentResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", &TransportError{Op: "failed to unmarshal response", Err: err}
	}

	c.logger.Debug("Gemini call completed",
		"model", c.model,
		"candidates", len(geminiResp.Candidates),
		"duration_ms", time.Since(start).Milliseconds())

	return geminiResp.Text(), nil
}

// Text returns the first part of the first candidate, or NoResponseText.
func (r *GenerateContentResponse) Text() string {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return models.NoResponseText
	}
	if text := r.Candidates[0].Content.Parts[0].Text; text != "" {
		return text
	}
	return models.NoResponseText
}

func (c *geminiRESTCompleter) endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))
}

// redactURL drops the request URL from net/http errors. The URL carries the
// API key as a query parameter and error messages reach the caller.
func redactURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
