package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/BerylCAtieno/exam-helper-api/internal/config"
	"github.com/BerylCAtieno/exam-helper-api/internal/models"
	"github.com/BerylCAtieno/exam-helper-api/internal/utils"
)

type geminiSDKCompleter struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	name    string
	apiKey  string
	timeout time.Duration
	logger  *utils.Logger
}

// NewGeminiSDKCompleter issues the same request as the REST completer through
// the official Go SDK. An empty endpoint keeps the SDK default host. The
// returned Completer also implements io.Closer.
func NewGeminiSDKCompleter(ctx context.Context, endpoint, apiKey, model string, timeout time.Duration, logger *utils.Logger) (Completer, error) {
	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	m := client.GenerativeModel(model)
	m.SetTemperature(Temperature)
	m.SetTopK(TopK)
	m.SetTopP(TopP)
	m.SetMaxOutputTokens(MaxOutputTokens)

	return &geminiSDKCompleter{
		client:  client,
		model:   m,
		name:    model,
		apiKey:  apiKey,
		timeout: timeout,
		logger:  logger,
	}, nil
}

func (c *geminiSDKCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.model.GenerateContent(ctx, genai.Text(SystemPrompt), genai.Text(prompt))
	if err != nil {
		// A blocked prompt or candidate is still a successful answer without text.
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			c.logger.Warn("Gemini response blocked", "model", c.name, "reason", blocked.Error())
			return sdkResponseText(resp), nil
		}

		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			c.logger.Error("Gemini API error", "status", apiErr.Code, "body", apiErr.Body)
			return "", &UpstreamError{StatusCode: apiErr.Code, Status: statusText(apiErr.Code, "")}
		}
		return "", &TransportError{Op: "failed to generate content", Err: c.redact(err)}
	}

	return sdkResponseText(resp), nil
}

// redact strips the request URL from err and masks any remaining copy of the
// API key, which the SDK sends as a query parameter.
func (c *geminiSDKCompleter) redact(err error) error {
	err = redactURL(err)
	if c.apiKey != "" && strings.Contains(err.Error(), c.apiKey) {
		return errors.New(strings.ReplaceAll(err.Error(), c.apiKey, "REDACTED"))
	}
	return err
}

func (c *geminiSDKCompleter) Close() error {
	return c.client.Close()
}

// sdkEndpoint maps GEMINI_BASE_URL onto the SDK's endpoint option, which
// takes the host without the API version path.
func sdkEndpoint(baseURL string) string {
	if baseURL == "" || baseURL == config.DefaultGeminiBaseURL {
		return ""
	}
	return strings.TrimSuffix(baseURL, "/v1beta")
}

func sdkResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return models.NoResponseText
	}

	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return models.NoResponseText
	}

	if text, ok := candidate.Content.Parts[0].(genai.Text); ok && text != "" {
		return string(text)
	}
	return models.NoResponseText
}
