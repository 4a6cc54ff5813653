package completion

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/BerylCAtieno/exam-helper-api/internal/config"
	"github.com/BerylCAtieno/exam-helper-api/internal/utils"
)

// SystemPrompt is sent ahead of every caller prompt, in the same user turn.
const SystemPrompt = `
You are an expert technical assistant for tools and data science work.
Provide accurate, verified and runnable answers.

Your expertise covers:
- Editors, shells, Git, curl, HTTP clients, Docker and dev containers
- SQL engines, spreadsheets and data pipelines
- JSON, Markdown, Unicode and Base64
- Web APIs, CI workflows and deployment platforms
- Python, Bash, SQL and LLM workflows such as embeddings and RAG

Follow this output format:
Quick context: (1 sentence)
**FINAL ANSWER:** (full working code/command/config)
Confidence: [High/Medium/Low]
`

// Generation parameters are fixed for every request.
const (
	Temperature     = 0.3
	TopK            = 40
	TopP            = 0.95
	MaxOutputTokens = 2048
)

// Completer sends one prompt upstream and returns the first candidate's text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// UpstreamError is a non-success answer from the Gemini API.
type UpstreamError struct {
	StatusCode int
	Status     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Gemini API error: %s", e.Status)
}

// TransportError is a failure to reach the API or to read its answer. Op
// names the failed step for logs; Error reports only the underlying cause.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// statusText prefers the reason phrase the server sent in status, e.g.
// "429 Too Many Requests", over Go's table of known codes.
func statusText(code int, status string) string {
	if reason := strings.TrimPrefix(status, strconv.Itoa(code)+" "); reason != status && reason != "" {
		return reason
	}
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "status code " + strconv.Itoa(code)
}

// New builds the Completer selected by cfg.GeminiTransport.
func New(ctx context.Context, cfg *config.Config, logger *utils.Logger) (Completer, error) {
	switch cfg.GeminiTransport {
	case config.TransportSDK:
		return NewGeminiSDKCompleter(ctx, sdkEndpoint(cfg.GeminiBaseURL), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.UpstreamTimeout, logger)
	case config.TransportREST, "":
		return NewGeminiRESTCompleter(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.UpstreamTimeout, logger), nil
	default:
		return nil, fmt.Errorf("unknown Gemini transport %q", cfg.GeminiTransport)
	}
}
