package models

// NoResponseText is returned when the upstream answer carries no candidate text.
const NoResponseText = "No response text."

// FileExcerpt is the textual stand-in for one uploaded file.
type FileExcerpt struct {
	Name     string `json:"name"`
	MimeType string `json:"type"`
	Content  string `json:"content"`
}

type PromptRequest struct {
	Prompt string `json:"prompt"`
}

type CompletionResult struct {
	OutputText string `json:"output_text"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
