package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/BerylCAtieno/exam-helper-api/internal/composer"
	"github.com/BerylCAtieno/exam-helper-api/internal/models"
	"github.com/BerylCAtieno/exam-helper-api/internal/services"
	"github.com/BerylCAtieno/exam-helper-api/internal/utils"
)

const (
	LivenessMessage = "Exam Helper API (Gemini) is running"

	// multipart parts above this size are spooled to disk while parsing
	multipartMemory = 32 << 20
)

type CompletionHandler struct {
	service        services.CompletionService
	logger         *utils.Logger
	maxRequestSize int64
}

func NewCompletionHandler(service services.CompletionService, logger *utils.Logger, maxRequestSize int64) *CompletionHandler {
	return &CompletionHandler{
		service:        service,
		logger:         logger,
		maxRequestSize: maxRequestSize,
	}
}

func (h *CompletionHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, LivenessMessage)
}

// Complete handles POST /api/gpt with a JSON {"prompt": "..."} body.
func (h *CompletionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)

	var req models.PromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.respondError(w, utils.NewRequestTooLargeError(fmt.Sprintf("Request body exceeds %d bytes", h.maxRequestSize)))
			return
		}
		h.respondError(w, utils.NewBadRequestError("Invalid request body"))
		return
	}

	resp, err := h.service.Complete(r.Context(), req.Prompt)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// Ask handles POST /api/ask with a multipart form holding a "question" field
// and any number of "files" parts. Each part's declared Content-Type decides
// whether it is inlined as text.
func (h *CompletionHandler) Ask(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxRequestSize {
		h.respondError(w, utils.NewRequestTooLargeError(fmt.Sprintf("Request body exceeds %d bytes", h.maxRequestSize)))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.respondError(w, utils.NewRequestTooLargeError(fmt.Sprintf("Request body exceeds %d bytes", h.maxRequestSize)))
			return
		}
		h.respondError(w, utils.NewBadRequestError("Invalid form data"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	excerpts := make([]models.FileExcerpt, 0, len(headers))
	for _, header := range headers {
		excerpt, err := readExcerpt(header)
		if err != nil {
			h.logger.Error("Failed to read uploaded file", "filename", header.Filename, "error", err)
			h.respondError(w, utils.NewBadRequestError(fmt.Sprintf("Failed to read file %s", header.Filename)))
			return
		}
		excerpts = append(excerpts, excerpt)
	}

	h.logger.Info("Ask request received",
		"files", len(excerpts),
		"question_length", len(r.FormValue("question")))

	resp, err := h.service.Ask(r.Context(), r.FormValue("question"), excerpts)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

func readExcerpt(header *multipart.FileHeader) (models.FileExcerpt, error) {
	file, err := header.Open()
	if err != nil {
		return models.FileExcerpt{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return models.FileExcerpt{}, err
	}

	return composer.NewExcerpt(header.Filename, header.Header.Get("Content-Type"), data), nil
}

func (h *CompletionHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", "error", err)
	}
}

func (h *CompletionHandler) respondError(w http.ResponseWriter, err error) {
	status, message := utils.StatusAndMessage(err)

	h.logger.Error("Request error", "status", status, "error", message)

	h.respondJSON(w, status, models.ErrorResponse{Error: message})
}
