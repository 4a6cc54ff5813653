package services

import (
	"context"
	"errors"
	"time"

	"github.com/BerylCAtieno/exam-helper-api/internal/completion"
	"github.com/BerylCAtieno/exam-helper-api/internal/composer"
	"github.com/BerylCAtieno/exam-helper-api/internal/models"
	"github.com/BerylCAtieno/exam-helper-api/internal/utils"
)

const MissingPromptMessage = "Missing prompt"

type CompletionService interface {
	// Complete forwards a ready-made prompt upstream.
	Complete(ctx context.Context, prompt string) (*models.CompletionResult, error)
	// Ask composes the prompt from a question and file excerpts, then completes it.
	Ask(ctx context.Context, question string, files []models.FileExcerpt) (*models.CompletionResult, error)
}

type completionService struct {
	completer completion.Completer
	logger    *utils.Logger
}

func NewService(completer completion.Completer, logger *utils.Logger) CompletionService {
	return &completionService{
		completer: completer,
		logger:    logger,
	}
}

func (s *completionService) Complete(ctx context.Context, prompt string) (*models.CompletionResult, error) {
	if prompt == "" {
		return nil, utils.NewBadRequestError(MissingPromptMessage)
	}

	start := time.Now()
	text, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		var upErr *completion.UpstreamError
		var trErr *completion.TransportError
		switch {
		case errors.As(err, &upErr):
			s.logger.Error("Upstream rejected completion", "status", upErr.StatusCode, "error", err)
		case errors.As(err, &trErr):
			s.logger.Error("Completion failed", "op", trErr.Op, "error", err)
		default:
			s.logger.Error("Completion failed", "error", err)
		}
		return nil, utils.NewInternalError(err)
	}

	s.logger.Info("Completion succeeded",
		"prompt_length", len(prompt),
		"output_length", len(text),
		"duration_ms", time.Since(start).Milliseconds())

	return &models.CompletionResult{OutputText: text}, nil
}

func (s *completionService) Ask(ctx context.Context, question string, files []models.FileExcerpt) (*models.CompletionResult, error) {
	prompt, err := composer.Compose(question, files)
	if err != nil {
		if errors.Is(err, composer.ErrInvalidInput) {
			return nil, utils.NewBadRequestError(err.Error())
		}
		return nil, utils.NewInternalError(err)
	}

	s.logger.Info("Prompt composed", "files", len(files), "prompt_length", len(prompt))

	return s.Complete(ctx, prompt)
}
