package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gobishoftu/site/backend/internal/domain"
	"github.com/gobishoftu/site/backend/internal/repo"
)

// MaxFeedbackRunes caps the length of a feedback message.
const MaxFeedbackRunes = 4000

// Notifier is told about every stored feedback message.
// Implementations must not block for long; failures are theirs to log.
type Notifier interface {
	NotifyFeedback(ctx context.Context, fb domain.FeedbackDraft)
}

// FeedbackService accepts visitor feedback from the contact form.
type FeedbackService struct {
	repo     repo.FeedbackRepo
	notifier Notifier
	timeout  time.Duration
	logger   *slog.Logger
}

// NewFeedbackService constructs a FeedbackService. notifier may be nil.
func NewFeedbackService(r repo.FeedbackRepo, notifier Notifier, timeout time.Duration, logger *slog.Logger) *FeedbackService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedbackService{repo: r, notifier: notifier, timeout: timeout, logger: logger}
}

// Send validates and stores one feedback message, then notifies.
// Returns domain.ErrValidation if the message is empty after trimming.
func (s *FeedbackService) Send(ctx context.Context, fb domain.FeedbackDraft) error {
	fb.Name = strings.TrimSpace(fb.Name)
	fb.Message = strings.TrimSpace(fb.Message)
	if err := validateFeedback(fb); err != nil {
		return err
	}

	sctx, cancel := withTimeout(ctx, s.timeout)
	err := s.repo.SendFeedback(sctx, fb)
	cancel()
	if err != nil {
		s.logger.ErrorContext(ctx, "store feedback failed", "error", err)
		return fmt.Errorf("service.FeedbackService.Send: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyFeedback(ctx, fb)
	}
	return nil
}

// validateFeedback enforces business rules on a trimmed FeedbackDraft.
func validateFeedback(fb domain.FeedbackDraft) error {
	if fb.Message == "" {
		return fmt.Errorf("%w: message is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(fb.Message) > MaxFeedbackRunes {
		return fmt.Errorf("%w: message must be at most %d characters", domain.ErrValidation, MaxFeedbackRunes)
	}
	return nil
}
