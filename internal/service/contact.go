package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/robomart/toystore/internal/domain"
	"github.com/robomart/toystore/internal/event"
	"github.com/robomart/toystore/internal/repository"
	"github.com/robomart/toystore/pkg/validator"
)

// ContactInput holds a contact form submission.
type ContactInput struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

// ContactService persists contact form submissions and reports them to
// analytics.
type ContactService struct {
	repo      repository.ContactRepository
	analytics event.Emitter
	logger    *slog.Logger
}

// NewContactService creates a new contact service. A nil emitter disables
// analytics.
func NewContactService(repo repository.ContactRepository, analytics event.Emitter, logger *slog.Logger) *ContactService {
	if analytics == nil {
		analytics = event.NopEmitter{}
	}
	return &ContactService{
		repo:      repo,
		analytics: analytics,
		logger:    logger,
	}
}

// Submit validates and stores a contact message. The analytics event is
// best-effort and carries no message body.
func (s *ContactService) Submit(ctx context.Context, input ContactInput) (*domain.ContactMessage, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	msg := &domain.ContactMessage{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Email:     input.Email,
		Message:   input.Message,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}

	if err := s.analytics.Emit(ctx, event.ContactFormSubmit, event.ContactPayload{
		MessageID: msg.ID,
		Name:      msg.Name,
		Email:     msg.Email,
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit analytics event",
			slog.String("event", event.ContactFormSubmit),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "contact message received",
		slog.String("message_id", msg.ID),
	)

	return msg, nil
}
