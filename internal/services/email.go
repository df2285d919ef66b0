package services

import (
	"context"
	"fmt"
	"log/slog"

	"eventrewards/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	if logger == nil {
		logger = slog.Default()
	}
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendRewardCredited sends the "reward_credited" template to the credited user.
func (s *emailService) SendRewardCredited(ctx context.Context, data *domain.RewardCreditedEmailData) error {
	if data == nil {
		return fmt.Errorf("reward credited email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("reward_credited", data)
	if err != nil {
		return fmt.Errorf("failed to render reward_credited template: %w", err)
	}
	msg := domain.EmailMessage{To: data.Email, Subject: subject, HTML: htmlBody, Text: textBody}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send reward credited email: %w", err)
	}
	s.logger.InfoContext(ctx, "reward credited email sent", "to", data.Email)
	return nil
}
