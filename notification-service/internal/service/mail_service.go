package service

import (
	"context"
	"fmt"
	"strings"

	"community-server/notification-service/internal/messaging"
	"community-server/shared/interfaces"
	sharedMessaging "community-server/shared/messaging"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"go.uber.org/zap"
)

// MailService validates queued mail tasks and sends them through a Notifier.
type MailService struct {
	sender interfaces.Notifier
	logger *zap.Logger
}

func NewMailService(sender interfaces.Notifier, logger *zap.Logger) *MailService {
	return &MailService{
		sender: sender,
		logger: logger.Named("mail_service"),
	}
}

var _ messaging.MailDeliverer = (*MailService)(nil)

var knownKinds = map[string]bool{
	sharedMessaging.MailKindEmailVerification: true,
}

func (s *MailService) Deliver(ctx context.Context, task sharedMessaging.MailTask) error {
	if !knownKinds[task.Kind] {
		return fmt.Errorf("%w: unknown mail kind %q", messaging.ErrPermanent, task.Kind)
	}
	if err := validation.Validate(task.Message.To, validation.Required, is.Email); err != nil {
		return fmt.Errorf("%w: bad recipient %q: %v", messaging.ErrPermanent, task.Message.To, err)
	}
	if strings.TrimSpace(task.Message.Subject) == "" || task.Message.HTML == "" {
		return fmt.Errorf("%w: empty subject or body", messaging.ErrPermanent)
	}

	if err := s.sender.Send(ctx, task.Message); err != nil {
		return err
	}
	s.logger.Debug("Mail handed to SMTP", zap.String("task_id", task.ID), zap.String("kind", task.Kind))
	return nil
}
