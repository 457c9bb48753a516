package mail

import (
	"context"

	"community-server/shared/interfaces"
	"community-server/shared/models"

	"go.uber.org/zap"
)

var _ interfaces.Notifier = (*LogSender)(nil)

// LogSender writes outgoing mail to the log instead of delivering it. Used in development.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger.Named("LogSender")}
}

func (s *LogSender) Send(_ context.Context, msg models.EmailMessage) error {
	s.logger.Info("Email (not delivered)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("html", msg.HTML),
	)
	return nil
}
