package mail

import (
	"context"
	"fmt"
	"time"

	"community-server/shared/interfaces"
	"community-server/shared/models"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

var _ interfaces.Notifier = (*SMTPSender)(nil)

// SMTPConfig описывает подключение к SMTP-серверу.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// SMTPSender delivers mail over SMTP, upgrading to TLS when the server offers STARTTLS.
type SMTPSender struct {
	cfg    SMTPConfig
	logger *zap.Logger
}

func NewSMTPSender(cfg SMTPConfig, logger *zap.Logger) *SMTPSender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &SMTPSender{cfg: cfg, logger: logger.Named("SMTPSender")}
}

// clientOptions собирает настройки клиента; новый клиент на каждое письмо.
func (s *SMTPSender) clientOptions() []gomail.Option {
	opts := []gomail.Option{
		gomail.WithPort(s.cfg.Port),
		gomail.WithTimeout(s.cfg.Timeout),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.cfg.Username),
			gomail.WithPassword(s.cfg.Password),
		)
	}
	return opts
}

func (s *SMTPSender) Send(ctx context.Context, msg models.EmailMessage) error {
	logFields := []zap.Field{zap.String("to", msg.To), zap.String("smtp", s.cfg.Host)}

	m, err := BuildMessage(s.cfg.From, msg)
	if err != nil {
		s.logger.Error("Failed to build email", append(logFields, zap.Error(err))...)
		return err
	}

	client, err := gomail.NewClient(s.cfg.Host, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		s.logger.Error("Failed to send email", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("Email sent", logFields...)
	return nil
}

// BuildMessage renders an HTML message with Date and Message-ID set.
func BuildMessage(from string, msg models.EmailMessage) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender address %q: %w", from, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address %q: %w", msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetDate()
	m.SetMessageID()
	m.SetBodyString(gomail.TypeTextHTML, msg.HTML)
	return m, nil
}
