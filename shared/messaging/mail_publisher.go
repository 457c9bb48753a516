package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"community-server/shared/interfaces"
	"community-server/shared/models"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var _ interfaces.Notifier = (*RabbitMQMailPublisher)(nil)

// AMQPChannel - часть *amqp.Channel, нужная издателю.
type AMQPChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQMailPublisher hands emails to the mail worker through a durable queue.
// Send returns once the broker accepted the message, not once the mail is delivered.
type RabbitMQMailPublisher struct {
	ch        AMQPChannel
	queueName string
	kind      string
	logger    *zap.Logger
}

// NewRabbitMQMailPublisher opens a channel on conn and declares the queue.
func NewRabbitMQMailPublisher(conn *amqp.Connection, queueName string, logger *zap.Logger) (*RabbitMQMailPublisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("rabbitmq connection is nil")
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	p, err := NewRabbitMQMailPublisherWithChannel(ch, queueName, logger)
	if err != nil {
		_ = ch.Close()
		return nil, err
	}
	return p, nil
}

// NewRabbitMQMailPublisherWithChannel declares the queue on an existing channel.
func NewRabbitMQMailPublisherWithChannel(ch AMQPChannel, queueName string, logger *zap.Logger) (*RabbitMQMailPublisher, error) {
	if queueName == "" {
		queueName = MailQueueName
	}
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		logger.Error("Failed to declare mail queue", zap.String("queue", queueName), zap.Error(err))
		return nil, fmt.Errorf("failed to declare queue '%s': %w", queueName, err)
	}
	logger.Info("Mail queue declared", zap.String("queue", queueName))

	return &RabbitMQMailPublisher{
		ch:        ch,
		queueName: queueName,
		kind:      MailKindEmailVerification,
		logger:    logger.Named("MailPublisher"),
	}, nil
}

// Send publishes the message as a persistent MailTask.
func (p *RabbitMQMailPublisher) Send(ctx context.Context, msg models.EmailMessage) error {
	task := MailTask{
		ID:        uuid.NewString(),
		Kind:      p.kind,
		Message:   msg,
		CreatedAt: time.Now().UTC(),
	}
	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal mail task: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		"",          // default exchange
		p.queueName, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    task.ID,
			Timestamp:    task.CreatedAt,
			Body:         body,
		},
	)
	if err != nil {
		p.logger.Error("Failed to publish mail task", zap.String("taskID", task.ID), zap.Error(err))
		return fmt.Errorf("failed to publish mail task: %w", err)
	}
	p.logger.Debug("Mail task published", zap.String("taskID", task.ID), zap.String("queue", p.queueName))
	return nil
}

// Close closes the underlying channel.
func (p *RabbitMQMailPublisher) Close() error {
	return p.ch.Close()
}
