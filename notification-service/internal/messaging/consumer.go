package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	sharedMessaging "community-server/shared/messaging"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ErrPermanent marks a task that will never succeed; it is dropped instead of requeued.
var ErrPermanent = errors.New("permanent delivery failure")

// MailDeliverer доставляет одно письмо.
// Лежит здесь, чтобы service мог ссылаться на пакет без цикла импорта.
type MailDeliverer interface {
	Deliver(ctx context.Context, task sharedMessaging.MailTask) error
}

type Consumer struct {
	conn        *amqp.Connection
	logger      *zap.Logger
	queueName   string
	concurrency int
	processor   *Processor
	stopChannel chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

func NewConsumer(conn *amqp.Connection, logger *zap.Logger, queueName string, concurrency int, processor *Processor) *Consumer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Consumer{
		conn:        conn,
		logger:      logger.Named("consumer"),
		queueName:   queueName,
		concurrency: concurrency,
		processor:   processor,
		stopChannel: make(chan struct{}),
	}
}

// Start blocks until Stop is called or the delivery channel closes.
func (c *Consumer) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		c.queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue '%s': %w", c.queueName, err)
	}

	if err := ch.Qos(c.concurrency, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := ch.Consume(
		q.Name,
		"mail-consumer", // consumer tag
		false,           // auto-ack
		false,           // exclusive
		false,           // no-local
		false,           // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("Consumer started", zap.String("queue", q.Name), zap.Int("concurrency", c.concurrency))

	done := make(chan struct{})
	c.wg.Add(c.concurrency)
	for i := 0; i < c.concurrency; i++ {
		go func(workerID int) {
			defer c.wg.Done()
			logger := c.logger.With(zap.Int("worker_id", workerID))
			for {
				select {
				case <-ctx.Done():
					return
				case d, ok := <-msgs:
					if !ok {
						logger.Info("Delivery channel closed, worker exiting")
						return
					}
					c.processor.ProcessMessage(ctx, d)
				}
			}
		}(i)
	}
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-c.stopChannel:
		c.logger.Info("Stop requested, cancelling workers")
		cancel()
		<-done
		return nil
	case <-done:
		return errors.New("delivery channel closed unexpectedly")
	}
}

func (c *Consumer) Stop() {
	c.stopOnce.Do(func() { close(c.stopChannel) })
}

// Processor decodes a mail task and hands it to the deliverer.
type Processor struct {
	logger    *zap.Logger
	deliverer MailDeliverer
	timeout   time.Duration
}

func NewProcessor(logger *zap.Logger, deliverer MailDeliverer) *Processor {
	return &Processor{
		logger:    logger.Named("processor"),
		deliverer: deliverer,
		timeout:   30 * time.Second,
	}
}

// ProcessMessage acks on success. Undecodable and permanently failing tasks are
// dropped; other failures are requeued once and dropped on redelivery.
func (p *Processor) ProcessMessage(ctx context.Context, d amqp.Delivery) {
	logFields := []zap.Field{zap.Uint64("delivery_tag", d.DeliveryTag), zap.String("message_id", d.MessageId)}

	var task sharedMessaging.MailTask
	if err := json.Unmarshal(d.Body, &task); err != nil {
		p.logger.Error("Failed to decode mail task", append(logFields, zap.Error(err))...)
		p.nack(d, false, logFields)
		return
	}
	logFields = append(logFields, zap.String("kind", task.Kind), zap.String("to", task.Message.To))

	processCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.deliverer.Deliver(processCtx, task); err != nil {
		requeue := !errors.Is(err, ErrPermanent) && !d.Redelivered
		p.logger.Error("Mail delivery failed", append(logFields, zap.Bool("requeue", requeue), zap.Error(err))...)
		p.nack(d, requeue, logFields)
		return
	}

	if err := d.Ack(false); err != nil {
		p.logger.Error("Failed to ack delivery", append(logFields, zap.Error(err))...)
		return
	}
	p.logger.Info("Mail delivered", logFields...)
}

func (p *Processor) nack(d amqp.Delivery, requeue bool, logFields []zap.Field) {
	if err := d.Nack(false, requeue); err != nil {
		p.logger.Error("Failed to nack delivery", append(logFields, zap.Error(err))...)
	}
}
