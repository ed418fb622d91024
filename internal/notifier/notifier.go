package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher publishes advisory events. Implementations are best-effort:
// a failed publish is logged, never surfaced to the caller.
type Publisher interface {
	Publish(ctx context.Context, msg Message)
}

// AMQPPublisher publishes messages to a durable RabbitMQ queue, opening a
// fresh connection per call. Each call is independent; there is no retry
// and no ordering guarantee across messages.
type AMQPPublisher struct {
	url     string
	queue   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewAMQPPublisher creates a publisher for the given broker URL and queue.
// timeout bounds a single publish attempt end to end, dial included.
func NewAMQPPublisher(url, queue string, timeout time.Duration, logger *zap.Logger) *AMQPPublisher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AMQPPublisher{
		url:     url,
		queue:   queue,
		timeout: timeout,
		logger:  logger,
	}
}

// Publish sends msg to the notifications queue. Failures are logged and
// discarded so the caller's request cannot be failed or stalled by the
// broker beyond the configured timeout.
func (p *AMQPPublisher) Publish(ctx context.Context, msg Message) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.publish(ctx, msg); err != nil {
		p.logger.Error("Failed to publish notification",
			zap.String("type", msg.Type),
			zap.String("queue", p.queue),
			zap.Error(err))
	}
}

func (p *AMQPPublisher) publish(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Dial: amqp.DefaultDial(p.timeout),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to broker: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	// Idempotent declare so publishing works before any consumer exists
	_, err = ch.QueueDeclare(p.queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", p.queue, err)
	}

	err = ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish to queue %s: %w", p.queue, err)
	}

	return nil
}
