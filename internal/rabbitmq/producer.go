//go:generate mockgen -source ./producer.go -destination=./mocks/producer.go -package=mock_rabbitmq
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var errClosed = errors.New("rabbitmq producer is closed")

// Channel is the part of *amqp.Channel the producer relies on.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Producer publishes outbox events to a fanout exchange. The topic is carried
// as the message type so subscribers can filter order events from audit entries.
type Producer struct {
	conn     *amqp.Connection
	ch       Channel
	exchange string
	logger   *zap.Logger

	mu     sync.Mutex
	closed bool
}

func Dial(url, exchange string, logger *zap.Logger) (*Producer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	p, err := NewProducer(ch, exchange, logger)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func NewProducer(ch Channel, exchange string, logger *zap.Logger) (*Producer, error) {
	if err := ch.ExchangeDeclare(exchange, "fanout", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	logger.Info("Initialized rabbitmq producer", zap.String("exchange", exchange))
	return &Producer{ch: ch, exchange: exchange, logger: logger}, nil
}

func (p *Producer) SendMessage(ctx context.Context, topic string, key []byte, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errClosed
	}

	err := p.ch.PublishWithContext(ctx, p.exchange, "", false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Type:         topic,
		MessageId:    string(key),
		Body:         value,
	})
	if err != nil {
		return fmt.Errorf("failed to publish message to %s: %w", p.exchange, err)
	}
	return nil
}

func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	p.logger.Info("Closing rabbitmq producer")

	err := p.ch.Close()
	if p.conn != nil && !p.conn.IsClosed() {
		err = errors.Join(err, p.conn.Close())
	}
	return err
}
