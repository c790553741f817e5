package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// amqpChannel is the subset of *amqp.Channel the dispatcher uses
type amqpChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPDispatcher publishes notifications to a durable RabbitMQ queue
type AMQPDispatcher struct {
	conn    *amqp.Connection
	channel amqpChannel
	queue   string
}

// DialAMQPDispatcher connects to the broker and declares the queue
func DialAMQPDispatcher(url, queue string) (*AMQPDispatcher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	d, err := NewAMQPDispatcher(ch, queue)
	if err != nil {
		conn.Close()
		return nil, err
	}
	d.conn = conn
	return d, nil
}

// NewAMQPDispatcher declares queue on an open channel
func NewAMQPDispatcher(ch amqpChannel, queue string) (*AMQPDispatcher, error) {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare RabbitMQ queue %s: %w", queue, err)
	}
	return &AMQPDispatcher{channel: ch, queue: queue}, nil
}

func (d *AMQPDispatcher) Dispatch(ctx context.Context, n Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	err = d.channel.PublishWithContext(ctx, "", d.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         string(n.Type),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish notification to %s: %w", d.queue, err)
	}
	return nil
}

func (d *AMQPDispatcher) Close() error {
	var errs []error
	if err := d.channel.Close(); err != nil {
		errs = append(errs, err)
	}
	if d.conn != nil {
		if err := d.conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
