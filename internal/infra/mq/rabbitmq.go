// Package mq carries mail events over RabbitMQ.
package mq

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"contactbook/config"
	"contactbook/internal/errors"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Message is a consumed delivery stripped of AMQP details.
type Message struct {
	ID         string
	Data       []byte
	Attributes map[string]string
}

// Handler processes one message. Returning an error marked with Requeue puts
// the message back on the queue; any other error drops it.
type Handler func(ctx context.Context, msg Message) error

type requeueError struct{ err error }

func (e *requeueError) Error() string { return e.err.Error() }
func (e *requeueError) Unwrap() error { return e.err }

// Requeue marks err as transient.
func Requeue(err error) error {
	if err == nil {
		return nil
	}

	return &requeueError{err: err}
}

func shouldRequeue(err error) bool {
	var re *requeueError

	return errors.As(err, &re)
}

// Client wraps a RabbitMQ connection/channel pair.
type Client struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	durable bool
}

// NewClient dials RabbitMQ and applies the prefetch limit.
func NewClient(cfg *config.RabbitMQConfig) (*Client, error) {
	if cfg == nil || strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("rabbitmq url is required")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "dial rabbitmq")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()

		return nil, errors.Wrap(err, "open rabbitmq channel")
	}

	if cfg.PrefetchCount > 0 {
		if err := ch.Qos(cfg.PrefetchCount, 0, false); err != nil {
			_ = ch.Close()
			_ = conn.Close()

			return nil, errors.Wrap(err, "set rabbitmq qos")
		}
	}

	return &Client{
		conn:    conn,
		channel: ch,
		durable: cfg.Durable,
	}, nil
}

// Publish sends a persistent JSON message to the named queue.
func (c *Client) Publish(ctx context.Context, queue string, data []byte, attrs map[string]string) (string, error) {
	if strings.TrimSpace(queue) == "" {
		return "", errors.New("rabbitmq queue is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.declareQueue(queue); err != nil {
		return "", err
	}

	headers := amqp.Table{}
	for key, value := range attrs {
		headers[key] = value
	}

	messageID := uuid.NewString()
	err := c.channel.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID,
		Headers:      headers,
		Body:         data,
	})
	if err != nil {
		return "", errors.Wrap(err, "publish to rabbitmq")
	}

	return messageID, nil
}

// Subscribe consumes the named queue until ctx is done.
func (c *Client) Subscribe(ctx context.Context, queue string, handler Handler) error {
	if strings.TrimSpace(queue) == "" {
		return errors.New("rabbitmq queue is required")
	}

	c.mu.Lock()
	_, err := c.declareQueue(queue)
	if err != nil {
		c.mu.Unlock()

		return err
	}
	consumerTag := "mailworker-" + uuid.NewString()
	deliveries, err := c.channel.Consume(queue, consumerTag, false, false, false, false, nil)
	c.mu.Unlock()
	if err != nil {
		return errors.Wrap(err, "consume rabbitmq queue")
	}
	defer func() {
		_ = c.channel.Cancel(consumerTag, false)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("rabbitmq delivery channel closed")
			}
			settle(ctx, delivery, handler)
		}
	}
}

// acknowledger is the part of amqp.Delivery that settle needs.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func settle(ctx context.Context, delivery amqp.Delivery, handler Handler) {
	msg := Message{
		ID:         delivery.MessageId,
		Data:       delivery.Body,
		Attributes: headersToAttributes(delivery.Headers),
	}
	settleMessage(ctx, &delivery, msg, handler)
}

func settleMessage(ctx context.Context, ack acknowledger, msg Message, handler Handler) {
	if err := handler(ctx, msg); err != nil {
		_ = ack.Nack(false, shouldRequeue(err))

		return
	}
	_ = ack.Ack(false)
}

// Close closes the underlying channel and connection.
func (c *Client) Close() error {
	if c.channel != nil {
		_ = c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}

	return nil
}

func (c *Client) declareQueue(name string) (amqp.Queue, error) {
	q, err := c.channel.QueueDeclare(
		name,
		c.durable,
		false,
		false,
		false,
		nil,
	)

	return q, errors.Wrapf(err, "declare queue %s", name)
}

func headersToAttributes(headers amqp.Table) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(headers))
	for key, value := range headers {
		switch typed := value.(type) {
		case string:
			attrs[key] = typed
		case []byte:
			attrs[key] = string(typed)
		default:
			attrs[key] = fmt.Sprint(value)
		}
	}

	return attrs
}
