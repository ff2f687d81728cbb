package clients

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jeffsasaki/antipatterns/logging"
)

// Publisher is the publishing half of AmqpClient. Components that only emit events
// depend on this.
type Publisher interface {
	Publish(ctx context.Context, queueName string, message []byte) error
}

// Handler processes one delivery body. A nil error acks the delivery; any error nacks
// it without requeueing.
type Handler func(ctx context.Context, body []byte) error

// AmqpClient defines the interface for all AMQP operations
type AmqpClient interface {
	Publisher
	DeclareQueue(queueName string) error
	Consume(ctx context.Context, queueName string, handler Handler) error
	Close() error
}

// Channel is the subset of *amqp.Channel used by RealAmqpClient.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// Connection opens channels. *amqp.Connection satisfies it through Dial.
type Connection interface {
	Channel() (Channel, error)
	Close() error
}

// RealAmqpClient implements AmqpClient with real AMQP operations
type RealAmqpClient struct {
	conn Connection
	lggr logging.Logger
}

// Dial connects to the broker at url.
func Dial(url string) (*RealAmqpClient, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	return NewAmqpClient(brokerConnection{conn}), nil
}

var dial = Dial

// DialWithRetry keeps dialing until the broker accepts the connection, the
// attempts run out or ctx is done. Brokers usually start after the services
// in a compose stack.
func DialWithRetry(ctx context.Context, url string, attempts uint, delay time.Duration, onRetry func(n uint, err error)) (*RealAmqpClient, error) {
	if onRetry == nil {
		onRetry = func(uint, error) {}
	}
	var client *RealAmqpClient
	err := retry.Do(
		func() error {
			c, err := dial(url)
			if err != nil {
				return err
			}
			client = c
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(onRetry),
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// NewAmqpClient creates a client over an established connection.
func NewAmqpClient(conn Connection) *RealAmqpClient {
	return &RealAmqpClient{conn: conn, lggr: logging.Nop()}
}

// WithLogger sets the logger used to report rejected deliveries.
func (c *RealAmqpClient) WithLogger(lggr logging.Logger) *RealAmqpClient {
	c.lggr = lggr.Named("amqp")
	return c
}

// DeclareQueue declares a durable queue so that messages survive a broker restart.
func (c *RealAmqpClient) DeclareQueue(queueName string) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		queueName, // name of the queue
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", queueName, err)
	}
	return nil
}

// Publish publishes a persistent JSON message to a specified queue
func (c *RealAmqpClient) Publish(ctx context.Context, queueName string, message []byte) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	err = ch.PublishWithContext(ctx,
		"",        // exchange
		queueName, // routing key (queue name)
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         message,
		},
	)
	if err != nil {
		return fmt.Errorf("publish to %s: %w", queueName, err)
	}
	return nil
}

// Consume delivers messages from queueName to handler until ctx is done or the
// broker closes the delivery channel. It blocks.
func (c *RealAmqpClient) Consume(ctx context.Context, queueName string, handler Handler) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	msgs, err := ch.Consume(
		queueName, // queue
		"",        // consumer
		false,     // auto-ack
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		return fmt.Errorf("register consumer on %s: %w", queueName, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return ErrDeliveriesClosed
			}
			if herr := handler(ctx, d.Body); herr != nil {
				c.lggr.Warnw("Rejecting delivery", "queue", queueName, "deliveryTag", d.DeliveryTag, "err", herr)
				if err := d.Nack(false, false); err != nil {
					c.lggr.Errorw("Failed to nack delivery", "queue", queueName, "deliveryTag", d.DeliveryTag, "err", err)
				}
				continue
			}
			if err := d.Ack(false); err != nil {
				c.lggr.Errorw("Failed to ack delivery", "queue", queueName, "deliveryTag", d.DeliveryTag, "err", err)
			}
		}
	}
}

// Close closes the underlying connection.
func (c *RealAmqpClient) Close() error {
	return c.conn.Close()
}

// ErrDeliveriesClosed is returned by Consume when the broker closes the channel.
var ErrDeliveriesClosed = errors.New("amqp: delivery channel closed")

type brokerConnection struct {
	*amqp.Connection
}

func (b brokerConnection) Channel() (Channel, error) {
	ch, err := b.Connection.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}
