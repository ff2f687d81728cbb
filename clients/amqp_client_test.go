package clients

import (
	"context"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jeffsasaki/antipatterns/logging"
)

// Mocks for RabbitMQ components
type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	argsCall := m.Called(name, durable, autoDelete, exclusive, noWait, args)
	return argsCall.Get(0).(amqp.Queue), argsCall.Error(1)
}

func (m *MockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(exchange, key, mandatory, immediate, msg).Error(0)
}

func (m *MockChannel) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	argsCall := m.Called(queue, consumer, autoAck, exclusive, noLocal, noWait, args)
	return argsCall.Get(0).(<-chan amqp.Delivery), argsCall.Error(1)
}

func (m *MockChannel) Close() error {
	return nil
}

type MockConnection struct {
	mock.Mock
}

func (m *MockConnection) Channel() (Channel, error) {
	args := m.Called()
	if ch := args.Get(0); ch != nil {
		return ch.(Channel), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockConnection) Close() error {
	return m.Called().Error(0)
}

// recordingAcknowledger captures ack/nack calls made through amqp.Delivery.
type recordingAcknowledger struct {
	acked  []uint64
	nacked []uint64
	err    error
}

func (r *recordingAcknowledger) Ack(tag uint64, multiple bool) error {
	r.acked = append(r.acked, tag)
	return r.err
}

func (r *recordingAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	r.nacked = append(r.nacked, tag)
	return r.err
}

func (r *recordingAcknowledger) Reject(tag uint64, requeue bool) error {
	return nil
}

func TestPublish(t *testing.T) {
	conn := &MockConnection{}
	ch := &MockChannel{}
	conn.On("Channel").Return(ch, nil)
	ch.On("PublishWithContext", "", "antipattern_runs", false, false, mock.MatchedBy(func(p amqp.Publishing) bool {
		return p.ContentType == "application/json" && p.DeliveryMode == amqp.Persistent && string(p.Body) == `{"slug":"dead-code"}`
	})).Return(nil)

	client := NewAmqpClient(conn)
	err := client.Publish(context.Background(), "antipattern_runs", []byte(`{"slug":"dead-code"}`))

	require.NoError(t, err)
	ch.AssertExpectations(t)
}

func TestPublish_ChannelError(t *testing.T) {
	conn := &MockConnection{}
	conn.On("Channel").Return(nil, errors.New("connection closed"))

	err := NewAmqpClient(conn).Publish(context.Background(), "q", nil)
	assert.ErrorContains(t, err, "open channel: connection closed")
}

func TestDeclareQueue(t *testing.T) {
	conn := &MockConnection{}
	ch := &MockChannel{}
	conn.On("Channel").Return(ch, nil)
	ch.On("QueueDeclare", "antipattern_results", true, false, false, false, amqp.Table(nil)).Return(amqp.Queue{Name: "antipattern_results"}, nil)

	require.NoError(t, NewAmqpClient(conn).DeclareQueue("antipattern_results"))
	ch.AssertExpectations(t)
}

func TestConsume_AcksAndNacks(t *testing.T) {
	conn := &MockConnection{}
	ch := &MockChannel{}
	conn.On("Channel").Return(ch, nil)

	deliveries := make(chan amqp.Delivery, 2)
	ch.On("Consume", "antipattern_runs", "", false, false, false, false, amqp.Table(nil)).
		Return((<-chan amqp.Delivery)(deliveries), nil)

	ack := &recordingAcknowledger{}
	deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: []byte("good")}
	deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 2, Body: []byte("bad")}
	close(deliveries)

	var seen []string
	err := NewAmqpClient(conn).Consume(context.Background(), "antipattern_runs", func(_ context.Context, body []byte) error {
		seen = append(seen, string(body))
		if string(body) == "bad" {
			return errors.New("cannot decode")
		}
		return nil
	})

	assert.ErrorIs(t, err, ErrDeliveriesClosed)
	assert.Equal(t, []string{"good", "bad"}, seen)
	assert.Equal(t, []uint64{1}, ack.acked)
	assert.Equal(t, []uint64{2}, ack.nacked)
}

func TestConsume_LogsRejectedDeliveries(t *testing.T) {
	conn := &MockConnection{}
	ch := &MockChannel{}
	conn.On("Channel").Return(ch, nil)

	deliveries := make(chan amqp.Delivery, 2)
	ch.On("Consume", "antipattern_results", "", false, false, false, false, amqp.Table(nil)).
		Return((<-chan amqp.Delivery)(deliveries), nil)

	ack := &recordingAcknowledger{err: amqp.ErrClosed}
	deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: []byte("good")}
	deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 2, Body: []byte("bad")}
	close(deliveries)

	core, logs := observer.New(zap.DebugLevel)
	client := NewAmqpClient(conn).WithLogger(logging.Wrap(zap.New(core)))
	err := client.Consume(context.Background(), "antipattern_results", func(_ context.Context, body []byte) error {
		if string(body) == "bad" {
			return errors.New("cannot decode")
		}
		return nil
	})
	assert.ErrorIs(t, err, ErrDeliveriesClosed)

	var messages []string
	for _, e := range logs.All() {
		messages = append(messages, e.Message)
	}
	assert.Equal(t, []string{"Failed to ack delivery", "Rejecting delivery", "Failed to nack delivery"}, messages)

	rejected := logs.FilterMessage("Rejecting delivery").All()
	require.Len(t, rejected, 1)
	fields := rejected[0].ContextMap()
	assert.Equal(t, "antipattern_results", fields["queue"])
	assert.Equal(t, uint64(2), fields["deliveryTag"])
	assert.Equal(t, "cannot decode", fields["err"])
	assert.Equal(t, "amqp", rejected[0].LoggerName)
}

func TestConsume_StopsOnContext(t *testing.T) {
	conn := &MockConnection{}
	ch := &MockChannel{}
	conn.On("Channel").Return(ch, nil)
	ch.On("Consume", mock.Anything, "", false, false, false, false, amqp.Table(nil)).
		Return((<-chan amqp.Delivery)(make(chan amqp.Delivery)), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := NewAmqpClient(conn).Consume(ctx, "q", func(context.Context, []byte) error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDialWithRetry(t *testing.T) {
	orig := dial
	t.Cleanup(func() { dial = orig })

	calls := 0
	want := NewAmqpClient(new(MockConnection))
	dial = func(url string) (*RealAmqpClient, error) {
		calls++
		assert.Equal(t, "amqp://broker/", url)
		if calls < 3 {
			return nil, errors.New("connection refused")
		}
		return want, nil
	}

	var retries []uint
	got, err := DialWithRetry(context.Background(), "amqp://broker/", 5, time.Millisecond, func(n uint, _ error) {
		retries = append(retries, n)
	})

	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Equal(t, []uint{0, 1}, retries)
}

func TestDialWithRetry_GivesUp(t *testing.T) {
	orig := dial
	t.Cleanup(func() { dial = orig })

	refused := errors.New("connection refused")
	dial = func(string) (*RealAmqpClient, error) { return nil, refused }

	_, err := DialWithRetry(context.Background(), "amqp://broker/", 3, time.Millisecond, func(uint, error) {})

	assert.ErrorIs(t, err, refused)
}
