package main

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffsasaki/antipatterns/catalog"
	"github.com/jeffsasaki/antipatterns/clients"
	"github.com/jeffsasaki/antipatterns/config"
	"github.com/jeffsasaki/antipatterns/logging"
	"github.com/jeffsasaki/antipatterns/models"
)

// fakeBroker delivers the queued bodies to the handler once, then stops.
type fakeBroker struct {
	declared  []string
	deliver   map[string][][]byte
	published map[string][][]byte
	handled   []error
}

func (b *fakeBroker) DeclareQueue(name string) error {
	b.declared = append(b.declared, name)
	return nil
}

func (b *fakeBroker) Publish(ctx context.Context, queueName string, message []byte) error {
	if b.published == nil {
		b.published = map[string][][]byte{}
	}
	b.published[queueName] = append(b.published[queueName], message)
	return nil
}

func (b *fakeBroker) Consume(ctx context.Context, queueName string, handler clients.Handler) error {
	for _, body := range b.deliver[queueName] {
		b.handled = append(b.handled, handler(ctx, body))
	}
	return clients.ErrDeliveriesClosed
}

func (b *fakeBroker) Close() error { return nil }

func TestConsume(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)
	settings := config.Default()
	broker := &fakeBroker{deliver: map[string][][]byte{
		settings.AMQP.RequestQueue: {
			[]byte(`{"run_id":"r1","slug":"lava-flow"}`),
			[]byte(`{"run_id":"r2","slug":"singleton"}`),
			[]byte(`garbage`),
		},
	}}

	err = consume(context.Background(), broker, cat, settings, logging.Test(t))

	assert.ErrorIs(t, err, clients.ErrDeliveriesClosed)
	assert.Equal(t, []string{"antipattern_runs", "antipattern_results"}, broker.declared)
	require.Len(t, broker.handled, 3)
	assert.NoError(t, broker.handled[0])
	assert.NoError(t, broker.handled[1])
	assert.Error(t, broker.handled[2])

	results := broker.published[settings.AMQP.ResultQueue]
	require.Len(t, results, 2)
	var ok, failed models.RunResult
	require.NoError(t, json.Unmarshal(results[0], &ok))
	require.NoError(t, json.Unmarshal(results[1], &failed))
	assert.Equal(t, models.RunSucceeded, ok.Status)
	assert.Contains(t, ok.Output, "-- remedy:")
	assert.Equal(t, models.RunFailed, failed.Status)
	assert.Equal(t, "anti-pattern not found: singleton", failed.Error)
}
