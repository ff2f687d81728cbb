// Command runner-service executes demo run requests from RabbitMQ and
// publishes their results.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/jeffsasaki/antipatterns/catalog"
	"github.com/jeffsasaki/antipatterns/clients"
	"github.com/jeffsasaki/antipatterns/config"
	"github.com/jeffsasaki/antipatterns/logging"
	"github.com/jeffsasaki/antipatterns/runner"
)

func main() {
	configPath := pflag.String("config", "", "path to a YAML config file (default $"+config.ConfigPathEnv+")")
	pflag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	lggr, err := logging.New(settings.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer lggr.Sync()
	lggr = lggr.Named("runner-service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat, err := catalog.Load()
	if err != nil {
		lggr.Fatalw("Failed to load catalog", "err", err)
	}

	broker, err := clients.DialWithRetry(ctx, settings.AMQP.URL, 10, time.Second, func(n uint, err error) {
		lggr.Warnw("Waiting for RabbitMQ", "attempt", n+1, "err", err)
	})
	if err != nil {
		lggr.Fatalw("Failed to connect to RabbitMQ", "err", err)
	}
	defer broker.Close()
	broker.WithLogger(lggr)

	if err := consume(ctx, broker, cat, settings, lggr); err != nil && !errors.Is(err, context.Canceled) {
		lggr.Errorw("Consumer stopped", "err", err)
	}
}

func consume(ctx context.Context, broker clients.AmqpClient, demos runner.Demos, settings *config.Settings, lggr logging.Logger) error {
	for _, q := range []string{settings.AMQP.RequestQueue, settings.AMQP.ResultQueue} {
		if err := broker.DeclareQueue(q); err != nil {
			return err
		}
	}
	r := runner.New(demos, broker, settings.AMQP.ResultQueue, settings.Runner, lggr)
	lggr.Infow("Waiting for run requests", "queue", settings.AMQP.RequestQueue)
	return broker.Consume(ctx, settings.AMQP.RequestQueue, r.Handle)
}
