// Command catalog-service serves the anti-pattern catalog, accepts run
// requests and records the results coming back from runner-service.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avast/retry-go/v4"
	_ "github.com/lib/pq"
	"github.com/spf13/pflag"

	"github.com/jeffsasaki/antipatterns/api"
	"github.com/jeffsasaki/antipatterns/catalog"
	"github.com/jeffsasaki/antipatterns/clients"
	"github.com/jeffsasaki/antipatterns/config"
	"github.com/jeffsasaki/antipatterns/logging"
	"github.com/jeffsasaki/antipatterns/runs"
	"github.com/jeffsasaki/antipatterns/store"
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
	lggr = lggr.Named("catalog-service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, settings, lggr); err != nil {
		lggr.Fatalw("Service stopped", "err", err)
	}
}

func run(ctx context.Context, settings *config.Settings, lggr logging.Logger) error {
	db, err := openDB(ctx, settings.Database, lggr)
	if err != nil {
		return err
	}
	defer db.Close()

	runStore := store.NewRunStore(db)
	if err := runStore.Migrate(ctx); err != nil {
		return err
	}

	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	broker, err := clients.DialWithRetry(ctx, settings.AMQP.URL, 10, time.Second, func(n uint, err error) {
		lggr.Warnw("Waiting for RabbitMQ", "attempt", n+1, "err", err)
	})
	if err != nil {
		return fmt.Errorf("connect to RabbitMQ: %w", err)
	}
	defer broker.Close()
	broker.WithLogger(lggr)

	for _, q := range []string{settings.AMQP.RequestQueue, settings.AMQP.ResultQueue} {
		if err := broker.DeclareQueue(q); err != nil {
			return err
		}
	}

	svc := runs.NewService(runStore, cat, broker, settings.AMQP.RequestQueue, lggr)

	consumeErr := make(chan error, 1)
	go func() {
		consumeErr <- broker.Consume(ctx, settings.AMQP.ResultQueue, svc.ApplyResult)
	}()

	srv := &http.Server{
		Addr:              settings.HTTP.Addr,
		Handler:           api.NewRouter(cat, svc, lggr),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErr := make(chan error, 1)
	go func() {
		lggr.Infow("Starting HTTP server", "addr", settings.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	if err := waitForShutdown(ctx, serverErr, consumeErr, lggr); err != nil {
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// waitForShutdown blocks until ctx is done or a background loop fails. A
// consumer stopped by the same cancellation is a clean shutdown.
func waitForShutdown(ctx context.Context, serverErr, consumeErr <-chan error, lggr logging.Logger) error {
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	case err := <-consumeErr:
		if !errors.Is(err, context.Canceled) || ctx.Err() == nil {
			return fmt.Errorf("result consumer: %w", err)
		}
	}
	lggr.Infow("Shutting down")
	return nil
}

// openDB opens postgres and waits until it answers a ping.
func openDB(ctx context.Context, s config.DatabaseSettings, lggr logging.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", s.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	err = retry.Do(
		func() error { return db.PingContext(ctx) },
		retry.Context(ctx),
		retry.Attempts(10),
		retry.Delay(time.Second),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			lggr.Warnw("Waiting for postgres", "host", s.Host, "attempt", n+1, "err", err)
		}),
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database %s: %w", s.Host, err)
	}
	return db, nil
}
