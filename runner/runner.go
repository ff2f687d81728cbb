// Package runner executes demo run requests taken from the broker.
package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/jeffsasaki/antipatterns/clients"
	"github.com/jeffsasaki/antipatterns/config"
	"github.com/jeffsasaki/antipatterns/logging"
	"github.com/jeffsasaki/antipatterns/models"
)

// TruncatedMarker ends output that hit the size cap.
const TruncatedMarker = "\n[output truncated]\n"

// Demos runs a demo by slug. *catalog.Catalog implements it.
type Demos interface {
	Run(ctx context.Context, slug string, w io.Writer) error
}

type Runner struct {
	demos       Demos
	publisher   clients.Publisher
	resultQueue string
	timeout     time.Duration
	maxOutput   int
	lggr        logging.Logger

	publishAttempts uint
	publishDelay    time.Duration
}

func New(demos Demos, publisher clients.Publisher, resultQueue string, s config.RunnerSettings, lggr logging.Logger) *Runner {
	return &Runner{
		demos:           demos,
		publisher:       publisher,
		resultQueue:     resultQueue,
		timeout:         s.Timeout,
		maxOutput:       s.MaxOutput,
		lggr:            lggr.Named("runner"),
		publishAttempts: 5,
		publishDelay:    200 * time.Millisecond,
	}
}

// Handle decodes a RunRequest, runs the demo and publishes the result. A
// malformed request or a result that cannot be published is returned as an
// error so the delivery is rejected.
func (r *Runner) Handle(ctx context.Context, body []byte) error {
	var req models.RunRequest
	if err := json.Unmarshal(body, &req); err != nil {
		r.lggr.Warnw("Discarding malformed run request", "err", err)
		return fmt.Errorf("decode run request: %w", err)
	}
	if req.RunID == "" {
		return errors.New("run request without run_id")
	}

	r.lggr.Infow("Running demo", "runID", req.RunID, "slug", req.Slug)
	result := r.Execute(ctx, req)
	r.lggr.Infow("Demo finished", "runID", req.RunID, "status", result.Status)

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode run result: %w", err)
	}
	err = retry.Do(
		func() error { return r.publisher.Publish(ctx, r.resultQueue, payload) },
		retry.Context(ctx),
		retry.Attempts(r.publishAttempts),
		retry.Delay(r.publishDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			r.lggr.Warnw("Retrying result publish", "runID", req.RunID, "attempt", n+1, "err", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("publish result for %s: %w", req.RunID, err)
	}
	return nil
}

// Execute runs one demo under the configured timeout.
func (r *Runner) Execute(ctx context.Context, req models.RunRequest) models.RunResult {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out := &cappedBuffer{limit: r.maxOutput}
	done := make(chan error, 1)
	go func() {
		done <- r.demos.Run(ctx, req.Slug, out)
	}()

	select {
	case err := <-done:
		result := models.RunResult{RunID: req.RunID, Status: models.RunSucceeded, Output: out.String()}
		if err != nil {
			result.Status = models.RunFailed
			result.Error = err.Error()
		}
		return result
	case <-ctx.Done():
		// The demo goroutine may still be writing, so its output is dropped.
		return models.RunResult{
			RunID:  req.RunID,
			Status: models.RunFailed,
			Error:  fmt.Sprintf("demo did not finish: %v", ctx.Err()),
		}
	}
}

// cappedBuffer keeps the first limit bytes and silently drops the rest.
type cappedBuffer struct {
	buf       bytes.Buffer
	limit     int
	truncated bool
}

func (c *cappedBuffer) Write(p []byte) (int, error) {
	if room := c.limit - c.buf.Len(); room < len(p) {
		c.truncated = true
		if room > 0 {
			c.buf.Write(p[:room])
		}
		return len(p), nil
	}
	return c.buf.Write(p)
}

func (c *cappedBuffer) String() string {
	if c.truncated {
		return c.buf.String() + TruncatedMarker
	}
	return c.buf.String()
}
