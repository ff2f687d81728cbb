package leaky

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"
)

// Demo shows each leak and the wrapper that contains it.
func Demo(ctx context.Context, w io.Writer) error {
	fmt.Fprintln(w, "-- smell: callers need to know what is underneath")
	if err := ProcessDataBAD(w, &RedisCache{Connected: true, PoolExhausted: 1}); err != nil {
		return err
	}
	chunk, _ := NewDataReader(strings.NewReader("hello world"), 1).ReadNext()
	fmt.Fprintf(w, "  ReadNext with a 1-byte buffer: %q\n", chunk)
	q := NewWorkQueue(1)
	_ = q.Submit(func() {})
	fmt.Fprintf(w, "  second Submit to a 1-slot queue: %v\n", q.Submit(func() {}))
	sctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	err := (&Service{Name: "UserService"}).ProcessRequest(sctx, w, "data")
	cancel()
	fmt.Fprintf(w, "  service error: %v\n", err)

	fmt.Fprintln(w, "-- remedy: details stay behind the wrapper")
	store := NewRedisStore(&RedisCache{Connected: true, PoolExhausted: 2}, WithDelay(time.Millisecond))
	if err := store.Set(ctx, "key", "value"); err != nil {
		return err
	}
	_, found, err := store.Get(ctx, "missing")
	fmt.Fprintf(w, "  set after transient failures: ok, get missing: found=%t err=%v\n", found, err)
	err = NewRedisStore(&RedisCache{}).Set(ctx, "key", "value")
	fmt.Fprintf(w, "  disconnected backend is ErrCacheUnavailable: %t\n", errors.Is(err, ErrCacheUnavailable))

	all, err := ReadAll(strings.NewReader("hello world"))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  ReadAll: %q\n", all)

	var done atomic.Int32
	pool := NewWorkerPool(ctx, 1)
	for i := 0; i < 5; i++ {
		pool.Submit(func(context.Context) error {
			done.Add(1)
			return nil
		})
	}
	if err := pool.Wait(); err != nil {
		return err
	}
	fmt.Fprintf(w, "  1-worker pool ran %d of 5 tasks\n", done.Load())

	err = Call(ctx, 10*time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	fmt.Fprintf(w, "  Call timeout is ErrTimedOut: %t\n", errors.Is(err, ErrTimedOut))

	sum, err := ParallelSum(ctx, []int{1, 2, 3, 4}, func(n int) int { return n * n })
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  ParallelSum of squares: %d\n", sum)
	return nil
}
