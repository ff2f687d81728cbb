package leaky

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"
)

// ErrCacheUnavailable is the only backend failure Store callers see.
var ErrCacheUnavailable = errors.New("cache unavailable")

// CacheError records the failed operation. It matches ErrCacheUnavailable with
// errors.Is and keeps the backend error for logs.
type CacheError struct {
	Op  string
	Key string
	Err error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *CacheError) Unwrap() error { return e.Err }

func (e *CacheError) Is(target error) bool { return target == ErrCacheUnavailable }

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithAttempts sets how many times a transient failure is tried.
func WithAttempts(n uint) StoreOption {
	return func(s *Store) { s.attempts = n }
}

// WithDelay sets the pause between attempts.
func WithDelay(d time.Duration) StoreOption {
	return func(s *Store) { s.delay = d }
}

// Store wraps a Cache backend. Misses are (value, false, nil); transient
// failures are retried; everything else is a *CacheError.
type Store struct {
	backend   Cache
	isMiss    func(error) bool
	transient func(error) bool
	attempts  uint
	delay     time.Duration
}

// NewRedisStore adapts a Redis-shaped backend. It is the only code that knows
// which Redis errors mean what.
func NewRedisStore(backend Cache, opts ...StoreOption) *Store {
	s := &Store{
		backend: backend,
		isMiss:  func(err error) bool { return errors.Is(err, ErrRedisNil) },
		transient: func(err error) bool {
			return errors.Is(err, ErrRedisPoolExhausted) || errors.Is(err, ErrRedisTimeout)
		},
		attempts: 3,
		delay:    10 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.do(ctx, func() error {
		var err error
		value, err = s.backend.Get(key)
		return err
	})
	switch {
	case err == nil:
		return value, true, nil
	case s.isMiss(err):
		return "", false, nil
	default:
		return "", false, &CacheError{Op: "get", Key: key, Err: err}
	}
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.do(ctx, func() error { return s.backend.Set(key, value) }); err != nil {
		return &CacheError{Op: "set", Key: key, Err: err}
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.do(ctx, func() error { return s.backend.Delete(key) }); err != nil {
		return &CacheError{Op: "delete", Key: key, Err: err}
	}
	return nil
}

func (s *Store) do(ctx context.Context, fn func() error) error {
	return retry.Do(fn,
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(s.delay),
		retry.DelayType(retry.FixedDelay),
		retry.RetryIf(s.transient),
		retry.LastErrorOnly(true),
	)
}

// ReadAll reads r to the end regardless of how the source chunks its data.
func ReadAll(r io.Reader) (string, error) {
	b, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return "", fmt.Errorf("read: %w", err)
	}
	return string(b), nil
}

// WorkerPool runs tasks with bounded concurrency. Submit blocks while the pool
// is full instead of failing. The first task error cancels the pool context.
type WorkerPool struct {
	g   *errgroup.Group
	ctx context.Context
}

// NewWorkerPool runs at most limit tasks at once. A limit below 1 means one.
func NewWorkerPool(ctx context.Context, limit int) *WorkerPool {
	limit = max(limit, 1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	return &WorkerPool{g: g, ctx: gctx}
}

func (p *WorkerPool) Submit(task func(ctx context.Context) error) {
	p.g.Go(func() error { return task(p.ctx) })
}

// Wait blocks until every submitted task returns and reports the first error.
func (p *WorkerPool) Wait() error {
	return p.g.Wait()
}

// ErrTimedOut wraps a deadline hit inside Call.
var ErrTimedOut = errors.New("timed out")

// Call runs fn under timeout. A deadline becomes ErrTimedOut; cancellation by
// the caller comes back as context.Canceled.
func Call(ctx context.Context, timeout time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	err := fn(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s: %w", ErrTimedOut, timeout, err)
	}
	return err
}

// WithTx runs fn inside a transaction. It commits when fn returns nil and rolls
// back on error or panic; a panic is re-raised after rollback.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ProfileLoader loads users with their profiles in two queries regardless of
// how many users there are.
type ProfileLoader struct {
	DB *sql.DB
}

func (l *ProfileLoader) UsersWithProfiles(ctx context.Context) ([]UserProfile, error) {
	rows, err := l.DB.QueryContext(ctx, "SELECT id, name FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		users []UserProfile
		ids   []int64
		index = make(map[int64]int)
	)
	for rows.Next() {
		var u UserProfile
		if err := rows.Scan(&u.UserID, &u.Name); err != nil {
			return nil, err
		}
		index[u.UserID] = len(users)
		users = append(users, u)
		ids = append(ids, u.UserID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return users, nil
	}

	profiles, err := l.DB.QueryContext(ctx, "SELECT user_id, bio FROM profiles WHERE user_id = ANY($1)", pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer profiles.Close()
	for profiles.Next() {
		var (
			id  int64
			bio string
		)
		if err := profiles.Scan(&id, &bio); err != nil {
			return nil, err
		}
		if i, ok := index[id]; ok {
			users[i].Bio = bio
		}
	}
	return users, profiles.Err()
}

// ParallelSum applies f to every element and sums the results, splitting the
// input into one chunk per available CPU. Compute-bound speedup is capped by
// GOMAXPROCS no matter how many goroutines are started.
func ParallelSum(ctx context.Context, nums []int, f func(int) int) (int, error) {
	workers := runtime.GOMAXPROCS(0)
	if workers > len(nums) {
		workers = len(nums)
	}
	if workers == 0 {
		return 0, nil
	}

	partial := make([]int, workers)
	chunk := (len(nums) + workers - 1) / workers
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo := min(w*chunk, len(nums))
		hi := min(lo+chunk, len(nums))
		g.Go(func() error {
			for _, n := range nums[lo:hi] {
				partial[w] += f(n)
			}
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, p := range partial {
		total += p
	}
	return total, nil
}
