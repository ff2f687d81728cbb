package leaky

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"
	"testing/iotest"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestProcessDataBAD_RetriesOnceOnRedisError(t *testing.T) {
	var out bytes.Buffer
	err := ProcessDataBAD(&out, &RedisCache{Connected: true, PoolExhausted: 2})
	assert.ErrorIs(t, err, ErrRedisPoolExhausted)
	assert.Equal(t, "Redis pool exhausted - retry logic\n", out.String())
}

func TestStore_RetriesTransientFailures(t *testing.T) {
	backend := &RedisCache{Connected: true, PoolExhausted: 2}
	store := NewRedisStore(backend, WithDelay(time.Millisecond))

	require.NoError(t, store.Set(context.Background(), "k", "v"))
	v, found, err := store.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", v)
}

func TestStore_GivesUpAfterAttempts(t *testing.T) {
	store := NewRedisStore(&RedisCache{Connected: true, PoolExhausted: 5}, WithAttempts(2), WithDelay(time.Millisecond))

	err := store.Set(context.Background(), "k", "v")
	assert.ErrorIs(t, err, ErrCacheUnavailable)

	var cacheErr *CacheError
	require.ErrorAs(t, err, &cacheErr)
	assert.Equal(t, "set", cacheErr.Op)
	assert.ErrorIs(t, cacheErr.Err, ErrRedisPoolExhausted)
}

func TestStore_MissIsNotAnError(t *testing.T) {
	store := NewRedisStore(&RedisCache{Connected: true})
	_, found, err := store.Get(context.Background(), "nope")
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestStore_NonTransientIsNotRetried(t *testing.T) {
	store := NewRedisStore(&RedisCache{}, WithDelay(time.Hour))

	start := time.Now()
	_, _, err := store.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrCacheUnavailable)
	assert.Less(t, time.Since(start), time.Second)
	assert.EqualError(t, err, `cache get "k": redis: connection lost`)
}

func TestStore_Delete(t *testing.T) {
	store := NewRedisStore(&RedisCache{Connected: true})
	require.NoError(t, store.Set(context.Background(), "k", "v"))
	require.NoError(t, store.Delete(context.Background(), "k"))
	_, found, err := store.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestReadAll(t *testing.T) {
	chunk, err := NewDataReader(strings.NewReader("hello world"), 1).ReadNext()
	require.NoError(t, err)
	assert.Equal(t, "h", chunk)

	all, err := ReadAll(iotest.OneByteReader(strings.NewReader("hello world")))
	require.NoError(t, err)
	assert.Equal(t, "hello world", all)

	_, err = ReadAll(iotest.ErrReader(io.ErrUnexpectedEOF))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestWorkQueue_FailsWhenBufferFull(t *testing.T) {
	q := NewWorkQueue(1)
	require.NoError(t, q.Submit(func() {}))
	assert.EqualError(t, q.Submit(func() {}), "queue full")
}

func TestWorkerPool_BlocksInsteadOfFailing(t *testing.T) {
	defer goleak.VerifyNone(t)

	var running, peak, done atomic.Int32
	pool := NewWorkerPool(context.Background(), 2)
	for i := 0; i < 20; i++ {
		pool.Submit(func(context.Context) error {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			running.Add(-1)
			done.Add(1)
			return nil
		})
	}

	require.NoError(t, pool.Wait())
	assert.Equal(t, int32(20), done.Load())
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestWorkerPool_NonPositiveLimitRunsOneAtATime(t *testing.T) {
	defer goleak.VerifyNone(t)

	for _, limit := range []int{0, -3} {
		var running, peak, done atomic.Int32
		pool := NewWorkerPool(context.Background(), limit)
		finished := make(chan error, 1)
		go func() {
			for i := 0; i < 5; i++ {
				pool.Submit(func(context.Context) error {
					n := running.Add(1)
					if n > peak.Load() {
						peak.Store(n)
					}
					time.Sleep(time.Millisecond)
					running.Add(-1)
					done.Add(1)
					return nil
				})
			}
			finished <- pool.Wait()
		}()

		select {
		case err := <-finished:
			require.NoError(t, err, "limit %d", limit)
		case <-time.After(time.Second):
			t.Fatalf("pool with limit %d never finished", limit)
		}
		assert.Equal(t, int32(5), done.Load(), "limit %d", limit)
		assert.Equal(t, int32(1), peak.Load(), "limit %d", limit)
	}
}

func TestWorkerPool_FirstErrorCancelsOthers(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("boom")
	pool := NewWorkerPool(context.Background(), 4)
	pool.Submit(func(context.Context) error { return boom })
	pool.Submit(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	assert.ErrorIs(t, pool.Wait(), boom)
}

func TestCall(t *testing.T) {
	err := Call(context.Background(), 5*time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	assert.ErrorIs(t, err, ErrTimedOut)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = Call(ctx, time.Second, func(ctx context.Context) error { return ctx.Err() })
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTimedOut)
}

func TestService_ProcessRequestLeaksContextError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	var out bytes.Buffer
	err := (&Service{Name: "svc"}).ProcessRequest(ctx, &out, "x")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, out.String())
}

func TestDB_ForgottenCommitStaysOpen(t *testing.T) {
	var out bytes.Buffer
	db := &DB{Out: &out}
	require.NoError(t, db.Begin())
	_, _ = db.Query("UPDATE users SET balance = balance - 100 WHERE id = 1")
	assert.True(t, db.InTransaction)
	assert.Contains(t, out.String(), "in_transaction: true")
}

func TestWithTx_Commits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET balance = balance - $1 WHERE id = $2")).
		WithArgs(100, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = WithTx(context.Background(), db, func(tx *sql.Tx) error {
		_, err := tx.Exec("UPDATE users SET balance = balance - $1 WHERE id = $2", 100, 1)
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err = WithTx(context.Background(), db, func(*sql.Tx) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "kaboom", func() {
		_ = WithTx(context.Background(), db, func(*sql.Tx) error { panic("kaboom") })
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_BeginFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("no connection"))
	err = WithTx(context.Background(), db, func(*sql.Tx) error { return nil })
	assert.ErrorContains(t, err, "begin: no connection")
}

func usersRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "ada").AddRow(2, "lin")
}

func TestLazyRepository_IssuesNPlusOneQueries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name FROM users ORDER BY id").WillReturnRows(usersRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT bio FROM profiles WHERE user_id = $1")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"bio"}).AddRow("math"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT bio FROM profiles WHERE user_id = $1")).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"bio"}))

	users, err := (&LazyRepository{DB: db}).UsersWithProfiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []UserProfile{{UserID: 1, Name: "ada", Bio: "math"}, {UserID: 2, Name: "lin"}}, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileLoader_UsesTwoQueries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name FROM users ORDER BY id").WillReturnRows(usersRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, bio FROM profiles WHERE user_id = ANY($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "bio"}).AddRow(1, "math"))

	users, err := (&ProfileLoader{DB: db}).UsersWithProfiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []UserProfile{{UserID: 1, Name: "ada", Bio: "math"}, {UserID: 2, Name: "lin"}}, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileLoader_NoUsersSkipsProfileQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name FROM users ORDER BY id").WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	users, err := (&ProfileLoader{DB: db}).UsersWithProfiles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParallelSum_MatchesNaive(t *testing.T) {
	defer goleak.VerifyNone(t)

	square := func(n int) int { return n * n }
	for _, size := range []int{0, 1, 5, 7, 1000} {
		nums := make([]int, size)
		for i := range nums {
			nums[i] = i - size/2
		}
		got, err := ParallelSum(context.Background(), nums, square)
		require.NoError(t, err)
		assert.Equal(t, NaiveParallelSum(nums, square), got, "size=%d", size)
	}
}

func TestParallelSum_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ParallelSum(ctx, []int{1, 2, 3}, func(n int) int { return n })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestObjectPool(t *testing.T) {
	pool := NewObjectPool()
	obj := pool.Get()
	require.NotNil(t, obj)
	pool.Put(obj)
	assert.NotNil(t, pool.Get())
}

func TestDemo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Demo(context.Background(), &buf))

	out := buf.String()
	assert.Contains(t, out, "Redis pool exhausted - retry logic")
	assert.Contains(t, out, `ReadNext with a 1-byte buffer: "h"`)
	assert.Contains(t, out, "second Submit to a 1-slot queue: queue full")
	assert.Contains(t, out, "service error: context deadline exceeded")
	assert.Contains(t, out, "disconnected backend is ErrCacheUnavailable: true")
	assert.Contains(t, out, `ReadAll: "hello world"`)
	assert.Contains(t, out, "1-worker pool ran 5 of 5 tasks")
	assert.Contains(t, out, "Call timeout is ErrTimedOut: true")
	assert.Contains(t, out, "ParallelSum of squares: 30")
}
