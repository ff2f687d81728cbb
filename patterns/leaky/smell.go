// Package leaky shows abstractions that force callers to understand what they
// were supposed to hide, and wrappers that keep the details inside.
package leaky

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

// Cache claims to abstract storage, but its errors leak the implementation.
type Cache interface {
	Get(key string) (string, error)
	Set(key string, value string) error
	Delete(key string) error
}

// LEAK: Redis-specific errors.
var (
	ErrRedisPoolExhausted  = errors.New("redis: connection pool exhausted")
	ErrRedisTimeout        = errors.New("redis: operation timeout")
	ErrRedisConnectionLost = errors.New("redis: connection lost")
	ErrRedisNil            = errors.New("redis: nil")
)

// RedisCache is an in-memory stand-in for a Redis client. Set fails with
// ErrRedisPoolExhausted for the next PoolExhausted calls.
type RedisCache struct {
	Connected     bool
	PoolExhausted int

	mu   sync.Mutex
	data map[string]string
}

func (r *RedisCache) Get(key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.Connected {
		return "", ErrRedisConnectionLost
	}
	v, ok := r.data[key]
	if !ok {
		return "", ErrRedisNil
	}
	return v, nil
}

func (r *RedisCache) Set(key string, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.Connected {
		return ErrRedisConnectionLost
	}
	if r.PoolExhausted > 0 {
		r.PoolExhausted--
		return ErrRedisPoolExhausted
	}
	if r.data == nil {
		r.data = make(map[string]string)
	}
	r.data[key] = value
	return nil
}

func (r *RedisCache) Delete(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}

// LEAKY ABSTRACTION: the caller is coupled to Redis through error values.
func ProcessDataBAD(w io.Writer, cache Cache) error {
	err := cache.Set("key", "value")

	if err == ErrRedisPoolExhausted {
		fmt.Fprintln(w, "Redis pool exhausted - retry logic")
		time.Sleep(100 * time.Millisecond)
		return cache.Set("key", "value")
	}
	if err == ErrRedisTimeout {
		fmt.Fprintln(w, "Redis timeout - adjust timeout settings")
	}
	return err
}

// DataReader leaks buffer management: one ReadNext returns at most bufferSize bytes.
type DataReader struct {
	source io.Reader
	buffer []byte
}

func NewDataReader(source io.Reader, bufferSize int) *DataReader {
	return &DataReader{source: source, buffer: make([]byte, bufferSize)}
}

func (dr *DataReader) ReadNext() (string, error) {
	n, err := dr.source.Read(dr.buffer)
	if err != nil && err != io.EOF {
		return "", err
	}
	return string(dr.buffer[:n]), nil
}

// ObjectPool looks like guaranteed reuse but leaks sync.Pool's GC semantics.
type ObjectPool struct {
	pool *sync.Pool
}

type ExpensiveObject struct {
	Data [1024]byte
}

func NewObjectPool() *ObjectPool {
	return &ObjectPool{pool: &sync.Pool{New: func() any { return &ExpensiveObject{} }}}
}

func (op *ObjectPool) Get() *ExpensiveObject { return op.pool.Get().(*ExpensiveObject) }

func (op *ObjectPool) Put(obj *ExpensiveObject) { op.pool.Put(obj) }

// HTTPClient leaks connection pooling knobs into its public fields.
type HTTPClient struct {
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
	Out                 io.Writer
}

func NewHTTPClient(out io.Writer) *HTTPClient {
	return &HTTPClient{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
		Out:                 out,
	}
}

func (hc *HTTPClient) Get(url string) (string, error) {
	fmt.Fprintf(hc.Out, "[HTTP] GET %s (using connection pool)\n", url)
	return "response", nil
}

// WorkQueue leaks channel buffering: Submit fails once the buffer is full.
type WorkQueue struct {
	tasks chan func()
}

func NewWorkQueue(bufferSize int) *WorkQueue {
	return &WorkQueue{tasks: make(chan func(), bufferSize)}
}

func (wq *WorkQueue) Submit(task func()) error {
	select {
	case wq.tasks <- task:
		return nil
	default:
		return fmt.Errorf("queue full")
	}
}

// Start runs tasks on a goroutine that nothing can stop.
func (wq *WorkQueue) Start() {
	go func() {
		for task := range wq.tasks {
			task()
		}
	}()
}

// Service leaks context semantics: callers must tell deadline from cancel.
type Service struct {
	Name string
}

func (s *Service) ProcessRequest(ctx context.Context, w io.Writer, request string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(100 * time.Millisecond):
		fmt.Fprintf(w, "[%s] Processed: %s\n", s.Name, request)
		return nil
	}
}

// DB leaks transaction state: nothing rolls back when the caller forgets.
type DB struct {
	InTransaction bool
	Out           io.Writer
}

func (db *DB) Query(query string) ([]map[string]any, error) {
	fmt.Fprintf(db.Out, "[DB] Query: %s (in_transaction: %v)\n", query, db.InTransaction)
	return nil, nil
}

func (db *DB) Begin() error {
	db.InTransaction = true
	return nil
}

func (db *DB) Commit() error {
	db.InTransaction = false
	return nil
}

func (db *DB) Rollback() error {
	db.InTransaction = false
	return nil
}

type UserProfile struct {
	UserID int64
	Name   string
	Bio    string
}

// LazyRepository hides lazy loading behind a plain method: one query for the
// users, then one more per user (N+1).
type LazyRepository struct {
	DB *sql.DB
}

func (r *LazyRepository) UsersWithProfiles(ctx context.Context) ([]UserProfile, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	var users []UserProfile
	for rows.Next() {
		var u UserProfile
		if err := rows.Scan(&u.UserID, &u.Name); err != nil {
			rows.Close()
			return nil, err
		}
		users = append(users, u)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range users {
		// LEAK: looks like field access, costs a round trip
		err := r.DB.QueryRowContext(ctx, "SELECT bio FROM profiles WHERE user_id = $1", users[i].UserID).Scan(&users[i].Bio)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
	}
	return users, nil
}

// NaiveParallelSum starts a goroutine per element and serializes them on a
// mutex. It is correct, and slower than a plain loop.
func NaiveParallelSum(nums []int, f func(int) int) int {
	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		total int
	)
	for _, n := range nums {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			mu.Lock()
			total += f(n)
			mu.Unlock()
		}(n)
	}
	wg.Wait()
	return total
}
