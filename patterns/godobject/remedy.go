package godobject

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jeffsasaki/antipatterns/clients"
	"github.com/jeffsasaki/antipatterns/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidUser  = errors.New("invalid user")
)

var validate = validator.New()

type newCustomer struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Email     string `validate:"required,email"`
}

// UserService owns customers and nothing else.
type UserService struct {
	mu     sync.RWMutex
	nextID int
	byID   map[int]models.Customer
}

func NewUserService() *UserService {
	return &UserService{byID: make(map[int]models.Customer)}
}

// Create assigns the next id to c and stores it.
func (s *UserService) Create(c models.Customer) (models.Customer, error) {
	c.Email = strings.TrimSpace(c.Email)
	if err := validate.Struct(newCustomer{FirstName: c.FirstName, LastName: c.LastName, Email: c.Email}); err != nil {
		return models.Customer{}, fmt.Errorf("%w: %v", ErrInvalidUser, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c.ID = s.nextID
	s.byID[c.ID] = c
	return c, nil
}

func (s *UserService) Get(id int) (models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byID[id]
	if !ok {
		return models.Customer{}, fmt.Errorf("%w: %d", ErrUserNotFound, id)
	}
	return c, nil
}

func (s *UserService) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return fmt.Errorf("%w: %d", ErrUserNotFound, id)
	}
	delete(s.byID, id)
	return nil
}

// Cache is a TTL cache. Unlike CacheGet on the god object it honors expiry.
type Cache struct {
	now func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value     any
	expiresAt time.Time
}

// NewCache returns a cache reading time from now; nil means time.Now.
func NewCache(now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{now: now, entries: make(map[string]cacheEntry)}
}

func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, expiresAt: c.now().Add(ttl)}
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

// Analytics records page views and named events.
type Analytics struct {
	now func() time.Time

	mu     sync.Mutex
	views  []PageView
	events []Event
}

func NewAnalytics(now func() time.Time) *Analytics {
	if now == nil {
		now = time.Now
	}
	return &Analytics{now: now}
}

func (a *Analytics) TrackPageView(userID int, page string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.views = append(a.views, PageView{UserID: userID, Page: page, Time: a.now()})
}

func (a *Analytics) TrackEvent(userID int, name string, data map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, Event{UserID: userID, Name: name, Data: data})
}

// PageCounts returns the number of views per page.
func (a *Analytics) PageCounts() map[string]int {
	a.mu.Lock()
	defer a.mu.Unlock()
	counts := make(map[string]int)
	for _, v := range a.views {
		counts[v.Page]++
	}
	return counts
}

// Events returns the names of tracked events, sorted.
func (a *Analytics) Events() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	names := make([]string, 0, len(a.events))
	for _, e := range a.events {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names
}

// NotificationMessage is the body published for each notification.
type NotificationMessage struct {
	UserID  int    `json:"user_id"`
	Message string `json:"message"`
}

// Notifications hands user notifications to a broker queue.
type Notifications struct {
	publisher clients.Publisher
	queue     string
}

func NewNotifications(publisher clients.Publisher, queue string) *Notifications {
	return &Notifications{publisher: publisher, queue: queue}
}

func (n *Notifications) Send(ctx context.Context, userID int, message string) error {
	if message == "" {
		return errors.New("empty notification")
	}
	body, err := json.Marshal(NotificationMessage{UserID: userID, Message: message})
	if err != nil {
		return err
	}
	if err := n.publisher.Publish(ctx, n.queue, body); err != nil {
		return fmt.Errorf("publish notification for user %d: %w", userID, err)
	}
	return nil
}

// App wires the focused services together. Callers depend on the one they use.
type App struct {
	Users         *UserService
	Cache         *Cache
	Analytics     *Analytics
	Notifications *Notifications
}

func NewApp(publisher clients.Publisher, queue string, now func() time.Time) *App {
	return &App{
		Users:         NewUserService(),
		Cache:         NewCache(now),
		Analytics:     NewAnalytics(now),
		Notifications: NewNotifications(publisher, queue),
	}
}

// Register creates a customer and sends a welcome notification.
func (a *App) Register(ctx context.Context, c models.Customer) (models.Customer, error) {
	created, err := a.Users.Create(c)
	if err != nil {
		return models.Customer{}, err
	}
	a.Analytics.TrackEvent(created.ID, "signup", nil)
	if err := a.Notifications.Send(ctx, created.ID, "Welcome, "+created.FirstName); err != nil {
		return created, err
	}
	return created, nil
}
