package boatanchor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/jeffsasaki/antipatterns/clients"
)

// ErrDuplicateUser is returned when a user id is already registered.
var ErrDuplicateUser = errors.New("user already registered")

// Notifier announces new users. Exactly one implementation is wired at a time; the
// old ones live in version control, not in the binary.
type Notifier interface {
	UserAdded(ctx context.Context, user User) error
}

// Directory is UserManager with the anchors cut loose.
type Directory struct {
	notifier Notifier

	mu    sync.Mutex
	users map[int]User
	order []int
}

func NewDirectory(notifier Notifier) *Directory {
	return &Directory{notifier: notifier, users: make(map[int]User)}
}

// Add registers user and notifies. The user stays registered when notification fails.
func (d *Directory) Add(ctx context.Context, user User) error {
	d.mu.Lock()
	if _, ok := d.users[user.ID]; ok {
		d.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrDuplicateUser, user.ID)
	}
	d.users[user.ID] = user
	d.order = append(d.order, user.ID)
	d.mu.Unlock()

	if err := d.notifier.UserAdded(ctx, user); err != nil {
		return fmt.Errorf("notify user %d: %w", user.ID, err)
	}
	return nil
}

// Users returns registered users in insertion order.
func (d *Directory) Users() []User {
	d.mu.Lock()
	defer d.mu.Unlock()
	users := make([]User, 0, len(d.order))
	for _, id := range d.order {
		users = append(users, d.users[id])
	}
	return users
}

// WebhookNotifier writes the webhook line the live code path has always produced.
type WebhookNotifier struct {
	Out io.Writer
}

func (w WebhookNotifier) UserAdded(_ context.Context, user User) error {
	_, err := fmt.Fprintf(w.Out, "Sending webhook for %s\n", user.Name)
	return err
}

// UserAddedEvent is published by QueueNotifier.
type UserAddedEvent struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// QueueNotifier publishes a UserAddedEvent to a broker queue.
type QueueNotifier struct {
	Publisher clients.Publisher
	Queue     string
}

func (q QueueNotifier) UserAdded(ctx context.Context, user User) error {
	body, err := json.Marshal(UserAddedEvent{UserID: user.ID, Name: user.Name, Email: user.Email})
	if err != nil {
		return err
	}
	return q.Publisher.Publish(ctx, q.Queue, body)
}
