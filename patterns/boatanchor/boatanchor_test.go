package boatanchor

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) UserAdded(ctx context.Context, user User) error {
	return m.Called(user).Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, queueName string, message []byte) error {
	return m.Called(queueName, string(message)).Error(0)
}

func TestUserManager_AddUser(t *testing.T) {
	var out bytes.Buffer
	um := NewUserManager(&out)

	um.AddUser(User{ID: 1, Name: "John"})

	assert.Equal(t, "Sending webhook for John\n", out.String())
	assert.Len(t, um.Users(), 1)
}

func TestDirectory_MatchesUserManagerOutput(t *testing.T) {
	var smell, remedy bytes.Buffer
	users := []User{{ID: 1, Name: "John"}, {ID: 2, Name: "Jane"}}

	um := NewUserManager(&smell)
	dir := NewDirectory(WebhookNotifier{Out: &remedy})
	for _, u := range users {
		um.AddUser(u)
		require.NoError(t, dir.Add(context.Background(), u))
	}

	assert.Equal(t, smell.String(), remedy.String())
	assert.Equal(t, um.Users(), dir.Users())
}

func TestDirectory_RejectsDuplicates(t *testing.T) {
	n := &mockNotifier{}
	n.On("UserAdded", mock.Anything).Return(nil).Once()
	dir := NewDirectory(n)

	require.NoError(t, dir.Add(context.Background(), User{ID: 7, Name: "Ann"}))
	err := dir.Add(context.Background(), User{ID: 7, Name: "Ann again"})

	assert.ErrorIs(t, err, ErrDuplicateUser)
	assert.Len(t, dir.Users(), 1)
	n.AssertExpectations(t)
}

func TestDirectory_KeepsUserWhenNotifyFails(t *testing.T) {
	n := &mockNotifier{}
	n.On("UserAdded", mock.Anything).Return(errors.New("webhook down"))
	dir := NewDirectory(n)

	err := dir.Add(context.Background(), User{ID: 3, Name: "Bo"})

	assert.ErrorContains(t, err, "webhook down")
	assert.Len(t, dir.Users(), 1)
}

func TestQueueNotifier_Publishes(t *testing.T) {
	p := &mockPublisher{}
	p.On("Publish", "user_events", `{"user_id":1,"name":"John","email":"john@example.com"}`).Return(nil)

	dir := NewDirectory(QueueNotifier{Publisher: p, Queue: "user_events"})
	require.NoError(t, dir.Add(context.Background(), User{ID: 1, Name: "John", Email: "john@example.com"}))

	p.AssertExpectations(t)
}

func TestDemo(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Demo(context.Background(), &out))
	assert.Contains(t, out.String(), "Sending webhook for John")
	assert.Contains(t, out.String(), "registered users: 1")
}
