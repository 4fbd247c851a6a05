package messaging_test

import (
	"context"
	"errors"
	"testing"

	"github.com/serroba/url-shortener/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeConsumer records lifecycle calls into a shared journal.
type fakeConsumer struct {
	topic       string
	journal     *[]string
	startErr    error
	shutdownErr error
}

func (f *fakeConsumer) Topic() string { return f.topic }

func (f *fakeConsumer) Start(_ context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}

	*f.journal = append(*f.journal, "start "+f.topic)

	return nil
}

func (f *fakeConsumer) Shutdown() error {
	*f.journal = append(*f.journal, "stop "+f.topic)

	return f.shutdownErr
}

func newGroup(t *testing.T) (*messaging.ConsumerGroup, *mockSubscriber) {
	t.Helper()

	sub := newMockSubscriber()

	return messaging.NewConsumerGroup(sub, zap.NewNop()), sub
}

func TestConsumerGroup_Lifecycle(t *testing.T) {
	var journal []string

	group, sub := newGroup(t)
	group.Add(
		&fakeConsumer{topic: "link.clicked", journal: &journal},
		&fakeConsumer{topic: "link.created", journal: &journal},
	)

	require.NoError(t, group.Start(context.Background()))
	require.NoError(t, group.Shutdown())

	assert.Equal(t, []string{
		"start link.clicked",
		"start link.created",
		"stop link.created",
		"stop link.clicked",
	}, journal)

	sub.mu.Lock()
	defer sub.mu.Unlock()

	assert.True(t, sub.closed)
}

func TestConsumerGroup_StartFailure(t *testing.T) {
	var journal []string

	group, _ := newGroup(t)
	group.Add(
		&fakeConsumer{topic: "link.clicked", journal: &journal},
		&fakeConsumer{topic: "link.created", journal: &journal, startErr: errors.New("subscribe failed")},
	)

	err := group.Start(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "link.created")
	assert.Contains(t, err.Error(), "subscribe failed")
	assert.Equal(t, []string{"start link.clicked", "stop link.clicked"}, journal)
}

func TestConsumerGroup_ShutdownReportsEveryError(t *testing.T) {
	var journal []string

	errFirst := errors.New("first")
	errSecond := errors.New("second")

	group, _ := newGroup(t)
	group.Add(
		&fakeConsumer{topic: "a", journal: &journal, shutdownErr: errFirst},
		&fakeConsumer{topic: "b", journal: &journal, shutdownErr: errSecond},
	)

	require.NoError(t, group.Start(context.Background()))

	err := group.Shutdown()

	require.Error(t, err)
	assert.ErrorIs(t, err, errFirst)
	assert.ErrorIs(t, err, errSecond)
	assert.Len(t, journal, 4)
}

func TestConsumerGroup_WithConsumers(t *testing.T) {
	group, sub := newGroup(t)
	group.Add(messaging.NewConsumer(sub, "link.clicked", noopHandler, zap.NewNop()))

	require.NoError(t, group.Start(context.Background()))
	require.NoError(t, group.Shutdown())

	sub.mu.Lock()
	defer sub.mu.Unlock()

	assert.True(t, sub.closed)
}
