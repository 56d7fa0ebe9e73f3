package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"

	"taxifleet/pkg/logger"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []string
	to   []string
}

func (f *fakeSender) Send(to tele.Recipient, what interface{}, _ ...interface{}) (*tele.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, what.(string))
	f.to = append(f.to, to.Recipient())
	return &tele.Message{}, nil
}

func (f *fakeSender) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

type counter struct{ n int }

func (c *counter) IncrementNotifyDropped() { c.n++ }

func TestNotifierDelivers(t *testing.T) {
	sender := &fakeSender{}
	n := NewWithSender(sender, 42, logger.NewNop(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- n.Run(ctx) }()

	n.Notify("driver %s registered", "choppa")

	require.Eventually(t, func() bool { return len(sender.messages()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "driver choppa registered", sender.messages()[0])
	assert.Equal(t, "42", sender.to[0])

	cancel()
	require.NoError(t, <-done)
}

func TestNotifierDropsWhenFull(t *testing.T) {
	c := &counter{}
	n := NewWithSender(&fakeSender{}, 1, logger.NewNop(), c)

	for i := 0; i < queueSize+3; i++ {
		n.Notify("event %d", i)
	}
	assert.Equal(t, 3, c.n)
}

func TestNewDisabledWithoutToken(t *testing.T) {
	n, err := New("", 0, logger.NewNop(), nil)
	require.NoError(t, err)
	assert.IsType(t, Nop{}, n)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, n.Run(ctx))
}
