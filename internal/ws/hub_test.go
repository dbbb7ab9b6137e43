package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeClient struct {
	mu       sync.Mutex
	messages [][]byte
	closed   bool
	fail     bool
}

func (f *fakeClient) WriteMessage(_ int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broken pipe")
	}
	f.messages = append(f.messages, data)
	return nil
}

func (f *fakeClient) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeClient) received() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.messages...)
}

func (f *fakeClient) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func TestHub_PublishReachesClients(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { hub.Run(ctx); close(done) }()

	good := &fakeClient{}
	broken := &fakeClient{fail: true}
	hub.Register(good)
	hub.Register(broken)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	hub.Publish(EventSaleCreated, map[string]string{"saleNumber": "VT-0001"})

	require.Eventually(t, func() bool { return len(good.received()) == 1 }, time.Second, 5*time.Millisecond)
	var ev Event
	require.NoError(t, json.Unmarshal(good.received()[0], &ev))
	assert.Equal(t, EventSaleCreated, ev.Type)
	assert.Equal(t, "VT-0001", ev.Data.(map[string]interface{})["saleNumber"])

	assert.Eventually(t, broken.isClosed, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	<-done
	assert.True(t, good.isClosed())
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_PublishWithoutRunnerDoesNotBlock(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))
	for i := 0; i < cap(hub.broadcast)+10; i++ {
		hub.Publish(EventStockUpdate, i)
	}
	assert.Len(t, hub.broadcast, cap(hub.broadcast))
}

func TestHub_RegistrationAfterShutdownDoesNotBlock(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() { hub.Run(ctx); close(stopped) }()

	c := &fakeClient{}
	hub.Register(c)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	<-stopped
	assert.True(t, c.isClosed())

	returned := make(chan struct{})
	late := &fakeClient{}
	go func() {
		hub.Unregister(c)
		hub.Register(late)
		hub.Unregister(late)
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("register/unregister blocked after the hub stopped")
	}
	assert.True(t, late.isClosed())
	assert.Equal(t, 0, hub.ClientCount())
}
