package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sbilibin2017/gw-chat/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, context.CancelFunc, <-chan struct{}) {
	t.Helper()
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()
	t.Cleanup(func() {
		cancel()
		<-stopped
	})
	return h, cancel, stopped
}

func notification(sender, receiver, body string) models.Notification {
	return models.Notification{MessageID: "m", Message: body, SenderID: sender, ReceiverID: receiver}
}

func receive(t *testing.T, c *Client) models.PushEvent {
	t.Helper()
	select {
	case frame, ok := <-c.Send:
		require.True(t, ok, "send queue closed")
		var ev models.PushEvent
		require.NoError(t, json.Unmarshal(frame, &ev))
		return ev
	case <-time.After(time.Second):
		t.Fatal("no frame delivered")
		return models.PushEvent{}
	}
}

func TestHub_PublishRoutesToParticipants(t *testing.T) {
	h, _, _ := startHub(t)

	alice := NewClient(h, nil, "alice")
	bob := NewClient(h, nil, "bob")
	bob2 := NewClient(h, nil, "bob")
	carol := NewClient(h, nil, "carol")
	for _, c := range []*Client{alice, bob, bob2, carol} {
		require.NoError(t, h.Register(c))
	}

	err := h.Publish(context.Background(), models.MessagesChannel, models.InsertedEvent, notification("alice", "bob", "hi"))
	require.NoError(t, err)

	for _, c := range []*Client{alice, bob, bob2} {
		ev := receive(t, c)
		assert.Equal(t, models.MessagesChannel, ev.Channel)
		assert.Equal(t, models.InsertedEvent, ev.Event)
		assert.Equal(t, "hi", ev.Data.Message)
		assert.Equal(t, "alice", ev.Data.SenderID)
		assert.Equal(t, "bob", ev.Data.ReceiverID)
	}
	assert.Empty(t, carol.Send)
}

func TestHub_SelfMessageDeliveredOnce(t *testing.T) {
	h, _, _ := startHub(t)

	alice := NewClient(h, nil, "alice")
	require.NoError(t, h.Register(alice))

	require.NoError(t, h.Publish(context.Background(), models.MessagesChannel, models.InsertedEvent, notification("alice", "alice", "note")))
	receive(t, alice)

	// a second publish serializes behind the first delivery
	require.NoError(t, h.Publish(context.Background(), models.MessagesChannel, models.InsertedEvent, notification("x", "y", "")))
	assert.Empty(t, alice.Send)
}

func TestHub_UnregisterClosesSendQueue(t *testing.T) {
	h, _, _ := startHub(t)

	bob := NewClient(h, nil, "bob")
	require.NoError(t, h.Register(bob))
	h.Unregister(bob)
	// unknown or repeated unregistration is a no-op
	h.Unregister(bob)

	_, ok := <-bob.Send
	assert.False(t, ok)

	require.NoError(t, h.Publish(context.Background(), models.MessagesChannel, models.InsertedEvent, notification("alice", "bob", "hi")))
}

func TestHub_SlowClientDropped(t *testing.T) {
	h, _, _ := startHub(t)

	bob := NewClient(h, nil, "bob")
	require.NoError(t, h.Register(bob))

	ctx := context.Background()
	for i := 0; i < sendBufferSize+1; i++ {
		require.NoError(t, h.Publish(ctx, models.MessagesChannel, models.InsertedEvent, notification("alice", "bob", "hi")))
	}
	require.NoError(t, h.Publish(ctx, models.MessagesChannel, models.InsertedEvent, notification("x", "y", "sync")))

	count := 0
	for range bob.Send {
		count++
	}
	assert.Equal(t, sendBufferSize, count)
}

func TestHub_Stop(t *testing.T) {
	h, cancel, stopped := startHub(t)

	bob := NewClient(h, nil, "bob")
	require.NoError(t, h.Register(bob))

	cancel()
	<-stopped

	_, ok := <-bob.Send
	assert.False(t, ok)

	err := h.Publish(context.Background(), models.MessagesChannel, models.InsertedEvent, notification("alice", "bob", "hi"))
	assert.ErrorIs(t, err, ErrHubStopped)
	assert.ErrorIs(t, h.Register(NewClient(h, nil, "carol")), ErrHubStopped)
	h.Unregister(bob)
}

func TestHub_PublishContextCancelled(t *testing.T) {
	h := NewHub() // loop not running

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.Publish(ctx, models.MessagesChannel, models.InsertedEvent, notification("alice", "bob", "hi"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_EndToEnd(t *testing.T) {
	h, _, _ := startHub(t)

	registered := make(chan struct{}, 2)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := NewClient(h, conn, r.URL.Query().Get("user"))
		if err := h.Register(c); err != nil {
			conn.Close()
			return
		}
		registered <- struct{}{}
		go c.WritePump()
		go c.ReadPump()
	}))
	defer srv.Close()

	dial := func(user string) *websocket.Conn {
		url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?user=" + user
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		t.Cleanup(func() { conn.Close() })
		<-registered
		return conn
	}

	bob := dial("bob")
	carol := dial("carol")

	require.NoError(t, h.Publish(context.Background(), models.MessagesChannel, models.InsertedEvent, notification("alice", "bob", "hi")))

	require.NoError(t, bob.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev models.PushEvent
	require.NoError(t, bob.ReadJSON(&ev))
	assert.Equal(t, models.InsertedEvent, ev.Event)
	assert.Equal(t, "hi", ev.Data.Message)
	assert.Equal(t, "bob", ev.Data.ReceiverID)

	require.NoError(t, carol.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := carol.ReadMessage()
	assert.Error(t, err)
}
