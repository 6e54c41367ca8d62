package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sbilibin2017/gw-chat/internal/jwt"
	"github.com/sbilibin2017/gw-chat/internal/middlewares"
	"github.com/sbilibin2017/gw-chat/internal/models"
	ws "github.com/sbilibin2017/gw-chat/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSocketHandler(t *testing.T) {
	hub := ws.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	tokens := jwt.New(jwt.WithSecretKey("secret"))
	r := chi.NewRouter()
	r.Use(middlewares.LoggingMiddleware)
	r.With(middlewares.AuthMiddleware(tokens)).
		Get("/ws", NewWebSocketHandler(hub, func(*http.Request) bool { return true }))
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	t.Run("rejects missing session", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial(url, nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("delivers notifications for the session user", func(t *testing.T) {
		userID := uuid.New()
		token, err := tokens.Generate(context.Background(), userID)
		require.NoError(t, err)

		header := http.Header{}
		header.Add("Cookie", jwt.CookieName+"="+token)
		conn, _, err := websocket.DefaultDialer.Dial(url, header)
		require.NoError(t, err)
		defer conn.Close()

		n := models.Notification{MessageID: "m", Message: "hi", SenderID: "other", ReceiverID: userID.String()}
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))

		// registration happens after the handshake completes, so publish until a frame arrives
		received := make(chan models.PushEvent, 1)
		go func() {
			var ev models.PushEvent
			if err := conn.ReadJSON(&ev); err == nil {
				received <- ev
			}
		}()

		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		deadline := time.After(3 * time.Second)
		for {
			select {
			case ev := <-received:
				assert.Equal(t, models.MessagesChannel, ev.Channel)
				assert.Equal(t, models.InsertedEvent, ev.Event)
				assert.Equal(t, "hi", ev.Data.Message)
				return
			case <-ticker.C:
				require.NoError(t, hub.Publish(context.Background(), models.MessagesChannel, models.InsertedEvent, n))
			case <-deadline:
				t.Fatal("no notification received")
			}
		}
	})
}
