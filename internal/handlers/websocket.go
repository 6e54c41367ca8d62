package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sbilibin2017/gw-chat/internal/logger"
	"github.com/sbilibin2017/gw-chat/internal/middlewares"
	ws "github.com/sbilibin2017/gw-chat/internal/websocket"
)

// NewWebSocketHandler upgrades an authenticated request and attaches the
// connection to the hub under the session's user id. Origins are checked
// by the CORS allow list passed in.
// @Summary Live message notifications
// @Description Websocket stream of {"channel","event","data"} frames for messages the user sent or received
// @Tags messages
// @Success 101 "Switching protocols"
// @Failure 401 "Missing or invalid session"
// @Router /ws [get]
func NewWebSocketHandler(hub *ws.Hub, checkOrigin func(r *http.Request) bool) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     checkOrigin,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middlewares.GetUserIDFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Log.Warnw("failed to upgrade websocket connection", "error", err)
			return
		}

		client := ws.NewClient(hub, conn, userID.String())
		if err := hub.Register(client); err != nil {
			conn.Close()
			return
		}

		go client.WritePump()
		go client.ReadPump()
	}
}
