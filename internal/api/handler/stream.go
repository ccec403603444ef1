package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kiranshivaraju/gitpulse/internal/backend"
	"github.com/kiranshivaraju/gitpulse/internal/dashboard"
	"github.com/kiranshivaraju/gitpulse/internal/view"
)

// Stream message types.
const (
	TypeSnapshot = "snapshot"
	TypeComplete = "complete"
	TypeError    = "error"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Message is one frame of the dashboard stream.
type Message struct {
	Type string    `json:"type"`
	Data view.View `json:"data"`
}

// NewStreamHandler returns an http.HandlerFunc for GET /api/v1/dashboard/stream.
// The connection receives a snapshot frame after every state change, then a
// final complete or error frame, then a close.
func NewStreamHandler(client backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := r.URL.Query().Get("user")

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// The reader only exists to notice the client going away.
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		send := func(msg Message) error {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			return conn.WriteJSON(msg)
		}

		session := dashboard.NewSession(client, dashboard.WithListener(func(snap dashboard.Snapshot) {
			if err := send(Message{Type: TypeSnapshot, Data: view.Build(snap)}); err != nil {
				slog.Debug("stream write failed", "username", username, "error", err)
				cancel()
			}
		}))

		final := Message{Type: TypeComplete}
		if err := session.Run(ctx, username); err != nil {
			final.Type = TypeError
		}
		final.Data = view.Build(session.Snapshot())

		if err := send(final); err != nil {
			slog.Debug("stream write failed", "username", username, "error", err)
			return
		}
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
	}
}
