package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// socketRequest is the incoming WebSocket message format.
type socketRequest struct {
	Type      string `json:"type"`       // "message"
	SessionID string `json:"session_id"` // empty for new sessions
	Content   string `json:"content"`
}

// socketResponse is the outgoing WebSocket message format.
type socketResponse struct {
	Type      string `json:"type"` // "response" or "error"
	SessionID string `json:"session_id"`
	Content   string `json:"content"`
}

func handleChatSocket(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("websocket upgrade", "error", err)
			return
		}
		defer conn.Close()

		// The server's timeout middleware cancels r.Context() after 60s;
		// a chat socket outlives that.
		ctx := context.WithoutCancel(r.Context())

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					slog.Debug("websocket read", "error", err)
				}
				return
			}

			var req socketRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				sendSocketError(conn, "", "invalid message format")
				continue
			}
			if strings.TrimSpace(req.Content) == "" {
				sendSocketError(conn, req.SessionID, "content is required")
				continue
			}

			switch req.Type {
			case "message":
				turn, err := engine.Reply(ctx, req.SessionID, req.Content)
				if err != nil {
					if errors.Is(err, ErrSessionNotFound) {
						sendSocketError(conn, req.SessionID, "session not found")
					} else {
						sendSocketError(conn, req.SessionID, "chat failed: "+err.Error())
					}
					continue
				}
				sendSocket(conn, socketResponse{
					Type:      "response",
					SessionID: turn.SessionID,
					Content:   turn.Response,
				})
			default:
				sendSocketError(conn, req.SessionID, "unknown message type: "+req.Type)
			}
		}
	}
}

func sendSocket(conn *websocket.Conn, resp socketResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		slog.Debug("websocket write", "error", err)
	}
}

func sendSocketError(conn *websocket.Conn, sessionID, message string) {
	sendSocket(conn, socketResponse{Type: "error", SessionID: sessionID, Content: message})
}
