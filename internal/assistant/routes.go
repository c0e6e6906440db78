package assistant

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the chat endpoints.
func RegisterRoutes(r chi.Router, engine *Engine) {
	r.Post("/api/chat", handleChat(engine))
	r.Get("/ws/chat", handleChatSocket(engine))
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

func handleChat(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			writeDetail(w, http.StatusBadRequest, "message is required")
			return
		}

		turn, err := engine.Reply(r.Context(), req.SessionID, req.Message)
		if err != nil {
			if errors.Is(err, ErrSessionNotFound) {
				writeDetail(w, http.StatusNotFound, "session not found")
				return
			}
			slog.Error("chat turn failed", "error", err)
			writeDetail(w, http.StatusInternalServerError, "chat failed: "+err.Error())
			return
		}

		writeJSON(w, http.StatusOK, turn)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}
