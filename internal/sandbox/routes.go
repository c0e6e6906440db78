package sandbox

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Recorder persists finished runs. A nil Recorder disables recording.
type Recorder interface {
	RecordRun(ctx context.Context, code string, res Result) error
}

// RegisterRoutes mounts the code execution endpoint.
func RegisterRoutes(r chi.Router, runner *Runner, rec Recorder) {
	r.Post("/api/execute", handleExecute(runner, rec))
}

type executeRequest struct {
	Code string `json:"code"`
}

func handleExecute(runner *Runner, rec Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req executeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Code) == "" {
			writeDetail(w, http.StatusBadRequest, "code is required")
			return
		}

		res := runner.Run(r.Context(), req.Code)

		if rec != nil {
			if err := rec.RecordRun(r.Context(), req.Code, res); err != nil {
				slog.Warn("recording run", "error", err)
			}
		}

		writeJSON(w, http.StatusOK, res)
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
