package history

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the session, run, and stats endpoints.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Get("/api/sessions", handleListSessions(store))
	r.Get("/api/sessions/{id}/messages", handleGetMessages(store))
	r.Delete("/api/sessions/{id}", handleDeleteSession(store))
	r.Get("/api/runs", handleListRuns(store))
	r.Get("/api/stats", handleStats(store))
}

func handleListSessions(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		sessions, err := store.ListSessions(r.Context(), limit)
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, "listing sessions failed")
			return
		}
		if sessions == nil {
			sessions = []Session{}
		}
		writeJSON(w, http.StatusOK, sessions)
	}
}

func handleGetMessages(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		sess, err := store.GetSession(r.Context(), id)
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, "loading session failed")
			return
		}
		if sess == nil {
			writeDetail(w, http.StatusNotFound, "session not found")
			return
		}

		messages, err := store.GetMessages(r.Context(), id)
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, "loading messages failed")
			return
		}
		if messages == nil {
			messages = []Message{}
		}
		writeJSON(w, http.StatusOK, messages)
	}
}

func handleDeleteSession(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		deleted, err := store.DeleteSession(r.Context(), id)
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, "deleting session failed")
			return
		}
		if !deleted {
			writeDetail(w, http.StatusNotFound, "session not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleListRuns(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		runs, err := store.ListRuns(r.Context(), limit)
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, "listing runs failed")
			return
		}
		if runs == nil {
			runs = []Run{}
		}
		writeJSON(w, http.StatusOK, runs)
	}
}

func handleStats(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := store.Stats(r.Context())
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, "computing stats failed")
			return
		}
		writeJSON(w, http.StatusOK, stats)
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
