package snippets

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/codebench-ai/codebench/internal/markdown"
)

// MessageSource resolves a chat message id to its text. A nil
// MessageSource disables capturing snippets from chat.
type MessageSource interface {
	MessageText(ctx context.Context, id string) (string, bool, error)
}

// RegisterRoutes mounts the snippet CRUD and search endpoints. index may
// be nil, in which case search uses plain text matching only.
func RegisterRoutes(r chi.Router, store *Store, index *Index, msgs MessageSource) {
	r.Route("/api/snippets", func(r chi.Router) {
		r.Post("/", handleCreateSnippet(store, index))
		r.Get("/", handleListSnippets(store))
		r.Post("/search", handleSearchSnippets(store, index))
		if msgs != nil {
			r.Post("/capture", handleCaptureSnippet(store, index, msgs))
		}
		r.Get("/{id}", handleGetSnippet(store))
		r.Delete("/{id}", handleDeleteSnippet(store, index))
	})
}

type createSnippetRequest struct {
	Title       string `json:"title"`
	Language    string `json:"language"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

func handleCreateSnippet(store *Store, index *Index) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSnippetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Title) == "" {
			writeDetail(w, http.StatusBadRequest, "title is required")
			return
		}
		if strings.TrimSpace(req.Code) == "" {
			writeDetail(w, http.StatusBadRequest, "code is required")
			return
		}

		sn, err := store.Create(r.Context(), Snippet{
			Title:       req.Title,
			Language:    req.Language,
			Code:        req.Code,
			Description: req.Description,
		})
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, "creating snippet failed")
			return
		}

		if index != nil {
			if err := index.Add(r.Context(), *sn); err != nil {
				slog.Warn("indexing snippet", "id", sn.ID, "error", err)
			} else if err := index.Persist(); err != nil {
				slog.Warn("persisting snippet index", "error", err)
			}
		}

		writeJSON(w, http.StatusCreated, sn)
	}
}

type captureSnippetRequest struct {
	MessageID string `json:"message_id"`
	Language  string `json:"language"`
	Title     string `json:"title"`
}

// handleCaptureSnippet saves the first fenced code block of a chat
// message as a snippet.
func handleCaptureSnippet(store *Store, index *Index, msgs MessageSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req captureSnippetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.MessageID) == "" {
			writeDetail(w, http.StatusBadRequest, "message_id is required")
			return
		}
		lang := req.Language
		if lang == "" {
			lang = "python"
		}

		text, found, err := msgs.MessageText(r.Context(), req.MessageID)
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, "loading message failed")
			return
		}
		if !found {
			writeDetail(w, http.StatusNotFound, "message not found")
			return
		}

		code, ok := markdown.FirstFence(text, lang)
		if !ok || strings.TrimSpace(code) == "" {
			writeDetail(w, http.StatusBadRequest, fmt.Sprintf("message has no %s code block", lang))
			return
		}

		title := strings.TrimSpace(req.Title)
		if title == "" {
			title = "Captured from chat"
		}

		sn, err := store.Create(r.Context(), Snippet{
			Title:    title,
			Language: lang,
			Code:     code,
		})
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, "creating snippet failed")
			return
		}

		if index != nil {
			if err := index.Add(r.Context(), *sn); err != nil {
				slog.Warn("indexing snippet", "id", sn.ID, "error", err)
			} else if err := index.Persist(); err != nil {
				slog.Warn("persisting snippet index", "error", err)
			}
		}

		writeJSON(w, http.StatusCreated, sn)
	}
}

func handleListSnippets(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		language := r.URL.Query().Get("language")

		list, err := store.List(r.Context(), language, limit)
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, "listing snippets failed")
			return
		}
		if list == nil {
			list = []Snippet{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func handleGetSnippet(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sn, err := store.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, "loading snippet failed")
			return
		}
		if sn == nil {
			writeDetail(w, http.StatusNotFound, "snippet not found")
			return
		}
		writeJSON(w, http.StatusOK, sn)
	}
}

func handleDeleteSnippet(store *Store, index *Index) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		deleted, err := store.Delete(r.Context(), id)
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, "deleting snippet failed")
			return
		}
		if !deleted {
			writeDetail(w, http.StatusNotFound, "snippet not found")
			return
		}

		if index != nil {
			if err := index.Remove(r.Context(), id); err != nil {
				slog.Warn("removing snippet from index", "id", id, "error", err)
			} else if err := index.Persist(); err != nil {
				slog.Warn("persisting snippet index", "error", err)
			}
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

type searchSnippetRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

func handleSearchSnippets(store *Store, index *Index) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchSnippetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Query) == "" {
			writeDetail(w, http.StatusBadRequest, "query is required")
			return
		}

		results, err := Search(r.Context(), store, index, req.Query, req.Limit)
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, "search failed")
			return
		}
		if results == nil {
			results = []SearchResult{}
		}
		writeJSON(w, http.StatusOK, results)
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
