package history

import "time"

// Session is one chat conversation.
type Session struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
}

// Message is a single chat message within a session.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Run records one code execution and its outcome.
type Run struct {
	ID         string    `json:"id"`
	Code       string    `json:"code"`
	Stdout     string    `json:"stdout"`
	Stderr     string    `json:"stderr"`
	Error      bool      `json:"error"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// Stats summarizes stored activity.
type Stats struct {
	Sessions   int `json:"sessions"`
	Messages   int `json:"messages"`
	Runs       int `json:"runs"`
	FailedRuns int `json:"failed_runs"`
	Snippets   int `json:"snippets"`
}
