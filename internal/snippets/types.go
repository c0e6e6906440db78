package snippets

import "time"

// Snippet is a saved piece of code with search metadata.
type Snippet struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Language    string    `json:"language"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// SearchResult is a snippet with its search score. Score is the vector
// similarity in [0, 1] and stays 0 for plain text matches.
type SearchResult struct {
	Snippet
	Score float64 `json:"score"`
}
