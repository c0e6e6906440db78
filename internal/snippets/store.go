package snippets

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/codebench-ai/codebench/internal/db"
)

// Store manages snippet persistence.
type Store struct {
	db *db.DB
}

// NewStore creates a new snippet store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create inserts a snippet, assigning it an ID and creation time.
func (s *Store) Create(ctx context.Context, sn Snippet) (*Snippet, error) {
	sn.ID = uuid.New().String()
	sn.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snippets (id, title, language, code, description, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sn.ID, sn.Title, sn.Language, sn.Code, sn.Description, sn.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating snippet: %w", err)
	}
	return &sn, nil
}

// Get retrieves a snippet by ID, or nil when it does not exist.
func (s *Store) Get(ctx context.Context, id string) (*Snippet, error) {
	var sn Snippet
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, language, code, description, created_at
		 FROM snippets WHERE id = ?`, id,
	).Scan(&sn.ID, &sn.Title, &sn.Language, &sn.Code, &sn.Description, &sn.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting snippet: %w", err)
	}
	return &sn, nil
}

// GetMany retrieves snippets by ID, preserving the order of ids and
// skipping ids that no longer exist.
func (s *Store) GetMany(ctx context.Context, ids []string) ([]Snippet, error) {
	out := make([]Snippet, 0, len(ids))
	for _, id := range ids {
		sn, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if sn != nil {
			out = append(out, *sn)
		}
	}
	return out, nil
}

// List returns snippets, newest first, optionally filtered by language.
func (s *Store) List(ctx context.Context, language string, limit int) ([]Snippet, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, title, language, code, description, created_at FROM snippets`
	args := []interface{}{}
	if language != "" {
		query += ` WHERE language = ?`
		args = append(args, language)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying snippets: %w", err)
	}
	defer rows.Close()

	var out []Snippet
	for rows.Next() {
		var sn Snippet
		if err := rows.Scan(&sn.ID, &sn.Title, &sn.Language, &sn.Code, &sn.Description, &sn.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning snippet: %w", err)
		}
		out = append(out, sn)
	}
	return out, rows.Err()
}

// Delete removes a snippet, reporting whether one was actually deleted.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snippets WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting snippet: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting snippet: %w", err)
	}
	return n > 0, nil
}

// SearchLike is the plain-text fallback search over title, description,
// and code.
func (s *Store) SearchLike(ctx context.Context, query string, limit int) ([]Snippet, error) {
	if limit <= 0 {
		limit = 10
	}
	pattern := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, language, code, description, created_at
		 FROM snippets
		 WHERE title LIKE ? OR description LIKE ? OR code LIKE ?
		 ORDER BY created_at DESC LIMIT ?`,
		pattern, pattern, pattern, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("searching snippets: %w", err)
	}
	defer rows.Close()

	var out []Snippet
	for rows.Next() {
		var sn Snippet
		if err := rows.Scan(&sn.ID, &sn.Title, &sn.Language, &sn.Code, &sn.Description, &sn.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning snippet: %w", err)
		}
		out = append(out, sn)
	}
	return out, rows.Err()
}

// Count returns the number of stored snippets.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snippets`).Scan(&count)
	return count, err
}
