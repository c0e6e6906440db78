package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/codebench-ai/codebench/internal/db"
	"github.com/codebench-ai/codebench/internal/sandbox"
)

const titleMaxRunes = 60

// Store manages persistence of chat sessions, messages, and code runs.
type Store struct {
	db *db.DB
}

// NewStore creates a new history store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// CreateSession creates a new chat session with an optional title.
func (s *Store) CreateSession(ctx context.Context, title string) (*Session, error) {
	now := time.Now().UTC()
	sess := Session{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_sessions (id, title, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		sess.ID, sess.Title, sess.CreatedAt, sess.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return &sess, nil
}

// GetSession retrieves a session by ID, or nil when it does not exist.
func (s *Store) GetSession(ctx context.Context, id string) (*Session, error) {
	var sess Session
	err := s.db.QueryRowContext(ctx,
		`SELECT s.id, s.title, s.created_at, s.updated_at,
		        (SELECT COUNT(*) FROM chat_messages m WHERE m.session_id = s.id)
		 FROM chat_sessions s WHERE s.id = ?`, id,
	).Scan(&sess.ID, &sess.Title, &sess.CreatedAt, &sess.UpdatedAt, &sess.MessageCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}
	return &sess, nil
}

// ListSessions returns sessions ordered by most recent activity.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.title, s.created_at, s.updated_at,
		        (SELECT COUNT(*) FROM chat_messages m WHERE m.session_id = s.id)
		 FROM chat_sessions s ORDER BY s.updated_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.Title, &sess.CreatedAt, &sess.UpdatedAt, &sess.MessageCount); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// DeleteSession removes a session and, via cascade, its messages. It
// reports whether a session was actually deleted.
func (s *Store) DeleteSession(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM chat_sessions WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting session: %w", err)
	}
	return n > 0, nil
}

// SetTitleIfEmpty assigns a title to a session that has none yet.
func (s *Store) SetTitleIfEmpty(ctx context.Context, id, title string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE chat_sessions SET title = ? WHERE id = ? AND title = ''`,
		title, id,
	)
	if err != nil {
		return fmt.Errorf("setting session title: %w", err)
	}
	return nil
}

// AddMessage appends a message to a session and bumps its activity time.
func (s *Store) AddMessage(ctx context.Context, msg Message) (*Message, error) {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	msg.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_messages (id, session_id, role, content, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		msg.ID, msg.SessionID, msg.Role, msg.Content, msg.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("adding message: %w", err)
	}

	s.db.ExecContext(ctx, `UPDATE chat_sessions SET updated_at = ? WHERE id = ?`, msg.CreatedAt, msg.SessionID)

	return &msg, nil
}

// MessageText returns the content of a single message and whether it
// exists. It satisfies snippets.MessageSource.
func (s *Store) MessageText(ctx context.Context, id string) (string, bool, error) {
	var content string
	err := s.db.QueryRowContext(ctx,
		`SELECT content FROM chat_messages WHERE id = ?`, id,
	).Scan(&content)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("getting message: %w", err)
	}
	return content, true, nil
}

// GetMessages returns all messages for a session, oldest first.
func (s *Store) GetMessages(ctx context.Context, sessionID string) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, role, content, created_at
		 FROM chat_messages WHERE session_id = ? ORDER BY created_at ASC, id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// RecentMessages returns the last limit messages of a session in
// chronological order, for building model context.
func (s *Store) RecentMessages(ctx context.Context, sessionID string, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, role, content, created_at
		 FROM chat_messages WHERE session_id = ?
		 ORDER BY created_at DESC, id DESC LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying recent messages: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// RecordRun persists a finished code execution. It satisfies
// sandbox.Recorder.
func (s *Store) RecordRun(ctx context.Context, code string, res sandbox.Result) error {
	errFlag := 0
	if res.Error {
		errFlag = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, code, stdout, stderr, error, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), code, res.Stdout, res.Stderr, errFlag,
		res.Duration.Milliseconds(), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// ListRuns returns recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, code, stdout, stderr, error, duration_ms, created_at
		 FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var errFlag int
		if err := rows.Scan(&run.ID, &run.Code, &run.Stdout, &run.Stderr, &errFlag, &run.DurationMS, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.Error = errFlag != 0
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Stats returns aggregate counts of stored activity.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM chat_sessions),
		   (SELECT COUNT(*) FROM chat_messages),
		   (SELECT COUNT(*) FROM runs),
		   (SELECT COUNT(*) FROM runs WHERE error = 1),
		   (SELECT COUNT(*) FROM snippets)`,
	).Scan(&st.Sessions, &st.Messages, &st.Runs, &st.FailedRuns, &st.Snippets)
	if err != nil {
		return nil, fmt.Errorf("counting history: %w", err)
	}
	return &st, nil
}

// PruneOlderThan deletes sessions idle for more than days and runs older
// than days. It returns how many of each were removed.
func (s *Store) PruneOlderThan(ctx context.Context, days int) (int64, int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	res, err := s.db.ExecContext(ctx, `DELETE FROM chat_sessions WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, 0, fmt.Errorf("pruning sessions: %w", err)
	}
	sessions, _ := res.RowsAffected()

	res, err = s.db.ExecContext(ctx, `DELETE FROM runs WHERE created_at < ?`, cutoff)
	if err != nil {
		return sessions, 0, fmt.Errorf("pruning runs: %w", err)
	}
	runs, _ := res.RowsAffected()

	return sessions, runs, nil
}

// TitleFromMessage derives a session title from the first user message,
// collapsing whitespace and truncating long text.
func TitleFromMessage(content string) string {
	title := strings.Join(strings.Fields(content), " ")
	if utf8.RuneCountInString(title) <= titleMaxRunes {
		return title
	}
	runes := []rune(title)
	return strings.TrimSpace(string(runes[:titleMaxRunes-3])) + "..."
}
