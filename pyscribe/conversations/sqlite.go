package conversations

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

// opens (creating if needed) the database file at path
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// a single writer avoids SQLITE_BUSY under concurrent saves
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, querySchemaSQLite); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Create(ctx context.Context, req CreateRequest) (*Conversation, error) {
	conv := newConversation(req, time.Now())

	_, err := s.db.ExecContext(
		ctx,
		querySQLiteCreate,
		conv.ID,
		conv.UserInput,
		conv.PythonOutput,
		nullString(conv.SessionID),
		conv.Timestamp.UnixMicro(),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to insert conversation: %w", err)
	}

	return conv, nil
}

func (s *SQLiteStore) List(ctx context.Context, sessionID string, limit int) ([]Conversation, error) {
	limit = NormalizeLimit(limit)

	var (
		rows *sql.Rows
		err  error
	)

	if sessionID == "" {
		rows, err = s.db.QueryContext(ctx, querySQLiteListAll, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, querySQLiteList, sessionID, limit)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query conversations: %w", err)
	}

	defer rows.Close() //nolint:errcheck

	result := []Conversation{}

	for rows.Next() {
		var (
			conv      Conversation
			session   sql.NullString
			createdUs int64
		)

		if err := rows.Scan(&conv.ID, &conv.UserInput, &conv.PythonOutput, &session, &createdUs); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}

		if session.Valid {
			conv.SessionID = &session.String
		}

		conv.Timestamp = time.UnixMicro(createdUs).UTC()
		result = append(result, conv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate conversations: %w", err)
	}

	return result, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, querySQLiteDelete, id)
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() {
	s.db.Close() //nolint:errcheck
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}

	return sql.NullString{String: *s, Valid: true}
}
