package conversations

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

// connects, pings and makes sure the conversations table exists
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, querySchemaPostgres); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &PostgresStore{db: pool}, nil
}

func (s *PostgresStore) Create(ctx context.Context, req CreateRequest) (*Conversation, error) {
	conv := newConversation(req, time.Now())

	_, err := s.db.Exec(
		ctx,
		queryCreate,
		conv.ID,
		conv.UserInput,
		conv.PythonOutput,
		conv.SessionID,
		conv.Timestamp,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to insert conversation: %w", err)
	}

	return conv, nil
}

func (s *PostgresStore) List(ctx context.Context, sessionID string, limit int) ([]Conversation, error) {
	limit = NormalizeLimit(limit)

	var (
		rows pgx.Rows
		err  error
	)

	if sessionID == "" {
		rows, err = s.db.Query(ctx, queryListAll, limit)
	} else {
		rows, err = s.db.Query(ctx, queryList, sessionID, limit)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query conversations: %w", err)
	}

	defer rows.Close()

	result := []Conversation{}

	for rows.Next() {
		var conv Conversation

		err := rows.Scan(
			&conv.ID,
			&conv.UserInput,
			&conv.PythonOutput,
			&conv.SessionID,
			&conv.Timestamp,
		)

		if err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}

		conv.Timestamp = conv.Timestamp.UTC()
		result = append(result, conv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate conversations: %w", err)
	}

	return result, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, queryDelete, id)
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) Close() {
	s.db.Close()
}
