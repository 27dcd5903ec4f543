package conversations

const (
	querySchemaPostgres = `
		CREATE TABLE IF NOT EXISTS conversations (
			id UUID PRIMARY KEY,
			user_input TEXT NOT NULL,
			python_output TEXT NOT NULL,
			session_id TEXT,
			timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_conversations_session_timestamp
			ON conversations (session_id, timestamp DESC);
	`

	queryCreate = `
		INSERT INTO conversations (id, user_input, python_output, session_id, timestamp)
		VALUES ($1, $2, $3, $4, $5)
	`

	queryList = `
		SELECT id, user_input, python_output, session_id, timestamp
		FROM conversations
		WHERE session_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`

	queryListAll = `
		SELECT id, user_input, python_output, session_id, timestamp
		FROM conversations
		ORDER BY timestamp DESC
		LIMIT $1
	`

	queryDelete = `
		DELETE FROM conversations
		WHERE id = $1
	`
)

// sqlite stores timestamps as unix microseconds so ordering stays numeric
const (
	querySchemaSQLite = `
		CREATE TABLE IF NOT EXISTS conversations (
			id TEXT PRIMARY KEY,
			user_input TEXT NOT NULL,
			python_output TEXT NOT NULL,
			session_id TEXT,
			created_at_us INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_conversations_session_created
			ON conversations (session_id, created_at_us DESC);
	`

	querySQLiteCreate = `
		INSERT INTO conversations (id, user_input, python_output, session_id, created_at_us)
		VALUES (?, ?, ?, ?, ?)
	`

	querySQLiteList = `
		SELECT id, user_input, python_output, session_id, created_at_us
		FROM conversations
		WHERE session_id = ?
		ORDER BY created_at_us DESC, rowid DESC
		LIMIT ?
	`

	querySQLiteListAll = `
		SELECT id, user_input, python_output, session_id, created_at_us
		FROM conversations
		ORDER BY created_at_us DESC, rowid DESC
		LIMIT ?
	`

	querySQLiteDelete = `DELETE FROM conversations WHERE id = ?`
)
