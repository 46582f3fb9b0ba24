package database

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed by the service.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    hashed_password TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'user',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Local mirror of problems created in the remote judge. All problem
-- content lives judge-side; only the id (and a display slug) is kept.
CREATE TABLE IF NOT EXISTS questions (
    id TEXT PRIMARY KEY,
    slug TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS submissions (
    id UUID PRIMARY KEY,
    submission_id TEXT NOT NULL UNIQUE,
    problem_id TEXT NOT NULL,
    user_email TEXT NOT NULL,
    result TEXT NOT NULL DEFAULT 'No response',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_submissions_user_email ON submissions(user_email);
CREATE INDEX IF NOT EXISTS idx_submissions_problem_id ON submissions(problem_id);
`
