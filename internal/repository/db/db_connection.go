package db

import (
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Open connects to the configured database and ensures tables exist.
// For SQLite, dsn is a file path (or ":memory:").
func Open(driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == DriverSQLite {
		if err := configureSQLite(db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	return db, nil
}

func configureSQLite(db *sqlx.DB) error {
	// SQLite is not great with many writers; a single connection also keeps
	// ":memory:" databases alive for the life of the pool.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("set %s: %w", pragma, err)
		}
	}
	return nil
}

// The DDL below is accepted by both SQLite and PostgreSQL.

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);
`

const schemaClients = `
CREATE TABLE IF NOT EXISTS clients (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    phone TEXT NOT NULL,
    company TEXT,
    notes TEXT,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`

const schemaProjects = `
CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    budget DOUBLE PRECISION NOT NULL DEFAULT 0,
    deadline TIMESTAMP NOT NULL,
    status TEXT NOT NULL DEFAULT 'pending'
        CHECK (status IN ('pending', 'in_progress', 'completed')),
    client_id TEXT REFERENCES clients(id) ON DELETE SET NULL,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`

const schemaInteractions = `
CREATE TABLE IF NOT EXISTS interactions (
    id TEXT PRIMARY KEY,
    date TIMESTAMP NOT NULL,
    type TEXT NOT NULL,
    notes TEXT NOT NULL DEFAULT '',
    client_id TEXT REFERENCES clients(id) ON DELETE SET NULL,
    project_id TEXT REFERENCES projects(id) ON DELETE SET NULL,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`

const schemaReminders = `
CREATE TABLE IF NOT EXISTS reminders (
    id TEXT PRIMARY KEY,
    due_date TIMESTAMP NOT NULL,
    notes TEXT NOT NULL DEFAULT '',
    client_id TEXT REFERENCES clients(id) ON DELETE SET NULL,
    project_id TEXT REFERENCES projects(id) ON DELETE SET NULL,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`

var schemaIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_clients_user ON clients(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_user ON projects(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_interactions_user ON interactions(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_reminders_user_due ON reminders(user_id, due_date)`,
}

// EnsureSchema applies the DDL in a single transaction. It is idempotent.
func EnsureSchema(db *sqlx.DB) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		// no-op after a successful commit
		_ = tx.Rollback()
	}()

	stmts := append([]string{
		schemaUsers,
		schemaClients,
		schemaProjects,
		schemaInteractions,
		schemaReminders,
	}, schemaIndexes...)

	for i, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
