package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS articles (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT UNIQUE,
	authors     TEXT,
	annotation  TEXT,
	articleText TEXT,
	sourceUrl   TEXT,
	flag        INTEGER
)`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS articles (
	id          SERIAL PRIMARY KEY,
	title       TEXT UNIQUE,
	authors     TEXT,
	annotation  TEXT,
	articleText TEXT,
	sourceUrl   TEXT,
	flag        INTEGER
)`

// EnsureSchema creates the articles table when it is missing.
func EnsureSchema(ctx context.Context, db *sqlx.DB, driver string) error {
	schema := sqliteSchema
	if isPostgres(driver) {
		schema = postgresSchema
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate articles: %w", err)
	}
	return nil
}

func isPostgres(driver string) bool {
	return driver == "postgres" || driver == "pgx"
}
