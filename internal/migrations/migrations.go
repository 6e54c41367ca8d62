// Package migrations holds the embedded database schema and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var embedded embed.FS

// Migrations is the schema rooted at the migration files.
var Migrations, _ = fs.Sub(embedded, "sql")

// NotifyChannel is the LISTEN channel the insert trigger notifies.
const NotifyChannel = "message_events"

// Up applies all pending migrations.
func Up(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
