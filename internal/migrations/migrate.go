package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed sql
var embedded embed.FS

var dialects = map[string]struct {
	dialect goose.Dialect
	dir     string
}{
	"sqlite": {dialect: goose.DialectSQLite3, dir: "sql/sqlite"},
	"pgx":    {dialect: goose.DialectPostgres, dir: "sql/postgres"},
}

// Up runs all pending embedded SQL migrations for driver.
func Up(ctx context.Context, db *sql.DB, driver string) error {
	d, ok := dialects[driver]
	if !ok {
		return fmt.Errorf("no migrations for driver %q", driver)
	}

	fsys, err := fs.Sub(embedded, d.dir)
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}

	provider, err := goose.NewProvider(d.dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}

	return nil
}
