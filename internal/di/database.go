package di

import (
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// OpenBunDB opens a database connection and wraps it with the bun dialect
// matching the driver. Hosts that already manage a *bun.DB should use
// WithBunDB instead.
func OpenBunDB(driver, dsn string) (*bun.DB, error) {
	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	switch driver {
	case "postgres", "pgx", "pg":
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	case "sqlite3", "sqlite":
		db := bun.NewDB(sqlDB, sqlitedialect.New())
		db.SetMaxOpenConns(1)
		return db, nil
	default:
		_ = sqlDB.Close()
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
