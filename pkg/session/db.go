package session

import (
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver (pgx)
	_ "modernc.org/sqlite"             // Pure Go SQLite driver
)

// Open creates a bun database handle for the given driver and DSN, picking
// the matching dialect. Supported drivers: sqlite, postgres, mysql.
func Open(driver, dsn string) (*bun.DB, error) {
	switch driver {
	case "sqlite", "sqlite3":
		sqldb, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("session: open sqlite: %w", err)
		}
		// modernc sqlite serialises writes itself; a single pooled
		// connection also keeps :memory: databases from vanishing between
		// requests.
		sqldb.SetMaxOpenConns(1)
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	case "postgres", "pg", "pgx":
		sqldb, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("session: open postgres: %w", err)
		}
		return bun.NewDB(sqldb, pgdialect.New()), nil
	case "mysql":
		sqldb, err := sql.Open("mysql", dsn)
		if err != nil {
			return nil, fmt.Errorf("session: open mysql: %w", err)
		}
		return bun.NewDB(sqldb, mysqldialect.New()), nil
	default:
		return nil, fmt.Errorf("session: unsupported driver %q", driver)
	}
}
