package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/mayagamaleldin/graduationproject/config"
	"github.com/mayagamaleldin/graduationproject/logger"
)

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Dialect names a supported database flavour.
type Dialect string

const (
	MySQL    Dialect = "mysql"
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// ParseDialect maps a configured driver name onto a Dialect.
func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "mysql":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pg":
		return Postgres, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// driverName is the database/sql driver registered for d.
func (d Dialect) driverName() string {
	switch d {
	case SQLite:
		return "sqlite" // modernc.org/sqlite
	case Postgres:
		return "postgres"
	default:
		return "mysql"
	}
}

// OpenWithConfig opens the configured database, applies the pool settings
// and pings it with bounded retries.
func OpenWithConfig(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	dialect, err := ParseDialect(cfg.DB.Driver)
	if err != nil {
		return nil, err
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("database %s: empty DSN (set database.host, database.path or DB_DSN)", dialect)
	}

	conn, err := sqlx.Open(dialect.driverName(), cfg.DB.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}

	maxOpenConns := cfg.DB.MaxOpenConns
	if maxOpenConns <= 0 {
		maxOpenConns = 50
	}
	maxIdleConns := cfg.DB.MaxIdleConns
	if maxIdleConns <= 0 {
		maxIdleConns = 10
	}
	connMaxLifetime := cfg.DB.ConnMaxLifetime
	if connMaxLifetime <= 0 {
		connMaxLifetime = 60 // minutes
	}
	if dialect == SQLite {
		// one writer; an in-memory database exists per connection
		maxOpenConns, maxIdleConns = 1, 1
	}

	conn.SetMaxOpenConns(maxOpenConns)
	conn.SetMaxIdleConns(maxIdleConns)
	conn.SetConnMaxLifetime(time.Duration(connMaxLifetime) * time.Minute)

	attempts := cfg.DB.ConnectRetries
	if attempts <= 0 {
		attempts = 1
	}
	err = retry.Do(
		func() error { return conn.PingContext(ctx) },
		retry.Context(ctx),
		retry.Attempts(uint(attempts)),
		retry.Delay(500*time.Millisecond),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("database ping failed, retrying", "driver", dialect, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}

	logger.Info("Database connected", "driver", dialect, "max_open_conns", maxOpenConns)
	return conn, nil
}
