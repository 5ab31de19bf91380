package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know about.
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

type Config struct {
	Driver string
	// Path is the database file for the sqlite driver.
	Path string
	// DSN is the connection string for the postgres driver.
	DSN string

	// BusyTimeout bounds how long a statement waits on a locked row or file
	// before the storage reports busy.
	BusyTimeout time.Duration
	Isolation   sql.IsolationLevel

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DB is a sqlx handle that knows the unit-of-work settings it was opened with.
type DB struct {
	*sqlx.DB
	isolation   sql.IsolationLevel
	busyTimeout time.Duration
}

func Open(cfg *Config) (*DB, error) {
	var dsn string
	switch cfg.Driver {
	case DriverSQLite:
		dsn = sqliteDSN(cfg.Path, cfg.BusyTimeout)
	case DriverPostgres:
		dsn = cfg.DSN
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sqlx.Connect(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return &DB{DB: db, isolation: cfg.Isolation, busyTimeout: cfg.BusyTimeout}, nil
}

// sqliteDSN opens every connection with the busy wait applied and transactions
// taking the write lock at BEGIN, so a read-then-write inside one transaction
// cannot interleave with another writer.
func sqliteDSN(path string, busy time.Duration) string {
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busy.Milliseconds()))
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "foreign_keys(1)")
	q.Set("_txlock", "immediate")
	return "file:" + path + "?" + q.Encode()
}

// WithTx runs fn inside one transaction. The transaction is committed when fn
// returns nil and rolled back on any error or panic.
func (db *DB) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	var opts *sql.TxOptions
	if db.DriverName() == DriverPostgres {
		// sqlite transactions are serializable already; the driver rejects other levels.
		opts = &sql.TxOptions{Isolation: db.isolation}
	}

	tx, err := db.BeginTxx(ctx, opts)
	if err != nil {
		return Classify(err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if db.DriverName() == DriverPostgres && db.busyTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", db.busyTimeout.Milliseconds())
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return Classify(err)
		}
	}

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return Classify(err)
	}
	return nil
}

// ParseIsolation maps a config string to a database/sql isolation level.
func ParseIsolation(s string) (sql.IsolationLevel, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", " ")) {
	case "", "default":
		return sql.LevelDefault, nil
	case "read committed":
		return sql.LevelReadCommitted, nil
	case "repeatable read":
		return sql.LevelRepeatableRead, nil
	case "serializable":
		return sql.LevelSerializable, nil
	}
	return sql.LevelDefault, fmt.Errorf("unknown isolation level %q", s)
}

// EscapeLike escapes LIKE wildcards in s so it matches literally with ESCAPE '\'.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
