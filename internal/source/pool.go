// Package source provides the SQLite connection and the catalog, column
// metadata, and row-count queries the estimators are built on.
package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/johndauphine/dbsize/internal/logging"
	"github.com/johndauphine/dbsize/internal/util"
)

// Pool wraps the single connection used for a full analysis run.
// Analysis is sequential, so the pool is capped at one open connection.
type Pool struct {
	db   *sql.DB
	path string
}

// Open opens the SQLite database at path. The file must already exist:
// the driver creates missing files on open, which would turn a typo into
// an analysis of an empty database.
func Open(path string) (*Pool, error) {
	if path != ":memory:" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("database file %q: %w", path, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to %q: %w", path, err)
	}

	logging.Debug("connected to %s", path)
	return &Pool{db: db, path: path}, nil
}

// New wraps an already-open connection. The pool caps it at one open
// connection; with in-memory databases every additional connection would
// see its own empty database.
func New(db *sql.DB) *Pool {
	db.SetMaxOpenConns(1)
	return &Pool{db: db}
}

// DB exposes the underlying connection for queries the pool does not wrap.
func (p *Pool) DB() *sql.DB {
	return p.db
}

// Path returns the database file path, or "" for wrapped connections.
func (p *Pool) Path() string {
	return p.path
}

// Close releases the connection.
func (p *Pool) Close() error {
	return p.db.Close()
}

// ListTables returns the names of all user tables, excluding SQLite's
// internal sqlite_* tables, in catalog order.
func (p *Pool) ListTables(ctx context.Context) ([]string, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// LoadColumns loads live column metadata for a table.
func (p *Pool) LoadColumns(ctx context.Context, table string) ([]Column, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT name, type, "notnull", pk FROM pragma_table_info(?)`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var c Column
		var notNull int
		if err := rows.Scan(&c.Name, &c.DataType, &notNull, &c.PKOrdinal); err != nil {
			return nil, err
		}
		c.NotNull = notNull != 0
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

// RowCount returns the exact row count of a table.
func (p *Pool) RowCount(ctx context.Context, table string) (int64, error) {
	var count int64
	err := p.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM %s`, util.QuoteIdent(table))).Scan(&count)
	return count, err
}
