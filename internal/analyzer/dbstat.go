package analyzer

import (
	"context"
	"database/sql"

	"github.com/johndauphine/dbsize/internal/logging"
)

// dbstatQuery aggregates physical page sizes per user table. The dbstat
// virtual table reports one row per page, so summing pgsize per object
// gives the table's on-disk footprint.
const dbstatQuery = `
SELECT
    m.name AS table_name,
    SUM(s.pgsize) AS total_bytes
FROM sqlite_master m
JOIN dbstat s ON s.name = m.name
WHERE m.type = 'table' AND m.name NOT LIKE 'sqlite_%'
GROUP BY m.name
ORDER BY total_bytes DESC`

// dbstatAvailable reports whether this SQLite build exposes the dbstat
// virtual table module. This is the capability probe that decides between
// the accurate path and the schema fallback; error-string matching is
// deliberately avoided.
func dbstatAvailable(ctx context.Context, db *sql.DB) bool {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pragma_module_list WHERE name = 'dbstat'`).Scan(&n)
	if err != nil {
		logging.Debug("module list probe failed: %v", err)
		return false
	}
	return n > 0
}

// pageSizes computes exact per-table byte totals from dbstat, ordered by
// descending size.
func pageSizes(ctx context.Context, db *sql.DB) ([]TableSize, error) {
	rows, err := db.QueryContext(ctx, dbstatQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sizes []TableSize
	for rows.Next() {
		var s TableSize
		if err := rows.Scan(&s.Name, &s.Bytes); err != nil {
			return nil, err
		}
		sizes = append(sizes, s)
	}
	return sizes, rows.Err()
}
