package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/johndauphine/dbsize/internal/config"
	"github.com/johndauphine/dbsize/internal/logging"
	"github.com/johndauphine/dbsize/internal/source"
	"github.com/johndauphine/dbsize/internal/util"
)

// Estimator approximates table sizes from the configured field-size
// schema: exact row counts, summed text lengths for string and JSON
// fields, and fixed per-type byte widths for everything else.
type Estimator struct {
	pool *source.Pool
	cfg  *config.Config
}

// NewEstimator creates a fallback estimator over the given connection.
func NewEstimator(pool *source.Pool, cfg *config.Config) *Estimator {
	return &Estimator{pool: pool, cfg: cfg}
}

// EstimateTables estimates every table in the given list and returns the
// results ranked by estimated size. A failure on one table is recorded in
// that table's notes and never aborts the remaining tables. onTable, when
// non-nil, is called once per completed table.
func (e *Estimator) EstimateTables(ctx context.Context, tables []string, onTable func()) []TableEstimate {
	results := make([]TableEstimate, 0, len(tables))
	for _, name := range tables {
		results = append(results, e.estimateTable(ctx, name))
		if onTable != nil {
			onTable()
		}
	}
	sortEstimates(results)
	return results
}

func (e *Estimator) estimateTable(ctx context.Context, name string) TableEstimate {
	res := TableEstimate{Name: name}

	count, err := e.pool.RowCount(ctx, name)
	if err != nil {
		return e.recordError(res, fmt.Errorf("row count: %w", err))
	}
	res.RowCount = count
	if count == 0 {
		res.Notes = "empty table"
		return res
	}

	notes := []string{fmt.Sprintf("%s rows", humanize.Comma(count))}

	schema, ok := e.cfg.Tables[name]
	if !ok {
		res.EstimatedBytes = SizeUnknown
		res.Notes = strings.Join(append(notes, "size not specifically estimated"), "; ")
		return res
	}

	cols, err := e.pool.LoadColumns(ctx, name)
	if err != nil {
		return e.recordError(res, fmt.Errorf("column metadata: %w", err))
	}
	live := make(map[string]bool, len(cols))
	for _, c := range cols {
		live[c.Name] = true
	}

	var total int64

	// JSON fields are summed one query per field so each field's share can
	// be called out in the notes.
	for _, field := range e.validFields(name, "JSON", schema.JSONFields, live) {
		n, err := e.sumLength(ctx, name,
			fmt.Sprintf("LENGTH(CAST(%s AS TEXT))", util.QuoteIdent(field)))
		if err != nil {
			return e.recordError(res, fmt.Errorf("field %s: %w", field, err))
		}
		total += n
		notes = append(notes, fmt.Sprintf("%s (JSON) total: %s", field, humanize.IBytes(uint64(n))))
	}

	// String fields share a single aggregate query.
	if fields := e.validFields(name, "string", schema.StringFields, live); len(fields) > 0 {
		parts := make([]string, len(fields))
		for i, field := range fields {
			parts[i] = fmt.Sprintf("COALESCE(LENGTH(%s), 0)", util.QuoteIdent(field))
		}
		n, err := e.sumLength(ctx, name, strings.Join(parts, " + "))
		if err != nil {
			return e.recordError(res, fmt.Errorf("string fields: %w", err))
		}
		total += n
	}

	// Fixed-width groups contribute width x field count x row count.
	ts := e.cfg.TypeSizes
	total += e.fixedWidth(name, "float", schema.FloatFields, live, ts.FloatBytes, count)
	total += e.fixedWidth(name, "int", schema.IntFields, live, ts.IntBytes, count)
	total += e.fixedWidth(name, "bigint", schema.BigIntFields, live, ts.BigIntBytes, count)
	total += e.fixedWidth(name, "boolean", schema.BooleanFields, live, ts.BooleanBytes, count)
	total += e.fixedWidth(name, "datetime", schema.DatetimeFields, live, ts.DatetimeBytes, count)

	total += schema.FixedFieldsEstimateBytes * count

	res.EstimatedBytes = total
	res.Notes = strings.Join(notes, "; ")
	return res
}

// validFields filters declared fields against live column metadata.
// Declared fields that no longer exist are skipped with a warning: schema
// drift between config and database must never abort the run.
func (e *Estimator) validFields(table, kind string, declared []string, live map[string]bool) []string {
	var valid []string
	for _, field := range declared {
		if !live[field] {
			logging.Warn("%s field %q not found in table %q, skipping its size calculation", kind, field, table)
			continue
		}
		valid = append(valid, field)
	}
	return valid
}

func (e *Estimator) fixedWidth(table, kind string, declared []string, live map[string]bool, width, rows int64) int64 {
	return int64(len(e.validFields(table, kind, declared, live))) * width * rows
}

// sumLength sums a byte-length expression across all rows of a table.
func (e *Estimator) sumLength(ctx context.Context, table, expr string) (int64, error) {
	var n int64
	err := e.pool.DB().QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COALESCE(SUM(%s), 0) FROM %s`, expr, util.QuoteIdent(table))).Scan(&n)
	return n, err
}

// recordError captures a per-table query failure: the table is reported
// with size 0 and the error text, and the caller moves on to the next one.
func (e *Estimator) recordError(res TableEstimate, err error) TableEstimate {
	logging.Error("error processing table %s: %v", res.Name, err)
	res.EstimatedBytes = 0
	res.Notes = fmt.Sprintf("error: %v", err)
	return res
}
