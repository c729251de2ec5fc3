// Package analyzer produces the per-table storage breakdown: exact page
// statistics when the engine exposes dbstat, schema-driven estimation
// otherwise.
package analyzer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/johndauphine/dbsize/internal/config"
	"github.com/johndauphine/dbsize/internal/logging"
	"github.com/johndauphine/dbsize/internal/progress"
	"github.com/johndauphine/dbsize/internal/source"
)

// Analyzer runs a full storage analysis over one database connection.
type Analyzer struct {
	pool *source.Pool
	cfg  *config.Config
	out  io.Writer

	// ShowProgress renders a progress bar while the fallback estimator
	// walks tables. Off by default so report output stays deterministic.
	ShowProgress bool
}

// New creates an Analyzer writing its report to stdout.
func New(pool *source.Pool, cfg *config.Config) *Analyzer {
	return &Analyzer{pool: pool, cfg: cfg, out: os.Stdout}
}

// SetOutput redirects the report.
func (a *Analyzer) SetOutput(w io.Writer) {
	a.out = w
}

// Run performs the analysis. only, when non-empty, restricts the report to
// the named tables. Per-table problems degrade to warnings and notes; only
// failures that prevent producing any result are returned as errors.
func (a *Analyzer) Run(ctx context.Context, only []string) error {
	runID := uuid.New().String()[:8]
	logging.Debug("analysis run %s starting", runID)

	a.reportFileSize()

	tables, err := a.pool.ListTables(ctx)
	if err != nil {
		return fmt.Errorf("listing tables: %w", err)
	}
	tables = filterNames(tables, only)
	if len(tables) == 0 {
		fmt.Fprintln(a.out, "No user tables found.")
		return nil
	}

	if dbstatAvailable(ctx, a.pool.DB()) {
		logging.Debug("using dbstat for accurate size estimation")
		sizes, err := pageSizes(ctx, a.pool.DB())
		switch {
		case err != nil:
			logging.Warn("dbstat query failed, falling back to schema estimates: %v", err)
		case len(sizes) == 0:
			logging.Warn("dbstat returned no rows, falling back to schema estimates")
		default:
			a.renderPageSizes(filterSizes(sizes, only))
			a.renderCandidates()
			logging.Debug("analysis run %s complete", runID)
			return nil
		}
	} else {
		logging.Info("dbstat virtual table not available in this SQLite build, using schema estimates")
	}

	var tracker *progress.Tracker
	if a.ShowProgress {
		tracker = progress.New("Estimating", len(tables))
	}
	results := NewEstimator(a.pool, a.cfg).EstimateTables(ctx, tables, func() { tracker.Add(1) })
	tracker.Finish()

	a.renderEstimates(results)
	a.renderCandidates()
	logging.Debug("analysis run %s complete", runID)
	return nil
}

func (a *Analyzer) reportFileSize() {
	path := a.pool.Path()
	if path == "" || path == ":memory:" {
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		logging.Warn("could not stat %s: %v", path, err)
		return
	}
	fmt.Fprintf(a.out, "Total database file size (%s): %s\n", path, humanize.IBytes(uint64(info.Size())))
}

func filterNames(tables, only []string) []string {
	if len(only) == 0 {
		return tables
	}
	keep := make(map[string]bool, len(only))
	for _, name := range only {
		keep[name] = true
	}
	var filtered []string
	for _, name := range tables {
		if keep[name] {
			filtered = append(filtered, name)
		}
	}
	return filtered
}

func filterSizes(sizes []TableSize, only []string) []TableSize {
	if len(only) == 0 {
		return sizes
	}
	keep := make(map[string]bool, len(only))
	for _, name := range only {
		keep[name] = true
	}
	var filtered []TableSize
	for _, s := range sizes {
		if keep[s.Name] {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
