// Package progress renders a console progress bar while the fallback
// estimator walks tables.
package progress

import (
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Tracker tracks per-table estimation progress. A nil Tracker is a no-op,
// so callers that run quietly can skip the bar without branching.
type Tracker struct {
	bar *progressbar.ProgressBar
}

// New creates a tracker for the given number of tables. The bar writes to
// stderr so piped report output stays clean.
func New(description string, total int) *Tracker {
	return &Tracker{
		bar: progressbar.NewOptions(
			total,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription(description),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("tables"),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionClearOnFinish(),
		),
	}
}

// Add increments the progress counter.
func (t *Tracker) Add(n int) {
	if t == nil || t.bar == nil {
		return
	}
	t.bar.Add(n)
}

// Finish completes and clears the bar.
func (t *Tracker) Finish() {
	if t == nil || t.bar == nil {
		return
	}
	t.bar.Finish()
}
