package analyzer

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

func (a *Analyzer) renderPageSizes(sizes []TableSize) {
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "--- Table Sizes (dbstat) ---")
	fmt.Fprintf(a.out, "%-30s | %s\n", "Table Name", "Size")
	fmt.Fprintln(a.out, strings.Repeat("-", 53))
	for _, s := range sizes {
		fmt.Fprintf(a.out, "%-30s | %s\n", s.Name, humanize.IBytes(uint64(s.Bytes)))
	}
}

func (a *Analyzer) renderEstimates(ests []TableEstimate) {
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "--- Estimated Table Sizes (schema fallback) ---")
	fmt.Fprintf(a.out, "%-30s | %-12s | %-12s | %s\n", "Table Name", "Est. Size", "Row Count", "Notes")
	fmt.Fprintln(a.out, strings.Repeat("-", 100))
	for _, e := range ests {
		size := "N/A"
		if e.EstimatedBytes != SizeUnknown {
			size = humanize.IBytes(uint64(e.EstimatedBytes))
		}
		fmt.Fprintf(a.out, "%-30s | %-12s | %-12s | %s\n",
			e.Name, size, humanize.Comma(e.RowCount), e.Notes)
	}
}

func (a *Analyzer) renderCandidates() {
	if len(a.cfg.Candidates) == 0 {
		return
	}
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "--- Potential High Storage Candidates ---")
	for _, c := range a.cfg.Candidates {
		fmt.Fprintf(a.out, "- %s: %s\n", c.Table, c.Reason)
	}
}
