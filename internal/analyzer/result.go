package analyzer

import "sort"

// SizeUnknown marks a table with no schema entry: its size was not
// estimated and it ranks by row count instead.
const SizeUnknown int64 = -1

// TableSize is one row of the page-statistics breakdown.
type TableSize struct {
	Name  string
	Bytes int64
}

// TableEstimate is one row of the fallback breakdown.
type TableEstimate struct {
	Name           string
	RowCount       int64
	EstimatedBytes int64 // SizeUnknown when the table has no schema entry
	Notes          string
}

// sortEstimates orders known sizes descending. Tables with unknown size
// trail every known one and rank among themselves by row count descending,
// so known and unknown estimates are never interleaved.
func sortEstimates(ests []TableEstimate) {
	sort.SliceStable(ests, func(i, j int) bool {
		a, b := ests[i], ests[j]
		aUnknown := a.EstimatedBytes == SizeUnknown
		bUnknown := b.EstimatedBytes == SizeUnknown
		if aUnknown != bUnknown {
			return bUnknown
		}
		if aUnknown {
			return a.RowCount > b.RowCount
		}
		return a.EstimatedBytes > b.EstimatedBytes
	})
}
