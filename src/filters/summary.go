package filters

// FilterSummary is the deleted/remaining accounting a stage reports when it
// finishes.
type FilterSummary struct {
	RowsIn        int
	RowsDeleted   int
	RowsRemaining int
}

func newFilterSummary(rowsIn, rowsRemaining int) FilterSummary {
	return FilterSummary{
		RowsIn:        rowsIn,
		RowsDeleted:   rowsIn - rowsRemaining,
		RowsRemaining: rowsRemaining,
	}
}
