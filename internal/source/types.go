package source

// Table is a user table discovered in the catalog.
type Table struct {
	Name     string
	RowCount int64
}

// Column describes one column of a live table, as reported by
// pragma_table_info.
type Column struct {
	Name      string
	DataType  string
	NotNull   bool
	PKOrdinal int // 0 when the column is not part of the primary key
}

// IsPrimaryKey returns true if the column is part of the primary key.
func (c *Column) IsPrimaryKey() bool {
	return c.PKOrdinal > 0
}
