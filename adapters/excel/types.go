package excel

// RawRowData represents a row of raw cell text keyed by header
type RawRowData map[string]string

// RawTable is a header row plus string rows, before any typing
type RawTable struct {
	Headers []string     // Column headers
	Rows    []RawRowData // Data rows
}

// HasColumn reports whether the header contains name
func (t *RawTable) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}
