package excel

import (
	"path/filepath"
	"strings"
)

// File types understood by the reader and writer
const (
	FileTypeCSV  = "csv"
	FileTypeXLSX = "xlsx"
)

// DefaultSheetName is used when writing workbooks
const DefaultSheetName = "filtered_user_data"

// SourceConfig holds configuration for a tabular data source
type SourceConfig struct {
	FilePath string `json:"file_path"`
	// Sheet to read from a workbook; empty means the first sheet.
	Sheet string `json:"sheet"`
}

// DefaultSourceConfig returns a config reading the first sheet of path
func DefaultSourceConfig(path string) SourceConfig {
	return SourceConfig{FilePath: path}
}

// FileTypeOf picks csv or xlsx from the file extension; anything that is not
// .xlsx is read as CSV.
func FileTypeOf(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return FileTypeXLSX
	}
	return FileTypeCSV
}
