package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"nextgen/domain/core"
	"nextgen/internal"
	apperrors "nextgen/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV sources
type DataReader struct {
	config   SourceConfig
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(config SourceConfig, logger *internal.Logger) *DataReader {
	return &DataReader{
		config:   config,
		fileType: FileTypeOf(config.FilePath),
		logger:   logger.WithComponent("DataReader"),
	}
}

// ReadData reads the configured file into a raw table
func (r *DataReader) ReadData() (*RawTable, error) {
	r.logger.Debug("Starting to read %s file: %s", r.fileType, r.config.FilePath)

	if _, err := os.Stat(r.config.FilePath); err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.LoadError(
				fmt.Sprintf("%s file not found: %s", strings.ToUpper(r.fileType), r.config.FilePath),
				core.ErrSourceMissing,
			)
		}
		return nil, apperrors.LoadError("failed to stat source", fmt.Errorf("%w: %v", core.ErrLoad, err))
	}

	f, err := os.Open(r.config.FilePath)
	if err != nil {
		return nil, apperrors.LoadError("failed to open source", fmt.Errorf("%w: %v", core.ErrLoad, err))
	}
	defer f.Close()

	return r.ReadFrom(f)
}

// ReadFrom reads a CSV or XLSX stream of the reader's file type
func (r *DataReader) ReadFrom(src io.Reader) (*RawTable, error) {
	switch r.fileType {
	case FileTypeCSV:
		return r.readCSVData(src)
	case FileTypeXLSX:
		return r.readExcelData(src)
	default:
		return nil, apperrors.LoadError("unsupported file type: "+r.fileType, core.ErrUnsupported)
	}
}

// readExcelData reads the configured sheet, or the first one, of a workbook
func (r *DataReader) readExcelData(src io.Reader) (*RawTable, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, apperrors.LoadError("failed to open Excel workbook", fmt.Errorf("%w: %v", core.ErrMalformedValue, err))
	}
	defer f.Close()

	sheet := r.config.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, apperrors.LoadError("Excel workbook has no sheets", core.ErrMalformedValue)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.LoadError("failed to read sheet "+sheet, fmt.Errorf("%w: %v", core.ErrMalformedValue, err))
	}
	r.logger.Debug("Sheet %s read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

// readCSVData reads CSV data into a raw table
func (r *DataReader) readCSVData(src io.Reader) (*RawTable, error) {
	reader := csv.NewReader(src)
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.LoadError("failed to read CSV", fmt.Errorf("%w: %v", core.ErrMalformedValue, err))
	}
	r.logger.Debug("CSV read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

// processRows converts raw string rows into a RawTable. A header-only source
// is valid and yields no rows.
func (r *DataReader) processRows(rows [][]string) (*RawTable, error) {
	if len(rows) == 0 {
		return nil, apperrors.LoadError("source has no header row", core.ErrMalformedValue)
	}

	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
	}

	dataRows := make([]RawRowData, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		rowData := make(RawRowData, len(headers))
		for j, header := range headers {
			if j < len(row) {
				rowData[header] = strings.TrimSpace(row[j])
			} else {
				rowData[header] = ""
			}
		}
		dataRows = append(dataRows, rowData)
	}

	r.logger.Debug("%s source processed (%d columns, %d rows)", strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &RawTable{
		Headers: headers,
		Rows:    dataRows,
	}, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
