package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"nextgen/domain/core"
	"nextgen/domain/engagement"

	"github.com/xuri/excelize/v2"
)

// FilteredExportName is the download name for an exported view
const FilteredExportName = "filtered_user_data"

func recordCells(r engagement.Record) []string {
	return []string{
		strconv.Itoa(r.UserID),
		r.Domain,
		strconv.Itoa(r.EngagementScore),
		core.FormatDate(r.Date),
		r.UserType,
		strconv.Itoa(r.SessionDuration),
		strconv.Itoa(r.Clicks),
		strconv.Itoa(r.CompletedLessons),
	}
}

// WriteCSV writes records with the dataset header in column order
func WriteCSV(w io.Writer, records []engagement.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(engagement.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(recordCells(r)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes records into a single-sheet workbook with numeric cells
func WriteXLSX(w io.Writer, records []engagement.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", DefaultSheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(engagement.Columns))
	for i, c := range engagement.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(DefaultSheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			r.UserID, r.Domain, r.EngagementScore, core.FormatDate(r.Date),
			r.UserType, r.SessionDuration, r.Clicks, r.CompletedLessons,
		}
		if err := f.SetSheetRow(DefaultSheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Save writes records to path, as XLSX or CSV by extension
func Save(path string, records []engagement.Record) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if FileTypeOf(path) == FileTypeXLSX {
		err = WriteXLSX(out, records)
	} else {
		err = WriteCSV(out, records)
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
