package excel

import (
	"fmt"
	"io"
	"strconv"

	"nextgen/domain/core"
	"nextgen/domain/engagement"
	"nextgen/internal"
	apperrors "nextgen/internal/errors"
)

// Load reads a CSV or XLSX file into a Dataset. The excluded domain is
// removed; any missing column or unparsable cell fails the whole load.
func Load(config SourceConfig, logger *internal.Logger) (*engagement.Dataset, error) {
	table, err := NewDataReader(config, logger).ReadData()
	if err != nil {
		return nil, err
	}
	return buildDataset(table, logger)
}

// LoadReader is Load for an already opened stream of the given file type.
func LoadReader(src io.Reader, fileType string, logger *internal.Logger) (*engagement.Dataset, error) {
	r := NewDataReader(SourceConfig{}, logger)
	r.fileType = fileType
	table, err := r.ReadFrom(src)
	if err != nil {
		return nil, err
	}
	return buildDataset(table, logger)
}

func buildDataset(table *RawTable, logger *internal.Logger) (*engagement.Dataset, error) {
	records, err := ToRecords(table)
	if err != nil {
		return nil, err
	}
	ds := engagement.NewDataset(records)
	logger.Info("Loaded %d records (%d excluded as %q)", ds.Len(), len(records)-ds.Len(), engagement.ExcludedDomain)
	return ds, nil
}

// ToRecords types every row of a raw table. Row numbers in errors count the
// header as row 1.
func ToRecords(table *RawTable) ([]engagement.Record, error) {
	for _, col := range engagement.Columns {
		if !table.HasColumn(col) {
			return nil, apperrors.LoadError("invalid dataset header", core.NewMissingColumnError(col))
		}
	}

	records := make([]engagement.Record, 0, len(table.Rows))
	for i, row := range table.Rows {
		rec, err := parseRecord(row, i+2)
		if err != nil {
			return nil, apperrors.LoadError("invalid dataset row", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(row RawRowData, line int) (engagement.Record, error) {
	var rec engagement.Record
	var err error

	ints := []struct {
		column string
		dest   *int
	}{
		{engagement.ColumnUserID, &rec.UserID},
		{engagement.ColumnEngagementScore, &rec.EngagementScore},
		{engagement.ColumnSessionDuration, &rec.SessionDuration},
		{engagement.ColumnClicks, &rec.Clicks},
		{engagement.ColumnCompletedLessons, &rec.CompletedLessons},
	}
	for _, f := range ints {
		if *f.dest, err = strconv.Atoi(row[f.column]); err != nil {
			return rec, core.NewMalformedValueError(line, f.column, row[f.column], err)
		}
	}

	if rec.Date, err = core.ParseDate(row[engagement.ColumnDate]); err != nil {
		return rec, core.NewMalformedValueError(line, engagement.ColumnDate, row[engagement.ColumnDate], err)
	}

	rec.Domain = row[engagement.ColumnDomain]
	rec.UserType = row[engagement.ColumnUserType]
	if rec.Domain == "" {
		return rec, core.NewMalformedValueError(line, engagement.ColumnDomain, "", fmt.Errorf("empty"))
	}
	if rec.UserType == "" {
		return rec, core.NewMalformedValueError(line, engagement.ColumnUserType, "", fmt.Errorf("empty"))
	}
	return rec, nil
}
