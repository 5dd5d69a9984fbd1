package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
)

// #region errors
// ErrMissingInput marks an absent input file. Fatal before any
// processing; match with errors.Is.
var ErrMissingInput = errors.New("input file not found")
// #endregion errors

// #region load
// Load reads a CSV file into ordered records. The header row defines
// the column set; all values stay text, absent cells become "". A file
// with a header and zero data rows yields an empty slice, not an
// error.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // header defines the schema; tolerate ragged rows

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := NewRecord(header)
		for i, col := range header {
			if i < len(row) {
				rec.Fields[col] = row[i]
			} else {
				rec.Fields[col] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
// #endregion load

// #region write
// Write serializes records to a CSV file. The header is the first
// record's column order; records missing a column write "". Record
// order is preserved and no column is dropped.
func Write(path string, records []Record) error {
	if len(records) == 0 {
		return fmt.Errorf("write %s: no records", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := records[0].Columns
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(header))
	for _, rec := range records {
		for i, col := range header {
			row[i] = rec.Fields[col]
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}
// #endregion write
