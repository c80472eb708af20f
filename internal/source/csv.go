package source

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ErrEmptyCSV is returned when the input has no header row.
var ErrEmptyCSV = errors.New("csv input is empty")

// Table is a decoded CSV table. Header preserves the column order of
// the input; each row maps column name to its raw string value.
type Table struct {
	Header []string
	Rows   []map[string]string
}

// DecodeCSV parses CSV data where the first row names the columns.
// Ragged rows are rejected by the underlying reader.
func DecodeCSV(data []byte) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(data))

	header, err := r.Read()
	if err == io.EOF {
		return nil, ErrEmptyCSV
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	table := &Table{Header: header}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		row := make(map[string]string, len(header))
		for i, col := range header {
			row[col] = rec[i]
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
