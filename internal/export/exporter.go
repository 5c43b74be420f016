// Package export writes the current record set to CSV or pretty-printed
// JSON, restricted to the selected columns.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rebeliceyang/datadeck/internal/models"
)

// ErrNoColumns rejects an export with nothing selected.
var ErrNoColumns = errors.New("select at least one column to export")

// WriteCSV writes records as CSV: a header row of column labels, then one
// row per record. encoding/csv quotes cells containing commas or quotes.
func WriteCSV(w io.Writer, cols []models.Column, records []models.Record) error {
	if len(cols) == 0 {
		return ErrNoColumns
	}

	writer := csv.NewWriter(w)
	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = col.Label
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	row := make([]string, len(cols))
	for _, rec := range records {
		for i, col := range cols {
			row[i] = rec.DisplayString(col.Key)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteJSON writes records as a pretty-printed JSON array with each object
// restricted to the selected column keys.
func WriteJSON(w io.Writer, cols []models.Column, records []models.Record) error {
	if len(cols) == 0 {
		return ErrNoColumns
	}

	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		obj := make(map[string]any, len(cols))
		for _, col := range cols {
			if v, ok := rec.Field(col.Key); ok {
				obj[col.Key] = v
			}
		}
		out = append(out, obj)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

// ToCSVFile exports to a file at path.
func ToCSVFile(path string, cols []models.Column, records []models.Record) error {
	return toFile(path, func(f io.Writer) error {
		return WriteCSV(f, cols, records)
	})
}

// ToJSONFile exports to a file at path.
func ToJSONFile(path string, cols []models.Column, records []models.Record) error {
	return toFile(path, func(f io.Writer) error {
		return WriteJSON(f, cols, records)
	})
}

func toFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return write(file)
}
