// Package fs provides file-based output of result rows.
package fs

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/fwojciec/gradscout"
)

// DefaultCSVName is the file name of the latest results.
const DefaultCSVName = "scholarships_latest.csv"

// Ensure CSVWriter implements gradscout.RowWriter at compile time.
var _ gradscout.RowWriter = (*CSVWriter)(nil)

// CSVWriter writes result rows to a CSV file with atomic replace semantics.
// Rows are written to path.tmp, then renamed over path once complete, so
// readers never observe a partial file.
type CSVWriter struct {
	path string
}

// NewCSVWriter creates a new CSVWriter for the given path.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Path returns the destination file path.
func (w *CSVWriter) Path() string {
	return w.path
}

// WriteRows writes the header followed by one record per row. The header
// is written even when rows is empty.
func (w *CSVWriter) WriteRows(ctx context.Context, rows []*gradscout.ResultRow) error {
	if w.path == "" {
		return gradscout.Errorf(gradscout.EINVALID, "csv path required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmpPath := w.path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return err
	}

	if err := writeCSV(f, rows); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, w.path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

func writeCSV(f *os.File, rows []*gradscout.ResultRow) error {
	cw := csv.NewWriter(f)
	if err := cw.Write(gradscout.CSVHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
