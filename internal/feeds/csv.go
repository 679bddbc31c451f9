// Package feeds supplies the pipeline with raw rows from merchant feed
// sources, local files or remote URLs, decoding their tabular format. A
// broken source degrades to zero rows; one source never aborts a build.
package feeds

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/ibulavka0612/price-compare/internal/catalog"
)

// DecodeCSV reads a comma-separated feed into raw rows, mapping each data row
// onto the header row's column names. Short rows read as empty fields and a
// malformed row is skipped, not fatal. Some wholesale exports still arrive in
// Windows-1251; pass encoding "windows-1251" for those.
func DecodeCSV(r io.Reader, encoding string) ([]catalog.RawRow, error) {
	if strings.EqualFold(encoding, "windows-1251") {
		r = transform.NewReader(r, charmap.Windows1251.NewDecoder())
	}

	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read feed header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []catalog.RawRow
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			continue
		}
		if err != nil {
			return rows, fmt.Errorf("read feed row: %w", err)
		}
		row := make(catalog.RawRow, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(fields) {
				row[col] = fields[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
