package scoresheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// CSVParser parses CSV scoresheets.
type CSVParser struct {
	opts Options
}

// NewCSVParser creates a new CSV parser
func NewCSVParser(opts Options) *CSVParser {
	return &CSVParser{opts: opts}
}

// Parse parses CSV data and returns every entry on the sheet.
func (p *CSVParser) Parse(data []byte) (*Sheet, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if len(record) == 0 || (len(record) == 1 && strings.TrimSpace(record[0]) == "") {
			continue
		}
		records = append(records, record)
	}
	if len(records) == 0 {
		return nil, errors.New("CSV file is empty")
	}
	return parseRows(records, p.opts)
}
