// Package tabular converts uploaded file bytes to and from the Table value
// used by the analysis pipeline. The pipeline itself never parses file bytes;
// this package is the adapter between uploads and the core.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/datapilot-ai/datapilot-engine/pkg/models"
)

// ParseFile converts an uploaded file into a Table, dispatching on the file
// extension. Supported formats: .csv, .xlsx, .xls.
func ParseFile(filename string, r io.Reader) (*models.Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ParseCSV(r)
	case ".xlsx", ".xls":
		return ParseExcel(r)
	default:
		return nil, fmt.Errorf("unsupported file format %q: please upload a CSV or Excel file", filepath.Ext(filename))
	}
}

// ParseCSV reads RFC-4180 delimited text into a Table. The first record is
// the header row; every data row must have the same width.
func ParseCSV(r io.Reader) (*models.Table, error) {
	reader := csv.NewReader(r)

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header row: %w", err)
	}

	var rows [][]any
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, decodeCells(record))
	}

	return models.NewTable(headers, rows), nil
}

// ParseExcel reads the first sheet of an Excel workbook into a Table. Short
// rows (trailing empty cells dropped by the reader) are padded to header
// width so the row-width invariant holds.
func ParseExcel(r io.Reader) (*models.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	headers := records[0]
	rows := make([][]any, 0, len(records)-1)
	for _, record := range records[1:] {
		for len(record) < len(headers) {
			record = append(record, "")
		}
		rows = append(rows, decodeCells(record[:len(headers)]))
	}

	return models.NewTable(headers, rows), nil
}

// decodeCells converts raw text cells to scalar values: empty text becomes
// nil, numeric text a float64, boolean text a bool, anything else stays a
// string.
func decodeCells(record []string) []any {
	cells := make([]any, len(record))
	for i, raw := range record {
		cells[i] = decodeCell(raw)
	}
	return cells
}

func decodeCell(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(trimmed); err == nil {
		return b
	}
	return raw
}
