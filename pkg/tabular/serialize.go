package tabular

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/datapilot-ai/datapilot-engine/pkg/models"
)

// ToCSV serializes a Table to RFC-4180 delimited text: one header line, then
// one line per row. Quoting of embedded delimiters and newlines follows
// encoding/csv.
func ToCSV(table *models.Table) (string, error) {
	if table == nil || len(table.Headers) == 0 {
		return "", fmt.Errorf("table has no headers")
	}

	var buf strings.Builder
	writer := csv.NewWriter(&buf)

	if err := writer.Write(table.Headers); err != nil {
		return "", fmt.Errorf("write header row: %w", err)
	}

	record := make([]string, len(table.Headers))
	for i, row := range table.Rows {
		if len(row) != len(table.Headers) {
			return "", fmt.Errorf("row %d has %d cells, expected %d", i, len(row), len(table.Headers))
		}
		for j, cell := range row {
			record[j] = encodeCell(cell)
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("write row %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}

	return buf.String(), nil
}

// encodeCell renders a scalar cell as text. nil becomes the empty field;
// floats drop their trailing zeros so integers round-trip cleanly.
func encodeCell(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
