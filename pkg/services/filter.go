package services

import "github.com/datapilot-ai/datapilot-engine/pkg/models"

// FilterColumns projects a table onto the given column names, in the order
// given. Requested names that do not exist in the table are silently
// omitted. When the requested set equals the full header set (ignoring
// order), the input table is returned unchanged.
//
// The only error is a row-width contract violation in the input table.
func FilterColumns(table *models.Table, columns []string) (*models.Table, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	if sameHeaderSet(table.Headers, columns) {
		return table, nil
	}

	headerIndex := make(map[string]int, len(table.Headers))
	for i, header := range table.Headers {
		if _, seen := headerIndex[header]; !seen {
			headerIndex[header] = i
		}
	}

	indices := make([]int, 0, len(columns))
	headers := make([]string, 0, len(columns))
	for _, col := range columns {
		if i, ok := headerIndex[col]; ok {
			indices = append(indices, i)
			headers = append(headers, col)
		}
	}

	rows := make([][]any, len(table.Rows))
	for r, row := range table.Rows {
		projected := make([]any, len(indices))
		for c, i := range indices {
			projected[c] = row[i]
		}
		rows[r] = projected
	}

	return models.NewTable(headers, rows), nil
}

// sameHeaderSet reports whether requested covers exactly the header set,
// ignoring order and duplicates.
func sameHeaderSet(headers, requested []string) bool {
	headerSet := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		headerSet[h] = struct{}{}
	}

	requestedSet := make(map[string]struct{}, len(requested))
	for _, r := range requested {
		if _, ok := headerSet[r]; !ok {
			return false
		}
		requestedSet[r] = struct{}{}
	}
	return len(requestedSet) == len(headerSet)
}
