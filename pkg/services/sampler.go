package services

import "github.com/datapilot-ai/datapilot-engine/pkg/models"

// SampleRows reduces a table to at most n rows using fixed-stride stratified
// selection. The first and last rows are always retained and the interior is
// sampled at an even stride, so the output preserves the dataset's range and
// approximate shape. Output rows keep ascending original order.
//
// Tables already within the budget are returned unchanged (same value, no
// copy). n below 3 yields just the two anchor rows.
func SampleRows(table *models.Table, n int) *models.Table {
	total := len(table.Rows)
	if total <= n || n < 1 {
		return table
	}

	sampled := make([][]any, 0, n)
	sampled = append(sampled, table.Rows[0])

	// n-2 interior picks between the anchors; the stride over total-2
	// interior candidates is > 1 whenever total > n, so successive floor
	// indices never repeat.
	if n > 2 {
		step := float64(total-2) / float64(n-2)
		prev := 0
		for i := 0; i <= n-3; i++ {
			index := int(1 + float64(i)*step)
			if index <= prev || index >= total-1 {
				continue
			}
			sampled = append(sampled, table.Rows[index])
			prev = index
		}
	}

	sampled = append(sampled, table.Rows[total-1])
	return models.NewTable(table.Headers, sampled)
}
