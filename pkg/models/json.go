package models

import (
	"encoding/json"

	"github.com/datapilot-ai/datapilot-engine/pkg/jsonutil"
)

// UnmarshalJSON decodes a chart data point permissively: names may arrive as
// numbers and values as quoted strings, both of which LLMs produce regularly.
// A value with no numeric interpretation decodes as zero.
func (p *VisualizationPoint) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name  json.RawMessage `json:"name"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.Name = jsonutil.FlexibleStringValue(raw.Name)
	p.Value, _ = jsonutil.FlexibleFloatValue(raw.Value)
	return nil
}
