package core

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Summary is the report document for one validation outcome.
type Summary struct {
	ReturnCode ReturnCode `json:"return_code"`
	Payload    any        `json:"payload"`
	Extras     Extras     `json:"extras"`
}

// Extras carries the statistics of a successful file. It is empty for
// failures.
type Extras struct {
	Rows          int       `json:"rows,omitempty"`
	FauxnessRange *[2]Float `json:"fauxness_range,omitempty"`
}

// GenerateSummary builds the summary for an outcome. The outcome is trusted
// as produced by Validate and not checked again.
func GenerateSummary(o Outcome) Summary {
	if !o.OK() {
		return Summary{
			ReturnCode: o.Code,
			Payload:    o.Payload(),
		}
	}

	rows := o.Rows()
	fauxness := make([]float64, len(rows))
	for i, row := range rows {
		fauxness[i] = row.Fauxness
	}
	slices.Sort(fauxness)

	var fauxRange *[2]Float
	if len(fauxness) > 0 {
		fauxRange = &[2]Float{Float(fauxness[0]), Float(fauxness[len(fauxness)-1])}
	}

	return Summary{
		ReturnCode: Success,
		Payload:    "",
		Extras: Extras{
			Rows:          len(rows),
			FauxnessRange: fauxRange,
		},
	}
}

// FauxnessRange returns the (min, max) fauxness pair and whether the
// summary has one.
func (s Summary) FauxnessRange() (float64, float64, bool) {
	if s.Extras.FauxnessRange == nil {
		return 0, 0, false
	}
	return float64(s.Extras.FauxnessRange[0]), float64(s.Extras.FauxnessRange[1]), true
}

// JSON serializes the summary as a single JSON object.
func (s Summary) JSON() (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode summary: %w", err)
	}
	return string(b), nil
}
