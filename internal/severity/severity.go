// Package severity maps how much of an estimate has been spent to a
// display label such as "success", "warning" or "danger".
package severity

import "github.com/shopspring/decimal"

// Band pairs a minimum spent/estimate ratio with the label it earns.
type Band struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	Label     string          `yaml:"label" json:"label"`
}

// Labels of the default table.
const (
	Danger  = "danger"
	Warning = "warning"
	Success = "success"
)

// DefaultBands is used when no table is configured.
func DefaultBands() []Band {
	return []Band{
		{Threshold: decimal.RequireFromString("1.00"), Label: Danger},
		{Threshold: decimal.RequireFromString("0.75"), Label: Warning},
		{Threshold: decimal.Zero, Label: Success},
	}
}

// Classifier labels actual/estimate ratios.
type Classifier struct {
	bands []Band
}

// NewClassifier returns a classifier over bands, which must already be in
// descending threshold order. The order is used as given. An empty table
// falls back to DefaultBands.
func NewClassifier(bands []Band) *Classifier {
	if len(bands) == 0 {
		bands = DefaultBands()
	}
	return &Classifier{bands: append([]Band(nil), bands...)}
}

// Colorize returns the label of the first band whose threshold the ratio
// actual/estimate meets. A zero estimate has no ratio and yields "", as does
// a ratio below every threshold.
func (c *Classifier) Colorize(estimate, actual decimal.Decimal) string {
	if estimate.IsZero() {
		return ""
	}
	ratio := actual.Div(estimate)
	for _, b := range c.bands {
		if ratio.GreaterThanOrEqual(b.Threshold) {
			return b.Label
		}
	}
	return ""
}
