// Package optimization provides shared data structures for optimization results.
package optimization

// Summary captures the result of a single-parameter profit search.
type Summary struct {
	Field            string   `json:"field"`
	Original         float64  `json:"original"`
	Value            float64  `json:"value"`
	Min              float64  `json:"min"`
	Max              float64  `json:"max"`
	Step             float64  `json:"step"`
	OriginalProfit   float64  `json:"originalProfit"`
	ExpectedProfit   float64  `json:"expectedProfit"`
	Improvement      float64  `json:"improvement"`
	Iterations       int      `json:"iterations"`
	Notes            []string `json:"notes,omitempty"`
	OriginalDisplay  string   `json:"originalDisplay,omitempty"`
	ValueDisplay     string   `json:"valueDisplay,omitempty"`
	ImprovementLabel string   `json:"improvementLabel,omitempty"`
}
