package models

// ScoreResult is the transparency score returned to the caller.
type ScoreResult struct {
	Score     int    `json:"score"`
	Reasoning string `json:"reasoning"`
}

// DimensionScore is the number of points one scoring dimension contributed.
type DimensionScore struct {
	Dimension string `json:"dimension"`
	Points    int    `json:"points"`
	Max       int    `json:"max"`
}

// ScoreBreakdown lists every dimension in evaluation order.
type ScoreBreakdown []DimensionScore

// Total sums the awarded points before the final cap.
func (b ScoreBreakdown) Total() int {
	total := 0
	for _, d := range b {
		total += d.Points
	}
	return total
}
