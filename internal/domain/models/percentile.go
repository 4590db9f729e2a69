package models

// Direction says which way "good" points for an indicator.
type Direction string

const (
	LowerIsBetter  Direction = "lower_is_better"
	HigherIsBetter Direction = "higher_is_better"
	Neutral        Direction = "neutral"
)

// PercentileRank places one indicator's current reading inside its own history.
type PercentileRank struct {
	Indicator  string    `json:"indicator"`
	Current    float64   `json:"current"`
	Percentile float64   `json:"percentile"` // [0, 100]
	Band       string    `json:"band"`
	Direction  Direction `json:"direction"`
	Color      string    `json:"color"` // green, yellow, red
	SampleSize int       `json:"sample_size"`
}

// PercentileReport is the ranking across all indicators with history.
type PercentileReport struct {
	Ranks []PercentileRank `json:"ranks"`
}
