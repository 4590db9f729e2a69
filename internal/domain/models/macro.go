package models

import "time"

// Regime is the qualitative liquidity classification of the market.
type Regime string

const (
	RegimeRiskOn  Regime = "RISK_ON"
	RegimeRiskOff Regime = "RISK_OFF"
	RegimeCrisis  Regime = "CRISIS"
	RegimeUnknown Regime = "UNKNOWN"
)

// SeriesPoint is one (calendar day, value) observation of an indicator.
type SeriesPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// IndicatorSnapshot is the point-in-time view of one macro indicator,
// with short-horizon deltas and its full history for percentile context.
type IndicatorSnapshot struct {
	Name      string        `json:"name"`
	Current   float64       `json:"current"`
	Date      time.Time     `json:"date"`
	Change1D  *float64      `json:"change_1d,omitempty"`
	Change7D  *float64      `json:"change_7d,omitempty"`
	Change30D *float64      `json:"change_30d,omitempty"`
	ChangePct *float64      `json:"change_pct,omitempty"`
	History   []SeriesPoint `json:"history,omitempty"`
}

// MacroSnapshot is the named set of indicator snapshots one collection run produced.
type MacroSnapshot struct {
	Indicators  map[string]IndicatorSnapshot `json:"indicators"`
	CollectedAt time.Time                    `json:"collected_at"`
}

// RegimeClassification is the outcome of the regime rule for one point in time.
type RegimeClassification struct {
	Regime     Regime             `json:"regime"`
	Confidence float64            `json:"confidence"` // [0, 100]
	Factors    map[string]float64 `json:"factors"`    // per-factor contribution before normalization
	Score      float64            `json:"score"`      // normalized score in [-100, 100]
}

// Alert flags a macro reading past a critical threshold.
type Alert struct {
	Indicator string  `json:"indicator"`
	Severity  string  `json:"severity"` // warning or critical
	Message   string  `json:"message"`
	Value     float64 `json:"value"`
}

// MacroAssessment bundles everything the macro analyzer derives from a snapshot.
type MacroAssessment struct {
	Score          float64              `json:"score"` // [-100, 100]
	Classification RegimeClassification `json:"classification"`
	Alerts         []Alert              `json:"alerts,omitempty"`
	Patterns       []string             `json:"patterns,omitempty"`
	Interpretation string               `json:"interpretation"`
}

// RegimeDay is one day of the reconstructed regime timeline.
type RegimeDay struct {
	Date       time.Time `json:"date"`
	Regime     Regime    `json:"regime"`
	Confidence float64   `json:"confidence"`
}

// RegimeTransition records a day on which the regime differed from the prior day.
type RegimeTransition struct {
	Date time.Time `json:"date"`
	From Regime    `json:"from"`
	To   Regime    `json:"to"`
}

// RegimeStreak is the longest run of consecutive days in a single regime.
type RegimeStreak struct {
	Regime Regime    `json:"regime"`
	Days   int       `json:"days"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// RegimeHistory is the timeline plus its summary statistics.
type RegimeHistory struct {
	Days          []RegimeDay        `json:"days"`
	Counts        map[Regime]int     `json:"counts"`
	Percentages   map[Regime]float64 `json:"percentages"`
	LongestStreak RegimeStreak       `json:"longest_streak"`
	LastChange    *time.Time         `json:"last_change,omitempty"`
	Transitions   []RegimeTransition `json:"transitions,omitempty"`
}
