package models

import "time"

// Source identifies one of the three signal origins.
type Source string

const (
	SourceMacro     Source = "macro"
	SourceEquity    Source = "equity"
	SourceSentiment Source = "sentiment"
)

// SourceStatus is the explicit outcome of a collection attempt.
type SourceStatus string

const (
	StatusOK          SourceStatus = "ok"
	StatusUnavailable SourceStatus = "unavailable"
	StatusMalformed   SourceStatus = "malformed"
)

// Score is one bounded source score.
type Score struct {
	Source    Source
	Value     float64 // clamped to [-100, 100]
	Timestamp time.Time
}

// SourceResult is the tagged outcome of one collector run. Value is only
// meaningful when Status is StatusOK.
type SourceResult struct {
	Source Source
	Status SourceStatus
	Score  float64
	Detail string
}

// OK reports whether the collector produced a usable score.
func (r SourceResult) OK() bool { return r.Status == StatusOK }

// Recommendation buckets a combined score.
type Recommendation string

const (
	RecStrongBuy  Recommendation = "STRONG_BUY"
	RecBuy        Recommendation = "BUY"
	RecHold       Recommendation = "HOLD"
	RecSell       Recommendation = "SELL"
	RecStrongSell Recommendation = "STRONG_SELL"
)

// RecommendationFor maps a combined score to its action bucket.
func RecommendationFor(score float64) Recommendation {
	switch {
	case score >= 70:
		return RecStrongBuy
	case score >= 30:
		return RecBuy
	case score >= -30:
		return RecHold
	case score >= -70:
		return RecSell
	default:
		return RecStrongSell
	}
}

// Weights are the per-source multipliers of the combined score.
type Weights struct {
	Macro     float64 `json:"macro"`
	Equity    float64 `json:"equity"`
	Sentiment float64 `json:"sentiment"`
}

// CombinedAnalysis is the final product of one analysis run for a ticker.
// A missing source contributes zero; its weight is not redistributed.
type CombinedAnalysis struct {
	Ticker         string            `json:"ticker"`
	MacroScore     *float64          `json:"macro_score,omitempty"`
	EquityScore    *float64          `json:"equity_score,omitempty"`
	SentimentScore *float64          `json:"sentiment_score,omitempty"`
	Weights        Weights           `json:"weights"`
	CombinedScore  float64           `json:"combined_score"`
	Regime         Regime            `json:"regime"`
	Recommendation Recommendation    `json:"recommendation"`
	MissingSources []Source          `json:"missing_sources,omitempty"`
	Equity         *EquityAssessment `json:"equity,omitempty"`
	Macro          *MacroAssessment  `json:"macro,omitempty"`
	Sentiment      *SentimentResult  `json:"sentiment,omitempty"`
	Timestamp      time.Time         `json:"timestamp"`
}
