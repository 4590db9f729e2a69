package models

import "time"

// PricePoint is one daily close used for technical indicators.
type PricePoint struct {
	Date   time.Time `json:"date"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume,omitempty"`
}

// Fundamentals holds the point-in-time fundamental readings for one ticker.
// Nil means the provider did not report the field; scoring rules whose input
// is nil contribute zero.
type Fundamentals struct {
	PERatio        *float64 `json:"pe_ratio,omitempty"`
	ROE            *float64 `json:"roe,omitempty"`
	DebtToEquity   *float64 `json:"debt_to_equity,omitempty"`
	ProfitMargin   *float64 `json:"profit_margin,omitempty"`
	RevenueGrowth  *float64 `json:"revenue_growth,omitempty"`
	EarningsGrowth *float64 `json:"earnings_growth,omitempty"`
	Recommendation *float64 `json:"recommendation,omitempty"` // analyst mean, 1 (strong buy) .. 5 (strong sell)
	Week52High     *float64 `json:"week_52_high,omitempty"`
	Week52Low      *float64 `json:"week_52_low,omitempty"`
}

// CrossSignal marks a moving-average cross state.
type CrossSignal string

const (
	CrossNone   CrossSignal = "none"
	CrossGolden CrossSignal = "golden"
	CrossDeath  CrossSignal = "death"
)

// Technicals holds indicator readings derived from the price history.
// Nil means the history was too short for the indicator.
type Technicals struct {
	Price         float64     `json:"price"`
	RSI           *float64    `json:"rsi,omitempty"`
	MA20          *float64    `json:"ma_20,omitempty"`
	MA50          *float64    `json:"ma_50,omitempty"`
	MA200         *float64    `json:"ma_200,omitempty"`
	MACD          *float64    `json:"macd,omitempty"`
	MACDSignal    *float64    `json:"macd_signal,omitempty"`
	MACDHistogram *float64    `json:"macd_histogram,omitempty"`
	BollingerUp   *float64    `json:"bollinger_up,omitempty"`
	BollingerMid  *float64    `json:"bollinger_mid,omitempty"`
	BollingerLow  *float64    `json:"bollinger_low,omitempty"`
	BandwidthPct  *float64    `json:"bandwidth_pct,omitempty"`
	Cross         CrossSignal `json:"cross"`
	Perf1W        *float64    `json:"perf_1w,omitempty"`
	Perf1M        *float64    `json:"perf_1m,omitempty"`
	Perf3M        *float64    `json:"perf_3m,omitempty"`
}

// EquityData is what the equity collector hands to the scorer.
type EquityData struct {
	Ticker       string       `json:"ticker"`
	Price        float64      `json:"price"`
	Fundamentals Fundamentals `json:"fundamentals"`
	History      []PricePoint `json:"history,omitempty"`
	CollectedAt  time.Time    `json:"collected_at"`
}

// CategoryScores are the five independently clamped sub-scores.
type CategoryScores struct {
	Valuation       float64 `json:"valuation"`
	FinancialHealth float64 `json:"financial_health"`
	Growth          float64 `json:"growth"`
	Momentum        float64 `json:"momentum"`
	Sentiment       float64 `json:"sentiment"`
}

// EquityAssessment is the scorer output for one ticker.
type EquityAssessment struct {
	Ticker     string         `json:"ticker"`
	Score      float64        `json:"score"` // [-100, 100]
	Categories CategoryScores `json:"categories"`
	Technicals Technicals     `json:"technicals"`
}
