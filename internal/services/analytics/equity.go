package analytics

import (
	"MarketLens/internal/domain/models"
	"MarketLens/internal/services/features"
	"MarketLens/pkg/util"
)

// Trading-day lookbacks for performance deltas.
const (
	lookback1W = 5
	lookback1M = 21
	lookback3M = 63
)

// EquityScorer turns fundamentals plus a daily price history into a bounded
// score with category breakdown. Scoring is pure; any rule whose input is
// missing contributes zero.
type EquityScorer struct{}

func NewEquityScorer() *EquityScorer {
	return &EquityScorer{}
}

// ComputeTechnicals derives indicator readings from a chronological price
// history. Fields stay nil when the history is too short for the indicator.
func ComputeTechnicals(history []models.PricePoint) models.Technicals {
	closes := make([]float64, len(history))
	for i, p := range history {
		closes[i] = p.Close
	}
	t := models.Technicals{Cross: models.CrossNone}
	if len(closes) > 0 {
		t.Price = closes[len(closes)-1]
	}
	if v, ok := features.RSI(closes, features.RSIPeriod); ok {
		t.RSI = &v
	}
	if v, ok := features.SMA(closes, 20); ok {
		t.MA20 = &v
	}
	if v, ok := features.SMA(closes, 50); ok {
		t.MA50 = &v
	}
	if v, ok := features.SMA(closes, 200); ok {
		t.MA200 = &v
	}
	if line, sig, hist, ok := features.MACD(closes, features.MACDFast, features.MACDSlow, features.MACDSignal); ok {
		t.MACD, t.MACDSignal, t.MACDHistogram = &line, &sig, &hist
	}
	if up, mid, lo, bw, ok := features.Bollinger(closes, features.BollingerPeriod, features.BollingerK); ok {
		t.BollingerUp, t.BollingerMid, t.BollingerLow, t.BandwidthPct = &up, &mid, &lo, &bw
	}
	if v, ok := features.ChangePct(closes, lookback1W); ok {
		t.Perf1W = &v
	}
	if v, ok := features.ChangePct(closes, lookback1M); ok {
		t.Perf1M = &v
	}
	if v, ok := features.ChangePct(closes, lookback3M); ok {
		t.Perf3M = &v
	}
	if t.MA50 != nil && t.MA200 != nil {
		switch {
		case t.Price > *t.MA50 && *t.MA50 > *t.MA200:
			t.Cross = models.CrossGolden
		case t.Price < *t.MA50 && *t.MA50 < *t.MA200:
			t.Cross = models.CrossDeath
		}
	}
	return t
}

// Score applies the rule table. The overall score is the clamped sum of the
// core rules; category sub-scores group the same rules and are clamped
// independently. Category-only rules (growth rates, analyst view, 52-week
// position) never feed the overall score.
func (s *EquityScorer) Score(data *models.EquityData) *models.EquityAssessment {
	tech := ComputeTechnicals(data.History)
	if tech.Price == 0 {
		tech.Price = data.Price
	}
	out := scoreFrom(data.Fundamentals, tech)
	out.Ticker = data.Ticker
	return out
}

func scoreFrom(f models.Fundamentals, tech models.Technicals) *models.EquityAssessment {
	var overall float64
	var cat models.CategoryScores

	add := func(target *float64, pts float64) {
		overall += pts
		*target += pts
	}

	if f.PERatio != nil {
		switch pe := *f.PERatio; {
		case pe < 15:
			add(&cat.Valuation, 10)
		case pe < 25:
			add(&cat.Valuation, 5)
		case pe > 40:
			add(&cat.Valuation, -10)
		}
	}
	if f.ROE != nil {
		switch roe := *f.ROE; {
		case roe > 0.20:
			add(&cat.FinancialHealth, 10)
		case roe >= 0.15:
			add(&cat.FinancialHealth, 5)
		case roe < 0.05:
			add(&cat.FinancialHealth, -10)
		}
	}
	if f.DebtToEquity != nil {
		switch de := *f.DebtToEquity; {
		case de < 0.5:
			add(&cat.FinancialHealth, 5)
		case de > 2.0:
			add(&cat.FinancialHealth, -10)
		}
	}
	if f.ProfitMargin != nil {
		switch m := *f.ProfitMargin; {
		case m > 0.20:
			add(&cat.Growth, 10)
		case m >= 0.10:
			add(&cat.Growth, 5)
		case m < 0:
			add(&cat.Growth, -15)
		}
	}
	if tech.RSI != nil {
		switch rsi := *tech.RSI; {
		case rsi < 30:
			add(&cat.Momentum, 20)
		case rsi < 40:
			add(&cat.Momentum, 10)
		case rsi > 70:
			add(&cat.Momentum, -20)
		case rsi > 60:
			add(&cat.Momentum, -10)
		}
	}
	if tech.MA50 != nil {
		if tech.Price > *tech.MA50 {
			add(&cat.Momentum, 15)
		} else {
			add(&cat.Momentum, -15)
		}
	}
	switch tech.Cross {
	case models.CrossGolden:
		add(&cat.Momentum, 15)
	case models.CrossDeath:
		add(&cat.Momentum, -15)
	}
	if tech.MA20 != nil && *tech.MA20 != 0 {
		diff := (tech.Price - *tech.MA20) / *tech.MA20 * 100
		if diff > 5 {
			add(&cat.Momentum, 10)
		} else if diff < -5 {
			add(&cat.Momentum, -10)
		}
	}

	// Category-only enrichments.
	cat.Growth += growthRatePoints(f.RevenueGrowth) + growthRatePoints(f.EarningsGrowth)
	if f.Recommendation != nil {
		switch rec := *f.Recommendation; {
		case rec < 2.0:
			cat.Sentiment += 15
		case rec < 2.5:
			cat.Sentiment += 10
		case rec > 4.0:
			cat.Sentiment += -15
		case rec > 3.5:
			cat.Sentiment += -10
		}
	}
	if f.Week52High != nil && f.Week52Low != nil && *f.Week52High > *f.Week52Low {
		pos := (tech.Price - *f.Week52Low) / (*f.Week52High - *f.Week52Low)
		switch {
		case pos > 0.95:
			cat.Sentiment += -10
		case pos < 0.05:
			cat.Sentiment += -5
		case pos >= 0.40 && pos <= 0.70:
			cat.Sentiment += 5
		}
	}

	cat.Valuation = util.Clamp(cat.Valuation, -100, 100)
	cat.FinancialHealth = util.Clamp(cat.FinancialHealth, -100, 100)
	cat.Growth = util.Clamp(cat.Growth, -100, 100)
	cat.Momentum = util.Clamp(cat.Momentum, -100, 100)
	cat.Sentiment = util.Clamp(cat.Sentiment, -100, 100)

	return &models.EquityAssessment{
		Score:      util.Clamp(overall, -100, 100),
		Categories: cat,
		Technicals: tech,
	}
}

func growthRatePoints(g *float64) float64 {
	if g == nil {
		return 0
	}
	switch {
	case *g > 0.15:
		return 10
	case *g > 0.05:
		return 5
	case *g < 0:
		return -10
	}
	return 0
}
