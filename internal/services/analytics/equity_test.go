package analytics

import (
	"math"
	"testing"
	"time"

	"MarketLens/internal/domain/models"
)

func trendHistory(n int, start, step float64) []models.PricePoint {
	out := make([]models.PricePoint, n)
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range out {
		out[i] = models.PricePoint{Date: day.AddDate(0, 0, i), Close: start + step*float64(i)}
	}
	return out
}

func TestScoreAllBullishInputs(t *testing.T) {
	s := NewEquityScorer()
	got := s.Score(&models.EquityData{
		Ticker: "AAPL",
		Fundamentals: models.Fundamentals{
			PERatio:      fp(12),
			ROE:          fp(0.25),
			DebtToEquity: fp(0.3),
			ProfitMargin: fp(0.25),
		},
		History: trendHistory(250, 100, 0), // flat, overridden below
	})
	// Flat history: RSI=50 (0), price==MA50 (else branch, -15), no cross, ma20 diff 0.
	// Fundamentals: 10+10+5+10 = 35. Overall 35-15 = 20.
	if got.Score != 20 {
		t.Fatalf("expected 20, got %v", got.Score)
	}
	if got.Categories.Valuation != 10 || got.Categories.FinancialHealth != 15 || got.Categories.Growth != 10 {
		t.Fatalf("unexpected categories: %+v", got.Categories)
	}
}

func TestScoreRuleTableExample(t *testing.T) {
	// pe=12(+10) roe=0.25(+10) de=0.3(+5) margin=0.25(+10)
	// rsi=25(+20) above MA50(+15) golden cross(+15) +6%% vs MA20(+10) = 95
	tech := models.Technicals{
		Price: 106,
		RSI:   fp(25),
		MA20:  fp(100),
		MA50:  fp(100),
		MA200: fp(90),
		Cross: models.CrossGolden,
	}
	f := models.Fundamentals{
		PERatio:      fp(12),
		ROE:          fp(0.25),
		DebtToEquity: fp(0.3),
		ProfitMargin: fp(0.25),
	}
	got := scoreFrom(f, tech)
	if got.Score != 95 {
		t.Fatalf("expected 95, got %v", got.Score)
	}
}

func TestScoreClampsAtMinus100(t *testing.T) {
	// pe=50(-10) roe=0.01(-10) de=3(-10) margin=-0.05(-15)
	// rsi=80(-20) below MA50(-15) death cross(-15) -8%% vs MA20(-10) = -105 -> -100
	tech := models.Technicals{
		Price: 92,
		RSI:   fp(80),
		MA20:  fp(100),
		MA50:  fp(100),
		MA200: fp(110),
		Cross: models.CrossDeath,
	}
	f := models.Fundamentals{
		PERatio:      fp(50),
		ROE:          fp(0.01),
		DebtToEquity: fp(3),
		ProfitMargin: fp(-0.05),
	}
	got := scoreFrom(f, tech)
	if got.Score != -100 {
		t.Fatalf("expected clamp at -100, got %v", got.Score)
	}
}

func TestScoreMissingInputsContributeZero(t *testing.T) {
	s := NewEquityScorer()
	got := s.Score(&models.EquityData{Ticker: "X", Price: 100})
	if got.Score != 0 {
		t.Fatalf("expected 0 with no inputs, got %v", got.Score)
	}
}

func TestCategoryOnlyRulesDoNotFeedOverall(t *testing.T) {
	s := NewEquityScorer()
	got := s.Score(&models.EquityData{
		Ticker: "X",
		Price:  100,
		Fundamentals: models.Fundamentals{
			RevenueGrowth:  fp(0.30),
			EarningsGrowth: fp(0.30),
			Recommendation: fp(1.5),
		},
	})
	if got.Score != 0 {
		t.Fatalf("expected overall 0, got %v", got.Score)
	}
	if got.Categories.Growth != 20 {
		t.Fatalf("expected growth category 20, got %v", got.Categories.Growth)
	}
	if got.Categories.Sentiment != 15 {
		t.Fatalf("expected sentiment category 15, got %v", got.Categories.Sentiment)
	}
}

func TestComputeTechnicalsGoldenCross(t *testing.T) {
	hist := trendHistory(250, 50, 0.5)
	tech := ComputeTechnicals(hist)
	if tech.MA50 == nil || tech.MA200 == nil {
		t.Fatalf("expected moving averages on long history")
	}
	if tech.Cross != models.CrossGolden {
		t.Fatalf("expected golden cross in steady uptrend, got %s", tech.Cross)
	}
	if tech.RSI == nil || *tech.RSI != 100 {
		t.Fatalf("expected saturated RSI in monotone uptrend, got %v", tech.RSI)
	}
	if tech.Perf1M == nil || *tech.Perf1M <= 0 {
		t.Fatalf("expected positive 1m performance")
	}
}

func TestComputeTechnicalsShortHistory(t *testing.T) {
	tech := ComputeTechnicals(trendHistory(10, 100, 1))
	if tech.RSI != nil || tech.MA20 != nil || tech.MACD != nil {
		t.Fatalf("expected indicators unavailable on short history")
	}
	if math.Abs(tech.Price-109) > 1e-9 {
		t.Fatalf("unexpected price %v", tech.Price)
	}
}
