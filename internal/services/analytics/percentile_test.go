package analytics

import (
	"testing"

	"MarketLens/internal/domain/models"
)

func TestPercentileMonotonic(t *testing.T) {
	hist := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	prev := -1.0
	for x := 0.0; x <= 11; x++ {
		p := Percentile(x, hist)
		if p < prev {
			t.Fatalf("percentile not monotonic at x=%v: %v < %v", x, p, prev)
		}
		prev = p
	}
}

func TestPercentileAtMin(t *testing.T) {
	hist := []float64{1, 2, 3, 4}
	if p := Percentile(1, hist); p != 0 {
		t.Fatalf("expected 0 at min, got %v", p)
	}
}

func TestPercentileAboveMax(t *testing.T) {
	hist := []float64{1, 2, 3, 4}
	if p := Percentile(99, hist); p != 100 {
		t.Fatalf("expected 100 above max, got %v", p)
	}
}

func TestPercentileEmptyHistory(t *testing.T) {
	if p := Percentile(42, nil); p != 50 {
		t.Fatalf("expected 50 on empty history, got %v", p)
	}
}

func TestDirectionFor(t *testing.T) {
	cases := map[string]models.Direction{
		"vix":              models.LowerIsBetter,
		"sofr_iorb_spread": models.LowerIsBetter,
		"hy_spread":        models.LowerIsBetter,
		"tga":              models.LowerIsBetter,
		"reverse_repo":     models.LowerIsBetter,
		"nfci":             models.LowerIsBetter,
		"reserves":         models.HigherIsBetter,
		"fed_balance":      models.HigherIsBetter,
		"m2":               models.HigherIsBetter,
		"net_liquidity":    models.HigherIsBetter,
		"dollar_index":     models.Neutral,
	}
	for name, want := range cases {
		if got := DirectionFor(name); got != want {
			t.Fatalf("%s: expected %s, got %s", name, want, got)
		}
	}
}

func TestBandLabels(t *testing.T) {
	cases := []struct {
		pct  float64
		want string
	}{
		{99, "extremely high"},
		{90, "very high"},
		{75, "high"},
		{60, "above median"},
		{50, "near median"},
		{35, "below median"},
		{20, "low"},
		{5, "extremely low"},
	}
	for _, c := range cases {
		if got := Band(c.pct); got != c.want {
			t.Fatalf("pct %v: expected %q, got %q", c.pct, c.want, got)
		}
	}
}

func TestColorDirectionAware(t *testing.T) {
	if got := Color(90, models.LowerIsBetter); got != "red" {
		t.Fatalf("expected red, got %s", got)
	}
	if got := Color(90, models.HigherIsBetter); got != "green" {
		t.Fatalf("expected green, got %s", got)
	}
	if got := Color(10, models.LowerIsBetter); got != "green" {
		t.Fatalf("expected green, got %s", got)
	}
	if got := Color(50, models.Neutral); got != "yellow" {
		t.Fatalf("expected yellow, got %s", got)
	}
}

func TestReportSkipsHistorylessIndicators(t *testing.T) {
	a := NewPercentileAnalyzer()
	snap := snapshotWith(map[string]float64{IndVIX: 20})
	ind := models.IndicatorSnapshot{
		Name:    IndReserves,
		Current: 3000,
		History: []models.SeriesPoint{{Value: 2800}, {Value: 2900}, {Value: 3100}},
	}
	snap.Indicators[IndReserves] = ind
	got := a.Report(snap)
	if len(got.Ranks) != 1 {
		t.Fatalf("expected 1 rank, got %d", len(got.Ranks))
	}
	r := got.Ranks[0]
	if r.Indicator != IndReserves || r.SampleSize != 3 {
		t.Fatalf("unexpected rank %+v", r)
	}
	if r.Percentile < 0 || r.Percentile > 100 {
		t.Fatalf("percentile out of range: %v", r.Percentile)
	}
}
