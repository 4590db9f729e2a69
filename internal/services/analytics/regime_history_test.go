package analytics

import (
	"testing"
	"time"

	"MarketLens/internal/domain/models"
)

func series(start time.Time, values []float64) []models.SeriesPoint {
	out := make([]models.SeriesPoint, len(values))
	for i, v := range values {
		out[i] = models.SeriesPoint{Date: start.AddDate(0, 0, i), Value: v}
	}
	return out
}

func TestBuildInnerJoinsRequiredSeries(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	h := NewRegimeHistorian()
	vix := series(start, []float64{14, 14, 14, 14})
	spread := series(start, []float64{4, 4}) // only first two days
	got := h.Build(vix, spread, nil, nil)
	if len(got.Days) != 2 {
		t.Fatalf("expected 2 joined days, got %d", len(got.Days))
	}
	for _, d := range got.Days {
		if d.Regime != models.RegimeRiskOn {
			t.Fatalf("expected RISK_ON, got %s", d.Regime)
		}
	}
}

func TestBuildTransitionCountMatchesChanges(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	h := NewRegimeHistorian()
	// calm, calm, crisis, crisis, calm
	vix := series(start, []float64{14, 14, 50, 50, 14})
	spread := series(start, []float64{4, 4, 40, 40, 4})
	got := h.Build(vix, spread, nil, nil)
	if len(got.Transitions) != 2 {
		t.Fatalf("expected 2 transitions, got %d: %+v", len(got.Transitions), got.Transitions)
	}
	if got.Transitions[0].From != models.RegimeRiskOn || got.Transitions[0].To != models.RegimeCrisis {
		t.Fatalf("unexpected first transition %+v", got.Transitions[0])
	}
	if got.LastChange == nil || !got.LastChange.Equal(start.AddDate(0, 0, 4)) {
		t.Fatalf("unexpected last change %v", got.LastChange)
	}
}

func TestBuildLongestStreakWithinWindow(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	h := NewRegimeHistorian()
	vix := series(start, []float64{14, 14, 14, 50, 14, 14})
	spread := series(start, []float64{4, 4, 4, 40, 4, 4})
	got := h.Build(vix, spread, nil, nil)
	if got.LongestStreak.Regime != models.RegimeRiskOn || got.LongestStreak.Days != 3 {
		t.Fatalf("unexpected streak %+v", got.LongestStreak)
	}
	if got.LongestStreak.Days > len(got.Days) {
		t.Fatalf("streak longer than window")
	}
	if !got.LongestStreak.Start.Equal(start) {
		t.Fatalf("unexpected streak start %v", got.LongestStreak.Start)
	}
}

func TestBuildCountsAndPercentages(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	h := NewRegimeHistorian()
	vix := series(start, []float64{14, 50, 14, 50})
	spread := series(start, []float64{4, 40, 4, 40})
	got := h.Build(vix, spread, nil, nil)
	if got.Counts[models.RegimeRiskOn] != 2 || got.Counts[models.RegimeCrisis] != 2 {
		t.Fatalf("unexpected counts %+v", got.Counts)
	}
	if got.Percentages[models.RegimeRiskOn] != 50 {
		t.Fatalf("unexpected percentages %+v", got.Percentages)
	}
}

func TestBuildOptionalSeriesRefineDays(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	h := NewRegimeHistorian()
	vix := series(start, []float64{22, 22})
	spread := series(start, []float64{20, 20})
	// Day one has no reserves; day two adds very scarce reserves,
	// dragging it from RISK_OFF to CRISIS.
	reserves := []models.SeriesPoint{{Date: start.AddDate(0, 0, 1), Value: 2000}}
	got := h.Build(vix, spread, reserves, nil)
	if got.Days[0].Regime != models.RegimeRiskOff {
		t.Fatalf("expected RISK_OFF without reserves, got %s", got.Days[0].Regime)
	}
	if got.Days[1].Regime != models.RegimeCrisis {
		t.Fatalf("expected CRISIS with scarce reserves, got %s", got.Days[1].Regime)
	}
}
