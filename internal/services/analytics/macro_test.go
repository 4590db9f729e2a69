package analytics

import (
	"testing"
	"time"

	"MarketLens/internal/domain/models"
)

func fp(v float64) *float64 { return &v }

func TestClassifyRiskOn(t *testing.T) {
	cls := Classify(fp(14), fp(4), fp(3600), nil)
	if cls.Regime != models.RegimeRiskOn {
		t.Fatalf("expected RISK_ON, got %s (score %v)", cls.Regime, cls.Score)
	}
	if cls.Confidence < 0 || cls.Confidence > 100 {
		t.Fatalf("confidence out of range: %v", cls.Confidence)
	}
}

func TestClassifyBoundaryValuesFallToNextBand(t *testing.T) {
	// 15/5/3500 sit exactly on the band edges and land one band lower.
	cls := Classify(fp(15), fp(5), fp(3500), nil)
	if cls.Regime != models.RegimeRiskOff {
		t.Fatalf("expected RISK_OFF at band edges, got %s (score %v)", cls.Regime, cls.Score)
	}
}

func TestClassifyCrisis(t *testing.T) {
	cls := Classify(fp(45), fp(30), fp(2400), nil)
	if cls.Regime != models.RegimeCrisis {
		t.Fatalf("expected CRISIS, got %s (score %v)", cls.Regime, cls.Score)
	}
}

func TestClassifyUnknownWithoutRequiredFactors(t *testing.T) {
	if cls := Classify(nil, fp(5), fp(3500), fp(-1)); cls.Regime != models.RegimeUnknown {
		t.Fatalf("expected UNKNOWN without vix, got %s", cls.Regime)
	}
	if cls := Classify(fp(15), nil, fp(3500), fp(-1)); cls.Regime != models.RegimeUnknown {
		t.Fatalf("expected UNKNOWN without spread, got %s", cls.Regime)
	}
	if cls := Classify(nil, nil, nil, nil); cls.Confidence != 0 {
		t.Fatalf("expected zero confidence, got %v", cls.Confidence)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	a := Classify(fp(22), fp(12), fp(2900), fp(0.2))
	b := Classify(fp(22), fp(12), fp(2900), fp(0.2))
	if a.Regime != b.Regime || a.Score != b.Score || a.Confidence != b.Confidence {
		t.Fatalf("classification not deterministic: %+v vs %+v", a, b)
	}
}

func TestClassifyScoreBounds(t *testing.T) {
	cls := Classify(fp(50), fp(40), fp(2000), fp(2))
	if cls.Score < -100 || cls.Score > 100 {
		t.Fatalf("score out of range: %v", cls.Score)
	}
}

func snapshotWith(values map[string]float64) *models.MacroSnapshot {
	inds := map[string]models.IndicatorSnapshot{}
	for name, v := range values {
		inds[name] = models.IndicatorSnapshot{Name: name, Current: v, Date: time.Now()}
	}
	return &models.MacroSnapshot{Indicators: inds, CollectedAt: time.Now()}
}

func TestAssessAlerts(t *testing.T) {
	a := NewMacroAnalyzer()
	got := a.Assess(snapshotWith(map[string]float64{
		IndVIX:            45,
		IndSOFRIORBSpread: 25,
		IndYieldCurve:     -0.4,
		IndReserves:       2400,
	}))
	if len(got.Alerts) != 4 {
		t.Fatalf("expected 4 alerts, got %d: %+v", len(got.Alerts), got.Alerts)
	}
	for _, al := range got.Alerts {
		if al.Severity != "critical" {
			t.Fatalf("expected critical severity, got %s", al.Severity)
		}
	}
}

func TestAssessNoAlertsWhenCalm(t *testing.T) {
	a := NewMacroAnalyzer()
	got := a.Assess(snapshotWith(map[string]float64{
		IndVIX:            14,
		IndSOFRIORBSpread: 3,
		IndYieldCurve:     0.8,
		IndReserves:       3600,
	}))
	if len(got.Alerts) != 0 {
		t.Fatalf("expected no alerts, got %+v", got.Alerts)
	}
	if got.Classification.Regime != models.RegimeRiskOn {
		t.Fatalf("expected RISK_ON, got %s", got.Classification.Regime)
	}
	if got.Interpretation == "" {
		t.Fatalf("expected interpretation text")
	}
}

func TestAssessPatternFundingStress(t *testing.T) {
	a := NewMacroAnalyzer()
	got := a.Assess(snapshotWith(map[string]float64{
		IndVIX:            16,
		IndSOFRIORBSpread: 18,
	}))
	found := false
	for _, p := range got.Patterns {
		if p == "funding_stress_under_calm_surface" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected funding stress pattern, got %v", got.Patterns)
	}
}
