package analytics

import (
	"fmt"

	"MarketLens/internal/domain/models"
	"MarketLens/pkg/util"
)

// Canonical indicator names used across collectors, cache keys and analyzers.
const (
	IndReserves    = "reserves"
	IndTGA         = "tga"
	IndReverseRepo = "reverse_repo"
	IndFedBalance  = "fed_balance"
	IndSOFR        = "sofr"
	IndIORB        = "iorb"
	IndEFFR        = "effr"
	IndM2          = "m2"
	IndYieldCurve  = "yield_curve"
	IndVIX         = "vix"
	IndNFCI        = "nfci"
	IndDollarIndex = "dollar_index"
	IndHYSpread    = "hy_spread"

	IndSOFRIORBSpread = "sofr_iorb_spread"
	IndEFFRIORBSpread = "effr_iorb_spread"
)

// Alert thresholds. Spread is in basis points, reserves in billions.
const (
	alertSpreadBps    = 20.0
	alertVIX          = 40.0
	reservesScarcityB = 2500.0
)

// MacroAnalyzer derives a score, regime and alert set from a macro snapshot.
// Classification is pure; the same inputs always produce the same regime.
type MacroAnalyzer struct{}

func NewMacroAnalyzer() *MacroAnalyzer {
	return &MacroAnalyzer{}
}

// factorInputs are the four regime factors, nil when the snapshot lacks them.
type factorInputs struct {
	vix      *float64
	spread   *float64
	reserves *float64
	nfci     *float64
}

func factorsFrom(snap *models.MacroSnapshot) factorInputs {
	var in factorInputs
	pick := func(name string) *float64 {
		if s, ok := snap.Indicators[name]; ok {
			v := s.Current
			return &v
		}
		return nil
	}
	in.vix = pick(IndVIX)
	in.spread = pick(IndSOFRIORBSpread)
	in.reserves = pick(IndReserves)
	in.nfci = pick(IndNFCI)
	return in
}

// Classify applies the regime rule. VIX and the funding spread are required;
// without both the outcome is UNKNOWN with zero confidence. Reserves and NFCI
// refine the score when present. The per-factor sum is normalized by the
// number of available factors.
func Classify(vix, spread, reserves, nfci *float64) models.RegimeClassification {
	if vix == nil || spread == nil {
		return models.RegimeClassification{
			Regime:  models.RegimeUnknown,
			Factors: map[string]float64{},
		}
	}

	factors := map[string]float64{}

	switch v := *vix; {
	case v < 15:
		factors[IndVIX] = 40
	case v < 20:
		factors[IndVIX] = 20
	case v < 25:
		factors[IndVIX] = 0
	case v < 35:
		factors[IndVIX] = -30
	default:
		factors[IndVIX] = -60
	}

	switch s := *spread; {
	case s < 5:
		factors[IndSOFRIORBSpread] = 30
	case s < 10:
		factors[IndSOFRIORBSpread] = 15
	case s < 15:
		factors[IndSOFRIORBSpread] = 0
	case s < 25:
		factors[IndSOFRIORBSpread] = -30
	default:
		factors[IndSOFRIORBSpread] = -50
	}

	if reserves != nil {
		switch r := *reserves; {
		case r > 3500:
			factors[IndReserves] = 30
		case r > 3000:
			factors[IndReserves] = 15
		case r > 2800:
			factors[IndReserves] = 0
		case r > 2500:
			factors[IndReserves] = -20
		default:
			factors[IndReserves] = -40
		}
	}

	if nfci != nil {
		switch n := *nfci; {
		case n < -0.5:
			factors[IndNFCI] = 20
		case n < 0:
			factors[IndNFCI] = 10
		case n < 0.5:
			factors[IndNFCI] = -10
		default:
			factors[IndNFCI] = -30
		}
	}

	sum := 0.0
	for _, v := range factors {
		sum += v
	}
	normalized := sum / float64(len(factors))

	var regime models.Regime
	switch {
	case normalized >= 20:
		regime = models.RegimeRiskOn
	case normalized >= -20:
		regime = models.RegimeRiskOff
	default:
		regime = models.RegimeCrisis
	}

	confidence := 50 + normalized
	if normalized < 0 {
		confidence = 50 - normalized
	}
	if confidence > 100 {
		confidence = 100
	}

	return models.RegimeClassification{
		Regime:     regime,
		Confidence: confidence,
		Factors:    factors,
		Score:      util.Clamp(normalized, -100, 100),
	}
}

// Assess produces the full macro view for one snapshot.
func (a *MacroAnalyzer) Assess(snap *models.MacroSnapshot) *models.MacroAssessment {
	in := factorsFrom(snap)
	cls := Classify(in.vix, in.spread, in.reserves, in.nfci)

	return &models.MacroAssessment{
		Score:          cls.Score,
		Classification: cls,
		Alerts:         a.alerts(snap),
		Patterns:       a.patterns(snap, in),
		Interpretation: interpret(cls),
	}
}

func (a *MacroAnalyzer) alerts(snap *models.MacroSnapshot) []models.Alert {
	var out []models.Alert
	if s, ok := snap.Indicators[IndSOFRIORBSpread]; ok && s.Current > alertSpreadBps {
		out = append(out, models.Alert{
			Indicator: IndSOFRIORBSpread,
			Severity:  "critical",
			Message:   fmt.Sprintf("funding spread at %.1f bps signals money-market stress", s.Current),
			Value:     s.Current,
		})
	}
	if v, ok := snap.Indicators[IndVIX]; ok && v.Current > alertVIX {
		out = append(out, models.Alert{
			Indicator: IndVIX,
			Severity:  "critical",
			Message:   fmt.Sprintf("VIX at %.1f, panic territory", v.Current),
			Value:     v.Current,
		})
	}
	if y, ok := snap.Indicators[IndYieldCurve]; ok && y.Current < 0 {
		out = append(out, models.Alert{
			Indicator: IndYieldCurve,
			Severity:  "critical",
			Message:   fmt.Sprintf("yield curve inverted at %.2f", y.Current),
			Value:     y.Current,
		})
	}
	if r, ok := snap.Indicators[IndReserves]; ok && r.Current < reservesScarcityB {
		out = append(out, models.Alert{
			Indicator: IndReserves,
			Severity:  "critical",
			Message:   fmt.Sprintf("bank reserves at %.0fB, below the scarcity threshold", r.Current),
			Value:     r.Current,
		})
	}
	return out
}

// patterns flags cross-indicator constellations a single factor would miss.
func (a *MacroAnalyzer) patterns(snap *models.MacroSnapshot, in factorInputs) []string {
	var out []string
	if in.vix != nil && in.spread != nil {
		if *in.vix < 20 && *in.spread > 15 {
			out = append(out, "funding_stress_under_calm_surface")
		}
		if *in.vix >= 35 && *in.spread >= 20 {
			out = append(out, "broad_risk_stress")
		}
	}
	res, hasRes := snap.Indicators[IndReserves]
	tga, hasTGA := snap.Indicators[IndTGA]
	if hasRes && hasTGA && res.Change30D != nil && tga.Change30D != nil {
		if *res.Change30D < 0 && *tga.Change30D > 0 {
			out = append(out, "treasury_rebuild_draining_reserves")
		}
	}
	return out
}

func interpret(cls models.RegimeClassification) string {
	switch cls.Regime {
	case models.RegimeRiskOn:
		return fmt.Sprintf("Liquidity conditions are supportive (score %.0f). Funding markets are calm and volatility is contained.", cls.Score)
	case models.RegimeRiskOff:
		return fmt.Sprintf("Liquidity conditions are mixed (score %.0f). Caution warranted; watch funding spreads for deterioration.", cls.Score)
	case models.RegimeCrisis:
		return fmt.Sprintf("Liquidity conditions are severely stressed (score %.0f). Funding and volatility indicators point to crisis dynamics.", cls.Score)
	default:
		return "Insufficient data to classify the liquidity regime; VIX or funding spread is missing."
	}
}
