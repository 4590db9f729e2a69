package analytics

import (
	"sort"
	"strings"

	"MarketLens/internal/domain/models"
)

// PercentileAnalyzer ranks current indicator readings inside their own history.
type PercentileAnalyzer struct{}

func NewPercentileAnalyzer() *PercentileAnalyzer {
	return &PercentileAnalyzer{}
}

// Percentile returns the share of history strictly below x, scaled to [0,100].
// An empty history carries no information and ranks at the median.
func Percentile(x float64, history []float64) float64 {
	if len(history) == 0 {
		return 50
	}
	below := 0
	for _, h := range history {
		if h < x {
			below++
		}
	}
	return 100 * float64(below) / float64(len(history))
}

// DirectionFor classifies an indicator by which way "good" points.
func DirectionFor(indicator string) models.Direction {
	name := strings.ToLower(indicator)
	lower := []string{"vix", "volatility", "spread", "nfci", "tga", "reverse_repo", "rrp"}
	for _, k := range lower {
		if strings.Contains(name, k) {
			return models.LowerIsBetter
		}
	}
	higher := []string{"reserves", "fed_balance", "m2", "money_supply", "net_liquidity"}
	for _, k := range higher {
		if strings.Contains(name, k) {
			return models.HigherIsBetter
		}
	}
	return models.Neutral
}

// Band labels the percentile bucket.
func Band(pct float64) string {
	switch {
	case pct >= 95:
		return "extremely high"
	case pct >= 85:
		return "very high"
	case pct >= 70:
		return "high"
	case pct >= 55:
		return "above median"
	case pct >= 45:
		return "near median"
	case pct >= 30:
		return "below median"
	case pct >= 15:
		return "low"
	default:
		return "extremely low"
	}
}

// Color maps a percentile to a traffic light given the indicator's direction.
func Color(pct float64, dir models.Direction) string {
	switch dir {
	case models.HigherIsBetter:
		switch {
		case pct >= 70:
			return "green"
		case pct >= 30:
			return "yellow"
		default:
			return "red"
		}
	case models.LowerIsBetter:
		switch {
		case pct >= 70:
			return "red"
		case pct >= 30:
			return "yellow"
		default:
			return "green"
		}
	default:
		return "yellow"
	}
}

// Rank places one indicator reading inside its history.
func (a *PercentileAnalyzer) Rank(indicator string, current float64, history []float64) models.PercentileRank {
	pct := Percentile(current, history)
	dir := DirectionFor(indicator)
	return models.PercentileRank{
		Indicator:  indicator,
		Current:    current,
		Percentile: pct,
		Band:       Band(pct),
		Direction:  dir,
		Color:      Color(pct, dir),
		SampleSize: len(history),
	}
}

// Report ranks every snapshot indicator that carries a history.
func (a *PercentileAnalyzer) Report(snap *models.MacroSnapshot) *models.PercentileReport {
	names := make([]string, 0, len(snap.Indicators))
	for name := range snap.Indicators {
		names = append(names, name)
	}
	sort.Strings(names)
	report := &models.PercentileReport{}
	for _, name := range names {
		ind := snap.Indicators[name]
		if len(ind.History) == 0 {
			continue
		}
		hist := make([]float64, len(ind.History))
		for i, p := range ind.History {
			hist[i] = p.Value
		}
		report.Ranks = append(report.Ranks, a.Rank(name, ind.Current, hist))
	}
	return report
}
