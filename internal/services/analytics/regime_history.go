package analytics

import (
	"sort"
	"time"

	"MarketLens/internal/domain/models"
	"MarketLens/pkg/util"
)

// RegimeHistorian reconstructs the regime timeline from indicator histories.
// VIX and the funding spread are required and inner-joined on calendar day;
// reserves and NFCI are optional and refine the days on which they exist.
type RegimeHistorian struct{}

func NewRegimeHistorian() *RegimeHistorian {
	return &RegimeHistorian{}
}

func indexByDay(series []models.SeriesPoint) map[string]float64 {
	m := make(map[string]float64, len(series))
	for _, p := range series {
		m[util.Day(p.Date)] = p.Value
	}
	return m
}

// Build classifies every day present in both required series and derives the
// summary statistics over the resulting timeline.
func (h *RegimeHistorian) Build(vix, spread, reserves, nfci []models.SeriesPoint) *models.RegimeHistory {
	spreadByDay := indexByDay(spread)
	reservesByDay := indexByDay(reserves)
	nfciByDay := indexByDay(nfci)

	days := make([]models.RegimeDay, 0, len(vix))
	for _, p := range vix {
		day := util.Day(p.Date)
		s, ok := spreadByDay[day]
		if !ok {
			continue
		}
		v := p.Value
		var res, n *float64
		if r, ok := reservesByDay[day]; ok {
			res = &r
		}
		if x, ok := nfciByDay[day]; ok {
			n = &x
		}
		cls := Classify(&v, &s, res, n)
		days = append(days, models.RegimeDay{
			Date:       p.Date,
			Regime:     cls.Regime,
			Confidence: cls.Confidence,
		})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })

	return &models.RegimeHistory{
		Days:          days,
		Counts:        countRegimes(days),
		Percentages:   regimePercentages(days),
		LongestStreak: longestStreak(days),
		LastChange:    lastChange(days),
		Transitions:   Transitions(days),
	}
}

func countRegimes(days []models.RegimeDay) map[models.Regime]int {
	counts := map[models.Regime]int{}
	for _, d := range days {
		counts[d.Regime]++
	}
	return counts
}

func regimePercentages(days []models.RegimeDay) map[models.Regime]float64 {
	pct := map[models.Regime]float64{}
	if len(days) == 0 {
		return pct
	}
	for r, c := range countRegimes(days) {
		pct[r] = float64(c) / float64(len(days)) * 100
	}
	return pct
}

func longestStreak(days []models.RegimeDay) models.RegimeStreak {
	var best, cur models.RegimeStreak
	for _, d := range days {
		if cur.Days > 0 && d.Regime == cur.Regime {
			cur.Days++
			cur.End = d.Date
		} else {
			cur = models.RegimeStreak{Regime: d.Regime, Days: 1, Start: d.Date, End: d.Date}
		}
		if cur.Days > best.Days {
			best = cur
		}
	}
	return best
}

func lastChange(days []models.RegimeDay) *time.Time {
	for i := len(days) - 1; i >= 1; i-- {
		if days[i].Regime != days[i-1].Regime {
			t := days[i].Date
			return &t
		}
	}
	return nil
}

// Transitions lists every day whose regime differs from the prior day.
func Transitions(days []models.RegimeDay) []models.RegimeTransition {
	var out []models.RegimeTransition
	for i := 1; i < len(days); i++ {
		if days[i].Regime != days[i-1].Regime {
			out = append(out, models.RegimeTransition{
				Date: days[i].Date,
				From: days[i-1].Regime,
				To:   days[i].Regime,
			})
		}
	}
	return out
}
