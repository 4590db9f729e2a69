package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"MarketLens/internal/domain/models"
	domrepo "MarketLens/internal/domain/repository"
	"MarketLens/internal/services/analytics"
	"MarketLens/pkg/logger"
	"MarketLens/pkg/util"
)

// MarketAnalyzer runs the three source collectors in parallel, scores each
// source and combines them. A failed source degrades to absent; its weight is
// not redistributed.
type MarketAnalyzer struct {
	macro     *MacroCollector
	equity    *EquityCollector
	sentiment *SentimentCollector

	macroAnalyzer *analytics.MacroAnalyzer
	equityScorer  *analytics.EquityScorer
	historian     *analytics.RegimeHistorian
	percentiles   *analytics.PercentileAnalyzer

	publisher domrepo.Publisher
	store     domrepo.CacheStore
	metrics   domrepo.Metrics
	log       *logger.Logger

	weights models.Weights
	timeout time.Duration
}

func NewMarketAnalyzer(
	macro *MacroCollector,
	equity *EquityCollector,
	sentiment *SentimentCollector,
	publisher domrepo.Publisher,
	store domrepo.CacheStore,
	metrics domrepo.Metrics,
	log *logger.Logger,
	weights models.Weights,
	timeout time.Duration,
) *MarketAnalyzer {
	return &MarketAnalyzer{
		macro:         macro,
		equity:        equity,
		sentiment:     sentiment,
		macroAnalyzer: analytics.NewMacroAnalyzer(),
		equityScorer:  analytics.NewEquityScorer(),
		historian:     analytics.NewRegimeHistorian(),
		percentiles:   analytics.NewPercentileAnalyzer(),
		publisher:     publisher,
		store:         store,
		metrics:       metrics,
		log:           log,
		weights:       weights,
		timeout:       timeout,
	}
}

// Analyze produces the Combined Analysis for one ticker. It always returns a
// best-effort result; only a cancelled context is an error. With refresh set
// the collectors bypass their cache reads.
func (a *MarketAnalyzer) Analyze(ctx context.Context, ticker string, refresh bool) (*models.CombinedAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		wg sync.WaitGroup

		snap      *models.MacroSnapshot
		macroRes  models.SourceResult
		equityDat *models.EquityData
		equityRes models.SourceResult
		sentiment *models.SentimentResult
		sentRes   models.SourceResult
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		cctx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		snap, macroRes = a.macro.Collect(cctx, refresh)
	}()
	go func() {
		defer wg.Done()
		cctx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		equityDat, equityRes = a.equity.Collect(cctx, ticker, refresh)
	}()
	go func() {
		defer wg.Done()
		cctx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		sentiment, sentRes = a.sentiment.Collect(cctx, ticker, refresh)
	}()
	wg.Wait()

	out := &models.CombinedAnalysis{
		Ticker:    ticker,
		Weights:   a.weights,
		Regime:    models.RegimeUnknown,
		Timestamp: time.Now(),
	}

	combined := 0.0

	if macroRes.OK() && snap != nil {
		assessment := a.macroAnalyzer.Assess(snap)
		score := assessment.Score
		out.MacroScore = &score
		out.Macro = assessment
		out.Regime = assessment.Classification.Regime
		combined += a.weights.Macro * score
		a.metrics.RecordSourceScore(string(models.SourceMacro), ticker, score)
	} else {
		out.MissingSources = append(out.MissingSources, models.SourceMacro)
		a.log.Warn("macro source absent", logger.String("detail", macroRes.Detail))
	}

	if equityRes.OK() && equityDat != nil {
		assessment := a.equityScorer.Score(equityDat)
		score := assessment.Score
		out.EquityScore = &score
		out.Equity = assessment
		combined += a.weights.Equity * score
		a.metrics.RecordSourceScore(string(models.SourceEquity), ticker, score)
	} else {
		out.MissingSources = append(out.MissingSources, models.SourceEquity)
		a.log.Warn("equity source absent",
			logger.String("ticker", ticker),
			logger.String("detail", equityRes.Detail))
	}

	if sentRes.OK() && sentiment != nil {
		score := sentiment.Score
		out.SentimentScore = &score
		out.Sentiment = sentiment
		combined += a.weights.Sentiment * score
		a.metrics.RecordSourceScore(string(models.SourceSentiment), ticker, score)
	} else {
		out.MissingSources = append(out.MissingSources, models.SourceSentiment)
		a.log.Warn("sentiment source absent",
			logger.String("ticker", ticker),
			logger.String("detail", sentRes.Detail))
	}

	out.CombinedScore = util.Clamp(combined, -100, 100)
	out.Recommendation = models.RecommendationFor(out.CombinedScore)

	a.log.Info("analysis complete",
		logger.String("ticker", ticker),
		logger.Float64("combined", out.CombinedScore),
		logger.String("regime", string(out.Regime)),
		logger.Int("missing_sources", len(out.MissingSources)))

	if err := a.publisher.Publish(ctx, out); err != nil {
		a.metrics.RecordError("publish")
		a.log.Warn("analysis publish failed", logger.Error(err))
	}

	return out, nil
}

// RegimeHistory reconstructs the regime timeline over the last `days` days.
func (a *MarketAnalyzer) RegimeHistory(ctx context.Context, days int) (*models.RegimeHistory, error) {
	cctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	snap, res := a.macro.Collect(cctx, false)
	if !res.OK() || snap == nil {
		return nil, fmt.Errorf("macro data unavailable: %s", res.Detail)
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	return a.historian.Build(
		trimSeries(indicatorHistory(snap, analytics.IndVIX), cutoff),
		trimSeries(indicatorHistory(snap, analytics.IndSOFRIORBSpread), cutoff),
		trimSeries(indicatorHistory(snap, analytics.IndReserves), cutoff),
		trimSeries(indicatorHistory(snap, analytics.IndNFCI), cutoff),
	), nil
}

// Percentiles ranks every macro indicator inside its last `days` days of history.
func (a *MarketAnalyzer) Percentiles(ctx context.Context, days int) (*models.PercentileReport, error) {
	cctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	snap, res := a.macro.Collect(cctx, false)
	if !res.OK() || snap == nil {
		return nil, fmt.Errorf("macro data unavailable: %s", res.Detail)
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	trimmed := &models.MacroSnapshot{
		Indicators:  make(map[string]models.IndicatorSnapshot, len(snap.Indicators)),
		CollectedAt: snap.CollectedAt,
	}
	for name, ind := range snap.Indicators {
		ind.History = trimSeries(ind.History, cutoff)
		trimmed.Indicators[name] = ind
	}
	return a.percentiles.Report(trimmed), nil
}

// Health reports cache backend health.
func (a *MarketAnalyzer) Health(ctx context.Context) error {
	return a.store.Health(ctx)
}

func indicatorHistory(snap *models.MacroSnapshot, name string) []models.SeriesPoint {
	if ind, ok := snap.Indicators[name]; ok {
		return ind.History
	}
	return nil
}

func trimSeries(pts []models.SeriesPoint, cutoff time.Time) []models.SeriesPoint {
	out := make([]models.SeriesPoint, 0, len(pts))
	for _, p := range pts {
		if !p.Date.Before(cutoff) {
			out = append(out, p)
		}
	}
	return out
}
