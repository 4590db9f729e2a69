package usecase

import (
	"context"
	"encoding/json"
	"time"

	"MarketLens/internal/domain/models"
	domrepo "MarketLens/internal/domain/repository"
	domsvc "MarketLens/internal/domain/service"
	"MarketLens/internal/services/analytics"
	"MarketLens/pkg/logger"
)

// macroIndicators is the set fetched per macro collection run. Spreads are
// derived afterwards and are not fetched directly.
var macroIndicators = []string{
	analytics.IndReserves,
	analytics.IndTGA,
	analytics.IndReverseRepo,
	analytics.IndFedBalance,
	analytics.IndSOFR,
	analytics.IndIORB,
	analytics.IndEFFR,
	analytics.IndM2,
	analytics.IndYieldCurve,
	analytics.IndVIX,
	analytics.IndNFCI,
	analytics.IndDollarIndex,
	analytics.IndHYSpread,
}

// MacroCollector assembles the macro snapshot, caching it as a whole. Cache
// failures degrade: a failed read is a miss, a failed write is logged and
// ignored.
type MacroCollector struct {
	provider    domsvc.MacroProvider
	cache       domrepo.CacheStore
	metrics     domrepo.Metrics
	log         *logger.Logger
	ttl         time.Duration
	historyDays int
}

func NewMacroCollector(provider domsvc.MacroProvider, cache domrepo.CacheStore, metrics domrepo.Metrics, log *logger.Logger, ttl time.Duration, historyDays int) *MacroCollector {
	return &MacroCollector{provider: provider, cache: cache, metrics: metrics, log: log, ttl: ttl, historyDays: historyDays}
}

// Collect returns the macro snapshot. With refresh set the cache read is
// skipped; the fresh result is still written back.
func (c *MacroCollector) Collect(ctx context.Context, refresh bool) (*models.MacroSnapshot, models.SourceResult) {
	started := time.Now()
	defer func() {
		c.metrics.RecordCollectorDuration(string(models.SourceMacro), time.Since(started).Seconds())
	}()

	var snap models.MacroSnapshot
	if !refresh {
		if hit := readCached(ctx, c.cache, c.metrics, c.log, models.SourceMacro, "snapshot", "", &snap); hit {
			return &snap, models.SourceResult{Source: models.SourceMacro, Status: models.StatusOK}
		}
	}

	to := time.Now()
	from := to.AddDate(0, 0, -c.historyDays)
	series := map[string][]models.SeriesPoint{}
	for _, name := range macroIndicators {
		pts, err := c.provider.FetchSeries(ctx, name, from, to)
		if err != nil {
			c.log.Warn("macro indicator unavailable",
				logger.String("indicator", name),
				logger.Error(err))
			c.metrics.RecordError("macro_fetch")
			continue
		}
		if len(pts) > 0 {
			series[name] = pts
		}
	}
	if len(series) == 0 {
		return nil, models.SourceResult{Source: models.SourceMacro, Status: models.StatusUnavailable, Detail: "no indicators fetched"}
	}

	// Derived spreads, in basis points.
	if s := deriveSpread(series[analytics.IndSOFR], series[analytics.IndIORB]); len(s) > 0 {
		series[analytics.IndSOFRIORBSpread] = s
	}
	if s := deriveSpread(series[analytics.IndEFFR], series[analytics.IndIORB]); len(s) > 0 {
		series[analytics.IndEFFRIORBSpread] = s
	}

	snap = models.MacroSnapshot{
		Indicators:  make(map[string]models.IndicatorSnapshot, len(series)),
		CollectedAt: time.Now(),
	}
	for name, pts := range series {
		snap.Indicators[name] = buildIndicator(name, pts)
	}

	writeCached(ctx, c.cache, c.log, models.SourceMacro, "snapshot", "", &snap, c.ttl)
	return &snap, models.SourceResult{Source: models.SourceMacro, Status: models.StatusOK}
}

// deriveSpread inner-joins two rate series on calendar day and subtracts,
// converting percentage points to basis points.
func deriveSpread(a, b []models.SeriesPoint) []models.SeriesPoint {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	bByDay := make(map[string]float64, len(b))
	for _, p := range b {
		bByDay[p.Date.Format("2006-01-02")] = p.Value
	}
	var out []models.SeriesPoint
	for _, p := range a {
		if bv, ok := bByDay[p.Date.Format("2006-01-02")]; ok {
			out = append(out, models.SeriesPoint{Date: p.Date, Value: (p.Value - bv) * 100})
		}
	}
	return out
}

func buildIndicator(name string, pts []models.SeriesPoint) models.IndicatorSnapshot {
	last := pts[len(pts)-1]
	ind := models.IndicatorSnapshot{
		Name:    name,
		Current: last.Value,
		Date:    last.Date,
		History: pts,
	}
	if len(pts) >= 2 {
		d := last.Value - pts[len(pts)-2].Value
		ind.Change1D = &d
	}
	if v, ok := changeOver(pts, 7); ok {
		ind.Change7D = &v
	}
	if v, ok := changeOver(pts, 30); ok {
		ind.Change30D = &v
		base := last.Value - v
		if base != 0 {
			pct := v / abs(base) * 100
			ind.ChangePct = &pct
		}
	}
	return ind
}

// changeOver returns current minus the most recent value at least `days`
// calendar days older than the latest observation.
func changeOver(pts []models.SeriesPoint, days int) (float64, bool) {
	last := pts[len(pts)-1]
	cutoff := last.Date.AddDate(0, 0, -days)
	for i := len(pts) - 2; i >= 0; i-- {
		if !pts[i].Date.After(cutoff) {
			return last.Value - pts[i].Value, true
		}
	}
	return 0, false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// EquityCollector fetches and caches per-ticker equity data.
type EquityCollector struct {
	provider    domsvc.EquityProvider
	cache       domrepo.CacheStore
	metrics     domrepo.Metrics
	log         *logger.Logger
	ttl         time.Duration
	historyDays int
}

func NewEquityCollector(provider domsvc.EquityProvider, cache domrepo.CacheStore, metrics domrepo.Metrics, log *logger.Logger, ttl time.Duration, historyDays int) *EquityCollector {
	return &EquityCollector{provider: provider, cache: cache, metrics: metrics, log: log, ttl: ttl, historyDays: historyDays}
}

func (c *EquityCollector) Collect(ctx context.Context, ticker string, refresh bool) (*models.EquityData, models.SourceResult) {
	started := time.Now()
	defer func() {
		c.metrics.RecordCollectorDuration(string(models.SourceEquity), time.Since(started).Seconds())
	}()

	var data models.EquityData
	if !refresh {
		if hit := readCached(ctx, c.cache, c.metrics, c.log, models.SourceEquity, ticker, "", &data); hit {
			return &data, models.SourceResult{Source: models.SourceEquity, Status: models.StatusOK}
		}
	}

	fetched, err := c.provider.FetchEquity(ctx, ticker, c.historyDays)
	if err != nil {
		c.metrics.RecordError("equity_fetch")
		return nil, models.SourceResult{Source: models.SourceEquity, Status: models.StatusUnavailable, Detail: err.Error()}
	}

	writeCached(ctx, c.cache, c.log, models.SourceEquity, ticker, "", fetched, c.ttl)
	return fetched, models.SourceResult{Source: models.SourceEquity, Status: models.StatusOK}
}

// SentimentCollector fetches posts and caches the aggregated result.
type SentimentCollector struct {
	source   domsvc.PostSource
	analyzer *analytics.SentimentAnalyzer
	cache    domrepo.CacheStore
	metrics  domrepo.Metrics
	log      *logger.Logger
	ttl      time.Duration
}

func NewSentimentCollector(source domsvc.PostSource, analyzer *analytics.SentimentAnalyzer, cache domrepo.CacheStore, metrics domrepo.Metrics, log *logger.Logger, ttl time.Duration) *SentimentCollector {
	return &SentimentCollector{source: source, analyzer: analyzer, cache: cache, metrics: metrics, log: log, ttl: ttl}
}

func (c *SentimentCollector) Collect(ctx context.Context, ticker string, refresh bool) (*models.SentimentResult, models.SourceResult) {
	started := time.Now()
	defer func() {
		c.metrics.RecordCollectorDuration(string(models.SourceSentiment), time.Since(started).Seconds())
	}()

	var res models.SentimentResult
	if !refresh {
		if hit := readCached(ctx, c.cache, c.metrics, c.log, models.SourceSentiment, ticker, "", &res); hit {
			return &res, models.SourceResult{Source: models.SourceSentiment, Status: models.StatusOK}
		}
	}

	posts, err := c.source.FetchPosts(ctx, ticker)
	if err != nil {
		c.metrics.RecordError("sentiment_fetch")
		return nil, models.SourceResult{Source: models.SourceSentiment, Status: models.StatusUnavailable, Detail: err.Error()}
	}

	res = c.analyzer.Analyze(posts, time.Now())
	writeCached(ctx, c.cache, c.log, models.SourceSentiment, ticker, "", &res, c.ttl)
	return &res, models.SourceResult{Source: models.SourceSentiment, Status: models.StatusOK}
}

// readCached returns true and fills dest on a hit. Every failure path is a
// miss; a broken cache never fails a collection.
func readCached(ctx context.Context, store domrepo.CacheStore, metrics domrepo.Metrics, log *logger.Logger, source models.Source, identifier, subKey string, dest interface{}) bool {
	payload, err := store.Get(ctx, source, identifier, subKey)
	if err != nil {
		if err != domrepo.ErrMiss {
			log.Warn("cache read failed, treating as miss",
				logger.String("source", string(source)),
				logger.Error(err))
		}
		metrics.RecordCacheMiss(string(source))
		return false
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		log.Warn("cache payload unreadable, treating as miss",
			logger.String("source", string(source)),
			logger.Error(err))
		metrics.RecordCacheMiss(string(source))
		return false
	}
	metrics.RecordCacheHit(string(source))
	return true
}

func writeCached(ctx context.Context, store domrepo.CacheStore, log *logger.Logger, source models.Source, identifier, subKey string, value interface{}, ttl time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		log.Warn("cache payload marshal failed",
			logger.String("source", string(source)),
			logger.Error(err))
		return
	}
	if err := store.Set(ctx, source, identifier, subKey, payload, ttl); err != nil {
		log.Warn("cache write failed, continuing",
			logger.String("source", string(source)),
			logger.Error(err))
	}
}
