package usecase

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"MarketLens/internal/domain/models"
	domrepo "MarketLens/internal/domain/repository"
	"MarketLens/internal/services/analytics"
	"MarketLens/pkg/logger"
)

// --- fakes ---

type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string][]byte{}} }

func (c *fakeCache) key(s models.Source, id, sub string) string {
	return string(s) + "/" + id + "/" + sub
}

func (c *fakeCache) Init(ctx context.Context) error { return nil }

func (c *fakeCache) Set(ctx context.Context, s models.Source, id, sub string, payload []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[c.key(s, id, sub)] = payload
	return nil
}

func (c *fakeCache) Get(ctx context.Context, s models.Source, id, sub string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok := c.data[c.key(s, id, sub)]; ok {
		return b, nil
	}
	return nil, domrepo.ErrMiss
}

func (c *fakeCache) Health(ctx context.Context) error { return nil }
func (c *fakeCache) Close() error                     { return nil }

type brokenCache struct{}

func (brokenCache) Init(ctx context.Context) error { return nil }
func (brokenCache) Set(ctx context.Context, s models.Source, id, sub string, payload []byte, ttl time.Duration) error {
	return errors.New("storage down")
}
func (brokenCache) Get(ctx context.Context, s models.Source, id, sub string) ([]byte, error) {
	return nil, errors.New("storage down")
}
func (brokenCache) Health(ctx context.Context) error { return errors.New("storage down") }
func (brokenCache) Close() error                     { return nil }

type noopMetrics struct{}

func (noopMetrics) RecordCollectorDuration(string, float64)   {}
func (noopMetrics) RecordCacheHit(string)                     {}
func (noopMetrics) RecordCacheMiss(string)                    {}
func (noopMetrics) RecordSourceScore(string, string, float64) {}
func (noopMetrics) RecordError(string)                        {}

type capturingPublisher struct {
	mu        sync.Mutex
	published []*models.CombinedAnalysis
}

func (p *capturingPublisher) Publish(ctx context.Context, a *models.CombinedAnalysis) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, a)
	return nil
}
func (p *capturingPublisher) Close() error { return nil }

type fakeMacroProvider struct {
	mu    sync.Mutex
	calls int
	data  map[string][]models.SeriesPoint
}

func (f *fakeMacroProvider) FetchSeries(ctx context.Context, indicator string, from, to time.Time) ([]models.SeriesPoint, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if pts, ok := f.data[indicator]; ok {
		return pts, nil
	}
	return nil, errors.New("series not tracked")
}

type fakeEquityProvider struct {
	mu    sync.Mutex
	calls int
	data  *models.EquityData
	err   error
}

func (f *fakeEquityProvider) FetchEquity(ctx context.Context, ticker string, historyDays int) (*models.EquityData, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

type fakePostSource struct {
	posts []models.Post
	err   error
}

func (f *fakePostSource) FetchPosts(ctx context.Context, ticker string) ([]models.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.posts, nil
}

type blockingEquityProvider struct{}

func (blockingEquityProvider) FetchEquity(ctx context.Context, ticker string, historyDays int) (*models.EquityData, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// --- helpers ---

func constSeries(days int, value float64) []models.SeriesPoint {
	start := time.Now().AddDate(0, 0, -days)
	out := make([]models.SeriesPoint, days)
	for i := range out {
		out[i] = models.SeriesPoint{Date: start.AddDate(0, 0, i), Value: value}
	}
	return out
}

func flatHistory(n int, price float64) []models.PricePoint {
	start := time.Now().AddDate(0, 0, -n)
	out := make([]models.PricePoint, n)
	for i := range out {
		out[i] = models.PricePoint{Date: start.AddDate(0, 0, i), Close: price}
	}
	return out
}

func fp(v float64) *float64 { return &v }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func defaultMacroData() map[string][]models.SeriesPoint {
	return map[string][]models.SeriesPoint{
		analytics.IndVIX:      constSeries(40, 14),
		analytics.IndSOFR:     constSeries(40, 5.33),
		analytics.IndIORB:     constSeries(40, 5.30),
		analytics.IndReserves: constSeries(40, 3600),
	}
}

func newAnalyzer(t *testing.T, cache domrepo.CacheStore, mp *fakeMacroProvider, ep *fakeEquityProvider, ps *fakePostSource, pub domrepo.Publisher) *MarketAnalyzer {
	t.Helper()
	log := testLogger(t)
	m := noopMetrics{}
	macro := NewMacroCollector(mp, cache, m, log, time.Hour, 90)
	equity := NewEquityCollector(ep, cache, m, log, 15*time.Minute, 250)
	sent := NewSentimentCollector(ps, analytics.NewSentimentAnalyzer(24*time.Hour, 3), cache, m, log, 30*time.Minute)
	return NewMarketAnalyzer(macro, equity, sent, pub, cache, m, log,
		models.Weights{Macro: 0.40, Equity: 0.35, Sentiment: 0.25}, 5*time.Second)
}

func defaultEquityData() *models.EquityData {
	return &models.EquityData{
		Ticker: "AAPL",
		Price:  100,
		Fundamentals: models.Fundamentals{
			PERatio:      fp(12),
			ROE:          fp(0.25),
			DebtToEquity: fp(0.3),
			ProfitMargin: fp(0.25),
		},
		History:     flatHistory(250, 100),
		CollectedAt: time.Now(),
	}
}

// --- tests ---

func TestAnalyzeCombinesAllSources(t *testing.T) {
	pub := &capturingPublisher{}
	a := newAnalyzer(t,
		newFakeCache(),
		&fakeMacroProvider{data: defaultMacroData()},
		&fakeEquityProvider{data: defaultEquityData()},
		&fakePostSource{posts: []models.Post{{Text: "buy", CreatedAt: time.Now()}}},
		pub,
	)

	got, err := a.Analyze(context.Background(), "AAPL", false)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(got.MissingSources) != 0 {
		t.Fatalf("expected no missing sources, got %v", got.MissingSources)
	}
	// macro: vix 14 (+40), spread 3bps (+30), reserves 3600 (+30) -> 100/3
	macroWant := 100.0 / 3
	if got.MacroScore == nil || math.Abs(*got.MacroScore-macroWant) > 1e-9 {
		t.Fatalf("unexpected macro score %v", got.MacroScore)
	}
	if got.Regime != models.RegimeRiskOn {
		t.Fatalf("expected RISK_ON, got %s", got.Regime)
	}
	// equity: 10+10+5+10 fundamentals, -15 at MA50 on a flat series
	if got.EquityScore == nil || *got.EquityScore != 20 {
		t.Fatalf("unexpected equity score %v", got.EquityScore)
	}
	// sentiment: 1 bullish hit / (1 post * 3)
	sentWant := 100.0 / 3
	if got.SentimentScore == nil || math.Abs(*got.SentimentScore-sentWant) > 1e-9 {
		t.Fatalf("unexpected sentiment score %v", got.SentimentScore)
	}
	want := 0.40*macroWant + 0.35*20 + 0.25*sentWant
	if math.Abs(got.CombinedScore-want) > 1e-9 {
		t.Fatalf("expected combined %v, got %v", want, got.CombinedScore)
	}
	if got.Recommendation != models.RecHold {
		t.Fatalf("expected HOLD, got %s", got.Recommendation)
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected 1 published analysis, got %d", len(pub.published))
	}
}

func TestAnalyzeMissingSourceKeepsWeights(t *testing.T) {
	a := newAnalyzer(t,
		newFakeCache(),
		&fakeMacroProvider{data: defaultMacroData()},
		&fakeEquityProvider{err: errors.New("provider down")},
		&fakePostSource{posts: []models.Post{{Text: "buy", CreatedAt: time.Now()}}},
		&capturingPublisher{},
	)

	got, err := a.Analyze(context.Background(), "AAPL", false)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(got.MissingSources) != 1 || got.MissingSources[0] != models.SourceEquity {
		t.Fatalf("expected equity missing, got %v", got.MissingSources)
	}
	if got.EquityScore != nil {
		t.Fatalf("expected nil equity score")
	}
	want := 0.40*(100.0/3) + 0.25*(100.0/3)
	if math.Abs(got.CombinedScore-want) > 1e-9 {
		t.Fatalf("expected combined %v without redistribution, got %v", want, got.CombinedScore)
	}
}

func TestAnalyzeProviderTimeoutDegrades(t *testing.T) {
	log := testLogger(t)
	m := noopMetrics{}
	cache := newFakeCache()
	macro := NewMacroCollector(&fakeMacroProvider{data: defaultMacroData()}, cache, m, log, time.Hour, 90)
	equity := &EquityCollector{provider: blockingEquityProvider{}, cache: cache, metrics: m, log: log, ttl: time.Minute, historyDays: 250}
	sent := NewSentimentCollector(&fakePostSource{}, analytics.NewSentimentAnalyzer(24*time.Hour, 3), cache, m, log, time.Minute)
	a := NewMarketAnalyzer(macro, equity, sent, &capturingPublisher{}, cache, m, log,
		models.Weights{Macro: 0.40, Equity: 0.35, Sentiment: 0.25}, 50*time.Millisecond)

	got, err := a.Analyze(context.Background(), "AAPL", false)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	found := false
	for _, s := range got.MissingSources {
		if s == models.SourceEquity {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected equity missing after timeout, got %v", got.MissingSources)
	}
}

func TestCollectorsUseCacheOnSecondRun(t *testing.T) {
	mp := &fakeMacroProvider{data: defaultMacroData()}
	ep := &fakeEquityProvider{data: defaultEquityData()}
	a := newAnalyzer(t, newFakeCache(), mp, ep,
		&fakePostSource{posts: []models.Post{{Text: "buy", CreatedAt: time.Now()}}},
		&capturingPublisher{},
	)

	if _, err := a.Analyze(context.Background(), "AAPL", false); err != nil {
		t.Fatalf("first analyze: %v", err)
	}
	macroCalls := mp.calls
	if _, err := a.Analyze(context.Background(), "AAPL", false); err != nil {
		t.Fatalf("second analyze: %v", err)
	}
	if mp.calls != macroCalls {
		t.Fatalf("expected macro cache hit, calls went %d -> %d", macroCalls, mp.calls)
	}
	if ep.calls != 1 {
		t.Fatalf("expected equity cache hit, got %d calls", ep.calls)
	}
}

func TestAnalyzeRefreshBypassesCache(t *testing.T) {
	ep := &fakeEquityProvider{data: defaultEquityData()}
	a := newAnalyzer(t, newFakeCache(), &fakeMacroProvider{data: defaultMacroData()}, ep,
		&fakePostSource{posts: []models.Post{{Text: "buy", CreatedAt: time.Now()}}},
		&capturingPublisher{},
	)

	if _, err := a.Analyze(context.Background(), "AAPL", false); err != nil {
		t.Fatalf("first analyze: %v", err)
	}
	if _, err := a.Analyze(context.Background(), "AAPL", true); err != nil {
		t.Fatalf("refresh analyze: %v", err)
	}
	if ep.calls != 2 {
		t.Fatalf("expected refresh to call the provider again, got %d calls", ep.calls)
	}
}

func TestAnalyzeSurvivesBrokenCache(t *testing.T) {
	a := newAnalyzer(t,
		brokenCache{},
		&fakeMacroProvider{data: defaultMacroData()},
		&fakeEquityProvider{data: defaultEquityData()},
		&fakePostSource{posts: []models.Post{{Text: "buy", CreatedAt: time.Now()}}},
		&capturingPublisher{},
	)
	got, err := a.Analyze(context.Background(), "AAPL", false)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(got.MissingSources) != 0 {
		t.Fatalf("expected cache failures to degrade, got missing %v", got.MissingSources)
	}
}

func TestRegimeHistoryFromSnapshot(t *testing.T) {
	a := newAnalyzer(t,
		newFakeCache(),
		&fakeMacroProvider{data: defaultMacroData()},
		&fakeEquityProvider{data: defaultEquityData()},
		&fakePostSource{},
		&capturingPublisher{},
	)
	got, err := a.RegimeHistory(context.Background(), 30)
	if err != nil {
		t.Fatalf("regime history: %v", err)
	}
	if len(got.Days) == 0 {
		t.Fatalf("expected regime days")
	}
	if len(got.Transitions) != 0 {
		t.Fatalf("expected no transitions on constant data, got %v", got.Transitions)
	}
	for _, d := range got.Days {
		if d.Regime != models.RegimeRiskOn {
			t.Fatalf("expected RISK_ON throughout, got %s", d.Regime)
		}
	}
}

func TestPercentilesFromSnapshot(t *testing.T) {
	a := newAnalyzer(t,
		newFakeCache(),
		&fakeMacroProvider{data: defaultMacroData()},
		&fakeEquityProvider{data: defaultEquityData()},
		&fakePostSource{},
		&capturingPublisher{},
	)
	got, err := a.Percentiles(context.Background(), 365)
	if err != nil {
		t.Fatalf("percentiles: %v", err)
	}
	if len(got.Ranks) == 0 {
		t.Fatalf("expected ranks")
	}
	for _, r := range got.Ranks {
		if r.Percentile < 0 || r.Percentile > 100 {
			t.Fatalf("percentile out of range: %+v", r)
		}
	}
}
