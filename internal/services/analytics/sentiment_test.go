package analytics

import (
	"math"
	"testing"
	"time"

	"MarketLens/internal/domain/models"
)

var sentNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func post(text string, age time.Duration) models.Post {
	return models.Post{Text: text, CreatedAt: sentNow.Add(-age)}
}

func TestAnalyzeEmptyBatch(t *testing.T) {
	a := NewSentimentAnalyzer(24*time.Hour, 3)
	got := a.Analyze(nil, sentNow)
	if got.Score != 0 || got.PostCount != 0 {
		t.Fatalf("expected zero result, got %+v", got)
	}
}

func TestAnalyzeAllBullish(t *testing.T) {
	a := NewSentimentAnalyzer(24*time.Hour, 3)
	got := a.Analyze([]models.Post{
		post("strong rally, buy the breakout", time.Hour),
		post("bullish setup, accumulate", 2*time.Hour),
	}, sentNow)
	if got.Score <= 0 {
		t.Fatalf("expected positive score, got %v", got.Score)
	}
	if got.BearishHits != 0 {
		t.Fatalf("expected no bearish hits, got %d", got.BearishHits)
	}
}

func TestAnalyzeEvenSplit(t *testing.T) {
	a := NewSentimentAnalyzer(24*time.Hour, 3)
	got := a.Analyze([]models.Post{
		post("buy", time.Hour),
		post("sell", time.Hour),
	}, sentNow)
	if math.Abs(got.Score) > 1e-9 {
		t.Fatalf("expected zero score on even split, got %v", got.Score)
	}
}

func TestAnalyzePolishKeywords(t *testing.T) {
	a := NewSentimentAnalyzer(24*time.Hour, 3)
	got := a.Analyze([]models.Post{
		post("silny wzrost, kupuj", time.Hour),
	}, sentNow)
	// silny, wzrost, kupuj, plus "up" inside "kupuj" (substring matching)
	if got.BullishHits != 4 {
		t.Fatalf("expected 4 bullish hits, got %d", got.BullishHits)
	}
	if got.Score != 100 {
		t.Fatalf("expected 100, got %v", got.Score)
	}
}

func TestAnalyzeCaseInsensitive(t *testing.T) {
	a := NewSentimentAnalyzer(24*time.Hour, 3)
	got := a.Analyze([]models.Post{post("BUY THE RALLY", time.Hour)}, sentNow)
	if got.BullishHits != 2 {
		t.Fatalf("expected 2 bullish hits, got %d", got.BullishHits)
	}
}

func TestAnalyzeStalePostsDropped(t *testing.T) {
	a := NewSentimentAnalyzer(24*time.Hour, 3)
	got := a.Analyze([]models.Post{
		post("buy buy buy", 30*time.Hour),
	}, sentNow)
	if got.PostCount != 0 || got.DroppedPosts != 1 {
		t.Fatalf("expected stale post dropped, got %+v", got)
	}
	if got.Score != 0 {
		t.Fatalf("expected zero score, got %v", got.Score)
	}
}

func TestAnalyzeScoreClamped(t *testing.T) {
	a := NewSentimentAnalyzer(24*time.Hour, 1)
	got := a.Analyze([]models.Post{
		post("strong bullish rally breakout buy long", time.Hour),
	}, sentNow)
	if got.Score != 100 {
		t.Fatalf("expected clamp at 100, got %v", got.Score)
	}
}
