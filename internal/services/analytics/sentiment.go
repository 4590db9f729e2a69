package analytics

import (
	"strings"
	"time"

	"MarketLens/internal/domain/models"
	"MarketLens/pkg/util"
)

// Keyword lists are fixed and bilingual (Polish and English). Matching is
// case-insensitive substring containment, no stemming, no weights.
var bullishKeywords = []string{
	"wzrost", "rośnie", "kupuj", "kupować",
	"buy", "long", "bullish", "bull", "rally", "breakout",
	"silny", "mocny", "zysk", "wzrostowy", "pozytywnie", "dobrze",
	"gain", "up", "strong", "strength", "outperform", "uptrend",
	"higher", "accumulate", "opportunity",
}

var bearishKeywords = []string{
	"spadek", "spada", "sprzedaj", "sprzedawać",
	"sell", "short", "bearish", "bear", "crash", "breakdown",
	"słaby", "spadkowy", "strata", "negatywnie", "źle", "ryzyko",
	"loss", "down", "weak", "weakness", "underperform", "downtrend",
	"lower", "distribute", "danger", "risk",
}

// SentimentAnalyzer scores a batch of posts by keyword balance. Posts older
// than maxAge are ignored; an empty fresh batch scores zero.
type SentimentAnalyzer struct {
	maxAge             time.Duration
	maxKeywordsPerPost int
}

func NewSentimentAnalyzer(maxAge time.Duration, maxKeywordsPerPost int) *SentimentAnalyzer {
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	if maxKeywordsPerPost <= 0 {
		maxKeywordsPerPost = 3
	}
	return &SentimentAnalyzer{maxAge: maxAge, maxKeywordsPerPost: maxKeywordsPerPost}
}

func countMatches(text string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(text, k) {
			n++
		}
	}
	return n
}

// Analyze computes the batch score
// clamp(((bullish - bearish) / (posts * maxKeywordsPerPost)) * 100, -100, 100).
func (a *SentimentAnalyzer) Analyze(posts []models.Post, now time.Time) models.SentimentResult {
	res := models.SentimentResult{}
	cutoff := now.Add(-a.maxAge)
	for _, p := range posts {
		if p.CreatedAt.Before(cutoff) {
			res.DroppedPosts++
			continue
		}
		text := strings.ToLower(p.Text)
		res.BullishHits += countMatches(text, bullishKeywords)
		res.BearishHits += countMatches(text, bearishKeywords)
		res.PostCount++
	}
	if res.PostCount == 0 {
		return res
	}
	maxPossible := float64(res.PostCount * a.maxKeywordsPerPost)
	raw := float64(res.BullishHits-res.BearishHits) / maxPossible * 100
	res.Score = util.Clamp(raw, -100, 100)
	return res
}
