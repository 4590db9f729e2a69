package models

import "time"

// Post is one social post after timestamp parsing.
type Post struct {
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// SentimentResult is the aggregate over a batch of fresh posts.
type SentimentResult struct {
	Score        float64 `json:"score"` // [-100, 100]
	PostCount    int     `json:"post_count"`
	BullishHits  int     `json:"bullish_hits"`
	BearishHits  int     `json:"bearish_hits"`
	DroppedPosts int     `json:"dropped_posts"` // unparsable timestamps or stale posts
}
