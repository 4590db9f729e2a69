package service

import (
	"context"
	"time"

	"MarketLens/internal/domain/models"
)

// MacroProvider fetches (date, value) series for named macro indicators.
type MacroProvider interface {
	FetchSeries(ctx context.Context, indicator string, from, to time.Time) ([]models.SeriesPoint, error)
}

// EquityProvider fetches fundamentals and a daily price history for one ticker.
type EquityProvider interface {
	FetchEquity(ctx context.Context, ticker string, historyDays int) (*models.EquityData, error)
}

// PostSource yields social posts mentioning a ticker.
type PostSource interface {
	FetchPosts(ctx context.Context, ticker string) ([]models.Post, error)
}
