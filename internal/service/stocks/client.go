package stocks

import (
	"context"
	"fmt"
	"sort"
	"time"

	"MarketLens/internal/domain/models"
	domsvc "MarketLens/internal/domain/service"
	"MarketLens/pkg/config"
	xhttp "MarketLens/pkg/http"
	"MarketLens/pkg/logger"
	"MarketLens/pkg/util"
)

// Client fetches fundamentals and daily candles from the equity data API.
type Client struct {
	baseURL string
	apiKey  string
	client  *xhttp.Client
	log     *logger.Logger
}

var _ domsvc.EquityProvider = (*Client)(nil)

func New(cfg *config.Config, log *logger.Logger) *Client {
	timeout := cfg.Stocks.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.Stocks.BaseURL,
		apiKey:  cfg.Stocks.APIKey,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
		log:     log,
	}
}

type fundamentalsResponse struct {
	Price          float64  `json:"price"`
	PERatio        *float64 `json:"pe_ratio"`
	ROE            *float64 `json:"roe"`
	DebtToEquity   *float64 `json:"debt_to_equity"`
	ProfitMargin   *float64 `json:"profit_margin"`
	RevenueGrowth  *float64 `json:"revenue_growth"`
	EarningsGrowth *float64 `json:"earnings_growth"`
	Recommendation *float64 `json:"recommendation_mean"`
	Week52High     *float64 `json:"week52_high"`
	Week52Low      *float64 `json:"week52_low"`
}

type candlesResponse struct {
	Candles []struct {
		Date   string  `json:"date"`
		Close  float64 `json:"close"`
		Volume float64 `json:"volume"`
	} `json:"candles"`
}

// FetchEquity returns validated point-in-time fundamentals plus a
// chronological daily close history. Candles with unparsable dates or
// non-positive closes are dropped silently.
func (c *Client) FetchEquity(ctx context.Context, ticker string, historyDays int) (*models.EquityData, error) {
	var fund fundamentalsResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/v1/fundamentals",
		Headers: map[string]string{
			"X-API-Key": c.apiKey,
		},
		QueryParams: map[string][]string{
			"ticker": {ticker},
		},
	}, &fund)
	if err != nil {
		return nil, fmt.Errorf("fetch fundamentals %s: %w", ticker, err)
	}
	if fund.Price <= 0 {
		return nil, fmt.Errorf("fundamentals %s: non-positive price %v", ticker, fund.Price)
	}

	var candles candlesResponse
	err = c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/v1/candles",
		Headers: map[string]string{
			"X-API-Key": c.apiKey,
		},
		QueryParams: map[string][]string{
			"ticker":     {ticker},
			"days":       {fmt.Sprintf("%d", historyDays)},
			"resolution": {"D"},
		},
	}, &candles)
	if err != nil {
		return nil, fmt.Errorf("fetch candles %s: %w", ticker, err)
	}

	history := make([]models.PricePoint, 0, len(candles.Candles))
	for _, cd := range candles.Candles {
		date, ok := util.ParseDay(cd.Date)
		if !ok || cd.Close <= 0 {
			continue
		}
		history = append(history, models.PricePoint{Date: date, Close: cd.Close, Volume: cd.Volume})
	}
	sort.Slice(history, func(i, j int) bool { return history[i].Date.Before(history[j].Date) })

	return &models.EquityData{
		Ticker: ticker,
		Price:  fund.Price,
		Fundamentals: models.Fundamentals{
			PERatio:        fund.PERatio,
			ROE:            fund.ROE,
			DebtToEquity:   fund.DebtToEquity,
			ProfitMargin:   fund.ProfitMargin,
			RevenueGrowth:  fund.RevenueGrowth,
			EarningsGrowth: fund.EarningsGrowth,
			Recommendation: fund.Recommendation,
			Week52High:     fund.Week52High,
			Week52Low:      fund.Week52Low,
		},
		History:     history,
		CollectedAt: time.Now(),
	}, nil
}
