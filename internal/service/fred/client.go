package fred

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"MarketLens/internal/domain/models"
	domsvc "MarketLens/internal/domain/service"
	"MarketLens/internal/service/ratelimit"
	"MarketLens/pkg/config"
	xhttp "MarketLens/pkg/http"
	"MarketLens/pkg/logger"
)

// seriesIDs maps canonical indicator names to FRED series identifiers.
var seriesIDs = map[string]string{
	"reserves":     "WRESBAL",
	"tga":          "WTREGEN",
	"reverse_repo": "RRPONTSYD",
	"fed_balance":  "WALCL",
	"sofr":         "SOFR",
	"iorb":         "IORB",
	"effr":         "EFFR",
	"m2":           "M2SL",
	"yield_curve":  "T10Y2Y",
	"vix":          "VIXCLS",
	"nfci":         "NFCI",
	"dollar_index": "DTWEXBGS",
	"hy_spread":    "BAMLH0A0HYM2",
}

// Client fetches observation series from the FRED HTTP API.
type Client struct {
	baseURL string
	apiKey  string
	client  *xhttp.Client
	limiter *ratelimit.Limiter
	rate    float64
	burst   float64
	log     *logger.Logger
}

var _ domsvc.MacroProvider = (*Client)(nil)

func New(cfg *config.Config, log *logger.Logger) *Client {
	timeout := cfg.Fred.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	rate := cfg.Fred.RatePerSecond
	if rate <= 0 {
		rate = 2
	}
	burst := cfg.Fred.RateBurst
	if burst <= 0 {
		burst = 5
	}
	return &Client{
		baseURL: cfg.Fred.BaseURL,
		apiKey:  cfg.Fred.APIKey,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
		limiter: ratelimit.New(),
		rate:    rate,
		burst:   burst,
		log:     log,
	}
}

type observationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// FetchSeries returns the chronological (date, value) observations for one
// indicator. Observations FRED reports as "." (no data for the day) are
// dropped silently.
func (c *Client) FetchSeries(ctx context.Context, indicator string, from, to time.Time) ([]models.SeriesPoint, error) {
	id, ok := seriesIDs[indicator]
	if !ok {
		return nil, fmt.Errorf("unknown indicator %q", indicator)
	}
	if err := c.waitForToken(ctx); err != nil {
		return nil, err
	}

	var resp observationsResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/fred/series/observations",
		QueryParams: map[string][]string{
			"series_id":         {id},
			"api_key":           {c.apiKey},
			"file_type":         {"json"},
			"observation_start": {from.Format("2006-01-02")},
			"observation_end":   {to.Format("2006-01-02")},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", indicator, err)
	}

	points := make([]models.SeriesPoint, 0, len(resp.Observations))
	dropped := 0
	for _, o := range resp.Observations {
		date, err := time.Parse("2006-01-02", o.Date)
		if err != nil {
			dropped++
			continue
		}
		v, err := strconv.ParseFloat(o.Value, 64)
		if err != nil {
			// "." means no observation that day
			dropped++
			continue
		}
		points = append(points, models.SeriesPoint{Date: date, Value: v})
	}
	if dropped > 0 {
		c.log.Debug("dropped malformed observations",
			logger.String("indicator", indicator),
			logger.Int("dropped", dropped))
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}

func (c *Client) waitForToken(ctx context.Context) error {
	for !c.limiter.Allow("fred", c.burst, c.rate) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
	return nil
}
