package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"RSICheck/internal/model"
)

// RESTFetcher implements Fetcher against a JSON bar API that answers
// GET {base}/api/v1/bars/daily?symbol=..&limit=.. with an array of bars.
type RESTFetcher struct {
	BaseURL string
	APIKey  string
	Client  *Client
}

// NewRESTFetcher creates a new fetcher for a self-hosted bar API.
func NewRESTFetcher(baseURL, apiKey string, client *Client) *RESTFetcher {
	return &RESTFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  client,
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape from the bar API.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// FetchBars requests enough daily bars to cover rng. Trading days are roughly
// 5/7 of calendar days.
func (f *RESTFetcher) FetchBars(ctx context.Context, symbol, rng string) ([]model.PriceBar, error) {
	days, ok := Ranges[rng]
	if !ok {
		return nil, fmt.Errorf("rest: unsupported range %q", rng)
	}
	limit := days*5/7 + 1
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&limit=%d", f.BaseURL, url.QueryEscape(symbol), limit)

	header := http.Header{}
	if f.APIKey != "" {
		header.Set("Authorization", "Bearer "+f.APIKey)
	}
	body, err := f.Client.Get(ctx, endpoint, header)
	if err != nil {
		return nil, fmt.Errorf("fetch bars %s: %w", symbol, err)
	}

	var raw []restBar
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("rest %s: %w", symbol, ErrNoData)
	}
	bars := make([]model.PriceBar, len(raw))
	for i, rb := range raw {
		bars[i] = model.PriceBar{
			Time:   time.Unix(rb.Timestamp, 0),
			Open:   rb.Open,
			High:   rb.High,
			Low:    rb.Low,
			Close:  rb.Close,
			Volume: rb.Volume,
		}
	}
	// Ensure chronological order
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return dedupe(bars), nil
}
