package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const (
	defaultBaseURL      = "https://finnhub.io/api/v1"
	defaultBatchTimeout = 10 * time.Second
)

// Client fetches live quotes from the Finnhub REST API. A shared Cache
// absorbs bursts of repeat requests and a Breaker backs off a failing
// upstream. Both are optional.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	cache   Cache
	breaker *Breaker
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithCache attaches a snapshot cache.
func WithCache(cache Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithBaseURL overrides the provider endpoint. Used by tests.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = base }
}

// WithBatchTimeout bounds one FetchQuotes batch.
func WithBatchTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// NewClient creates a new quote provider client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: defaultBatchTimeout},
		breaker: NewBreaker(5, 30*time.Second),
		timeout: defaultBatchTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchQuotes resolves a batch of symbols to snapshots in one fetch cycle.
// A symbol whose fetch fails comes back with Absent set; the rest of the
// batch still resolves. The whole batch runs under one deadline, so a hung
// provider degrades to all-absent instead of blocking the caller.
func (c *Client) FetchQuotes(ctx context.Context, symbols []string) map[string]Snapshot {
	out := make(map[string]Snapshot, len(symbols))

	var missing []string
	for _, sym := range symbols {
		if _, dup := out[sym]; dup {
			continue
		}
		if c.cache != nil {
			if snap, err := c.cache.Get(ctx, sym); err == nil && snap != nil {
				out[sym] = *snap
				continue
			}
		}
		out[sym] = Snapshot{Symbol: sym, Absent: true}
		missing = append(missing, sym)
	}
	if len(missing) == 0 {
		return out
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, sym := range missing {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			snap := c.fetchOne(ctx, symbol)
			mu.Lock()
			out[symbol] = snap
			mu.Unlock()

			if !snap.Absent && c.cache != nil {
				if err := c.cache.Set(ctx, snap); err != nil {
					slog.Debug("Failed to cache quote", "symbol", symbol, "error", err)
				}
			}
		}(sym)
	}
	wg.Wait()

	return out
}

// fetchOne resolves a single symbol. Any failure yields an absent snapshot;
// a missing fundamentals record only leaves PE/MarketCap at zero.
func (c *Client) fetchOne(ctx context.Context, symbol string) Snapshot {
	snap := Snapshot{Symbol: symbol, Absent: true}

	var quote finnhubQuote
	err := c.breaker.Execute(func() error {
		return c.getJSON(ctx, "/quote", symbol, &quote)
	})
	if err != nil {
		slog.Warn("Quote fetch failed", "symbol", symbol, "error", err)
		return snap
	}
	if quote.Current == 0 && quote.PrevClose == 0 {
		// Finnhub answers unknown symbols with an all-zero record.
		slog.Debug("Provider returned no data", "symbol", symbol)
		return snap
	}

	snap = Snapshot{
		Symbol:        symbol,
		Price:         quote.Current,
		Change:        quote.Change,
		ChangePercent: quote.ChangePercent,
	}

	var metrics finnhubMetrics
	if err := c.getJSON(ctx, "/stock/metric", symbol, &metrics); err != nil {
		slog.Debug("Fundamentals fetch failed", "symbol", symbol, "error", err)
		return snap
	}
	snap.PE = metrics.Metric.PETTM
	snap.MarketCap = metrics.Metric.MarketCap * 1e6
	snap.Volume = int64(metrics.Metric.AvgVolume10Day * 1e6)
	return snap
}

func (c *Client) getJSON(ctx context.Context, path, symbol string, v any) error {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("token", c.apiKey)
	if path == "/stock/metric" {
		q.Set("metric", "all")
	}
	addr := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
