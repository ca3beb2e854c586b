// Package rates supplies the externally-fetched exchange-rate table
// the conversion layer consumes. One upstream endpoint, a TTL cache,
// and a background refresher; staleness handling lives here, never in
// the engine.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"pricepeek/modules/currency"
)

const (
	// DefaultURL serves a JSON document of pivot-relative rates:
	// {"base":"USD","rates":{"EUR":0.92,...}}.
	DefaultURL = "https://open.er-api.com/v6/latest/USD"

	DefaultTTL      = 30 * time.Minute
	defaultTimeout  = 4 * time.Second
	ratesCacheKey   = "rates_" + currency.PivotCode
	refreshInterval = 15 * time.Minute
)

// ratesResponse is what we store after processing the upstream JSON,
// not the raw wire structure.
type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

type Provider struct {
	client    *http.Client
	url       string
	cache     *cache.Cache
	fetchLock sync.Mutex // one in-flight fetch at a time; losers reread the cache
}

func NewProvider(url string, ttl time.Duration) *Provider {
	if url == "" {
		url = DefaultURL
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Provider{
		client: &http.Client{Timeout: defaultTimeout},
		url:    url,
		cache:  cache.New(ttl, ttl),
	}
}

// Rates returns the current rate table, fetching from upstream only
// when the cached table has expired. The returned table is shared
// read-only; callers must not mutate it.
func (p *Provider) Rates(ctx context.Context) (currency.RateTable, error) {
	if cached, ok := p.cache.Get(ratesCacheKey); ok {
		return cached.(currency.RateTable), nil
	}

	p.fetchLock.Lock()
	defer p.fetchLock.Unlock()

	// Another caller may have fetched while we waited on the lock.
	if cached, ok := p.cache.Get(ratesCacheKey); ok {
		return cached.(currency.RateTable), nil
	}

	table, err := p.fetch(ctx)
	if err != nil {
		return nil, err
	}
	p.cache.SetDefault(ratesCacheKey, table)
	return table, nil
}

// InitialFetch performs a blocking fetch so the table is ready before
// any conversion is served.
func (p *Provider) InitialFetch(ctx context.Context) error {
	_, err := p.Rates(ctx)
	return err
}

// StartBackgroundRefresh keeps the cached table warm until ctx is
// cancelled. Failures are logged and retried on the next tick; the
// previously cached table keeps serving until its TTL runs out.
func (p *Provider) StartBackgroundRefresh(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(refreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				table, err := p.fetch(ctx)
				if err != nil {
					log.Printf("rates: background refresh failed: %v", err)
					continue
				}
				p.cache.SetDefault(ratesCacheKey, table)
			}
		}
	}()
}

func (p *Provider) fetch(ctx context.Context) (currency.RateTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building rates request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching rates from %s: %w", p.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates endpoint returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading rates response: %w", err)
	}

	var parsed ratesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshaling rates response: %w", err)
	}

	table := make(currency.RateTable, len(parsed.Rates))
	for code, rate := range parsed.Rates {
		if rate > 0 {
			table[strings.ToUpper(code)] = rate
		}
	}
	table[currency.PivotCode] = 1

	if err := Validate(table); err != nil {
		return nil, err
	}
	return table, nil
}

// Validate checks that a table can serve every registry currency: the
// pivot is present at exactly 1 and each supported code has a positive
// rate. Convert assumes a pre-validated table, so this is where the
// assumption is earned.
func Validate(table currency.RateTable) error {
	if table[currency.PivotCode] != 1 {
		return fmt.Errorf("rate table pivot %s must be 1", currency.PivotCode)
	}
	for _, def := range currency.ListCurrencies() {
		r, ok := table[def.Code]
		if !ok || r <= 0 {
			return fmt.Errorf("rate table has no usable rate for %s", def.Code)
		}
	}
	return nil
}
