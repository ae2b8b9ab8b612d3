// Package rates fetches live exchange rates from the public frankfurter
// API. It is a display-only collaborator: failures are reported to the
// caller, who treats the data as optional, and nothing here ever touches
// the authoritative per-currency totals.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const cacheTTL = time.Hour

// Rates maps currency code to the rate against the base currency.
type Rates map[string]decimal.Decimal

// Client fetches latest rates with a redis cache in front.
type Client struct {
	baseURL string
	http    *http.Client
	rdb     *redis.Client
	log     *zap.SugaredLogger
}

func NewClient(baseURL string, rdb *redis.Client, log *zap.SugaredLogger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Second},
		rdb:     rdb,
		log:     log,
	}
}

type latestResponse struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// Latest returns rates from base to the given symbols. Cache hits skip
// the network entirely; a failed cache write is logged and ignored.
func (c *Client) Latest(ctx context.Context, base string, symbols []string) (Rates, error) {
	key := cacheKey(base, symbols)
	if c.rdb != nil {
		if cached, err := c.rdb.Get(ctx, key).Result(); err == nil {
			var r Rates
			if err := json.Unmarshal([]byte(cached), &r); err == nil {
				return r, nil
			}
		}
	}

	q := url.Values{}
	q.Set("from", base)
	if len(symbols) > 0 {
		q.Set("to", strings.Join(symbols, ","))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/latest?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rates: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch rates: status %d", resp.StatusCode)
	}

	var decoded latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode rates: %w", err)
	}

	result := Rates(decoded.Rates)
	if c.rdb != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := c.rdb.Set(ctx, key, data, cacheTTL).Err(); err != nil {
				c.log.Warnw("cache rates", "error", err)
			}
		}
	}
	return result, nil
}

// Convert converts an amount from one currency to another using the
// latest rate. Same-currency conversion is the identity.
func (c *Client) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	rates, err := c.Latest(ctx, from, []string{to})
	if err != nil {
		return decimal.Zero, err
	}
	rate, ok := rates[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("no rate from %s to %s", from, to)
	}
	return amount.Mul(rate), nil
}

func cacheKey(base string, symbols []string) string {
	return "rates:" + base + ":" + strings.Join(symbols, ",")
}
