// Package alphavantage fetches the latest stock prices from Alpha Vantage.
//
// The free plan allows a few requests per day, so responses are cached on
// disk for the day, and a rate limit notice stops the whole update.
package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// APIKeyEnv is the environment variable holding the API key.
const APIKeyEnv = "ALPHA_VANTAGE_API_KEY"

// DefaultBaseURL is the Alpha Vantage query endpoint.
const DefaultBaseURL = "https://www.alphavantage.co/query"

var (
	// ErrNoAPIKey is returned when the client has no API key.
	ErrNoAPIKey = errors.New("alpha vantage API key is missing, set " + APIKeyEnv)
	// ErrRateLimited is returned when the API refuses more requests.
	ErrRateLimited = errors.New("alpha vantage API request limit reached, try again later")
)

// rateLimitNote is part of the notice returned instead of a quote when the
// rate limit is reached.
const rateLimitNote = "API call frequency"

// pricePath locates the price in a GLOBAL_QUOTE response.
const pricePath = `$["Global Quote"]["05. price"]`

// Client queries Alpha Vantage.
type Client struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
	// Concurrency bounds the number of requests in flight, 1 if not positive.
	Concurrency int
}

// New returns a client whose responses are cached in the temp directory for the day.
func New(apiKey string, concurrency int) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: DefaultBaseURL,
		HTTP: &http.Client{Transport: &diskCache{
			base: http.DefaultTransport,
			dir:  os.TempDir(),
			keep: func(body []byte) bool { return !strings.Contains(string(body), rateLimitNote) },
		}},
		Concurrency: concurrency,
	}
}

// FetchPrices returns the latest price of each symbol, by upper cased symbol.
//
// Symbols that fail for any other reason than the rate limit are missing from
// the result. When the rate limit is reached, the result is empty and the
// error is ErrRateLimited.
func (c *Client) FetchPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
	if c.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	slog.Info("fetching live prices", "symbols", len(symbols))

	var (
		mu     sync.Mutex
		prices = make(map[string]decimal.Decimal, len(symbols))
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.Concurrency, 1))
	for _, symbol := range symbols {
		symbol := strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" {
			continue
		}
		g.Go(func() error {
			price, err := c.quote(ctx, symbol)
			if errors.Is(err, ErrRateLimited) {
				return err
			}
			if err != nil {
				slog.Warn("cannot fetch price", "symbol", symbol, "err", err)
				return nil
			}
			mu.Lock()
			prices[symbol] = price
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return map[string]decimal.Decimal{}, err
	}
	return prices, nil
}

// quote fetches the GLOBAL_QUOTE of a single symbol.
func (c *Client) quote(ctx context.Context, symbol string) (decimal.Decimal, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	q := url.Values{}
	q.Set("function", "GLOBAL_QUOTE")
	q.Set("symbol", symbol)
	q.Set("apikey", c.APIKey)

	var jobj any
	if err := jwget(ctx, c.httpClient(), base+"?"+q.Encode(), &jobj); err != nil {
		return decimal.Zero, err
	}
	return parseQuote(jobj)
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

// parseQuote extracts the price of a decoded GLOBAL_QUOTE response.
func parseQuote(jobj any) (decimal.Decimal, error) {
	if m, ok := jobj.(map[string]any); ok {
		for _, k := range []string{"Note", "Information"} {
			note, ok := m[k].(string)
			if !ok {
				continue
			}
			if strings.Contains(note, rateLimitNote) {
				return decimal.Zero, ErrRateLimited
			}
			return decimal.Zero, fmt.Errorf("api notice: %s", note)
		}
	}
	jval, err := jsonpath.Get(pricePath, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("no price, the symbol may be invalid: %w", err)
	}
	s, ok := jval.(string)
	if !ok {
		return decimal.Zero, fmt.Errorf("unexpected price %v", jval)
	}
	return decimal.NewFromString(s)
}

// jwget performs an HTTP GET request and unmarshals the JSON response into data.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(content, data)
}
