// Package coingecko implements the wallet price feed and asset catalog on top
// of the CoinGecko public API.
package coingecko

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/wallet"
)

const (
	// DefaultBaseURL is the CoinGecko public API.
	DefaultBaseURL = "https://api.coingecko.com/api/v3"
	// DefaultCurrency is the quote currency of prices.
	DefaultCurrency = "usd"
	// APIKeyEnv is the environment variable read for the API key.
	APIKeyEnv = "COINGECKO_API_KEY"

	apiKeyHeader = "x-cg-demo-api-key"
)

// Client queries CoinGecko. It implements wallet.PriceFeed and wallet.Catalog.
type Client struct {
	BaseURL    string
	Currency   string // lower case ISO code, e.g. "usd"
	APIKey     string // optional
	HTTPClient *http.Client
}

// New returns a client of the public API. When cacheTTL is positive,
// responses are cached on disk for that long.
func New(apiKey string, cacheTTL time.Duration) *Client {
	client := &http.Client{Timeout: 10 * time.Second}
	if cacheTTL > 0 {
		client.Transport = &diskCache{base: http.DefaultTransport, ttl: cacheTTL}
	}
	return &Client{
		BaseURL:    DefaultBaseURL,
		Currency:   DefaultCurrency,
		APIKey:     apiKey,
		HTTPClient: client,
	}
}

func (c *Client) currency() string {
	if c.Currency == "" {
		return DefaultCurrency
	}
	return strings.ToLower(c.Currency)
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}

func (c *Client) get(ctx context.Context, path string, query url.Values, data any) error {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	addr := strings.TrimSuffix(base, "/") + path + "?" + query.Encode()
	header := make(http.Header)
	if c.APIKey != "" {
		header.Set(apiKeyHeader, c.APIKey)
	}
	return jwget(ctx, c.httpClient(), addr, header, data)
}

// FetchPrices returns the current price of the coins identified by ids.
// Coins unknown to CoinGecko are absent from the result.
func (c *Client) FetchPrices(ctx context.Context, ids []string) (map[string]wallet.Price, error) {
	prices := make(map[string]wallet.Price)
	if len(ids) == 0 {
		return prices, nil
	}
	// https://api.coingecko.com/api/v3/simple/price?ids=bitcoin,ethereum&vs_currencies=usd
	// {
	//   "bitcoin": {"usd": 67187.34},
	//   "ethereum": {"usd": 3478.22}
	// }
	cur := c.currency()
	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))
	query.Set("vs_currencies", cur)

	content := make(map[string]map[string]float64)
	if err := c.get(ctx, "/simple/price", query, &content); err != nil {
		return nil, fmt.Errorf("cannot fetch prices: %w", err)
	}
	for id, quotes := range content {
		v, ok := quotes[cur]
		if !ok {
			continue
		}
		p, err := wallet.NewPriceFromFloat(v)
		if err != nil {
			return nil, fmt.Errorf("price of %q: %w", id, err)
		}
		prices[id] = p
	}
	return prices, nil
}

// Lookup returns the description and current price of the coin identified by id.
func (c *Client) Lookup(ctx context.Context, id string) (wallet.Listing, error) {
	// https://api.coingecko.com/api/v3/coins/bitcoin?localization=false&tickers=false&market_data=true&community_data=false&developer_data=false&sparkline=false
	query := url.Values{}
	query.Set("localization", "false")
	query.Set("tickers", "false")
	query.Set("market_data", "true")
	query.Set("community_data", "false")
	query.Set("developer_data", "false")
	query.Set("sparkline", "false")

	var jobj any
	if err := c.get(ctx, "/coins/"+url.PathEscape(id), query, &jobj); err != nil {
		return wallet.Listing{}, fmt.Errorf("cannot fetch coin %q: %w", id, err)
	}

	coinID, err := getString(jobj, "$.id")
	if err != nil {
		return wallet.Listing{}, err
	}
	symbol, _ := getString(jobj, "$.symbol")
	name, _ := getString(jobj, "$.name")
	image, _ := getString(jobj, "$.image.large")

	path := "$.market_data.current_price." + c.currency()
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return wallet.Listing{}, fmt.Errorf("coin %q has no price in %q: %w", id, c.currency(), err)
	}
	v, ok := jval.(float64)
	if !ok {
		return wallet.Listing{}, fmt.Errorf("coin %q: %q is not a number: %v", id, path, jval)
	}
	price, err := wallet.NewPriceFromFloat(v)
	if err != nil {
		return wallet.Listing{}, fmt.Errorf("coin %q: %w", id, err)
	}

	asset := wallet.Asset{ID: coinID, Symbol: symbol, Name: name, Image: image}
	return wallet.Listing{Asset: asset, Price: price}, nil
}

// getString reads a string at path in a decoded json document.
func getString(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("error parsing %q: %w", path, err)
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("error parsing %q: not a string %v", path, jval)
	}
	return s, nil
}
