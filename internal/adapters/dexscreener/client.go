package dexscreener

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"tokenguard/internal/domain/token"
	"tokenguard/pkg/errors"
	"tokenguard/pkg/logger"
)

// DefaultBaseURL is the public Dexscreener API endpoint.
const DefaultBaseURL = "https://api.dexscreener.com"

// Config contains Dexscreener client configuration
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client fetches trading-pair snapshots from the Dexscreener API.
// Every lookup is a single attempt with a bounded timeout; failures are
// reported to the caller, which treats them as "no data".
type Client struct {
	http *resty.Client
	log  *logger.Logger
}

// NewClient creates a new Dexscreener client
func NewClient(cfg Config, log *logger.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &Client{
		http: httpClient,
		log:  log.With("component", "dexscreener_client"),
	}
}

// TokenPairs returns all known trading pairs for a token address,
// converted to domain pairs with upstream gaps already defaulted.
func (c *Client) TokenPairs(ctx context.Context, address string) ([]token.Pair, error) {
	var payload tokensResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&payload).
		SetPathParam("address", address).
		Get("/latest/dex/tokens/{address}")
	if err != nil {
		return nil, errors.Wrap(err, "dexscreener request failed")
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, errors.Wrapf(errors.ErrUpstream, "dexscreener returned status %d", resp.StatusCode())
	}

	pairs := make([]token.Pair, 0, len(payload.Pairs))
	for _, wp := range payload.Pairs {
		pairs = append(pairs, wp.toDomain())
	}

	c.log.Debugw("Fetched token pairs", "address", address, "count", len(pairs))

	return pairs, nil
}

// Name identifies this upstream in readiness reports
func (c *Client) Name() string {
	return "dexscreener"
}

// Ping probes the API with a lookup for a well-known token (WETH).
// Dexscreener has no dedicated health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/latest/dex/tokens/0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	if err != nil {
		return errors.Wrap(err, "dexscreener ping failed")
	}

	if resp.StatusCode() != http.StatusOK {
		return errors.Wrapf(errors.ErrUpstream, "dexscreener returned status %d", resp.StatusCode())
	}

	return nil
}

// Wire structures mirroring the Dexscreener JSON. All fields are
// optional upstream, hence the pointers.

type tokensResponse struct {
	Pairs []wirePair `json:"pairs"`
}

type wirePair struct {
	DexID       string           `json:"dexId"`
	URL         string           `json:"url"`
	PriceUSD    string           `json:"priceUsd"`
	Liquidity   *wireLiquidity   `json:"liquidity"`
	MarketCap   *float64         `json:"marketCap"`
	FDV         *float64         `json:"fdv"`
	PriceChange *wirePriceChange `json:"priceChange"`
}

type wireLiquidity struct {
	USD *float64 `json:"usd"`
}

type wirePriceChange struct {
	H24     *float64 `json:"h24"`
	Percent *float64 `json:"percent"`
}

func (wp wirePair) toDomain() token.Pair {
	p := token.Pair{
		DexID: wp.DexID,
		URL:   wp.URL,
	}
	if p.URL == "" {
		p.URL = "N/A"
	}

	if d, err := decimal.NewFromString(wp.PriceUSD); err == nil {
		p.PriceUSD = decimal.NewNullDecimal(d)
	}

	if wp.Liquidity != nil && wp.Liquidity.USD != nil {
		p.LiquidityUSD = nullFromFloat(*wp.Liquidity.USD)
	}
	if wp.MarketCap != nil {
		p.MarketCapUSD = nullFromFloat(*wp.MarketCap)
	}
	if wp.FDV != nil {
		p.FDVUSD = nullFromFloat(*wp.FDV)
	}

	// The 24h change is published as priceChange.percent by some chains
	// and priceChange.h24 by others; percent wins when both are present.
	if wp.PriceChange != nil {
		switch {
		case wp.PriceChange.Percent != nil:
			p.PriceChange24h = nullFromFloat(*wp.PriceChange.Percent)
		case wp.PriceChange.H24 != nil:
			p.PriceChange24h = nullFromFloat(*wp.PriceChange.H24)
		}
	}

	return p
}

func nullFromFloat(f float64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromFloat(f))
}
