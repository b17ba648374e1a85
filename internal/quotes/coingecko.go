package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// CoinGeckoClient quotes cryptocurrencies via the CoinGecko simple price API.
// Symbols are CoinGecko ids ("bitcoin", "ethereum"), not tickers.
type CoinGeckoClient struct {
	client   *http.Client
	baseURL  string
	currency string
	log      zerolog.Logger
}

// NewCoinGeckoClient creates a CoinGecko client quoting in the given vs_currency.
func NewCoinGeckoClient(currency string, timeout time.Duration, log zerolog.Logger) *CoinGeckoClient {
	return &CoinGeckoClient{
		client:   &http.Client{Timeout: timeout},
		baseURL:  "https://api.coingecko.com/api/v3",
		currency: strings.ToLower(currency),
		log:      log.With().Str("client", "coingecko").Logger(),
	}
}

type geckoSearchResponse struct {
	Coins []struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
	} `json:"coins"`
}

// Quote fetches the current price of a coin id in the configured currency.
func (c *CoinGeckoClient) Quote(ctx context.Context, id string) (float64, error) {
	params := url.Values{}
	params.Set("ids", id)
	params.Set("vs_currencies", c.currency)
	reqURL := c.baseURL + "/simple/price?" + params.Encode()

	// simple/price returns {"<id>": {"<currency>": <price>}}
	var out map[string]map[string]float64
	if err := c.getJSON(ctx, reqURL, &out); err != nil {
		c.log.Warn().Err(err).Str("id", id).Msg("Crypto quote failed")
		return 0, ErrUnavailable
	}

	price, ok := out[id][c.currency]
	if !ok || price <= 0 {
		c.log.Warn().Str("id", id).Msg("Crypto quote returned no usable price")
		return 0, ErrUnavailable
	}
	return price, nil
}

// QuoteByName resolves a free-text name to a coin id, then quotes it.
func (c *CoinGeckoClient) QuoteByName(ctx context.Context, name string) (float64, error) {
	results, err := c.Search(ctx, name)
	if err != nil || len(results) == 0 {
		return 0, ErrUnavailable
	}
	return c.Quote(ctx, results[0].Symbol)
}

// Search returns coin matches for a query. Symbol in the result is the
// CoinGecko id, which is what Quote expects.
func (c *CoinGeckoClient) Search(ctx context.Context, query string) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)

	var out geckoSearchResponse
	if err := c.getJSON(ctx, c.baseURL+"/search?"+params.Encode(), &out); err != nil {
		c.log.Warn().Err(err).Str("query", query).Msg("Crypto search failed")
		return nil, ErrUnavailable
	}

	results := make([]SearchResult, 0, len(out.Coins))
	for _, coin := range out.Coins {
		if coin.ID == "" {
			continue
		}
		results = append(results, SearchResult{
			Symbol: coin.ID,
			Name:   coin.Name,
			Type:   "crypto",
		})
	}
	return results, nil
}

func (c *CoinGeckoClient) getJSON(ctx context.Context, reqURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", yahooUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("coingecko returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
