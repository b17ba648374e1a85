package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const yahooUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// YahooClient quotes equities via the Yahoo Finance chart API and resolves
// free-text names via the Yahoo search API.
type YahooClient struct {
	client    *http.Client
	chartURL  string
	searchURL string
	log       zerolog.Logger
}

// NewYahooClient creates a Yahoo Finance client with a bounded request timeout.
func NewYahooClient(timeout time.Duration, log zerolog.Logger) *YahooClient {
	return &YahooClient{
		client:    &http.Client{Timeout: timeout},
		chartURL:  "https://query1.finance.yahoo.com/v8/finance/chart",
		searchURL: "https://query1.finance.yahoo.com/v1/finance/search",
		log:       log.With().Str("client", "yahoo").Logger(),
	}
}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice *float64 `json:"regularMarketPrice"`
				Currency           string   `json:"currency"`
			} `json:"meta"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}

type yahooSearchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		LongName  string `json:"longname"`
		ShortName string `json:"shortname"`
		Exchange  string `json:"exchange"`
		QuoteType string `json:"quoteType"`
	} `json:"quotes"`
}

// Quote fetches the current market price for a ticker symbol.
func (c *YahooClient) Quote(ctx context.Context, symbol string) (float64, error) {
	reqURL := fmt.Sprintf("%s/%s?interval=1d&range=1d", c.chartURL, url.PathEscape(symbol))

	var out yahooChartResponse
	if err := c.getJSON(ctx, reqURL, &out); err != nil {
		c.log.Warn().Err(err).Str("symbol", symbol).Msg("Stock quote failed")
		return 0, ErrUnavailable
	}

	if len(out.Chart.Result) == 0 {
		c.log.Warn().Str("symbol", symbol).Msg("Stock quote returned no result")
		return 0, ErrUnavailable
	}
	price := out.Chart.Result[0].Meta.RegularMarketPrice
	if price == nil || *price <= 0 {
		c.log.Warn().Str("symbol", symbol).Msg("Stock quote returned no usable price")
		return 0, ErrUnavailable
	}
	return *price, nil
}

// QuoteByName resolves a free-text name to the best-matching symbol, then quotes it.
func (c *YahooClient) QuoteByName(ctx context.Context, name string) (float64, error) {
	results, err := c.search(ctx, name, 1)
	if err != nil || len(results) == 0 {
		return 0, ErrUnavailable
	}
	return c.Quote(ctx, results[0].Symbol)
}

// Search returns up to 10 symbol matches for a query.
func (c *YahooClient) Search(ctx context.Context, query string) ([]SearchResult, error) {
	return c.search(ctx, query, 10)
}

func (c *YahooClient) search(ctx context.Context, query string, count int) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("quotesCount", fmt.Sprintf("%d", count))
	params.Set("newsCount", "0")

	var out yahooSearchResponse
	if err := c.getJSON(ctx, c.searchURL+"?"+params.Encode(), &out); err != nil {
		c.log.Warn().Err(err).Str("query", query).Msg("Stock search failed")
		return nil, ErrUnavailable
	}

	results := make([]SearchResult, 0, len(out.Quotes))
	for _, q := range out.Quotes {
		if q.Symbol == "" {
			continue
		}
		name := q.LongName
		if name == "" {
			name = q.ShortName
		}
		results = append(results, SearchResult{
			Symbol:   q.Symbol,
			Name:     name,
			Exchange: q.Exchange,
			Type:     "stock",
		})
	}
	return results, nil
}

func (c *YahooClient) getJSON(ctx context.Context, reqURL string, out interface{}) error {
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
		return fmt.Errorf("yahoo returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
