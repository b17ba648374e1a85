package assets

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"networth-backend/internal/quotes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuoter struct {
	price   float64
	err     error
	results []quotes.SearchResult
}

func (f *fakeQuoter) Quote(ctx context.Context, symbol string) (float64, error) {
	return f.price, f.err
}

func (f *fakeQuoter) QuoteByName(ctx context.Context, name string) (float64, error) {
	return f.price, f.err
}

func (f *fakeQuoter) Search(ctx context.Context, query string) ([]quotes.SearchResult, error) {
	return f.results, f.err
}

func setupApp(stocks, crypto quotes.Quoter) *fiber.App {
	h := &Handlers{Stocks: stocks, Crypto: crypto}
	app := fiber.New()
	app.Get("/assets/search", h.Search)
	app.Get("/assets/price", h.Price)
	app.Get("/assets/price-by-name", h.PriceByName)
	return app
}

func TestSearch_RoutesByType(t *testing.T) {
	stocks := &fakeQuoter{results: []quotes.SearchResult{{Symbol: "AAPL", Name: "Apple Inc.", Type: "stock"}}}
	crypto := &fakeQuoter{results: []quotes.SearchResult{{Symbol: "bitcoin", Name: "Bitcoin", Type: "crypto"}}}
	app := setupApp(stocks, crypto)

	resp, err := app.Test(httptest.NewRequest("GET", "/assets/search?q=apple&type=stocks", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var out struct {
		Data []quotes.SearchResult `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Data, 1)
	assert.Equal(t, "AAPL", out.Data[0].Symbol)

	resp, err = app.Test(httptest.NewRequest("GET", "/assets/search?q=bitc&type=crypto", nil))
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Data, 1)
	assert.Equal(t, "bitcoin", out.Data[0].Symbol)
}

func TestSearch_ShortQueryReturnsEmptyList(t *testing.T) {
	app := setupApp(&fakeQuoter{}, &fakeQuoter{})

	resp, err := app.Test(httptest.NewRequest("GET", "/assets/search?q=a&type=stocks", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var out struct {
		Data []quotes.SearchResult `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Empty(t, out.Data)
}

func TestSearch_ProviderErrorDegradesToEmpty(t *testing.T) {
	app := setupApp(&fakeQuoter{err: quotes.ErrUnavailable}, &fakeQuoter{})

	resp, err := app.Test(httptest.NewRequest("GET", "/assets/search?q=apple&type=stocks", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var out struct {
		Data []quotes.SearchResult `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Empty(t, out.Data)
}

func TestSearch_BadTypeRejected(t *testing.T) {
	app := setupApp(&fakeQuoter{}, &fakeQuoter{})

	resp, err := app.Test(httptest.NewRequest("GET", "/assets/search?q=apple&type=bonds", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestPrice_ByType(t *testing.T) {
	app := setupApp(&fakeQuoter{price: 187.5}, &fakeQuoter{price: 54000})

	resp, err := app.Test(httptest.NewRequest("GET", "/assets/price?symbol=AAPL&type=stock", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var out struct {
		Data struct {
			Price float64 `json:"price"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.InDelta(t, 187.5, out.Data.Price, 1e-9)

	resp, err = app.Test(httptest.NewRequest("GET", "/assets/price?symbol=bitcoin&type=crypto", nil))
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.InDelta(t, 54000, out.Data.Price, 1e-9)
}

func TestPrice_ProviderErrorDegradesToZero(t *testing.T) {
	app := setupApp(&fakeQuoter{err: quotes.ErrUnavailable}, &fakeQuoter{})

	resp, err := app.Test(httptest.NewRequest("GET", "/assets/price?symbol=AAPL&type=stock", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var out struct {
		Data struct {
			Price float64 `json:"price"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Zero(t, out.Data.Price)
}

func TestPrice_MissingParamsRejected(t *testing.T) {
	app := setupApp(&fakeQuoter{}, &fakeQuoter{})

	resp, err := app.Test(httptest.NewRequest("GET", "/assets/price?type=stock", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/assets/price?symbol=AAPL", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestPriceByName_InvestmentType(t *testing.T) {
	app := setupApp(&fakeQuoter{price: 99.9}, &fakeQuoter{})

	resp, err := app.Test(httptest.NewRequest("GET", "/assets/price-by-name?name=apple&type=investment", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var out struct {
		Data struct {
			Price float64 `json:"price"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.InDelta(t, 99.9, out.Data.Price, 1e-9)
}
