package assets

import (
	"networth-backend/internal/pkg/response"
	"networth-backend/internal/quotes"

	"github.com/gofiber/fiber/v2"
)

// Handlers exposes provider lookups used by the dashboard asset forms.
// Provider failures degrade to an empty result or zero price, never a 5xx.
type Handlers struct {
	Stocks quotes.Quoter
	Crypto quotes.Quoter
}

// GET /api/v1/assets/search?q=&type=stocks|crypto
func (h *Handlers) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if len(query) < 2 {
		return response.Success(c, "Assets searched successfully", []quotes.SearchResult{}, nil)
	}

	var quoter quotes.Quoter
	switch c.Query("type") {
	case "stocks":
		quoter = h.Stocks
	case "crypto":
		quoter = h.Crypto
	default:
		return response.Error(c, "Invalid asset type", 400, nil)
	}

	results, err := quoter.Search(c.Context(), query)
	if err != nil {
		results = []quotes.SearchResult{}
	}
	return response.Success(c, "Assets searched successfully", results, nil)
}

// GET /api/v1/assets/price?symbol=&type=stock|crypto
func (h *Handlers) Price(c *fiber.Ctx) error {
	symbol := c.Query("symbol")
	if symbol == "" {
		return response.Error(c, "Missing symbol or type", 400, nil)
	}

	var quoter quotes.Quoter
	switch c.Query("type") {
	case "stock":
		quoter = h.Stocks
	case "crypto":
		quoter = h.Crypto
	default:
		return response.Error(c, "Missing symbol or type", 400, nil)
	}

	price, err := quoter.Quote(c.Context(), symbol)
	if err != nil {
		price = 0
	}
	return response.Success(c, "Price fetched successfully", fiber.Map{"price": price}, nil)
}

// GET /api/v1/assets/price-by-name?name=&type=investment|crypto
func (h *Handlers) PriceByName(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return response.Error(c, "Missing name or type", 400, nil)
	}

	var quoter quotes.Quoter
	switch c.Query("type") {
	case "investment":
		quoter = h.Stocks
	case "crypto":
		quoter = h.Crypto
	default:
		return response.Error(c, "Missing name or type", 400, nil)
	}

	price, err := quoter.QuoteByName(c.Context(), name)
	if err != nil {
		price = 0
	}
	return response.Success(c, "Price fetched successfully", fiber.Map{"price": price}, nil)
}
