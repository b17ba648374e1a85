package portfolio

import (
	"networth-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// GET /api/v1/portfolio?refresh=true
func (h *Handlers) GetPortfolio(c *fiber.Ctx) error {
	refresh := c.Query("refresh") == "true" || c.Query("updatePrices") == "true"

	data, errMsg, code := h.Service.GetOverview(c.Context(), refresh)
	if errMsg != "" {
		return response.Error(c, errMsg, code, nil)
	}
	return response.Success(c, "Portfolio fetched successfully", data, nil)
}

// GET /api/v1/portfolio/history
func (h *Handlers) GetHistory(c *fiber.Ctx) error {
	data, errMsg, code := h.Service.History(c.Context())
	if errMsg != "" {
		return response.Error(c, errMsg, code, nil)
	}
	return response.Success(c, "Portfolio history fetched successfully", data, nil)
}

// POST /api/v1/portfolio/update-prices
func (h *Handlers) UpdatePrices(c *fiber.Ctx) error {
	counts, totals, errMsg, code := h.Service.UpdateAllPrices(c.Context())
	if errMsg != "" {
		return response.Error(c, errMsg, code, nil)
	}
	return response.Success(c, "Prices updated successfully", fiber.Map{
		"updated": counts,
		"totals":  totals,
	}, nil)
}
