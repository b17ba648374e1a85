package transactions

import (
	"networth-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// GET /api/v1/transactions?assetType=&assetId=
func (h *Handlers) List(c *fiber.Ctx) error {
	assetType := c.Query("assetType")

	var assetID *uuid.UUID
	if raw := c.Query("assetId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return response.Error(c, "Invalid asset id", 400, nil)
		}
		assetID = &id
	}

	data, errMsg, code := h.Service.List(c.Context(), assetType, assetID)
	if errMsg != "" {
		return response.Error(c, errMsg, code, nil)
	}
	return response.Success(c, "Transactions fetched successfully", data, nil)
}

// GET /api/v1/transactions/:assetType/:assetId
func (h *Handlers) ListForAsset(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("assetId"))
	if err != nil {
		return response.Error(c, "Invalid asset id", 400, nil)
	}

	data, errMsg, code := h.Service.List(c.Context(), c.Params("assetType"), &id)
	if errMsg != "" {
		return response.Error(c, errMsg, code, nil)
	}
	return response.Success(c, "Transactions fetched successfully", data, nil)
}

// POST /api/v1/transactions
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in CreateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}

	tx, errMsg, code := h.Service.Create(c.Context(), in)
	if errMsg != "" {
		return response.Error(c, errMsg, code, nil)
	}
	return response.SuccessCreated(c, "Transaction created successfully", tx, nil)
}
